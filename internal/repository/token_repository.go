package repository

import (
	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/models"
)

// GormRefreshTokenRepository is a GORM implementation of RefreshTokenRepository
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

// Save stores an issued refresh token
func (r *GormRefreshTokenRepository) Save(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindByToken looks up a stored refresh token
func (r *GormRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := r.db.Where("token = ?", token).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteByToken removes a single stored token
func (r *GormRefreshTokenRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// DeleteByUser removes every token issued to the user
func (r *GormRefreshTokenRepository) DeleteByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
