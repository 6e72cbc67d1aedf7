package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fjaouad/notes-api/internal/models"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Create creates a new tag. A concurrent first use of the same name loses
// on the unique index; callers re-fetch by name on failure.
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// FindByName finds a tag by name
func (r *GormTagRepository) FindByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByNames resolves tag names to tag records
func (r *GormTagRepository) FindByNames(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(names) == 0 {
		return tags, nil
	}
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AddUser records that a user has used the tag. The attribution list has
// set semantics: adding the same user twice is a no-op.
func (r *GormTagRepository) AddUser(tagID, userID uint64) error {
	link := models.TagUser{TagID: tagID, UserID: userID}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&link).Error
}
