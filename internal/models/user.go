package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	EmailToken   *string   `gorm:"type:varchar(255);index" json:"-"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Categories []Category `gorm:"foreignKey:CreatorID" json:"-"`
	Notes      []Note     `gorm:"foreignKey:CreatorID" json:"-"`
}
