package models

import (
	"time"
)

type Category struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Status      bool      `gorm:"not null;default:true" json:"status"`
	CreatorID   uint64    `gorm:"not null;index" json:"creator_id"`
	UpdatedBy   *uint64   `json:"updated_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Notes   []Note `gorm:"foreignKey:CategoryID" json:"notes,omitempty"`
}
