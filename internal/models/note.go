package models

import (
	"time"
)

type Note struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	ImageLocations  StringList `gorm:"type:text" json:"image_locations"`
	AttachLocations StringList `gorm:"type:text" json:"attachment_locations"`
	CategoryID      uint64     `gorm:"not null;index" json:"category_id"`
	CreatorID       uint64     `gorm:"not null;index" json:"creator_id"`
	CreatorName     string     `gorm:"type:varchar(100)" json:"creator_name"`
	CreatorEmail    string     `gorm:"type:varchar(255)" json:"creator_email"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `gorm:"index" json:"updated_at"`

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Creator  User     `gorm:"foreignKey:CreatorID" json:"-"`
	Tags     []Tag    `gorm:"many2many:note_tags" json:"tags,omitempty"`
}

// NoteTag is the note/tag join row. The composite primary key gives the
// note's tag list set semantics: re-adding an existing tag is a no-op.
type NoteTag struct {
	NoteID    uint64    `gorm:"primarykey" json:"note_id"`
	TagID     uint64    `gorm:"primarykey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
