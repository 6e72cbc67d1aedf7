package models

import (
	"time"
)

// Tag is a shared vocabulary entry. Tags are not owned by a single user;
// the Users relation records everyone who has applied the tag to a note.
// The unique index on Name makes concurrent first-use of the same name fail
// with a constraint violation instead of creating a duplicate document.
type Tag struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Users []User `gorm:"many2many:tag_users" json:"users,omitempty"`
}

// TagUser is the usage-attribution join row: one entry per user that has
// used the tag at least once. Composite primary key keeps it a set.
type TagUser struct {
	TagID     uint64    `gorm:"primarykey" json:"tag_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
