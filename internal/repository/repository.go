package repository

import (
	"github.com/fjaouad/notes-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByEmailToken finds a user by their email-verification token
	FindByEmailToken(token string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByName finds a category by name regardless of owner
	FindByName(name string) (*models.Category, error)

	// FindOwned finds a category scoped to its creator
	FindOwned(id, creatorID uint64) (*models.Category, error)

	// FindOwnedByName finds a category by name scoped to its creator
	FindOwnedByName(name string, creatorID uint64) (*models.Category, error)

	// ListByCreator returns all categories stamped with the creator
	ListByCreator(creatorID uint64) ([]models.Category, error)

	// Update persists changes to a category
	Update(category *models.Category) error

	// DeleteWithNotes deletes the category and every note of the same
	// creator that references it, in one transaction
	DeleteWithNotes(id, creatorID uint64) error
}

// NoteFilter holds filtering options for listing notes
type NoteFilter struct {
	CreatorID  uint64
	TagIDs     []uint64
	CategoryID *uint64
	SortAsc    bool
	Page       int
	Limit      int
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a new note
	Create(note *models.Note) error

	// FindOwned finds a note scoped to its creator, preloading tags and
	// category
	FindOwned(id, creatorID uint64) (*models.Note, error)

	// List retrieves notes with filtering and pagination
	List(filter NoteFilter) ([]models.Note, int64, error)

	// Update persists changes to a note
	Update(note *models.Note) error

	// DeleteOwned deletes a note scoped to its creator
	DeleteOwned(id, creatorID uint64) error

	// AddTag links a tag to a note; re-adding is a no-op
	AddTag(noteID, tagID uint64) error

	// ReplaceTags replaces a note's tag set
	ReplaceTags(noteID uint64, tagIDs []uint64) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create creates a new tag; duplicate names fail on the unique index
	Create(tag *models.Tag) error

	// FindByName finds a tag by name
	FindByName(name string) (*models.Tag, error)

	// FindByNames resolves tag names to tag records
	FindByNames(names []string) ([]models.Tag, error)

	// AddUser records that a user has used the tag; re-adding is a no-op
	AddUser(tagID, userID uint64) error
}

// RefreshTokenRepository defines the interface for refresh-token state
type RefreshTokenRepository interface {
	// Save stores an issued refresh token
	Save(token *models.RefreshToken) error

	// FindByToken looks up a stored refresh token
	FindByToken(token string) (*models.RefreshToken, error)

	// DeleteByToken removes a single stored token
	DeleteByToken(token string) error

	// DeleteByUser removes every token issued to the user
	DeleteByUser(userID uint64) error
}
