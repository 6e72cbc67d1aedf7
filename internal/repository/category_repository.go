package repository

import (
	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/database"
	"github.com/fjaouad/notes-api/internal/models"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindByName finds a category by name regardless of owner. Category names
// are unique system-wide, not per creator.
func (r *GormCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindOwned finds a category scoped to its creator
func (r *GormCategoryRepository) FindOwned(id, creatorID uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND creator_id = ?", id, creatorID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindOwnedByName finds a category by name scoped to its creator
func (r *GormCategoryRepository) FindOwnedByName(name string, creatorID uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ? AND creator_id = ?", name, creatorID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByCreator returns all categories stamped with the creator
func (r *GormCategoryRepository) ListByCreator(creatorID uint64) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Scopes(database.OwnedBy(creatorID)).Order("updated_at DESC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update persists changes to a category
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// DeleteWithNotes deletes the category and every note of the same creator
// that references it. Both deletes run in a single transaction so the
// cascade is all-or-nothing.
func (r *GormCategoryRepository) DeleteWithNotes(id, creatorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var noteIDs []uint64
		if err := tx.Model(&models.Note{}).
			Where("category_id = ? AND creator_id = ?", id, creatorID).
			Pluck("id", &noteIDs).Error; err != nil {
			return err
		}

		if len(noteIDs) > 0 {
			if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.NoteTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", noteIDs).Delete(&models.Note{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ? AND creator_id = ?", id, creatorID).Delete(&models.Category{}).Error
	})
}
