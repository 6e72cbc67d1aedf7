package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fjaouad/notes-api/internal/database"
	"github.com/fjaouad/notes-api/internal/models"
	"github.com/fjaouad/notes-api/internal/utils"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

// FindOwned finds a note scoped to its creator, preloading tags and category
func (r *GormNoteRepository) FindOwned(id, creatorID uint64) (*models.Note, error) {
	var note models.Note
	err := r.db.Preload("Tags").Preload("Category").
		Scopes(database.OwnedBy(creatorID)).
		Where("id = ?", id).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List retrieves notes with filtering, sorting and pagination
func (r *GormNoteRepository) List(filter NoteFilter) ([]models.Note, int64, error) {
	query := r.db.Model(&models.Note{}).Where("notes.creator_id = ?", filter.CreatorID)

	if len(filter.TagIDs) > 0 {
		tagSubQuery := r.db.Model(&models.NoteTag{}).
			Select("1").
			Where("note_tags.note_id = notes.id").
			Where("note_tags.tag_id IN ?", filter.TagIDs)
		query = query.Where("EXISTS (?)", tagSubQuery)
	}
	if filter.CategoryID != nil {
		query = query.Where("notes.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortAsc {
		listQuery = listQuery.Order("notes.updated_at ASC")
	} else {
		listQuery = listQuery.Order("notes.updated_at DESC")
	}

	if filter.Page > 0 && filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.Limit,
			Offset: (filter.Page - 1) * filter.Limit,
		}))
	}

	var notes []models.Note
	if err := listQuery.Preload("Tags").Preload("Category").Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// Update persists changes to a note
func (r *GormNoteRepository) Update(note *models.Note) error {
	return r.db.Save(note).Error
}

// DeleteOwned deletes a note scoped to its creator, along with its tag links
func (r *GormNoteRepository) DeleteOwned(id, creatorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND creator_id = ?", id, creatorID).Delete(&models.Note{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("note_id = ?", id).Delete(&models.NoteTag{}).Error
	})
}

// AddTag links a tag to a note; the note's tag list is a set keyed by tag
// id, so re-adding an existing link is a no-op.
func (r *GormNoteRepository) AddTag(noteID, tagID uint64) error {
	link := models.NoteTag{NoteID: noteID, TagID: tagID}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "note_id"}, {Name: "tag_id"}},
			DoNothing: true,
		}).
		Create(&link).Error
}

// ReplaceTags replaces a note's tag set
func (r *GormNoteRepository) ReplaceTags(noteID uint64, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}

		links := make([]models.NoteTag, len(tagIDs))
		for i, tagID := range tagIDs {
			links[i] = models.NoteTag{NoteID: noteID, TagID: tagID}
		}
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "note_id"}, {Name: "tag_id"}},
				DoNothing: true,
			}).
			Create(&links).Error
	})
}
