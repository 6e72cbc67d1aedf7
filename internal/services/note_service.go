package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/models"
	"github.com/fjaouad/notes-api/internal/repository"
	"github.com/fjaouad/notes-api/internal/utils"
)

var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteTitleInvalid = errors.New("title must be between 1 and 16 characters")
	ErrNoteContentEmpty = errors.New("content is required")
)

const maxNoteTitleLength = 16

// NoteService handles note business logic: creator-scoped CRUD, tag
// resolution and attachment association.
type NoteService struct {
	noteRepo     repository.NoteRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	uploads      *UploadService
	log          zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo repository.NoteRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	uploads *UploadService,
	log zerolog.Logger,
) *NoteService {
	return &NoteService{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		uploads:      uploads,
		log:          log,
	}
}

// CreateNoteInput represents input for creating a note
type CreateNoteInput struct {
	Title    string
	Content  string
	Tags     []string
	Category string
	Image    *multipart.FileHeader
	File     *multipart.FileHeader
}

// Create validates the input, resolves the named category scoped to the
// actor, persists the note stamped with the actor's identity, resolves tags
// and attaches at most one upload. When both an image and a file are sent,
// only the image is attached; one attachment kind per creation call.
func (s *NoteService) Create(input CreateNoteInput, actor *models.User) (*models.Note, error) {
	if err := validateNoteFields(input.Title, input.Content); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindOwnedByName(strings.TrimSpace(input.Category), actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	note := &models.Note{
		Title:        input.Title,
		Content:      input.Content,
		CategoryID:   category.ID,
		CreatorID:    actor.ID,
		CreatorName:  actor.Name,
		CreatorEmail: actor.Email,
	}

	// Write the blob before the note row references it.
	var uploadedPath string
	var isImage bool
	switch {
	case input.Image != nil:
		uploadedPath, err = s.uploads.SaveImage(input.Image)
		isImage = true
	case input.File != nil:
		uploadedPath, err = s.uploads.SaveFile(input.File)
	}
	if err != nil {
		return nil, err
	}
	if uploadedPath != "" {
		if isImage {
			note.ImageLocations = append(note.ImageLocations, uploadedPath)
		} else {
			note.AttachLocations = append(note.AttachLocations, uploadedPath)
		}
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	if err := s.resolveTags(input.Tags, note.ID, actor.ID); err != nil {
		return nil, err
	}

	created, err := s.noteRepo.FindOwned(note.ID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload note: %w", err)
	}
	return created, nil
}

// GetByID returns the note scoped to its creator.
func (s *NoteService) GetByID(noteID, actorID uint64) (*models.Note, error) {
	note, err := s.noteRepo.FindOwned(noteID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// ListNotesInput represents filters for listing notes
type ListNotesInput struct {
	ActorID    uint64
	Tags       []string
	CategoryID *uint64
	SortAsc    bool
	Page       int
	Limit      int
}

// NoteListResult is a page of notes with paging metadata.
type NoteListResult struct {
	TotalRecords int64
	TotalPages   int
	Page         int
	Limit        int
	Notes        []models.Note
}

// List composes a filtered, sorted, paginated query over the actor's notes.
// Tag names are resolved to ids first; a requested category must belong to
// the actor.
func (s *NoteService) List(input ListNotesInput) (*NoteListResult, error) {
	filter := repository.NoteFilter{
		CreatorID: input.ActorID,
		SortAsc:   input.SortAsc,
		Page:      input.Page,
		Limit:     input.Limit,
	}

	if len(input.Tags) > 0 {
		tags, err := s.tagRepo.FindByNames(input.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		// Unknown tag names resolve to nothing and match no notes.
		filter.TagIDs = make([]uint64, 0, len(tags))
		for _, tag := range tags {
			filter.TagIDs = append(filter.TagIDs, tag.ID)
		}
		if len(filter.TagIDs) == 0 {
			return &NoteListResult{Page: input.Page, Limit: input.Limit, Notes: []models.Note{}}, nil
		}
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.FindOwned(*input.CategoryID, input.ActorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		filter.CategoryID = &category.ID
	}

	notes, total, err := s.noteRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return &NoteListResult{
		TotalRecords: total,
		TotalPages:   utils.TotalPages(total, input.Limit),
		Page:         input.Page,
		Limit:        input.Limit,
		Notes:        notes,
	}, nil
}

// UpdateNoteInput represents input for updating a note
type UpdateNoteInput struct {
	Title    string
	Content  string
	Tags     []string
	Category string
}

// Update re-validates existence scoped to the actor and applies a field
// replacement. Tags and category are re-resolved to reference ids the same
// way Create resolves them.
func (s *NoteService) Update(noteID uint64, input UpdateNoteInput, actor *models.User) (*models.Note, error) {
	note, err := s.noteRepo.FindOwned(noteID, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	if err := validateNoteFields(input.Title, input.Content); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindOwnedByName(strings.TrimSpace(input.Category), actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	note.Title = input.Title
	note.Content = input.Content
	note.CategoryID = category.ID
	note.Tags = nil
	if err := s.noteRepo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	tagIDs, err := s.findOrCreateTags(input.Tags, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.ReplaceTags(note.ID, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to replace tags: %w", err)
	}

	updated, err := s.noteRepo.FindOwned(note.ID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload note: %w", err)
	}
	return updated, nil
}

// Delete removes a note scoped to its creator.
func (s *NoteService) Delete(noteID, actorID uint64) error {
	if err := s.noteRepo.DeleteOwned(noteID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// resolveTags looks up or creates each named tag, links it to the note and
// records the actor in the tag's usage set. Idempotent per tag name: the
// link and attribution writes are set-adds.
func (s *NoteService) resolveTags(names []string, noteID, actorID uint64) error {
	for _, name := range names {
		tag, err := s.findOrCreateTag(name)
		if err != nil {
			return err
		}
		if err := s.noteRepo.AddTag(noteID, tag.ID); err != nil {
			return fmt.Errorf("failed to link tag %q: %w", name, err)
		}
		if err := s.tagRepo.AddUser(tag.ID, actorID); err != nil {
			return fmt.Errorf("failed to attribute tag %q: %w", name, err)
		}
	}
	return nil
}

func (s *NoteService) findOrCreateTags(names []string, actorID uint64) ([]uint64, error) {
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		tag, err := s.findOrCreateTag(name)
		if err != nil {
			return nil, err
		}
		if err := s.tagRepo.AddUser(tag.ID, actorID); err != nil {
			return nil, fmt.Errorf("failed to attribute tag %q: %w", name, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func (s *NoteService) findOrCreateTag(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	tag, err := s.tagRepo.FindByName(name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find tag %q: %w", name, err)
	}

	tag = &models.Tag{Name: name}
	if createErr := s.tagRepo.Create(tag); createErr != nil {
		// A concurrent request may have created the tag first; the unique
		// index on name turns the race into a constraint violation and the
		// re-fetch picks up the winner's row.
		existing, findErr := s.tagRepo.FindByName(name)
		if findErr != nil {
			return nil, fmt.Errorf("failed to create tag %q: %w", name, createErr)
		}
		s.log.Debug().Str("tag", name).Msg("tag created concurrently, reusing existing")
		return existing, nil
	}
	return tag, nil
}

func validateNoteFields(title, content string) error {
	// Length is counted in characters, not bytes.
	length := utf8.RuneCountInString(title)
	if length < 1 || length > maxNoteTitleLength {
		return ErrNoteTitleInvalid
	}
	if content == "" {
		return ErrNoteContentEmpty
	}
	return nil
}
