package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/models"
	"github.com/fjaouad/notes-api/internal/repository"
)

var (
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameEmpty = errors.New("category name is required")
)

// CategoryService handles category business logic. Every read and mutation
// is scoped by the creator stamped on the row.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name        string
	Description string
	Status      bool
	CreatorID   uint64
}

// Create persists a new category stamped with its creator. The name
// uniqueness check is global by name, not per creator.
func (s *CategoryService) Create(input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}

	if _, err := s.categoryRepo.FindByName(name); err == nil {
		return nil, ErrCategoryNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &models.Category{
		Name:        name,
		Description: input.Description,
		Status:      input.Status,
		CreatorID:   input.CreatorID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// GetAll returns the categories owned by the creator.
func (s *CategoryService) GetAll(creatorID uint64) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategoryInput represents input for updating a category
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Status      *bool
}

// Update applies validated fields to a category owned by the actor. A
// foreign category is invisible and yields not-found.
func (s *CategoryService) Update(categoryID, actorID uint64, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.FindOwned(categoryID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrCategoryNameEmpty
		}
		if name != category.Name {
			if existing, err := s.categoryRepo.FindByName(name); err == nil && existing.ID != category.ID {
				return nil, ErrCategoryNameTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check category name: %w", err)
			}
			category.Name = name
		}
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Status != nil {
		category.Status = *input.Status
	}
	category.UpdatedBy = &actorID

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete removes a category owned by the actor. Notes of the same creator
// that reference the category are deleted first; the cascade and the
// category delete run in one transaction.
func (s *CategoryService) Delete(categoryID, actorID uint64) error {
	if _, err := s.categoryRepo.FindOwned(categoryID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if err := s.categoryRepo.DeleteWithNotes(categoryID, actorID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
