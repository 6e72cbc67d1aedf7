package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fjaouad/notes-api/internal/dto"
	apierrors "github.com/fjaouad/notes-api/internal/errors"
	"github.com/fjaouad/notes-api/internal/middleware"
	"github.com/fjaouad/notes-api/internal/services"
)

// CategoryHandler coordinates category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory persists a category stamped with the caller.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	type CreateRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
		Status      *bool  `json:"status"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}

	category, err := h.categoryService.Create(services.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		CreatorID:   userID,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// ListCategories returns the caller's categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	categories, err := h.categoryService.GetAll(userID)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": dto.ToCategoryDTOs(categories),
	})
}

// UpdateCategory applies validated fields to a category owned by the caller.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	type UpdateRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		Status      *bool   `json:"status"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	category, err := h.categoryService.Update(categoryID, userID, services.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory removes a category owned by the caller, cascading to the
// caller's notes that reference it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(categoryID, userID); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted",
	})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNameTaken):
		apierrors.Respond(c, apierrors.Conflict(apierrors.Bundle{
			En: "Category already exists",
			Ar: "الفئة موجودة مسبقاً",
			Fr: "La catégorie existe déjà",
		}))
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound)
	case errors.Is(err, services.ErrCategoryNameEmpty):
		apierrors.Respond(c, apierrors.ErrInvalidBody)
	default:
		apierrors.Respond(c, apierrors.ErrUnexpected)
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return 0, false
	}
	return id, true
}
