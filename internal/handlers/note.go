package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fjaouad/notes-api/internal/dto"
	apierrors "github.com/fjaouad/notes-api/internal/errors"
	"github.com/fjaouad/notes-api/internal/middleware"
	"github.com/fjaouad/notes-api/internal/services"
	"github.com/fjaouad/notes-api/internal/utils"
)

// NoteHandler coordinates note HTTP handlers.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// CreateNote validates the payload, resolves the named category and
// persists a note for the caller. Accepts JSON or multipart form; multipart
// may carry one image or one file upload.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	input := services.CreateNoteInput{}
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input.Title = c.PostForm("title")
		input.Content = c.PostForm("content")
		input.Category = c.PostForm("category")
		input.Tags = c.PostFormArray("tags")
		if file, err := c.FormFile("image"); err == nil {
			input.Image = file
		}
		if file, err := c.FormFile("file"); err == nil {
			input.File = file
		}
	} else {
		type CreateRequest struct {
			Title    string   `json:"title" binding:"required"`
			Content  string   `json:"content" binding:"required"`
			Tags     []string `json:"tags"`
			Category string   `json:"category" binding:"required"`
		}
		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.Respond(c, apierrors.ErrInvalidBody)
			return
		}
		input.Title = req.Title
		input.Content = req.Content
		input.Tags = req.Tags
		input.Category = req.Category
	}

	note, err := h.noteService.Create(input, user)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note))
}

// GetNote returns a note scoped to the caller.
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.GetByID(noteID, userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// ListNotes returns a filtered, sorted, paginated page of the caller's
// notes. Filters: optional tag names in the request body, optional category
// id and sort direction in the query string.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListNotesInput{
		ActorID: userID,
		SortAsc: c.Query("Sort") == "ASC",
		Page:    params.Page,
		Limit:   params.Limit,
	}

	// The tag filter travels in an optional JSON body; an absent or empty
	// body means no tag filtering.
	type ListRequest struct {
		Tags []string `json:"tags"`
	}
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		input.Tags = req.Tags
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrInvalidBody)
			return
		}
		input.CategoryID = &categoryID
	}

	result, err := h.noteService.List(input)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteListResponse(
		result.Notes,
		result.Page,
		result.Limit,
		result.TotalPages,
		result.TotalRecords,
	))
}

// UpdateNote replaces the mutable fields of a note scoped to the caller.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	type UpdateRequest struct {
		Title    string   `json:"title" binding:"required"`
		Content  string   `json:"content" binding:"required"`
		Tags     []string `json:"tags"`
		Category string   `json:"category" binding:"required"`
	}

	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	note, err := h.noteService.Update(noteID, services.UpdateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Category: req.Category,
	}, user)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// DeleteNote removes a note scoped to the caller.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.Delete(noteID, userID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note deleted",
	})
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrCategoryNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound)
	case errors.Is(err, services.ErrNoteTitleInvalid),
		errors.Is(err, services.ErrNoteContentEmpty):
		apierrors.Respond(c, apierrors.UnprocessableEntity(apierrors.Bundle{
			En: "Invalid note payload",
			Ar: "محتوى الملاحظة غير صالح",
			Fr: "Charge utile de note invalide",
		}))
	case errors.Is(err, services.ErrInvalidImageType):
		apierrors.Respond(c, apierrors.UnprocessableEntity(apierrors.Bundle{
			En: "Invalid Image",
			Ar: "صورة غير صالحة",
			Fr: "Image invalide",
		}))
	case errors.Is(err, services.ErrInvalidFileType):
		apierrors.Respond(c, apierrors.UnprocessableEntity(apierrors.Bundle{
			En: "Invalid File",
			Ar: "ملف غير صالح",
			Fr: "Fichier invalide",
		}))
	default:
		apierrors.Respond(c, apierrors.ErrUnexpected)
	}
}
