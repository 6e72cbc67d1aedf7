package dto

import (
	"time"

	"github.com/fjaouad/notes-api/internal/models"
)

// NoteDTO represents a note in API responses
type NoteDTO struct {
	NoteID      uint64    `json:"noteID"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category,omitempty"`
	Images      []string  `json:"images"`
	Attachments []string  `json:"attachments"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// NoteListResponse represents a paginated list of notes
type NoteListResponse struct {
	Success      bool      `json:"success"`
	TotalRecords int64     `json:"TotalRecords"`
	Limit        int       `json:"Limit"`
	TotalPages   int       `json:"TotalPages"`
	Note         []NoteDTO `json:"Note"`
	Page         int       `json:"Page"`
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	tags := make([]string, len(note.Tags))
	for i, tag := range note.Tags {
		tags[i] = tag.Name
	}

	dto := NoteDTO{
		NoteID:      note.ID,
		Title:       note.Title,
		Content:     note.Content,
		Tags:        tags,
		Images:      note.ImageLocations,
		Attachments: note.AttachLocations,
		Created:     note.CreatedAt,
		Updated:     note.UpdatedAt,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if dto.Attachments == nil {
		dto.Attachments = []string{}
	}

	// Include category name if preloaded
	if note.Category.ID != 0 {
		dto.Category = note.Category.Name
	}

	return dto
}

// ToNoteListResponse converts a page of notes to the list envelope
func ToNoteListResponse(notes []models.Note, page, limit, totalPages int, totalRecords int64) NoteListResponse {
	items := make([]NoteDTO, len(notes))
	for i, note := range notes {
		items[i] = ToNoteDTO(note)
	}

	return NoteListResponse{
		Success:      true,
		TotalRecords: totalRecords,
		Limit:        limit,
		TotalPages:   totalPages,
		Note:         items,
		Page:         page,
	}
}
