package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	BearerPrefix      = "Bearer "
)

// Upload subdirectories, relative to the configured upload root.
const (
	ImageUploadDir = "img/notes"
	FileUploadDir  = "files/notes"
)
