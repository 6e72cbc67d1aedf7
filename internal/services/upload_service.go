package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/fjaouad/notes-api/internal/constants"
	"github.com/fjaouad/notes-api/internal/utils"
)

var (
	ErrInvalidImageType = errors.New("invalid image type")
	ErrInvalidFileType  = errors.New("invalid file type")
)

var (
	allowedImageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
	allowedFileExtensions  = map[string]bool{".pdf": true, ".txt": true, ".docx": true}
)

// UploadService validates and persists uploaded blobs. The blob is written
// to disk before any note metadata is updated, so a failed write never
// leaves a note referencing a missing file.
type UploadService struct {
	rootDir string
}

// NewUploadService creates an UploadService rooted at dir.
func NewUploadService(rootDir string) *UploadService {
	return &UploadService{rootDir: rootDir}
}

// SaveImage validates the image extension, writes the blob and returns the
// stored path.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if !allowedImageExtensions[filepath.Ext(file.Filename)] {
		return "", ErrInvalidImageType
	}
	return s.save(file, constants.ImageUploadDir)
}

// SaveFile validates the attachment extension, writes the blob and returns
// the stored path.
func (s *UploadService) SaveFile(file *multipart.FileHeader) (string, error) {
	if !allowedFileExtensions[filepath.Ext(file.Filename)] {
		return "", ErrInvalidFileType
	}
	return s.save(file, constants.FileUploadDir)
}

func (s *UploadService) save(file *multipart.FileHeader, subDir string) (string, error) {
	dir := filepath.Join(s.rootDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst := filepath.Join(dir, utils.GenerateUploadName(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return dst, nil
}
