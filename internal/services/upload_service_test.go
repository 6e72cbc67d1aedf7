package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	_, header, err := req.FormFile(field)
	require.NoError(t, err)
	return header
}

func TestUploadService_SaveImage(t *testing.T) {
	root := t.TempDir()
	svc := NewUploadService(root)

	header := makeFileHeader(t, "image", "photo.png", []byte("png bytes"))
	path, err := svc.SaveImage(header)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("png bytes"), data)
	require.Equal(t, ".png", filepath.Ext(path))
}

func TestUploadService_SaveImage_RejectsExtension(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	for _, name := range []string{"malware.exe", "doc.pdf", "noext"} {
		header := makeFileHeader(t, "image", name, []byte("x"))
		_, err := svc.SaveImage(header)
		require.ErrorIs(t, err, ErrInvalidImageType, name)
	}
}

func TestUploadService_SaveFile(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	header := makeFileHeader(t, "file", "report.pdf", []byte("%PDF"))
	path, err := svc.SaveFile(header)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestUploadService_SaveFile_RejectsExtension(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	for _, name := range []string{"photo.png", "script.sh"} {
		header := makeFileHeader(t, "file", name, []byte("x"))
		_, err := svc.SaveFile(header)
		require.ErrorIs(t, err, ErrInvalidFileType, name)
	}
}
