package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fjaouad/notes-api/internal/dto"
	"github.com/fjaouad/notes-api/internal/models"
)

// doMultipart posts a multipart note-creation form with an optional upload.
func (env *testEnv) doMultipart(t *testing.T, token string, fields map[string]string, tags []string, fileField, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	for _, tag := range tags {
		require.NoError(t, mw.WriteField("tags", tag))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestNoteHandler_Create(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)

	w := env.doJSON(t, http.MethodPost, "/api/v1/notes", env.accessToken(t, user.ID), map[string]interface{}{
		"title":    "First note",
		"content":  "hello world",
		"category": "Work",
		"tags":     []string{"golang", "backend"},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "First note", body["title"])
	require.Equal(t, "Work", body["category"])
	require.ElementsMatch(t, []interface{}{"golang", "backend"}, body["tags"])

	// Creator identity is stamped and denormalized.
	var note models.Note
	require.NoError(t, env.db.First(&note).Error)
	require.Equal(t, user.ID, note.CreatorID)
	require.Equal(t, user.Name, note.CreatorName)
	require.Equal(t, user.Email, note.CreatorEmail)
}

func TestNoteHandler_Create_ForeignCategory(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createTestUser(t, "Alice", "alice@example.com")
	bob := env.createTestUser(t, "Bob", "bob@example.com")
	env.createTestCategory(t, "Alice Work", alice.ID)

	w := env.doJSON(t, http.MethodPost, "/api/v1/notes", env.accessToken(t, bob.ID), map[string]interface{}{
		"title":    "Sneaky",
		"content":  "hello",
		"category": "Alice Work",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteHandler_Create_TitleTooLong(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)

	w := env.doJSON(t, http.MethodPost, "/api/v1/notes", env.accessToken(t, user.ID), map[string]interface{}{
		"title":    "this title is far too long",
		"content":  "hello",
		"category": "Work",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestNoteHandler_Create_TagDeduplication(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)
	token := env.accessToken(t, user.ID)

	first := env.doJSON(t, http.MethodPost, "/api/v1/notes", token, map[string]interface{}{
		"title":    "note one",
		"content":  "hello",
		"category": "Work",
		"tags":     []string{"shared"},
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.doJSON(t, http.MethodPost, "/api/v1/notes", token, map[string]interface{}{
		"title":    "note two",
		"content":  "hello",
		"category": "Work",
		"tags":     []string{"shared", "unique"},
	})
	require.Equal(t, http.StatusCreated, second.Code)

	// Reusing a tag name never creates a second tag document.
	var tagCount int64
	env.db.Model(&models.Tag{}).Where("name = ?", "shared").Count(&tagCount)
	require.Equal(t, int64(1), tagCount)

	var totalTags int64
	env.db.Model(&models.Tag{}).Count(&totalTags)
	require.Equal(t, int64(2), totalTags)

	// Usage attribution records the creator once.
	var tag models.Tag
	require.NoError(t, env.db.Where("name = ?", "shared").First(&tag).Error)
	var attribution int64
	env.db.Model(&models.TagUser{}).Where("tag_id = ?", tag.ID).Count(&attribution)
	require.Equal(t, int64(1), attribution)
}

func TestNoteHandler_Create_WithImage(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)

	w := env.doMultipart(t, env.accessToken(t, user.ID), map[string]string{
		"title":    "with image",
		"content":  "hello",
		"category": "Work",
	}, nil, "image", "photo.png", []byte("png bytes"))

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	images := body["images"].([]interface{})
	require.Len(t, images, 1)

	// The blob exists on disk at the stored path.
	_, err := os.Stat(images[0].(string))
	require.NoError(t, err)
}

func TestNoteHandler_Create_RejectsBadExtension(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)

	w := env.doMultipart(t, env.accessToken(t, user.ID), map[string]string{
		"title":    "with exe",
		"content":  "hello",
		"category": "Work",
	}, nil, "image", "malware.exe", []byte("mz"))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The rejected upload never produced a note.
	var count int64
	env.db.Model(&models.Note{}).Count(&count)
	require.Zero(t, count)
}

func TestNoteHandler_Get_ScopedToCreator(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createTestUser(t, "Alice", "alice@example.com")
	bob := env.createTestUser(t, "Bob", "bob@example.com")
	category := env.createTestCategory(t, "Work", alice.ID)
	note := env.createTestNote(t, "private", category.ID, alice.ID)

	own := env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/notes/%d", note.ID), env.accessToken(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, own.Code)

	foreign := env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/notes/%d", note.ID), env.accessToken(t, bob.ID), nil)
	require.Equal(t, http.StatusNotFound, foreign.Code)
}

func TestNoteHandler_Get_RoundTripCategory(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	category := env.createTestCategory(t, "Round", user.ID)
	note := env.createTestNote(t, "note", category.ID, user.ID)

	w := env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/notes/%d", note.ID), env.accessToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Round", body["category"])
}

func TestNoteHandler_List_Pagination(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	category := env.createTestCategory(t, "Work", user.ID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		note := env.createTestNote(t, fmt.Sprintf("note %02d", i), category.ID, user.ID)
		// Spread updated_at so the sort order is deterministic.
		env.db.Model(note).UpdateColumn("updated_at", base.Add(time.Duration(i)*time.Minute))
	}

	w := env.doJSON(t, http.MethodGet, "/api/v1/notes?limit=10&page=2", env.accessToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.NoteListResponse
	require.NoError(t, decodeInto(w.Body.Bytes(), &result))
	require.Equal(t, int64(25), result.TotalRecords)
	require.Equal(t, 3, result.TotalPages)
	require.Equal(t, 2, result.Page)
	require.Equal(t, 10, result.Limit)
	require.Len(t, result.Note, 10)

	// Default sort is newest-first, page 2 holds notes 14..05.
	require.Equal(t, "note 14", result.Note[0].Title)
	require.Equal(t, "note 05", result.Note[9].Title)
}

func TestNoteHandler_List_SortAscending(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	category := env.createTestCategory(t, "Work", user.ID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		note := env.createTestNote(t, fmt.Sprintf("note %d", i), category.ID, user.ID)
		env.db.Model(note).UpdateColumn("updated_at", base.Add(time.Duration(i)*time.Minute))
	}

	w := env.doJSON(t, http.MethodGet, "/api/v1/notes?Sort=ASC", env.accessToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.NoteListResponse
	require.NoError(t, decodeInto(w.Body.Bytes(), &result))
	require.Equal(t, "note 0", result.Note[0].Title)
	require.Equal(t, "note 2", result.Note[2].Title)
}

func TestNoteHandler_List_FilterByTags(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)
	token := env.accessToken(t, user.ID)

	tagged := env.doJSON(t, http.MethodPost, "/api/v1/notes", token, map[string]interface{}{
		"title":    "tagged",
		"content":  "hello",
		"category": "Work",
		"tags":     []string{"findme"},
	})
	require.Equal(t, http.StatusCreated, tagged.Code)

	plain := env.doJSON(t, http.MethodPost, "/api/v1/notes", token, map[string]interface{}{
		"title":    "plain",
		"content":  "hello",
		"category": "Work",
	})
	require.Equal(t, http.StatusCreated, plain.Code)

	w := env.doJSON(t, http.MethodGet, "/api/v1/notes", token, map[string]interface{}{
		"tags": []string{"findme"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.NoteListResponse
	require.NoError(t, decodeInto(w.Body.Bytes(), &result))
	require.Equal(t, int64(1), result.TotalRecords)
	require.Equal(t, "tagged", result.Note[0].Title)
}

func TestNoteHandler_List_FilterByCategory(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	work := env.createTestCategory(t, "Work", user.ID)
	home := env.createTestCategory(t, "Home", user.ID)

	env.createTestNote(t, "work note", work.ID, user.ID)
	env.createTestNote(t, "home note", home.ID, user.ID)

	url := fmt.Sprintf("/api/v1/notes?category=%d", work.ID)
	w := env.doJSON(t, http.MethodGet, url, env.accessToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.NoteListResponse
	require.NoError(t, decodeInto(w.Body.Bytes(), &result))
	require.Equal(t, int64(1), result.TotalRecords)
	require.Equal(t, "work note", result.Note[0].Title)
}

func TestNoteHandler_List_ForeignCategoryFilter(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createTestUser(t, "Alice", "alice@example.com")
	bob := env.createTestUser(t, "Bob", "bob@example.com")
	category := env.createTestCategory(t, "Alice Work", alice.ID)

	url := fmt.Sprintf("/api/v1/notes?category=%d", category.ID)
	w := env.doJSON(t, http.MethodGet, url, env.accessToken(t, bob.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteHandler_Update(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createTestUser(t, "Owner", "owner@example.com")
	env.createTestCategory(t, "Work", user.ID)
	env.createTestCategory(t, "Home", user.ID)
	token := env.accessToken(t, user.ID)

	created := env.doJSON(t, http.MethodPost, "/api/v1/notes", token, map[string]interface{}{
		"title":    "before",
		"content":  "hello",
		"category": "Work",
		"tags":     []string{"old"},
	})
	require.Equal(t, http.StatusCreated, created.Code)
	noteID := uint64(decodeBody(t, created)["noteID"].(float64))

	w := env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/notes/%d", noteID), token, map[string]interface{}{
		"title":    "after",
		"content":  "updated",
		"category": "Home",
		"tags":     []string{"new"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "after", body["title"])
	require.Equal(t, "Home", body["category"])
	require.ElementsMatch(t, []interface{}{"new"}, body["tags"])
}

func TestNoteHandler_Update_ForeignNoteInvisible(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createTestUser(t, "Alice", "alice@example.com")
	bob := env.createTestUser(t, "Bob", "bob@example.com")
	category := env.createTestCategory(t, "Work", alice.ID)
	note := env.createTestNote(t, "private", category.ID, alice.ID)

	w := env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/v1/notes/%d", note.ID), env.accessToken(t, bob.ID), map[string]interface{}{
		"title":    "hijack",
		"content":  "x",
		"category": "Work",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteHandler_Delete_ScopedToCreator(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createTestUser(t, "Alice", "alice@example.com")
	bob := env.createTestUser(t, "Bob", "bob@example.com")
	category := env.createTestCategory(t, "Work", alice.ID)
	note := env.createTestNote(t, "private", category.ID, alice.ID)

	foreign := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/v1/notes/%d", note.ID), env.accessToken(t, bob.ID), nil)
	require.Equal(t, http.StatusNotFound, foreign.Code)

	own := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/v1/notes/%d", note.ID), env.accessToken(t, alice.ID), nil)
	require.Equal(t, http.StatusOK, own.Code)

	var count int64
	env.db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count)
	require.Zero(t, count)
}
