package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/auth"
	"github.com/fjaouad/notes-api/internal/database"
	"github.com/fjaouad/notes-api/internal/middleware"
	"github.com/fjaouad/notes-api/internal/models"
	"github.com/fjaouad/notes-api/internal/repository"
	"github.com/fjaouad/notes-api/internal/services"
)

// fakeMailer records sent mail instead of dialing SMTP.
type fakeMailer struct {
	verificationSent int
	resetSent        int
	lastToken        string
	fail             bool
}

func (m *fakeMailer) SendVerificationMail(to, name, host, token string) error {
	if m.fail {
		return services.ErrFailedToSendMail
	}
	m.verificationSent++
	m.lastToken = token
	return nil
}

func (m *fakeMailer) SendResetPasswordMail(to, name, host, token string) error {
	if m.fail {
		return services.ErrFailedToSendMail
	}
	m.resetSent++
	m.lastToken = token
	return nil
}

type testEnv struct {
	db     *gorm.DB
	jwt    *auth.JWTService
	mailer *fakeMailer
	router *gin.Engine

	authService     *services.AuthService
	categoryService *services.CategoryService
	noteService     *services.NoteService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	jwtService := auth.NewJWTService("test-access", "test-refresh", "test-reset")
	m := &fakeMailer{}
	log := zerolog.Nop()

	uploadService := services.NewUploadService(t.TempDir())
	authService := services.NewAuthService(userRepo, tokenRepo, jwtService, m, log)
	categoryService := services.NewCategoryService(categoryRepo)
	noteService := services.NewNoteService(noteRepo, categoryRepo, tagRepo, uploadService, log)

	authHandler := NewAuthHandler(authService)
	categoryHandler := NewCategoryHandler(categoryService)
	noteHandler := NewNoteHandler(noteService)

	requireAuth := middleware.RequireAuth(jwtService, userRepo, log)
	requireVerified := middleware.RequireVerified()
	requireAdmin := middleware.RequireAdmin()

	r := gin.New()
	api := r.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/verify", authHandler.VerifyEmail)
			authRoutes.POST("/refresh-token", requireAuth, authHandler.RefreshToken)
			authRoutes.POST("/forgot-password", requireAuth, authHandler.ForgotPassword)
			authRoutes.DELETE("/logout", requireAuth, authHandler.Logout)
			authRoutes.PATCH("/reset-password/:token", requireAuth, authHandler.ResetPassword)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", authHandler.Me)
			users.GET("/:id", requireAdmin, authHandler.GetUserByID)
		}

		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		notes := api.Group("/notes")
		notes.Use(requireAuth, requireVerified)
		{
			notes.POST("", noteHandler.CreateNote)
			notes.GET("", noteHandler.ListNotes)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PATCH("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}
	}

	return &testEnv{
		db:              db,
		jwt:             jwtService,
		mailer:          m,
		router:          r,
		authService:     authService,
		categoryService: categoryService,
		noteService:     noteService,
	}
}

// createTestUser inserts a verified user directly.
func (env *testEnv) createTestUser(t *testing.T, name, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsVerified:   true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createTestCategory(t *testing.T, name string, creatorID uint64) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:      name,
		Status:    true,
		CreatorID: creatorID,
	}
	require.NoError(t, env.db.Create(category).Error)
	return category
}

func (env *testEnv) createTestNote(t *testing.T, title string, categoryID, creatorID uint64) *models.Note {
	t.Helper()

	note := &models.Note{
		Title:      title,
		Content:    "test content",
		CategoryID: categoryID,
		CreatorID:  creatorID,
	}
	require.NoError(t, env.db.Create(note).Error)
	return note
}

// accessToken issues a bearer token for the user.
func (env *testEnv) accessToken(t *testing.T, userID uint64) string {
	t.Helper()

	token, err := env.jwt.SetAccessToken(userID)
	require.NoError(t, err)
	return token
}

// doJSON performs a JSON request against the test router.
func (env *testEnv) doJSON(t *testing.T, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeInto(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}
