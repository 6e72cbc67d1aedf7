package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fjaouad/notes-api/internal/dto"
	apierrors "github.com/fjaouad/notes-api/internal/errors"
	"github.com/fjaouad/notes-api/internal/middleware"
	"github.com/fjaouad/notes-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and mails the verification link.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name" binding:"required,max=100"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	user, pair, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Host:     c.Request.Host,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         dto.ToUserDTO(*user),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Login authenticates a user and issues a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	pair, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// RefreshToken rotates a refresh token into a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout invalidates the caller's refresh tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// VerifyEmail confirms the account matching the mailed token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	user, err := h.authService.VerifyEmail(token)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// ForgotPassword mails the caller a password-reset link.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	if err := h.authService.ForgotPassword(userID, c.Request.Host); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reset email sent",
	})
}

// ResetPassword replaces the password for the subject of the reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	type ResetRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidBody)
		return
	}

	if err := h.authService.ResetPassword(c.Param("token"), req.Password); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated",
	})
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUserByID returns any user's profile. Admin only.
func (h *AuthHandler) GetUserByID(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Respond(c, apierrors.Conflict(apierrors.Bundle{
			En: "Email has already been registered",
			Ar: "البريد الإلكتروني مسجل مسبقاً",
			Fr: "Cet e-mail est déjà enregistré",
		}))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Respond(c, apierrors.UnprocessableEntity(apierrors.Bundle{
			En: "Password is too short",
			Ar: "كلمة المرور قصيرة جداً",
			Fr: "Le mot de passe est trop court",
		}))
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		apierrors.Respond(c, apierrors.ErrUnauthorized)
	case errors.Is(err, services.ErrFailedToSendMail):
		apierrors.Respond(c, apierrors.ErrUnexpected)
	default:
		apierrors.Respond(c, apierrors.ErrUnexpected)
	}
}
