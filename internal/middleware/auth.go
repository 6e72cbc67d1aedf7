package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fjaouad/notes-api/internal/auth"
	"github.com/fjaouad/notes-api/internal/constants"
	apierrors "github.com/fjaouad/notes-api/internal/errors"
	"github.com/fjaouad/notes-api/internal/models"
	"github.com/fjaouad/notes-api/internal/repository"
)

// RequireAuth resolves the bearer token in the Authorization header to a
// concrete user record and binds it to the request context. Any failure
// short-circuits with the uniform unauthorized envelope; the distinct cause
// (missing header, invalid token, unknown subject) is only logged.
func RequireAuth(jwt *auth.JWTService, userRepo repository.UserRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			log.Debug().Str("path", c.Request.URL.Path).Msg("missing bearer token")
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, constants.BearerPrefix)
		userID, err := jwt.DecodeAccessToken(token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("token rejected")
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			log.Warn().Err(err).Uint64("user_id", userID).Msg("token subject not found")
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireVerified rejects callers whose email is not verified.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists || !user.IsVerified {
			apierrors.Respond(c, apierrors.Unauthorized(apierrors.Bundle{
				En: "Please verify your email",
				Ar: "يرجى تأكيد بريدك الإلكتروني",
				Fr: "Veuillez vérifier votre e-mail",
			}))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists || !user.IsAdmin {
			apierrors.Respond(c, apierrors.Unauthorized(apierrors.Bundle{
				En: "Access not allowed",
				Ar: "الوصول غير مسموح",
				Fr: "Accès non autorisé",
			}))
			return
		}
		c.Next()
	}
}

// GetUser retrieves the authenticated user bound by RequireAuth.
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// GetUserID retrieves the authenticated user id bound by RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
