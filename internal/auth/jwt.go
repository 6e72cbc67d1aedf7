package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes per kind.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 365 * 24 * time.Hour
	ResetTokenTTL   = 10 * time.Minute
)

const issuer = "notes-api"

// Decode failure causes. The guard reports a uniform unauthorized to the
// client; these let the internals log the distinct cause.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid or expired")
	ErrNoSubject    = errors.New("token carries no subject")
)

// JWTService issues and decodes the three bearer-token kinds: access,
// refresh and password-reset. Each kind is signed with its own secret; a
// token of one kind never validates as another.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	resetSecret   []byte
}

func NewJWTService(accessSecret, refreshSecret, resetSecret string) *JWTService {
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		resetSecret:   []byte(resetSecret),
	}
}

// SetAccessToken issues a short-lived access token for the user.
func (j *JWTService) SetAccessToken(userID uint64) (string, error) {
	return j.sign(userID, j.accessSecret, AccessTokenTTL)
}

// SetRefreshToken issues a long-lived refresh token for the user.
func (j *JWTService) SetRefreshToken(userID uint64) (string, error) {
	return j.sign(userID, j.refreshSecret, RefreshTokenTTL)
}

// SetResetPasswordToken issues a short-lived password-reset token.
func (j *JWTService) SetResetPasswordToken(userID uint64) (string, error) {
	return j.sign(userID, j.resetSecret, ResetTokenTTL)
}

// DecodeAccessToken extracts the subject user id from an access token.
func (j *JWTService) DecodeAccessToken(token string) (uint64, error) {
	return j.decode(token, j.accessSecret)
}

// DecodeRefreshToken extracts the subject user id from a refresh token.
func (j *JWTService) DecodeRefreshToken(token string) (uint64, error) {
	return j.decode(token, j.refreshSecret)
}

// DecodeResetPasswordToken extracts the subject user id from a reset token.
func (j *JWTService) DecodeResetPasswordToken(token string) (uint64, error) {
	return j.decode(token, j.resetSecret)
}

func (j *JWTService) sign(userID uint64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{strconv.FormatUint(userID, 10)},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTService) decode(tokenStr string, secret []byte) (uint64, error) {
	if tokenStr == "" {
		return 0, ErrTokenMissing
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrTokenInvalid
	}

	if len(claims.Audience) == 0 {
		return 0, ErrNoSubject
	}
	userID, err := strconv.ParseUint(claims.Audience[0], 10, 64)
	if err != nil {
		return 0, ErrNoSubject
	}
	return userID, nil
}
