package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("access-secret", "refresh-secret", "reset-secret")
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name   string
		sign   func(uint64) (string, error)
		decode func(string) (uint64, error)
	}{
		{"access", svc.SetAccessToken, svc.DecodeAccessToken},
		{"refresh", svc.SetRefreshToken, svc.DecodeRefreshToken},
		{"reset", svc.SetResetPasswordToken, svc.DecodeResetPasswordToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.sign(42)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			userID, err := tt.decode(token)
			require.NoError(t, err)
			require.Equal(t, uint64(42), userID)
		})
	}
}

func TestJWTService_KindsAreNotInterchangeable(t *testing.T) {
	svc := newTestService()

	refreshToken, err := svc.SetRefreshToken(7)
	require.NoError(t, err)

	_, err = svc.DecodeAccessToken(refreshToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_MissingToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.DecodeAccessToken("")
	require.ErrorIs(t, err, ErrTokenMissing)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.DecodeAccessToken("not-a-jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestService()

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{"42"},
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = svc.DecodeAccessToken(expired)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_TokenWithoutSubject(t *testing.T) {
	svc := newTestService()

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = svc.DecodeAccessToken(token)
	require.ErrorIs(t, err, ErrNoSubject)
}
