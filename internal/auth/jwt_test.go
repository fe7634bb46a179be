package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertbloom-landscaping/backoffice-api/internal/auth"
	"github.com/desertbloom-landscaping/backoffice-api/internal/config"
)

const testSecret = "test-secret-key"
const testIssuer = "desertbloom-backoffice"

func newValidator() *auth.JWTValidator {
	return auth.NewJWTValidator(&config.AuthConfig{
		JWTSecret: testSecret,
		JWTIssuer: testIssuer,
	})
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "admin-1",
		"iss":   testIssuer,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"name":  "Test Admin",
		"email": "admin@example.com",
		"roles": []string{"admin"},
	}
}

func TestValidateToken(t *testing.T) {
	v := newValidator()

	t.Run("valid token", func(t *testing.T) {
		userCtx, err := v.ValidateToken(signToken(t, testSecret, baseClaims()))
		require.NoError(t, err)

		assert.Equal(t, "admin-1", userCtx.Subject)
		assert.Equal(t, "Test Admin", userCtx.DisplayName)
		assert.Equal(t, "admin@example.com", userCtx.Email)
		assert.True(t, userCtx.IsAdmin())
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.ValidateToken(signToken(t, "other-secret", baseClaims()))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := baseClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()

		_, err := v.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := baseClaims()
		delete(claims, "exp")

		_, err := v.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := baseClaims()
		claims["iss"] = "someone-else"

		_, err := v.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := baseClaims()
		delete(claims, "sub")

		_, err := v.ValidateToken(signToken(t, testSecret, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("viewer is not admin", func(t *testing.T) {
		claims := baseClaims()
		claims["roles"] = []string{"viewer"}

		userCtx, err := v.ValidateToken(signToken(t, testSecret, claims))
		require.NoError(t, err)
		assert.False(t, userCtx.IsAdmin())
		assert.True(t, userCtx.HasRole(auth.RoleViewer))
	})
}
