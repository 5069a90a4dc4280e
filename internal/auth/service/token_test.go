package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tests := []struct {
		name         string
		secret       string
		accessExpiry time.Duration
	}{
		{
			name:         "standard initialization",
			secret:       "test-secret-key",
			accessExpiry: 24 * time.Hour,
		},
		{
			name:         "short expiry",
			secret:       "short-secret",
			accessExpiry: 1 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := NewTokenGenerator(tt.secret, tt.accessExpiry)

			assert.NotNil(t, tg)
			assert.Equal(t, tt.secret, tg.secret)
			assert.Equal(t, tt.accessExpiry, tg.accessTokenExpiry)
		})
	}
}

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("b8a3c2267dc85f855dea9b46b452bf20", 24*time.Hour)

	t.Run("identity and role survive the round trip", func(t *testing.T) {
		token, err := tg.Generate(42, "alice", 1)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, username, role, err := tg.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, 42, userID)
		assert.Equal(t, "alice", username)
		assert.Equal(t, 1, role)
	})

	t.Run("admin role survives the round trip", func(t *testing.T) {
		token, err := tg.Generate(1, "root", 2)
		require.NoError(t, err)

		_, _, role, err := tg.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, 2, role)
	})

	t.Run("tokens differ between users", func(t *testing.T) {
		tokenA, err := tg.Generate(1, "alice", 1)
		require.NoError(t, err)
		tokenB, err := tg.Generate(2, "bob", 1)
		require.NoError(t, err)

		assert.NotEqual(t, tokenA, tokenB)
	})
}

func TestTokenGenerator_Validate(t *testing.T) {
	secret := "validation-test-secret"
	tg := NewTokenGenerator(secret, 24*time.Hour)

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewTokenGenerator(secret, -1*time.Minute)
		token, err := expired.Generate(7, "alice", 1)
		require.NoError(t, err)

		_, _, _, err = tg.Validate(token)
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		other := NewTokenGenerator("a-completely-different-secret", 24*time.Hour)
		token, err := other.Generate(7, "alice", 1)
		require.NoError(t, err)

		_, _, _, err = tg.Validate(token)
		assert.Error(t, err)
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		_, _, _, err := tg.Validate("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		_, _, _, err := tg.Validate("")
		assert.Error(t, err)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id":  float64(7),
			"username": "alice",
			"role":     float64(1),
			"exp":      time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, _, _, err = tg.Validate(tokenString)
		assert.Error(t, err)
	})

	t.Run("token without identity claims is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
			"iat": time.Now().Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, _, _, err = tg.Validate(tokenString)
		assert.Error(t, err)
	})
}
