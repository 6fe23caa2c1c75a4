package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiry(t *testing.T) {
	t.Run("jwt with exp claim", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "u1",
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		got, ok := TokenExpiry(signed)
		assert.True(t, ok)
		assert.True(t, got.Equal(exp))
	})

	t.Run("jwt without exp claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, ok := TokenExpiry(signed)
		assert.False(t, ok)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := TokenExpiry("not-a-jwt")
		assert.False(t, ok)
	})
}
