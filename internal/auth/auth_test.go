package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	t.Run("hash and check round trip", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.NotEqual(t, "correct horse battery staple", hash)
		require.True(t, CheckPassword("correct horse battery staple", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("password123")
		require.NoError(t, err)
		require.False(t, CheckPassword("password124", hash))
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
		require.NoError(t, ValidatePassword("longenough"))
	})
}

func TestTokenManager(t *testing.T) {
	t.Parallel()

	mgr := NewTokenManager("test-secret-key-for-tests-only", time.Hour)

	t.Run("generate and validate round trip", func(t *testing.T) {
		t.Parallel()
		token, err := mgr.Generate(42, "alice")
		require.NoError(t, err)

		claims, err := mgr.Validate(token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username)
		require.NotEmpty(t, claims.ID)

		userID, err := claims.UserID()
		require.NoError(t, err)
		require.Equal(t, int64(42), userID)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		t.Parallel()
		_, err := mgr.Validate("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		t.Parallel()
		other := NewTokenManager("a-completely-different-secret", time.Hour)
		token, err := other.Generate(42, "alice")
		require.NoError(t, err)

		_, err = mgr.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		t.Parallel()
		expired := NewTokenManager("test-secret-key-for-tests-only", -time.Minute)
		token, err := expired.Generate(42, "alice")
		require.NoError(t, err)

		_, err = mgr.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
