package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	t.Run("hash verifies against its plaintext", func(t *testing.T) {
		t.Parallel()

		hashed, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hashed)

		assert.NoError(t, verifier.Compare(hashed, "correct horse battery staple"))
	})

	t.Run("wrong password fails comparison", func(t *testing.T) {
		t.Parallel()

		hashed, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		assert.Error(t, verifier.Compare(hashed, "incorrect horse"))
	})

	t.Run("same plaintext hashes differently", func(t *testing.T) {
		t.Parallel()

		first, err := hasher.Hash("password123")
		require.NoError(t, err)
		second, err := hasher.Hash("password123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("malformed stored hash fails without panic", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "anything"))
	})

	t.Run("out-of-range cost falls back to default", func(t *testing.T) {
		t.Parallel()

		h := NewBcryptHasher(99)
		assert.Equal(t, bcrypt.DefaultCost, h.cost)
	})
}
