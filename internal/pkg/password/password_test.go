//go:build unit

package password_test

import (
	"testing"

	"coworking-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, password.Verify(hash, "correct-horse"))
	assert.False(t, password.Verify(hash, "wrong-horse"))
	assert.False(t, password.Verify("not-a-bcrypt-hash", "correct-horse"))
}

func TestHashRejectsShortPasswords(t *testing.T) {
	_, err := password.Hash("short")
	assert.ErrorIs(t, err, password.ErrPasswordTooShort)

	_, err = password.Hash("1234567")
	assert.ErrorIs(t, err, password.ErrPasswordTooShort)
}
