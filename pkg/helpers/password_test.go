package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = bcrypt.DefaultCost })

	hash, err := HashPassword("keeper1234")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "keeper1234"))
	assert.False(t, CompareHashAndPassword(hash, "keeper12345"))

	assert.False(t, CompareHashAndPassword("!", ""))
	assert.False(t, CompareHashAndPassword("", ""))

	_, err = HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
