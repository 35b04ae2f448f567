package helpers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedCodesHaveFixedWidth(t *testing.T) {
	six := regexp.MustCompile(`^\d{6}$`)
	four := regexp.MustCompile(`^\d{4}$`)
	for i := 0; i < 50; i++ {
		code, err := GenAuthCode()
		require.NoError(t, err)
		assert.Regexp(t, six, code)

		att, err := GenAttendanceCode()
		require.NoError(t, err)
		assert.Regexp(t, four, att)
	}
	assert.Equal(t, "EMAIL_AUTH_a@b.c", KeyEmailAuth("a@b.c"))
}

func TestGenDistinctDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, err := GenDistinctDigits(4)
		require.NoError(t, err)
		require.Len(t, s, 4)
		seen := map[rune]bool{}
		for _, r := range s {
			assert.True(t, r >= '0' && r <= '9')
			assert.False(t, seen[r], s)
			seen[r] = true
		}
	}
}
