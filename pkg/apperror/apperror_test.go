package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorMatchesByCode(t *testing.T) {
	err := fmt.Errorf("present points: %w", New(int64(7), "memberId", PointNotEnough))

	assert.True(t, errors.Is(err, Of(PointNotEnough)))
	assert.False(t, errors.Is(err, Of(PointSelfPresent)))
	assert.True(t, HasCode(err, PointNotEnough))

	be, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "memberId", be.Field)
	assert.Equal(t, int64(7), be.Value)
	assert.Equal(t, http.StatusBadRequest, be.Code.Status)
}

func TestBusinessErrorMessage(t *testing.T) {
	assert.Equal(t, "COMMENT_NOT_WRITER: only the writer can modify this comment", Of(CommentNotWriter).Error())
	assert.Contains(t, New(3, "studyId", StudyCannotAccessible).Error(), "studyId=3")
}

func TestAsRejectsPlainErrors(t *testing.T) {
	_, ok := As(errors.New("boom"))
	assert.False(t, ok)
	assert.False(t, HasCode(nil, PostNotFound))
}
