package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestSuccessAndErrorWriteEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")
	Success(c, http.StatusCreated, map[string]int64{"id": 3}, "created", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.True(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, int64(3), gjson.Get(body, "data.id").Int())
	assert.Equal(t, "req-1", gjson.Get(body, "request_id").String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error[any](c, 0, "invalid payload", map[string]string{"title": "is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	assert.Equal(t, "is required", gjson.Get(w.Body.String(), "error.title").String())
}

func TestNewPage(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 1, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(5), p.TotalElements)

	empty := NewPage[string](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)

	mapped := MapPage([]int{1, 2}, 0, 10, 2, func(i int) int { return i * 10 })
	assert.Equal(t, []int{10, 20}, mapped.Content)
}
