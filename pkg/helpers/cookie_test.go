package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookiePair(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("keeper.or.kr", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	rexp := time.Now().Add(24 * time.Hour)
	m.SetPair(c, "a", "r", rexp)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.True(t, ck.HttpOnly)
		assert.True(t, ck.Secure)
		assert.Equal(t, "keeper.or.kr", ck.Domain)
		assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
		assert.Greater(t, ck.MaxAge, int((23 * time.Hour).Seconds()))
		assert.WithinDuration(t, rexp, ck.Expires, time.Second)
	}
	assert.Equal(t, AccessTokenCookie, cookies[0].Name)
	assert.Equal(t, "r", cookies[1].Value)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	m.Clear(c)
	for _, ck := range w.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.Less(t, ck.MaxAge, 0)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "only-refresh"})
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	access, refresh := m.Read(c)
	assert.Empty(t, access)
	assert.Equal(t, "only-refresh", refresh)
}
