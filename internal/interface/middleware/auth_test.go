package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

type authEnv struct {
	store   *fakes.Store
	tokens  *fakes.Tokens
	auth    *application.AuthService
	expired *application.AuthService
	cookies *helpers.Manager
	member  *entity.Member
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := fakes.NewStore()
	tokens := fakes.NewTokens()
	members := store.Members()
	m := members.Seed(&entity.Member{LoginID: "keeper", Jobs: []entity.JobType{entity.JobMember}})
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	stale := helpers.NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	return &authEnv{
		store:   store,
		tokens:  tokens,
		auth:    application.NewAuthService(members, nil, tokens, nil, jwt, nil),
		expired: application.NewAuthService(members, nil, tokens, nil, stale, nil),
		cookies: helpers.NewCookie("localhost", false),
		member:  m,
	}
}

func (e *authEnv) router(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(TokenRenewal(e.auth, e.cookies, nil), Authenticate(e.auth, e.cookies))
	handlers := append(extra, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"memberId": MemberID(c)})
	})
	r.GET("/me", handlers...)
	return r
}

func withCookies(req *http.Request, access, refresh string) *http.Request {
	if access != "" {
		req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: access})
	}
	if refresh != "" {
		req.AddCookie(&http.Cookie{Name: helpers.RefreshTokenCookie, Value: refresh})
	}
	return req
}

func cookieValue(res *http.Response, name string) string {
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

func TestTokenRenewalRotatesExpiredAccess(t *testing.T) {
	e := newAuthEnv(t)
	stale, err := e.expired.IssueTokens(context.Background(), e.member)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	e.router(RequireMember()).ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/me", nil), stale.AccessToken, stale.RefreshToken))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, e.member.ID, gjson.Get(w.Body.String(), "memberId").Int())

	res := w.Result()
	newAccess := cookieValue(res, helpers.AccessTokenCookie)
	newRefresh := cookieValue(res, helpers.RefreshTokenCookie)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)
	assert.NotEqual(t, stale.RefreshToken, newRefresh)

	ttl, ok := e.tokens.TTL(stale.RefreshToken)
	require.True(t, ok)
	assert.Equal(t, application.RotationGrace, ttl)
	ok, _ = e.tokens.Exists(context.Background(), newRefresh)
	assert.True(t, ok)

	p, ok := e.auth.Authenticate(newAccess)
	require.True(t, ok)
	assert.Equal(t, e.member.ID, p.MemberID)
}

func TestTokenRenewalAcceptsRotatedPairDuringGrace(t *testing.T) {
	e := newAuthEnv(t)
	stale, err := e.expired.IssueTokens(context.Background(), e.member)
	require.NoError(t, err)
	r := e.router(RequireMember())

	var rotated []string
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/me", nil), stale.AccessToken, stale.RefreshToken))
		require.Equal(t, http.StatusOK, w.Code)
		rotated = append(rotated, cookieValue(w.Result(), helpers.RefreshTokenCookie))
	}
	assert.NotEqual(t, rotated[0], rotated[1])
	assert.Equal(t, 3, e.tokens.Len())
}

func TestTokenRenewalIgnoresUncachedRefresh(t *testing.T) {
	e := newAuthEnv(t)
	stale, err := e.expired.IssueTokens(context.Background(), e.member)
	require.NoError(t, err)
	require.NoError(t, e.tokens.Delete(context.Background(), stale.RefreshToken))

	w := httptest.NewRecorder()
	e.router(RequireMember()).ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/me", nil), stale.AccessToken, stale.RefreshToken))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestValidAccessIsNotRenewed(t *testing.T) {
	e := newAuthEnv(t)
	pair, err := e.auth.IssueTokens(context.Background(), e.member)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	e.router(RequireMember()).ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/me", nil), pair.AccessToken, pair.RefreshToken))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, 1, e.tokens.Len())
}

func TestRequireRoles(t *testing.T) {
	e := newAuthEnv(t)
	pair, err := e.auth.IssueTokens(context.Background(), e.member)
	require.NoError(t, err)
	r := e.router(RequireRoles(entity.JobLibrarian))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/me", nil), pair.AccessToken, ""))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCESS_DENIED", gjson.Get(w.Body.String(), "error.code").String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, gjson.Get(w.Body.String(), "success").Bool())
}
