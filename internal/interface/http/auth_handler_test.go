package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

func authRoutes(e *testEnv) *AuthHandler {
	h := NewAuthHandler(e.auth, e.cookies, nil)
	e.router.POST("/api/sign-up/email-auth", h.SendSignUpCode)
	e.router.POST("/api/sign-up", h.SignUp)
	e.router.POST("/api/sign-in", h.SignIn)
	e.router.POST("/api/sign-out", h.SignOut)
	return h
}

func TestSignUpWithEmailAuthCode(t *testing.T) {
	e := newTestEnv(t)
	authRoutes(e)

	w := e.do(t, http.MethodPost, "/api/sign-up/email-auth", gin.H{"email": "new@keeper.or.kr"})
	require.Equal(t, http.StatusOK, w.Code)
	code, found, _ := e.codes.Get(context.Background(), "new@keeper.or.kr")
	require.True(t, found)

	body := gin.H{
		"loginId":   "newbie",
		"email":     "new@keeper.or.kr",
		"password":  "keeper2026",
		"realName":  "Newbie",
		"nickname":  "nb",
		"authCode":  code,
		"birthday":  "2003-05-01",
		"studentId": "202012345",
	}
	w = e.do(t, http.MethodPost, "/api/sign-up", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, gjson.Get(w.Body.String(), "data.id").Int() > 0)

	w = e.do(t, http.MethodPost, "/api/sign-up", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MEMBER_LOGIN_ID_DUPLICATE", gjson.Get(w.Body.String(), "error.code").String())
}

func TestSignUpRejectsInvalidFields(t *testing.T) {
	e := newTestEnv(t)
	authRoutes(e)

	w := e.do(t, http.MethodPost, "/api/sign-up", gin.H{
		"loginId":  "No!",
		"email":    "not-an-email",
		"password": "short",
		"realName": "Newbie",
		"nickname": "nb",
		"authCode": "123456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	res := gjson.Parse(w.Body.String())
	assert.Equal(t, "invalid payload", res.Get("message").String())
	assert.True(t, res.Get("error.loginId").Exists())
	assert.True(t, res.Get("error.email").Exists())
	assert.True(t, res.Get("error.password").Exists())
}

func TestSignInSetsCookiesAndSignOutForgetsRefresh(t *testing.T) {
	e := newTestEnv(t)
	authRoutes(e)
	e.member("keeper")

	w := e.do(t, http.MethodPost, "/api/sign-in", gin.H{"loginId": "keeper", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := w.Result()
	var refresh string
	names := map[string]bool{}
	for _, ck := range res.Cookies() {
		names[ck.Name] = true
		assert.True(t, ck.HttpOnly)
		if ck.Name == helpers.RefreshTokenCookie {
			refresh = ck.Value
		}
	}
	assert.True(t, names[helpers.AccessTokenCookie])
	require.NotEmpty(t, refresh)
	assert.Equal(t, 1, e.tokens.Len())

	req := httpRequest(http.MethodPost, "/api/sign-out")
	req.AddCookie(&http.Cookie{Name: helpers.RefreshTokenCookie, Value: refresh})
	w = e.send(req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, e.tokens.Len())
}

func TestSignInWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	authRoutes(e)
	e.member("keeper")

	w := e.do(t, http.MethodPost, "/api/sign-in", gin.H{"loginId": "keeper", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MEMBER_WRONG_ID_OR_PASSWORD", gjson.Get(w.Body.String(), "error.code").String())
	assert.Empty(t, w.Result().Cookies())
}

func jarTokens(jar http.CookieJar, u *url.URL) map[string]string {
	out := map[string]string{}
	for _, ck := range jar.Cookies(u) {
		out[ck.Name] = ck.Value
	}
	return out
}

func TestCookieJarSessionRenewsAfterAccessExpiry(t *testing.T) {
	e := newTestEnv(t)
	jwt := helpers.NewJWTManager("access", "refresh", time.Second, time.Hour)
	e.auth = application.NewAuthService(e.store.Members(), fakes.Tx{}, e.tokens, nil, jwt, nil)
	e.cookies = helpers.NewCookie("", false)
	e.router.Use(middleware.TokenRenewal(e.auth, e.cookies, nil), middleware.Authenticate(e.auth, e.cookies))
	authRoutes(e)
	e.router.GET("/api/members/me", middleware.RequireMember(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"memberId": middleware.MemberID(c)})
	})
	m := e.member("keeper")

	srv := httptest.NewServer(e.router)
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	res, err := client.Post(srv.URL+"/api/sign-in", "application/json", strings.NewReader(`{"loginId":"keeper","password":"password1"}`))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	before := jarTokens(jar, u)
	require.NotEmpty(t, before[helpers.AccessTokenCookie])
	require.NotEmpty(t, before[helpers.RefreshTokenCookie])

	time.Sleep(2100 * time.Millisecond)
	stale := jarTokens(jar, u)
	assert.Equal(t, before[helpers.AccessTokenCookie], stale[helpers.AccessTokenCookie], "expired access cookie must still be sent")

	res, err = client.Get(srv.URL + "/api/members/me")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Equal(t, m.ID, gjson.GetBytes(body, "memberId").Int())

	after := jarTokens(jar, u)
	assert.NotEqual(t, before[helpers.AccessTokenCookie], after[helpers.AccessTokenCookie])
	assert.NotEqual(t, before[helpers.RefreshTokenCookie], after[helpers.RefreshTokenCookie])
	_, ok := e.auth.Authenticate(after[helpers.AccessTokenCookie])
	assert.True(t, ok)
}
