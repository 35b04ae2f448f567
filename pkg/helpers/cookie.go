package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Manager writes the HttpOnly token cookie pair.
type Manager struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure, SameSite: http.SameSiteLaxMode}
}

// SetPair writes both token cookies. Both cookies live until the refresh token
// expires: an expired access JWT must still reach the server so the pair can be
// renewed. The JWT's own exp decides whether the access token is accepted.
func (m *Manager) SetPair(c *gin.Context, access, refresh string, rexp time.Time) {
	m.write(c, AccessTokenCookie, access, rexp)
	m.write(c, RefreshTokenCookie, refresh, rexp)
}

// Clear expires both token cookies.
func (m *Manager) Clear(c *gin.Context) {
	m.write(c, AccessTokenCookie, "", time.Unix(0, 0))
	m.write(c, RefreshTokenCookie, "", time.Unix(0, 0))
}

// Read returns the access and refresh cookies of the request; missing ones are empty.
func (m *Manager) Read(c *gin.Context) (access, refresh string) {
	access, _ = c.Cookie(AccessTokenCookie)
	refresh, _ = c.Cookie(RefreshTokenCookie)
	return access, refresh
}

func (m *Manager) write(c *gin.Context, name, value string, exp time.Time) {
	maxAge := int(time.Until(exp).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.Domain,
		Expires:  exp,
		MaxAge:   maxAge,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: m.SameSite,
	})
}
