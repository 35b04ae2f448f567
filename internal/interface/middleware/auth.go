package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/response"
)

// CtxPrincipalKey holds the application.Principal of an authenticated request.
const CtxPrincipalKey = "principal"

// TokenRenewal rotates the token pair when the access cookie has expired but the refresh
// cookie is valid and still cached. The new cookies are written before the handler runs
// and the request continues as the refresh token's member.
func TokenRenewal(auth *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, refresh := cookies.Read(c)
		if refresh == "" {
			c.Next()
			return
		}
		r, err := auth.Renew(c.Request.Context(), access, refresh)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("token renewal failed")
			}
			c.Next()
			return
		}
		if r != nil {
			t := r.Tokens
			cookies.SetPair(c, t.AccessToken, t.RefreshToken, t.RefreshTokenExpiry)
			c.Set(CtxPrincipalKey, r.Principal)
		}
		c.Next()
	}
}

// Authenticate puts the principal of a valid access cookie into the context.
// Requests without one pass through anonymously.
func Authenticate(auth *application.AuthService, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); !ok {
			access, _ := cookies.Read(c)
			if p, ok := auth.Authenticate(access); ok {
				c.Set(CtxPrincipalKey, p)
			}
		}
		c.Next()
	}
}

// RequireMember rejects anonymous requests with 401.
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); !ok {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		c.Next()
	}
}

// RequireRoles allows members holding any of roles; others get 403.
func RequireRoles(roles ...entity.JobType) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		if !p.HasRole(roles...) {
			code := apperror.AccessDenied
			response.Error[any](c, code.Status, code.Message, gin.H{"code": code.Name})
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return application.Principal{}, false
	}
	p, ok := v.(application.Principal)
	return p, ok
}

// MemberID returns the authenticated member id, or 0 for anonymous requests.
func MemberID(c *gin.Context) int64 {
	p, _ := PrincipalFrom(c)
	return p.MemberID
}
