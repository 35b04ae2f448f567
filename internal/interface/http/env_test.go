package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/validation"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testEnv struct {
	store   *fakes.Store
	tokens  *fakes.Tokens
	codes   *fakes.Codes
	cfg     *config.Config
	cookies *helpers.Manager
	files   *application.FileService
	auth    *application.AuthService
	router  *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()
	helpers.PasswordCost = bcrypt.MinCost

	store := fakes.NewStore()
	e := &testEnv{
		store:   store,
		tokens:  fakes.NewTokens(),
		codes:   fakes.NewCodes(),
		cookies: helpers.NewCookie("localhost", false),
		cfg: &config.Config{
			EmailAuthTTL:    5 * time.Minute,
			ClubName:        "KEEPER",
			HomepageURL:     "https://keeper.or.kr",
			VirtualMemberID: 1,
		},
	}
	e.files = application.NewFileService(store.Files(), fakes.NewBlobs(), "/img/default.png", nil)
	codes := application.NewAuthCodeSender(e.codes, nil, e.cfg, nil)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	e.auth = application.NewAuthService(store.Members(), fakes.Tx{}, e.tokens, codes, jwt, nil)
	e.router = gin.New()
	return e
}

// as authenticates every request of the group as the given member.
func as(m *entity.Member) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxPrincipalKey, application.Principal{MemberID: m.ID, Roles: m.Jobs})
		c.Next()
	}
}

func (e *testEnv) member(loginID string, jobs ...entity.JobType) *entity.Member {
	hash, _ := helpers.HashPassword("password1")
	return e.store.Members().Seed(&entity.Member{
		LoginID:      loginID,
		EmailAddress: loginID + "@keeper.or.kr",
		Password:     hash,
		RealName:     loginID,
		NickName:     loginID,
		Jobs:         jobs,
	})
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) send(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func httpRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
