package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies, Logger: logger}
}

type emailAuthRequest struct {
	Email string `json:"email" binding:"required,email,max=250"`
}

type signUpRequest struct {
	LoginID   string  `json:"loginId" binding:"required,loginid"`
	Email     string  `json:"email" binding:"required,email,max=250"`
	Password  string  `json:"password" binding:"required,memberpwd"`
	RealName  string  `json:"realName" binding:"required,realname"`
	NickName  string  `json:"nickname" binding:"required,min=1,max=16"`
	AuthCode  string  `json:"authCode" binding:"required,len=6,numeric"`
	Birthday  string  `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	StudentID *string `json:"studentId" binding:"omitempty,studentid"`
}

type signInRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signInResponse struct {
	MemberID int64    `json:"memberId"`
	Roles    []string `json:"roles"`
}

// SendSignUpCode handles POST /api/sign-up/email-auth
func (h *AuthHandler) SendSignUpCode(c *gin.Context) {
	var req emailAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Auth.SendSignUpCode(c.Request.Context(), req.Email, clientIP(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "auth code sent", nil)
}

// SignUp handles POST /api/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	in := application.SignUpInput{
		LoginID:   req.LoginID,
		Email:     req.Email,
		Password:  req.Password,
		RealName:  req.RealName,
		NickName:  req.NickName,
		AuthCode:  req.AuthCode,
		StudentID: req.StudentID,
	}
	if req.Birthday != "" {
		b, _ := time.Parse("2006-01-02", req.Birthday)
		in.Birthday = &b
	}
	m, err := h.Auth.SignUp(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": m.ID}, "signed up", nil)
}

// SignIn handles POST /api/sign-in and sets the token cookies.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	m, pair, err := h.Auth.SignIn(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.RefreshToken, pair.RefreshTokenExpiry)
	roles := make([]string, 0, len(m.Jobs))
	for _, j := range m.Jobs {
		roles = append(roles, string(j))
	}
	response.Success(c, http.StatusOK, signInResponse{MemberID: m.ID, Roles: roles}, "signed in", nil)
}

// SignOut handles POST /api/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	_, refresh := h.Cookies.Read(c)
	if err := h.Auth.SignOut(c.Request.Context(), refresh); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.NoContent(c)
}
