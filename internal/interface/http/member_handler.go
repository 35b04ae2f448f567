package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type MemberHandler struct {
	Members *application.MemberService
	Logger  *logrus.Logger
}

func NewMemberHandler(members *application.MemberService, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{Members: members, Logger: logger}
}

type memberProfile struct {
	ID            int64     `json:"id"`
	LoginID       string    `json:"loginId,omitempty"`
	Email         string    `json:"email,omitempty"`
	RealName      string    `json:"realName"`
	NickName      string    `json:"nickname"`
	Generation    float64   `json:"generation"`
	Point         int       `json:"point"`
	Level         int       `json:"level"`
	Merit         int       `json:"merit"`
	Demerit       int       `json:"demerit"`
	Jobs          []string  `json:"jobs"`
	ThumbnailPath string    `json:"thumbnailPath"`
	RegisterTime  time.Time `json:"registerTime"`
}

type pointRank struct {
	NickName   string  `json:"nickname"`
	Generation float64 `json:"generation"`
	Point      int     `json:"point"`
}

type emailChangeRequest struct {
	Email    string `json:"email" binding:"required,email,max=250"`
	AuthCode string `json:"authCode" binding:"required,len=6,numeric"`
	Password string `json:"password" binding:"required"`
}

func (h *MemberHandler) profile(m *entity.Member, private bool) memberProfile {
	jobs := make([]string, 0, len(m.Jobs))
	for _, j := range m.Jobs {
		jobs = append(jobs, string(j))
	}
	p := memberProfile{
		ID:            m.ID,
		RealName:      m.RealName,
		NickName:      m.NickName,
		Generation:    m.Generation,
		Point:         m.Point,
		Level:         m.Level,
		Merit:         m.Merit,
		Demerit:       m.Demerit,
		Jobs:          jobs,
		ThumbnailPath: h.Members.ThumbnailURL(m),
		RegisterTime:  m.RegisterTime,
	}
	if private {
		p.LoginID = m.LoginID
		p.Email = m.EmailAddress
	}
	return p
}

// Me handles GET /api/members/me
func (h *MemberHandler) Me(c *gin.Context) {
	m, err := h.Members.GetProfile(c.Request.Context(), me(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, h.profile(m, true))
}

// Get handles GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	m, err := h.Members.GetProfile(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, h.profile(m, false))
}

// ChangeThumbnail handles PATCH /api/members/me/thumbnail
func (h *MemberHandler) ChangeThumbnail(c *gin.Context) {
	up, closer, err := formUpload(c, "thumbnail")
	if err != nil || up == nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"thumbnail": "is required"})
		return
	}
	defer closer.Close()
	m, err := h.Members.ChangeThumbnail(c.Request.Context(), me(c), *up)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, gin.H{"thumbnailPath": h.Members.ThumbnailURL(m)})
}

// SendEmailChangeCode handles POST /api/members/me/email-auth
func (h *MemberHandler) SendEmailChangeCode(c *gin.Context) {
	var req emailAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Members.SendEmailChangeCode(c.Request.Context(), req.Email, clientIP(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "auth code sent", nil)
}

// ChangeEmail handles PATCH /api/members/me/email
func (h *MemberHandler) ChangeEmail(c *gin.Context) {
	var req emailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Members.ChangeEmail(c.Request.Context(), me(c), req.Email, req.AuthCode, req.Password); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// PointRanking handles GET /api/members/ranking/point
func (h *MemberHandler) PointRanking(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Members.PointRanking(c.Request.Context(), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, func(m entity.Member) pointRank {
		return pointRank{NickName: m.NickName, Generation: m.Generation, Point: m.Point}
	})
}

// jobParam accepts both PRESIDENT and ROLE_PRESIDENT.
func jobParam(c *gin.Context) entity.JobType {
	j := strings.ToUpper(c.Param("job"))
	if !strings.HasPrefix(j, "ROLE_") {
		j = "ROLE_" + j
	}
	return entity.JobType(j)
}

// AssignJob handles POST /api/admin/members/:id/jobs/:job
func (h *MemberHandler) AssignJob(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Members.AssignJob(c.Request.Context(), id, jobParam(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// RemoveJob handles DELETE /api/admin/members/:id/jobs/:job
func (h *MemberHandler) RemoveJob(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Members.RemoveJob(c.Request.Context(), id, jobParam(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
