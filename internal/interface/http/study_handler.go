package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type StudyHandler struct {
	Studies *application.StudyService
	Logger  *logrus.Logger
}

func NewStudyHandler(studies *application.StudyService, logger *logrus.Logger) *StudyHandler {
	return &StudyHandler{Studies: studies, Logger: logger}
}

type studyRequest struct {
	Title       string  `form:"title" json:"title" binding:"required,max=45"`
	Information string  `form:"information" json:"information" binding:"required,max=100"`
	Year        int     `form:"year" json:"year" binding:"required,gte=2000,lte=2100"`
	Season      int     `form:"season" json:"season" binding:"required,min=1,max=4"`
	GitLink     *string `form:"gitLink" json:"gitLink" binding:"omitempty,githublink"`
	NoteLink    *string `form:"noteLink" json:"noteLink" binding:"omitempty,notionlink"`
	EtcLink     *string `form:"etcLink" json:"etcLink" binding:"omitempty,url"`
}

type listStudiesQuery struct {
	Year   int `form:"year" binding:"required,gte=2000,lte=2100"`
	Season int `form:"season" binding:"required,min=1,max=4"`
}

type studyResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Information   string   `json:"information,omitempty"`
	Year          int      `json:"year"`
	Season        int      `json:"season"`
	HeadMemberID  int64    `json:"headMemberId"`
	ThumbnailPath string   `json:"thumbnailPath"`
	GitLink       *string  `json:"gitLink,omitempty"`
	NoteLink      *string  `json:"noteLink,omitempty"`
	EtcLink       *string  `json:"etcLink,omitempty"`
	Members       []string `json:"members,omitempty"`
}

func (r studyRequest) input() application.StudyInput {
	return application.StudyInput{
		Title:       r.Title,
		Information: r.Information,
		Year:        r.Year,
		Season:      r.Season,
		GitLink:     r.GitLink,
		NoteLink:    r.NoteLink,
		EtcLink:     r.EtcLink,
	}
}

func (h *StudyHandler) toStudy(st entity.Study) studyResponse {
	return studyResponse{
		ID:            st.ID,
		Title:         st.Title,
		Information:   st.Information,
		Year:          st.Year,
		Season:        st.Season,
		HeadMemberID:  st.HeadMemberID,
		ThumbnailPath: h.Studies.Files.ThumbnailURL(st.ThumbnailPath),
		GitLink:       st.GitLink,
		NoteLink:      st.NoteLink,
		EtcLink:       st.EtcLink,
	}
}

// Create handles POST /api/studies (multipart with optional thumbnail)
func (h *StudyHandler) Create(c *gin.Context) {
	var req studyRequest
	if err := c.ShouldBind(&req); err != nil {
		badPayload(c, err)
		return
	}
	thumb, closer, err := formUpload(c, "thumbnail")
	if err != nil {
		badPayload(c, err)
		return
	}
	defer closer.Close()
	st, err := h.Studies.Create(c.Request.Context(), me(c), req.input(), thumb)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": st.ID})
}

// Get handles GET /api/studies/:id
func (h *StudyHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	d, err := h.Studies.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := h.toStudy(*d.Study)
	out.Members = make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		out.Members = append(out.Members, m.RealName)
	}
	ok(c, out)
}

// List handles GET /api/studies?year=&season=
func (h *StudyHandler) List(c *gin.Context) {
	var q listStudiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	studies, err := h.Studies.List(c.Request.Context(), q.Year, q.Season)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]studyResponse, 0, len(studies))
	for _, st := range studies {
		out = append(out, h.toStudy(st))
	}
	ok(c, out)
}

// Update handles PUT /api/studies/:id
func (h *StudyHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req studyRequest
	if err := c.ShouldBind(&req); err != nil {
		badPayload(c, err)
		return
	}
	st, err := h.Studies.Update(c.Request.Context(), me(c), id, req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, h.toStudy(*st))
}

// Delete handles DELETE /api/studies/:id
func (h *StudyHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Studies.Delete(c.Request.Context(), me(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// AddMember handles POST /api/studies/:id/members/:memberId
func (h *StudyHandler) AddMember(c *gin.Context) {
	h.membership(c, h.Studies.AddMember)
}

// RemoveMember handles DELETE /api/studies/:id/members/:memberId
func (h *StudyHandler) RemoveMember(c *gin.Context) {
	h.membership(c, h.Studies.RemoveMember)
}

func (h *StudyHandler) membership(c *gin.Context, fn func(ctx context.Context, headID, id, memberID int64) error) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	memberID, valid := pathID(c, "memberId")
	if !valid {
		return
	}
	if err := fn(c.Request.Context(), me(c), id, memberID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
