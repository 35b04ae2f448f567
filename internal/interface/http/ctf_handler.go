package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type CtfHandler struct {
	Contests *application.CtfService
	Logger   *logrus.Logger
}

func NewCtfHandler(contests *application.CtfService, logger *logrus.Logger) *CtfHandler {
	return &CtfHandler{Contests: contests, Logger: logger}
}

type createContestRequest struct {
	Name        string `json:"name" binding:"required,max=45"`
	Description string `json:"description" binding:"max=200"`
}

type updateContestRequest struct {
	Name        string `json:"name" binding:"required,max=45"`
	Description string `json:"description" binding:"max=200"`
	Joinable    bool   `json:"joinable"`
}

type contestResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatorName  string    `json:"creatorName"`
	Joinable     bool      `json:"joinable"`
	RegisterTime time.Time `json:"registerTime"`
}

func toContest(ct entity.CtfContest) contestResponse {
	return contestResponse{
		ID:           ct.ID,
		Name:         ct.Name,
		Description:  ct.Description,
		CreatorName:  ct.CreatorName,
		Joinable:     ct.IsJoinable,
		RegisterTime: ct.RegisterTime,
	}
}

// Create handles POST /api/ctf/contests
func (h *CtfHandler) Create(c *gin.Context) {
	var req createContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	ct, err := h.Contests.Create(c.Request.Context(), me(c), req.Name, req.Description)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": ct.ID})
}

// Update handles PUT /api/ctf/contests/:id
func (h *CtfHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req updateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	ct, err := h.Contests.Update(c.Request.Context(), id, req.Name, req.Description, req.Joinable)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toContest(*ct))
}

func (h *CtfHandler) Open(c *gin.Context) {
	h.setJoinable(c, h.Contests.Open)
}

func (h *CtfHandler) Close(c *gin.Context) {
	h.setJoinable(c, h.Contests.Close)
}

func (h *CtfHandler) setJoinable(c *gin.Context, fn idFunc) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// List handles GET /api/ctf/contests
func (h *CtfHandler) List(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Contests.List(c.Request.Context(), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, toContest)
}
