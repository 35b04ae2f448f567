package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type ElectionHandler struct {
	Elections *application.ElectionService
	Logger    *logrus.Logger
}

func NewElectionHandler(elections *application.ElectionService, logger *logrus.Logger) *ElectionHandler {
	return &ElectionHandler{Elections: elections, Logger: logger}
}

type electionRequest struct {
	Name        string `json:"name" binding:"required,max=45"`
	Description string `json:"description" binding:"max=200"`
	IsAvailable bool   `json:"isAvailable"`
}

type candidatesRequest struct {
	MemberIDs   []int64 `json:"memberIds" binding:"required,min=1,dive,gt=0"`
	Description string  `json:"description" binding:"max=200"`
	MemberJobID int64   `json:"memberJobId" binding:"required,gt=0"`
}

type votersRequest struct {
	MemberIDs []int64 `json:"memberIds" binding:"required,min=1,dive,gt=0"`
}

type voteRequest struct {
	CandidateID int64 `json:"candidateId" binding:"required,gt=0"`
}

type electionResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	RegisterTime time.Time `json:"registerTime"`
	IsAvailable  bool      `json:"isAvailable"`
}

type candidateResponse struct {
	ID          int64  `json:"id"`
	MemberID    int64  `json:"memberId"`
	RealName    string `json:"realName"`
	Job         string `json:"job"`
	Description string `json:"description"`
	VoteCount   int    `json:"voteCount"`
}

func toElection(e entity.Election) electionResponse {
	return electionResponse{ID: e.ID, Name: e.Name, Description: e.Description, RegisterTime: e.RegisterTime, IsAvailable: e.IsAvailable}
}

// Create handles POST /api/admin/elections
func (h *ElectionHandler) Create(c *gin.Context) {
	var req electionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	e, err := h.Elections.Create(c.Request.Context(), me(c), req.Name, req.Description, req.IsAvailable)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, toElection(*e))
}

// Update handles PUT /api/admin/elections/:id
func (h *ElectionHandler) Update(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req electionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	e, err := h.Elections.Update(c.Request.Context(), id, req.Name, req.Description, req.IsAvailable)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toElection(*e))
}

// List handles GET /api/admin/elections
func (h *ElectionHandler) List(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Elections.List(c.Request.Context(), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, toElection)
}

// Delete handles DELETE /api/admin/elections/:id
func (h *ElectionHandler) Delete(c *gin.Context) {
	h.byID(c, h.Elections.Delete)
}

// Open handles PATCH /api/admin/elections/:id/open
func (h *ElectionHandler) Open(c *gin.Context) {
	h.byID(c, h.Elections.Open)
}

// Close handles PATCH /api/admin/elections/:id/close
func (h *ElectionHandler) Close(c *gin.Context) {
	h.byID(c, h.Elections.Close)
}

func (h *ElectionHandler) byID(c *gin.Context, fn idFunc) {
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

// RegisterCandidates handles POST /api/admin/elections/:id/candidates
func (h *ElectionHandler) RegisterCandidates(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req candidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Elections.RegisterCandidates(c.Request.Context(), id, req.MemberIDs, req.Description, req.MemberJobID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// DeleteCandidate handles DELETE /api/admin/elections/:id/candidates/:candidateId
func (h *ElectionHandler) DeleteCandidate(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	candidateID, valid := pathID(c, "candidateId")
	if !valid {
		return
	}
	if err := h.Elections.DeleteCandidate(c.Request.Context(), id, candidateID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// RegisterVoters handles POST /api/admin/elections/:id/voters
func (h *ElectionHandler) RegisterVoters(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req votersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Elections.RegisterVoters(c.Request.Context(), id, req.MemberIDs); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// ListCandidates handles GET /api/elections/:id/candidates
func (h *ElectionHandler) ListCandidates(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	cands, err := h.Elections.ListCandidates(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]candidateResponse, 0, len(cands))
	for _, cd := range cands {
		out = append(out, candidateResponse{
			ID:          cd.ID,
			MemberID:    cd.MemberID,
			RealName:    cd.MemberName,
			Job:         string(cd.JobName),
			Description: cd.Description,
			VoteCount:   cd.VoteCount,
		})
	}
	ok(c, out)
}

// Vote handles POST /api/elections/:id/votes
func (h *ElectionHandler) Vote(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Elections.Vote(c.Request.Context(), me(c), id, req.CandidateID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
