package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type PointHandler struct {
	Points *application.PointService
	Logger *logrus.Logger
}

func NewPointHandler(points *application.PointService, logger *logrus.Logger) *PointHandler {
	return &PointHandler{Points: points, Logger: logger}
}

type presentRequest struct {
	Point    int    `json:"point" binding:"required,gt=0"`
	MemberID int64  `json:"memberId" binding:"required,gt=0"`
	Message  string `json:"message" binding:"max=100"`
}

type pointLogResponse struct {
	Point       int       `json:"point"`
	Detail      string    `json:"detail"`
	PresentedID *int64    `json:"presentedId"`
	IsSpent     bool      `json:"isSpent"`
	Time        time.Time `json:"time"`
}

// Present handles POST /api/points/present
func (h *PointHandler) Present(c *gin.Context) {
	var req presentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Points.Present(c.Request.Context(), me(c), req.MemberID, req.Point, req.Message); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Logs handles GET /api/points/logs
func (h *PointHandler) Logs(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Points.ListLogs(c.Request.Context(), me(c), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, func(l entity.PointLog) pointLogResponse {
		return pointLogResponse{Point: l.Point, Detail: l.Detail, PresentedID: l.PresentedID, IsSpent: l.IsSpent, Time: l.Time}
	})
}
