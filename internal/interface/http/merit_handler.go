package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MeritHandler struct {
	Merits *application.MeritService
	Logger *logrus.Logger
}

func NewMeritHandler(merits *application.MeritService, logger *logrus.Logger) *MeritHandler {
	return &MeritHandler{Merits: merits, Logger: logger}
}

type meritTypeRequest struct {
	Merit   int    `json:"merit" binding:"required,gt=0"`
	IsMerit bool   `json:"isMerit"`
	Detail  string `json:"detail" binding:"required,max=45"`
}

type awardRequest struct {
	AwarderID   int64 `json:"awarderId" binding:"required,gt=0"`
	MeritTypeID int64 `json:"meritTypeId" binding:"required,gt=0"`
}

type meritTypeResponse struct {
	ID      int64  `json:"id"`
	Merit   int    `json:"merit"`
	IsMerit bool   `json:"isMerit"`
	Detail  string `json:"detail"`
}

type meritLogResponse struct {
	ID          int64     `json:"id"`
	AwarderID   int64     `json:"awarderId"`
	AwarderName string    `json:"awarderName"`
	GiverID     int64     `json:"giverId"`
	GiverName   string    `json:"giverName"`
	Merit       int       `json:"merit"`
	IsMerit     bool      `json:"isMerit"`
	Detail      string    `json:"detail"`
	Time        time.Time `json:"time"`
}

func toMeritLog(l entity.MeritLog) meritLogResponse {
	return meritLogResponse{
		ID:          l.ID,
		AwarderID:   l.AwarderID,
		AwarderName: l.AwarderName,
		GiverID:     l.GiverID,
		GiverName:   l.GiverName,
		Merit:       l.Merit,
		IsMerit:     l.IsMerit,
		Detail:      l.Detail,
		Time:        l.Time,
	}
}

// CreateType handles POST /api/merits/types
func (h *MeritHandler) CreateType(c *gin.Context) {
	var req meritTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	mt, err := h.Merits.CreateType(c.Request.Context(), req.Merit, req.IsMerit, req.Detail)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, meritTypeResponse{ID: mt.ID, Merit: mt.Merit, IsMerit: mt.IsMerit, Detail: mt.Detail})
}

// ListTypes handles GET /api/merits/types
func (h *MeritHandler) ListTypes(c *gin.Context) {
	types, err := h.Merits.ListTypes(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]meritTypeResponse, 0, len(types))
	for _, mt := range types {
		out = append(out, meritTypeResponse{ID: mt.ID, Merit: mt.Merit, IsMerit: mt.IsMerit, Detail: mt.Detail})
	}
	ok(c, out)
}

// Award handles POST /api/merits
func (h *MeritHandler) Award(c *gin.Context) {
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	id, err := h.Merits.Award(c.Request.Context(), me(c), req.AwarderID, req.MeritTypeID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": id})
}

// ListLogs handles GET /api/merits
func (h *MeritHandler) ListLogs(c *gin.Context) {
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Merits.ListLogs(c.Request.Context(), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, toMeritLog)
}

// ListByAwarder handles GET /api/merits/members/:id
func (h *MeritHandler) ListByAwarder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, valid := pageRequest(c)
	if !valid {
		return
	}
	items, total, err := h.Merits.ListLogsByAwarder(c.Request.Context(), id, p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	writePage(c, items, total, p, toMeritLog)
}

// Export handles GET /api/merits/export
func (h *MeritHandler) Export(c *gin.Context) {
	data, err := h.Merits.Export(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	name := fmt.Sprintf("merit_logs_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
