package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/pkg/response"
)

type SeminarHandler struct {
	Seminars *application.SeminarService
	Logger   *logrus.Logger
}

func NewSeminarHandler(seminars *application.SeminarService, logger *logrus.Logger) *SeminarHandler {
	return &SeminarHandler{Seminars: seminars, Logger: logger}
}

type startSeminarRequest struct {
	AttendanceCloseTime time.Time `json:"attendanceCloseTime" binding:"required"`
	LatenessCloseTime   time.Time `json:"latenessCloseTime" binding:"required"`
}

type attendRequest struct {
	AttendanceCode string `json:"attendanceCode" binding:"required,len=4,numeric"`
}

type excuseRequest struct {
	AbsenceExcuse string `json:"absenceExcuse" binding:"required,max=200"`
}

type attendanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ATTENDANCE LATENESS ABSENCE"`
}

type attendanceResponse struct {
	ID            int64     `json:"id"`
	MemberID      int64     `json:"memberId"`
	MemberName    string    `json:"memberName"`
	Status        string    `json:"status"`
	AttendTime    time.Time `json:"attendTime"`
	AbsenceExcuse *string   `json:"absenceExcuse"`
}

func toAttendance(a entity.SeminarAttendance) attendanceResponse {
	return attendanceResponse{
		ID:            a.ID,
		MemberID:      a.MemberID,
		MemberName:    a.MemberName,
		Status:        string(a.Status),
		AttendTime:    a.AttendTime,
		AbsenceExcuse: a.Excuse,
	}
}

type listSeminarsQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type seminarResponse struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	OpenTime            time.Time  `json:"openTime"`
	AttendanceCloseTime *time.Time `json:"attendanceCloseTime"`
	LatenessCloseTime   *time.Time `json:"latenessCloseTime"`
	AttendanceCode      *string    `json:"attendanceCode,omitempty"`
}

func toSeminar(s entity.Seminar) seminarResponse {
	return seminarResponse{
		ID:                  s.ID,
		Name:                s.Name,
		OpenTime:            s.OpenTime,
		AttendanceCloseTime: s.AttendanceCloseTime,
		LatenessCloseTime:   s.LatenessCloseTime,
		AttendanceCode:      s.AttendanceCode,
	}
}

// Create handles POST /api/seminars
func (h *SeminarHandler) Create(c *gin.Context) {
	sem, err := h.Seminars.Create(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": sem.ID})
}

// Start handles POST /api/seminars/:id
func (h *SeminarHandler) Start(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req startSeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	sem, err := h.Seminars.Start(c.Request.Context(), me(c), id, req.AttendanceCloseTime, req.LatenessCloseTime)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toSeminar(*sem))
}

// Get handles GET /api/seminars/:id
func (h *SeminarHandler) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	sem, err := h.Seminars.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toSeminar(*sem))
}

// Delete handles DELETE /api/seminars/:id
func (h *SeminarHandler) Delete(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.Seminars.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// List handles GET /api/seminars and GET /api/seminars?date=yyyy-MM-dd
func (h *SeminarHandler) List(c *gin.Context) {
	var q listSeminarsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	var (
		seminars []entity.Seminar
		err      error
	)
	if q.Date != "" {
		date, _ := time.ParseInLocation("2006-01-02", q.Date, time.Local)
		seminars, err = h.Seminars.ListByDate(c.Request.Context(), date)
	} else {
		seminars, err = h.Seminars.List(c.Request.Context())
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]seminarResponse, 0, len(seminars))
	for _, s := range seminars {
		out = append(out, toSeminar(s))
	}
	ok(c, out)
}

// Available handles GET /api/seminars/available; the attendance code is never exposed here.
func (h *SeminarHandler) Available(c *gin.Context) {
	sem, err := h.Seminars.Available(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := toSeminar(*sem)
	out.AttendanceCode = nil
	ok(c, out)
}

// Attend handles POST /api/seminars/:id/attendances
func (h *SeminarHandler) Attend(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req attendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	a, err := h.Seminars.Attend(c.Request.Context(), me(c), id, req.AttendanceCode)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	created(c, gin.H{"id": a.ID, "status": a.Status, "attendTime": a.AttendTime})
}

// SubmitExcuse handles PUT /api/seminars/:id/excuse
func (h *SeminarHandler) SubmitExcuse(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req excuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Seminars.SubmitExcuse(c.Request.Context(), me(c), id, req.AbsenceExcuse); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// ListAttendances handles GET /api/seminars/:id/attendances
func (h *SeminarHandler) ListAttendances(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	list, err := h.Seminars.ListAttendances(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]attendanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAttendance(a))
	}
	ok(c, out)
}

// SetAttendanceStatus handles PUT /api/seminars/:id/attendances/:memberId
func (h *SeminarHandler) SetAttendanceStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	memberID, valid := pathID(c, "memberId")
	if !valid {
		return
	}
	var req attendanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	a, err := h.Seminars.SetAttendanceStatus(c.Request.Context(), id, memberID, entity.AttendanceStatus(req.Status))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	ok(c, toAttendance(*a))
}

// Calendar handles GET /api/seminars/calendar.ics
func (h *SeminarHandler) Calendar(c *gin.Context) {
	body, err := h.Seminars.Calendar(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="seminars.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
