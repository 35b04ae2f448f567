package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
)

func TestSeminarStartAndAttend(t *testing.T) {
	e := newTestEnv(t)
	clerk := e.member("clerk", entity.JobClerk)
	student := e.member("student", entity.JobMember)
	seminars := application.NewSeminarService(e.store.Seminars(), e.store.Members(), fakes.Tx{}, "KEEPER", nil)
	h := NewSeminarHandler(seminars, nil)

	admin := e.router.Group("/admin", as(clerk))
	admin.POST("/seminars", h.Create)
	admin.POST("/seminars/:id", h.Start)
	mem := e.router.Group("/mem", as(student))
	mem.GET("/seminars/available", h.Available)
	mem.GET("/seminars/calendar.ics", h.Calendar)
	mem.POST("/seminars/:id/attendances", h.Attend)

	w := e.do(t, http.MethodPost, "/admin/seminars", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := strconv.FormatInt(gjson.Get(w.Body.String(), "data.id").Int(), 10)

	now := time.Now()
	w = e.do(t, http.MethodPost, "/admin/seminars/"+id, gin.H{
		"attendanceCloseTime": now.Add(-time.Minute),
		"latenessCloseTime":   now.Add(time.Hour),
	})
	assert.Equal(t, "SEMINAR_INVALID_TIME", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodPost, "/admin/seminars/"+id, gin.H{
		"attendanceCloseTime": now.Add(10 * time.Minute),
		"latenessCloseTime":   now.Add(time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	code := gjson.Get(w.Body.String(), "data.attendanceCode").String()
	require.Len(t, code, 4)

	w = e.do(t, http.MethodGet, "/mem/seminars/available", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gjson.Get(w.Body.String(), "data.attendanceCode").Exists())

	wrong := "0000"
	if code == wrong {
		wrong = "1111"
	}
	w = e.do(t, http.MethodPost, "/mem/seminars/"+id+"/attendances", gin.H{"attendanceCode": wrong})
	assert.Equal(t, "SEMINAR_ATTENDANCE_CODE_MISMATCH", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodPost, "/mem/seminars/"+id+"/attendances", gin.H{"attendanceCode": code})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, string(entity.AttendanceAttend), gjson.Get(w.Body.String(), "data.status").String())

	w = e.do(t, http.MethodPost, "/mem/seminars/"+id+"/attendances", gin.H{"attendanceCode": code})
	assert.Equal(t, "SEMINAR_ALREADY_ATTENDED", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodGet, "/mem/seminars/calendar.ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "BEGIN:VEVENT")
}
