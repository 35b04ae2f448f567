package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/testing/fakes"
)

func TestStudyHeadOnlyDelete(t *testing.T) {
	e := newTestEnv(t)
	head := e.member("head")
	other := e.member("other")
	studies := application.NewStudyService(e.store.Studies(), e.store.Members(), e.files, fakes.Tx{}, nil)
	h := NewStudyHandler(studies, nil)

	headGroup := e.router.Group("/head", as(head))
	headGroup.POST("/studies", h.Create)
	headGroup.GET("/studies/:id", h.Get)
	headGroup.POST("/studies/:id/members/:memberId", h.AddMember)
	headGroup.DELETE("/studies/:id", h.Delete)
	otherGroup := e.router.Group("/other", as(other))
	otherGroup.DELETE("/studies/:id", h.Delete)

	w := e.do(t, http.MethodPost, "/head/studies", gin.H{
		"title":       "go study",
		"information": "weekly",
		"year":        2026,
		"season":      1,
		"gitLink":     "https://github.com/keeper/go",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := strconv.FormatInt(gjson.Get(w.Body.String(), "data.id").Int(), 10)

	w = e.do(t, http.MethodPost, "/head/studies/"+id+"/members/"+strconv.FormatInt(other.ID, 10), nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/head/studies/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []string{"head", "other"}, stringsOf(gjson.Get(w.Body.String(), "data.members")))

	w = e.do(t, http.MethodDelete, "/other/studies/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STUDY_CANNOT_ACCESSIBLE", gjson.Get(w.Body.String(), "error.code").String())

	w = e.do(t, http.MethodDelete, "/head/studies/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStudyRejectsForeignGitLink(t *testing.T) {
	e := newTestEnv(t)
	studies := application.NewStudyService(e.store.Studies(), e.store.Members(), e.files, fakes.Tx{}, nil)
	h := NewStudyHandler(studies, nil)
	e.router.POST("/studies", as(e.member("head", entity.JobMember)), h.Create)

	w := e.do(t, http.MethodPost, "/studies", gin.H{
		"title": "t", "information": "i", "year": 2026, "season": 5, "gitLink": "https://gitlab.com/x",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	res := gjson.Parse(w.Body.String())
	assert.True(t, res.Get("error.gitLink").Exists())
	assert.True(t, res.Get("error.season").Exists())
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
