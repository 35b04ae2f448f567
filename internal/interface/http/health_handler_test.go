package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	e.router.GET("/ok", NewHealthHandler(map[string]Check{"postgres": up, "redis": up}).Health)
	e.router.GET("/down", NewHealthHandler(map[string]Check{"postgres": up, "redis": down}).Health)

	w := e.do(t, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "up", gjson.Get(w.Body.String(), "data.redis").String())

	w = e.do(t, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "connection refused", gjson.Get(w.Body.String(), "error.redis").String())
	assert.Equal(t, "up", gjson.Get(w.Body.String(), "error.postgres").String())
}
