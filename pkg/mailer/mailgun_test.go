package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailgunSend(t *testing.T) {
	var path, subject, to, html string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		subject = r.FormValue("subject")
		to = r.FormValue("to")
		html = r.FormValue("html")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<1@keeper.or.kr>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	m := NewMailgun("keeper.or.kr", "key-test", "KEEPER <no-reply@keeper.or.kr>").WithAPIBase(srv.URL + "/v3")
	err := m.Send(context.Background(), "member@keeper.or.kr", "[KEEPER] code", "123456", "<b>123456</b>")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, "/keeper.or.kr/messages"), path)
	assert.Equal(t, "[KEEPER] code", subject)
	assert.Equal(t, "member@keeper.or.kr", to)
	assert.Equal(t, "<b>123456</b>", html)
}
