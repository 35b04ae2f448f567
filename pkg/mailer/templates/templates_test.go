package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/config"
)

func TestRenderEmailAuth(t *testing.T) {
	cfg := &config.Config{ClubName: "KEEPER", HomepageURL: "https://keeper.or.kr"}
	data := NewEmailAuthData(cfg, "new@keeper.or.kr", "012345",
		WithIP("10.0.0.1"), WithExpiresAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	subject, text, html, err := Render(EmailAuth, data)
	require.NoError(t, err)
	assert.Equal(t, "[KEEPER] Email verification code", subject)
	assert.Contains(t, text, "012345")
	assert.Contains(t, text, "01 March 2026, 12:00 UTC")
	assert.Contains(t, text, "10.0.0.1")
	assert.Contains(t, html, "<strong>012345</strong>")
}

func TestRenderOverdueReminder(t *testing.T) {
	cfg := &config.Config{}
	data := NewOverdueReminderData(cfg, "Kim", "kim@keeper.or.kr", "The Go Programming Language", "Donovan",
		time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))

	subject, text, _, err := Render(OverdueReminder, data)
	require.NoError(t, err)
	assert.Equal(t, `[KEEPER] Please return "The Go Programming Language"`, subject)
	assert.Contains(t, text, "2026-05-02")
	assert.True(t, Known(OverdueReminder))
	assert.False(t, Known("login_notification"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestRenderRejectsMissingFields(t *testing.T) {
	_, _, _, err := Render(EmailAuth, map[string]any{"Email": "a@keeper.or.kr", "Code": " "})
	assert.ErrorContains(t, err, "missing Code")

	_, _, _, err = Render(OverdueReminder, map[string]any{"BookTitle": "SICP"})
	assert.ErrorContains(t, err, "missing ExpireDate")
}
