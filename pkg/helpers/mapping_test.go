package helpers

import (
	"context"
	"errors"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"

	"github.com/keeper31337/homepage-api/pkg/mailer"
	mailtpl "github.com/keeper31337/homepage-api/pkg/mailer/templates"
)

type stubGeo struct {
	geo mailtpl.Geo
	err error
}

func (s stubGeo) Lookup(context.Context, string) (mailtpl.Geo, error) { return s.geo, s.err }

func TestNormalizeEmailJob(t *testing.T) {
	job := &mailer.EmailJob{To: "a@keeper.or.kr", Template: " Verify_Email "}
	EnsureRecipientAndEmail(job)
	NormalizeTemplate(job)

	assert.Equal(t, "email_auth", job.Template)
	assert.Equal(t, "a@keeper.or.kr", job.Data["Email"])
	assert.Equal(t, "a@keeper.or.kr", job.Data["RecipientEmail"])
}

func TestLocalizeTimes(t *testing.T) {
	data := map[string]any{"IP": "1.2.3.4", "ExpiresAt": "2026-03-01T12:00:00Z"}
	LocalizeTimesIfPossible(context.Background(), stubGeo{geo: mailtpl.Geo{City: "Daegu", Country: "South Korea", Timezone: "Asia/Seoul"}}, data)

	assert.Equal(t, "Daegu, South Korea", data["Location"])
	assert.Equal(t, "01 March 2026, 21:00 KST", data["ExpiresAtText"])

	untouched := map[string]any{"IP": "1.2.3.4"}
	LocalizeTimesIfPossible(context.Background(), stubGeo{err: errors.New("down")}, untouched)
	assert.NotContains(t, untouched, "Location")
}
