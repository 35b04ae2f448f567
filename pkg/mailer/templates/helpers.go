package templates

import (
	"time"

	"github.com/keeper31337/homepage-api/config"
)

// Option customizes EmailData before it is flattened into a job.
type Option func(*EmailData)

func WithIP(ip string) Option { return func(d *EmailData) { d.IP = ip } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewBaseEmailData fills the common fields from config, then applies options
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
		ClubName:       cfg.ClubName,
		AppName:        cfg.AppName,
		HomepageURL:    cfg.HomepageURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewEmailAuthData(cfg *config.Config, email, code string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, EmailAuth, "", email, opts...)
	d.Code = code
	return ToMap(d)
}

func NewOverdueReminderData(cfg *config.Config, name, email, title, author string, expire time.Time) map[string]any {
	d := NewBaseEmailData(cfg, OverdueReminder, name, email)
	d.BookTitle = title
	d.BookAuthor = author
	d.ExpireDate = expire.Format("2006-01-02")
	return ToMap(d)
}
