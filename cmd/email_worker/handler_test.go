package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/pkg/mailer"
	mailtpl "github.com/keeper31337/homepage-api/pkg/mailer/templates"
)

type sentMail struct {
	to, subject, text, html string
}

type recordingSender struct {
	sent []sentMail
	err  error
}

func (s *recordingSender) Send(_ context.Context, to, subject, text, html string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to, subject, text, html})
	return nil
}

func newWorker(sender mailer.Sender) *worker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &worker{sender: sender, logger: logger, timeout: time.Second}
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandleRendersEmailAuthTemplate(t *testing.T) {
	s := &recordingSender{}
	w := newWorker(s)
	cfg := &config.Config{ClubName: "KEEPER", HomepageURL: "https://keeper.or.kr"}
	job := mailer.EmailJob{
		To:       "new@keeper.or.kr",
		Template: "verify_email",
		Data:     mailtpl.NewEmailAuthData(cfg, "new@keeper.or.kr", "123456"),
	}

	assert.Equal(t, ack, w.handle(context.Background(), body(t, job)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "new@keeper.or.kr", s.sent[0].to)
	assert.Contains(t, s.sent[0].text, "123456")
	assert.NotEmpty(t, s.sent[0].subject)
}

func TestHandleOutcomes(t *testing.T) {
	w := newWorker(&recordingSender{})
	assert.Equal(t, drop, w.handle(context.Background(), []byte("{not json")))
	assert.Equal(t, drop, w.handle(context.Background(), body(t, mailer.EmailJob{Subject: "no recipient"})))
	assert.Equal(t, drop, w.handle(context.Background(), body(t, mailer.EmailJob{To: "a@b.c", Template: "newsletter"})))

	plain := mailer.EmailJob{To: "a@b.c", Subject: "hi", Text: "plain"}
	assert.Equal(t, ack, w.handle(context.Background(), body(t, plain)))

	failing := newWorker(&recordingSender{err: errors.New("mailgun down")})
	assert.Equal(t, retry, failing.handle(context.Background(), body(t, plain)))
}
