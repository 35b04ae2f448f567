package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/mailer"
	mailtpl "github.com/keeper31337/homepage-api/pkg/mailer/templates"
)

// outcome tells the consumer loop how to settle a delivery.
type outcome int

const (
	ack   outcome = iota
	drop          // nack without requeue
	retry         // nack and requeue
)

type worker struct {
	sender   mailer.Sender
	resolver mailtpl.GeoResolver
	logger   *logrus.Logger
	timeout  time.Duration
}

// handle renders and sends one queued EmailJob.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return drop
	}
	if job.To == "" {
		w.logger.Warn("message without recipient")
		return drop
	}

	helpers.EnsureRecipientAndEmail(&job)
	helpers.NormalizeTemplate(&job)
	helpers.LocalizeTimesIfPossible(ctx, w.resolver, job.Data)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if !mailtpl.Known(job.Template) {
			w.logger.WithField("template", job.Template).Warn("unknown template")
			return drop
		}
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			helpers.LogError(w.logger, "render failed", err, logrus.Fields{"template": job.Template})
			return drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("to", job.To).Warn("send failed")
		return retry
	}
	helpers.LogInfo(w.logger, "email sent", logrus.Fields{"to": job.To, "template": job.Template})
	return ack
}
