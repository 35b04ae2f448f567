package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/config"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
	"github.com/keeper31337/homepage-api/pkg/mailer"
	mailtpl "github.com/keeper31337/homepage-api/pkg/mailer/templates"
)

// AuthCodeSender issues and checks the email verification codes used by sign-up and email change.
type AuthCodeSender struct {
	Store  repo.AuthCodeStore
	Queue  EmailQueue
	Cfg    *config.Config
	Logger *logrus.Logger
	Clock  func() time.Time
}

func NewAuthCodeSender(store repo.AuthCodeStore, queue EmailQueue, cfg *config.Config, logger *logrus.Logger) *AuthCodeSender {
	return &AuthCodeSender{Store: store, Queue: queue, Cfg: cfg, Logger: logger}
}

// Send stores a fresh code for email and queues the mail carrying it.
func (s *AuthCodeSender) Send(ctx context.Context, email, ip string) error {
	code, err := helpers.GenAuthCode()
	if err != nil {
		return err
	}
	ttl := s.Cfg.EmailAuthTTL
	if err := s.Store.Save(ctx, email, code, ttl); err != nil {
		return err
	}
	if s.Queue == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("email queue not configured; auth code not sent")
		}
		return nil
	}
	job := mailer.EmailJob{
		To:       email,
		Template: mailtpl.EmailAuth,
		Data: mailtpl.NewEmailAuthData(s.Cfg, email, code,
			mailtpl.WithIP(ip), mailtpl.WithExpiresAt(nowFrom(s.Clock).Add(ttl))),
	}
	if err := s.Queue.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("publish auth code email failed")
		}
		return err
	}
	return nil
}

// Verify consumes the code stored for email.
func (s *AuthCodeSender) Verify(ctx context.Context, email, code string) error {
	stored, ok, err := s.Store.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok || stored != code {
		return apperror.New(code, "authCode", apperror.AuthCodeMismatch)
	}
	if err := s.Store.Delete(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("delete auth code failed")
	}
	return nil
}
