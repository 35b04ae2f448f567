package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

// EmailQueue publishes email jobs for the email worker.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// Principal is the authenticated caller of a request.
type Principal struct {
	MemberID int64
	Roles    []entity.JobType
}

func (p Principal) HasRole(roles ...entity.JobType) bool {
	for _, have := range p.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func principalOf(m *entity.Member) Principal {
	return Principal{MemberID: m.ID, Roles: append([]entity.JobType(nil), m.Jobs...)}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// nowFrom returns clock() or time.Now when no clock is set.
func nowFrom(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}

// notFound turns repository.ErrNotFound into a business error with code.
func notFound(err error, code apperror.ErrorCode, field string, value any) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.New(value, field, code)
	}
	return err
}

// memberDuplicate maps a unique violation on member to its business code.
func memberDuplicate(err error, m *entity.Member) error {
	if !errors.Is(err, repo.ErrDuplicate) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "member_login_id_key"):
		return apperror.New(m.LoginID, "loginId", apperror.MemberLoginIDDuplicate)
	case strings.Contains(msg, "member_student_id_key"):
		return apperror.New(m.StudentID, "studentId", apperror.MemberStudentIDDuplicate)
	default:
		return apperror.New(m.EmailAddress, "email", apperror.MemberEmailDuplicate)
	}
}

// runTx runs fn in tx when one is configured.
func runTx(ctx context.Context, tx repo.Transactor, fn func(ctx context.Context) error) error {
	if tx == nil {
		return fn(ctx)
	}
	return tx.WithinTx(ctx, fn)
}
