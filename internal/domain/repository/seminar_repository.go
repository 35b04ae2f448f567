package repository

import (
	"context"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type SeminarRepository interface {
	Create(ctx context.Context, s *entity.Seminar) error
	GetByID(ctx context.Context, id int64) (*entity.Seminar, error)
	Update(ctx context.Context, s *entity.Seminar) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]entity.Seminar, error)
	// ListBetween returns seminars opening in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Seminar, error)
	// FindAvailable returns the latest started seminar still accepting attendance at now.
	FindAvailable(ctx context.Context, now time.Time) (*entity.Seminar, error)
	CreateAttendance(ctx context.Context, a *entity.SeminarAttendance) error
	ExistsAttendance(ctx context.Context, seminarID, memberID int64) (bool, error)
	GetAttendance(ctx context.Context, seminarID, memberID int64) (*entity.SeminarAttendance, error)
	ListAttendances(ctx context.Context, seminarID int64) ([]entity.SeminarAttendance, error)
	UpdateAttendanceStatus(ctx context.Context, attendanceID int64, status entity.AttendanceStatus) error
	// SaveExcuse creates or replaces the excuse of an attendance.
	SaveExcuse(ctx context.Context, attendanceID int64, excuse string) error
}
