package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	Create(ctx context.Context, m *entity.Member) error
	GetByID(ctx context.Context, id int64) (*entity.Member, error)
	// GetByIDForUpdate reads the member and locks its row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Member, error)
	GetByLoginID(ctx context.Context, loginID string) (*entity.Member, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	// Update writes the profile columns: email, nickname and thumbnail.
	Update(ctx context.Context, m *entity.Member) error
	// AddPoint adds delta to the balance in place. It reports false, changing
	// nothing, when the member is missing or the balance would go negative.
	AddPoint(ctx context.Context, memberID int64, delta int) (bool, error)
	AddMerit(ctx context.Context, memberID int64, merit, demerit int) error
	AddAttendance(ctx context.Context, memberID int64, n int) error
	AssignJob(ctx context.Context, memberID int64, job entity.JobType) error
	RemoveJob(ctx context.Context, memberID int64, job entity.JobType) error
	GetJob(ctx context.Context, jobID int64) (*entity.MemberJob, error)
	ListByPoint(ctx context.Context, page PageRequest) ([]entity.Member, int64, error)
}
