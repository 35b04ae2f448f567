package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

// seminarLength is the calendar duration of a seminar that was never started.
const seminarLength = 2 * time.Hour

type SeminarService struct {
	Seminars repo.SeminarRepository
	Members  repo.MemberRepository
	Tx       repo.Transactor
	ClubName string
	Logger   *logrus.Logger
	Clock    func() time.Time
}

func NewSeminarService(seminars repo.SeminarRepository, members repo.MemberRepository, tx repo.Transactor, clubName string, logger *logrus.Logger) *SeminarService {
	return &SeminarService{Seminars: seminars, Members: members, Tx: tx, ClubName: clubName, Logger: logger}
}

// Create opens a seminar for today, named after its date.
func (s *SeminarService) Create(ctx context.Context) (*entity.Seminar, error) {
	now := nowFrom(s.Clock)
	sem := &entity.Seminar{Name: now.Format("2006-01-02"), OpenTime: now}
	if err := s.Seminars.Create(ctx, sem); err != nil {
		return nil, err
	}
	return sem, nil
}

func (s *SeminarService) Get(ctx context.Context, id int64) (*entity.Seminar, error) {
	sem, err := s.Seminars.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperror.SeminarNotFound, "seminarId", id)
	}
	return sem, nil
}

// Start generates the attendance code and sets both close times.
func (s *SeminarService) Start(ctx context.Context, starterID, id int64, attendanceClose, latenessClose time.Time) (*entity.Seminar, error) {
	now := nowFrom(s.Clock)
	if !attendanceClose.After(now) || latenessClose.Before(attendanceClose) {
		return nil, apperror.New(attendanceClose, "attendanceCloseTime", apperror.SeminarInvalidTime)
	}
	sem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	code, err := helpers.GenAttendanceCode()
	if err != nil {
		return nil, err
	}
	sem.AttendanceCloseTime = &attendanceClose
	sem.LatenessCloseTime = &latenessClose
	sem.AttendanceCode = &code
	sem.StarterID = &starterID
	if err := s.Seminars.Update(ctx, sem); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("seminar_id", id).WithField("starter_id", starterID).Info("seminar started")
	}
	return sem, nil
}

func (s *SeminarService) Delete(ctx context.Context, id int64) error {
	if err := s.Seminars.Delete(ctx, id); err != nil {
		return notFound(err, apperror.SeminarNotFound, "seminarId", id)
	}
	return nil
}

func (s *SeminarService) List(ctx context.Context) ([]entity.Seminar, error) {
	return s.Seminars.List(ctx)
}

// ListByDate returns seminars opening on the calendar day of date.
func (s *SeminarService) ListByDate(ctx context.Context, date time.Time) ([]entity.Seminar, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.Seminars.ListBetween(ctx, from, from.AddDate(0, 0, 1))
}

// Available returns the seminar currently accepting attendance.
func (s *SeminarService) Available(ctx context.Context) (*entity.Seminar, error) {
	sem, err := s.Seminars.FindAvailable(ctx, nowFrom(s.Clock))
	if err != nil {
		return nil, notFound(err, apperror.SeminarNotFound, "seminarId", nil)
	}
	return sem, nil
}

// Attend checks the member in with the code shown at the seminar.
func (s *SeminarService) Attend(ctx context.Context, memberID, id int64, code string) (*entity.SeminarAttendance, error) {
	sem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sem.Started() {
		return nil, apperror.New(id, "seminarId", apperror.SeminarNotStarted)
	}
	if *sem.AttendanceCode != code {
		return nil, apperror.New(code, "attendanceCode", apperror.SeminarAttendanceCodeMismatch)
	}
	now := nowFrom(s.Clock)
	status, ok := sem.StatusAt(now)
	if !ok {
		return nil, apperror.New(id, "seminarId", apperror.SeminarAttendanceClosed)
	}
	a := &entity.SeminarAttendance{SeminarID: id, MemberID: memberID, Status: status, AttendTime: now}
	err = runTx(ctx, s.Tx, func(ctx context.Context) error {
		if ok, err := s.Seminars.ExistsAttendance(ctx, id, memberID); err != nil {
			return err
		} else if ok {
			return apperror.New(id, "seminarId", apperror.SeminarAlreadyAttended)
		}
		if err := s.Seminars.CreateAttendance(ctx, a); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return apperror.New(id, "seminarId", apperror.SeminarAlreadyAttended)
			}
			return err
		}
		if err := s.Members.AddAttendance(ctx, memberID, 1); err != nil {
			return notFound(err, apperror.MemberNotFound, "memberId", memberID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SubmitExcuse stores the member's reason for being late to or missing the seminar.
func (s *SeminarService) SubmitExcuse(ctx context.Context, memberID, seminarID int64, excuse string) error {
	a, err := s.Seminars.GetAttendance(ctx, seminarID, memberID)
	if err != nil {
		return notFound(err, apperror.SeminarAttendanceNotFound, "seminarId", seminarID)
	}
	if a.Status == entity.AttendanceAttend {
		return apperror.New(a.Status, "status", apperror.SeminarExcuseNotAllowed)
	}
	return s.Seminars.SaveExcuse(ctx, a.ID, excuse)
}

func (s *SeminarService) ListAttendances(ctx context.Context, seminarID int64) ([]entity.SeminarAttendance, error) {
	if _, err := s.Get(ctx, seminarID); err != nil {
		return nil, err
	}
	return s.Seminars.ListAttendances(ctx, seminarID)
}

// SetAttendanceStatus records the member's status for the seminar, creating the attendance
// when the member never checked in. The member's attendance total follows the change.
func (s *SeminarService) SetAttendanceStatus(ctx context.Context, seminarID, memberID int64, status entity.AttendanceStatus) (*entity.SeminarAttendance, error) {
	if !status.Valid() {
		return nil, apperror.New(status, "status", apperror.SeminarInvalidStatus)
	}
	if _, err := s.Get(ctx, seminarID); err != nil {
		return nil, err
	}
	var out *entity.SeminarAttendance
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		if _, err := s.Members.GetByID(ctx, memberID); err != nil {
			return notFound(err, apperror.MemberNotFound, "memberId", memberID)
		}
		a, err := s.Seminars.GetAttendance(ctx, seminarID, memberID)
		var delta int
		switch {
		case errors.Is(err, repo.ErrNotFound):
			a = &entity.SeminarAttendance{SeminarID: seminarID, MemberID: memberID, Status: status, AttendTime: nowFrom(s.Clock)}
			if err := s.Seminars.CreateAttendance(ctx, a); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return apperror.New(seminarID, "seminarId", apperror.SeminarAlreadyAttended)
				}
				return err
			}
			delta = attendanceWeight(status)
		case err != nil:
			return err
		default:
			delta = attendanceWeight(status) - attendanceWeight(a.Status)
			if a.Status != status {
				if err := s.Seminars.UpdateAttendanceStatus(ctx, a.ID, status); err != nil {
					return err
				}
				a.Status = status
			}
		}
		if delta != 0 {
			if err := s.Members.AddAttendance(ctx, memberID, delta); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func attendanceWeight(s entity.AttendanceStatus) int {
	if s.Counts() {
		return 1
	}
	return 0
}

// Calendar renders every seminar as an iCalendar feed.
func (s *SeminarService) Calendar(ctx context.Context) (string, error) {
	seminars, err := s.Seminars.List(ctx)
	if err != nil {
		return "", err
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + s.ClubName + "//seminars//EN")
	cal.SetXWRCalName(s.ClubName + " seminars")
	for _, sem := range seminars {
		ev := cal.AddEvent("seminar-" + strconv.FormatInt(sem.ID, 10))
		ev.SetSummary(s.ClubName + " seminar " + sem.Name)
		ev.SetDtStampTime(sem.RegisterTime)
		ev.SetStartAt(sem.OpenTime)
		end := sem.OpenTime.Add(seminarLength)
		if sem.LatenessCloseTime != nil && sem.LatenessCloseTime.After(sem.OpenTime) {
			end = *sem.LatenessCloseTime
		}
		ev.SetEndAt(end)
	}
	return cal.Serialize(), nil
}
