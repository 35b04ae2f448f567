package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

type MemberService struct {
	Members repo.MemberRepository
	Tx      repo.Transactor
	Files   *FileService
	Codes   *AuthCodeSender
	Logger  *logrus.Logger
}

func NewMemberService(members repo.MemberRepository, tx repo.Transactor, files *FileService, codes *AuthCodeSender, logger *logrus.Logger) *MemberService {
	return &MemberService{Members: members, Tx: tx, Files: files, Codes: codes, Logger: logger}
}

func (s *MemberService) GetProfile(ctx context.Context, memberID int64) (*entity.Member, error) {
	m, err := s.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, notFound(err, apperror.MemberNotFound, "memberId", memberID)
	}
	return m, nil
}

// ThumbnailURL is the public thumbnail of m, falling back to the default image.
func (s *MemberService) ThumbnailURL(m *entity.Member) string {
	return s.Files.ThumbnailURL(m.ThumbnailPath)
}

// ChangeThumbnail points the member at a new thumbnail and removes the previous one.
func (s *MemberService) ChangeThumbnail(ctx context.Context, memberID int64, up Upload) (*entity.Member, error) {
	var m *entity.Member
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		var err error
		m, err = s.Members.GetByIDForUpdate(ctx, memberID)
		if err != nil {
			return notFound(err, apperror.MemberNotFound, "memberId", memberID)
		}
		old := m.ThumbnailID
		t, err := s.Files.SaveThumbnail(ctx, up)
		if err != nil {
			return err
		}
		m.ThumbnailID = &t.ID
		m.ThumbnailPath = t.Path
		if err := s.Members.Update(ctx, m); err != nil {
			return err
		}
		if old != nil {
			return s.Files.DeleteThumbnail(ctx, *old)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SendEmailChangeCode mails a verification code to the member's new address.
func (s *MemberService) SendEmailChangeCode(ctx context.Context, email, ip string) error {
	exists, err := s.Members.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.New(email, "email", apperror.MemberEmailDuplicate)
	}
	return s.Codes.Send(ctx, email, ip)
}

func (s *MemberService) ChangeEmail(ctx context.Context, memberID int64, email, code, password string) error {
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		m, err := s.Members.GetByIDForUpdate(ctx, memberID)
		if err != nil {
			return notFound(err, apperror.MemberNotFound, "memberId", memberID)
		}
		if !helpers.CompareHashAndPassword(m.Password, password) {
			return apperror.New("", "password", apperror.MemberWrongPassword)
		}
		if exists, err := s.Members.ExistsByEmail(ctx, email); err != nil {
			return err
		} else if exists {
			return apperror.New(email, "email", apperror.MemberEmailDuplicate)
		}
		if err := s.Codes.Verify(ctx, email, code); err != nil {
			return err
		}
		m.EmailAddress = email
		if err := s.Members.Update(ctx, m); err != nil {
			return memberDuplicate(err, m)
		}
		return nil
	})
}

// PointRanking lists members by point, highest first.
func (s *MemberService) PointRanking(ctx context.Context, page repo.PageRequest) ([]entity.Member, int64, error) {
	return s.Members.ListByPoint(ctx, page)
}

func (s *MemberService) AssignJob(ctx context.Context, memberID int64, job entity.JobType) error {
	if !job.Valid() {
		return apperror.New(job, "job", apperror.MemberJobNotFound)
	}
	m, err := s.GetProfile(ctx, memberID)
	if err != nil {
		return err
	}
	if m.HasJob(job) {
		return nil
	}
	if err := s.Members.AssignJob(ctx, memberID, job); err != nil {
		return notFound(err, apperror.MemberJobNotFound, "job", job)
	}
	if s.Logger != nil {
		s.Logger.WithField("member_id", memberID).WithField("job", job).Info("job assigned")
	}
	return nil
}

func (s *MemberService) RemoveJob(ctx context.Context, memberID int64, job entity.JobType) error {
	if !job.Valid() {
		return apperror.New(job, "job", apperror.MemberJobNotFound)
	}
	if _, err := s.GetProfile(ctx, memberID); err != nil {
		return err
	}
	return s.Members.RemoveJob(ctx, memberID, job)
}
