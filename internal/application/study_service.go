package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

type StudyService struct {
	Studies repo.StudyRepository
	Members repo.MemberRepository
	Files   *FileService
	Tx      repo.Transactor
	Logger  *logrus.Logger
}

func NewStudyService(studies repo.StudyRepository, members repo.MemberRepository, files *FileService, tx repo.Transactor, logger *logrus.Logger) *StudyService {
	return &StudyService{Studies: studies, Members: members, Files: files, Tx: tx, Logger: logger}
}

type StudyInput struct {
	Title       string
	Information string
	Year        int
	Season      int
	GitLink     *string
	NoteLink    *string
	EtcLink     *string
}

// StudyDetail is a study with its participants.
type StudyDetail struct {
	Study   *entity.Study
	Members []entity.StudyMember
}

// Create registers the caller as head member and first participant.
func (s *StudyService) Create(ctx context.Context, headID int64, in StudyInput, thumbnail *Upload) (*entity.Study, error) {
	st := &entity.Study{
		Title:        in.Title,
		Information:  in.Information,
		Year:         in.Year,
		Season:       in.Season,
		GitLink:      in.GitLink,
		NoteLink:     in.NoteLink,
		EtcLink:      in.EtcLink,
		HeadMemberID: headID,
	}
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		thumbID, err := s.Files.SaveOptionalThumbnail(ctx, thumbnail)
		if err != nil {
			return err
		}
		st.ThumbnailID = thumbID
		if err := s.Studies.Create(ctx, st); err != nil {
			return err
		}
		return s.Studies.AddMember(ctx, st.ID, headID)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StudyService) Get(ctx context.Context, id int64) (*StudyDetail, error) {
	st, err := s.Studies.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperror.StudyNotFound, "studyId", id)
	}
	members, err := s.Studies.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StudyDetail{Study: st, Members: members}, nil
}

func (s *StudyService) List(ctx context.Context, year, season int) ([]entity.Study, error) {
	return s.Studies.List(ctx, year, season)
}

func (s *StudyService) Update(ctx context.Context, memberID, id int64, in StudyInput) (*entity.Study, error) {
	st, err := s.headStudy(ctx, memberID, id)
	if err != nil {
		return nil, err
	}
	st.Title = in.Title
	st.Information = in.Information
	st.Year = in.Year
	st.Season = in.Season
	st.GitLink = in.GitLink
	st.NoteLink = in.NoteLink
	st.EtcLink = in.EtcLink
	if err := s.Studies.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes a study; only its head member may do so.
func (s *StudyService) Delete(ctx context.Context, memberID, id int64) error {
	st, err := s.headStudy(ctx, memberID, id)
	if err != nil {
		return err
	}
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		if err := s.Studies.Delete(ctx, id); err != nil {
			return err
		}
		if st.ThumbnailID != nil {
			return s.Files.DeleteThumbnail(ctx, *st.ThumbnailID)
		}
		return nil
	})
}

func (s *StudyService) AddMember(ctx context.Context, headID, id, memberID int64) error {
	if _, err := s.headStudy(ctx, headID, id); err != nil {
		return err
	}
	if _, err := s.Members.GetByID(ctx, memberID); err != nil {
		return notFound(err, apperror.MemberNotFound, "memberId", memberID)
	}
	err := s.Studies.AddMember(ctx, id, memberID)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

func (s *StudyService) RemoveMember(ctx context.Context, headID, id, memberID int64) error {
	if _, err := s.headStudy(ctx, headID, id); err != nil {
		return err
	}
	if err := s.Studies.RemoveMember(ctx, id, memberID); err != nil {
		return notFound(err, apperror.MemberNotFound, "memberId", memberID)
	}
	return nil
}

func (s *StudyService) headStudy(ctx context.Context, memberID, id int64) (*entity.Study, error) {
	st, err := s.Studies.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperror.StudyNotFound, "studyId", id)
	}
	if !st.IsHead(memberID) {
		return nil, apperror.New(id, "studyId", apperror.StudyCannotAccessible)
	}
	return st, nil
}
