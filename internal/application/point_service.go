package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

type PointService struct {
	Members repo.MemberRepository
	Logs    repo.PointLogRepository
	Tx      repo.Transactor
	Logger  *logrus.Logger
}

func NewPointService(members repo.MemberRepository, logs repo.PointLogRepository, tx repo.Transactor, logger *logrus.Logger) *PointService {
	return &PointService{Members: members, Logs: logs, Tx: tx, Logger: logger}
}

// Present moves point from giver to receiver and logs both sides in one transaction.
func (s *PointService) Present(ctx context.Context, giverID, receiverID int64, point int, message string) error {
	if point <= 0 {
		return apperror.New(point, "point", apperror.PointInvalidAmount)
	}
	if giverID == receiverID {
		return apperror.New(receiverID, "memberId", apperror.PointSelfPresent)
	}
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		if err := s.lockPair(ctx, giverID, receiverID); err != nil {
			return err
		}
		if ok, err := s.Members.AddPoint(ctx, giverID, -point); err != nil {
			return err
		} else if !ok {
			return apperror.New(point, "point", apperror.PointNotEnough)
		}
		if ok, err := s.Members.AddPoint(ctx, receiverID, point); err != nil {
			return err
		} else if !ok {
			return notFound(repo.ErrNotFound, apperror.MemberNotFound, "memberId", receiverID)
		}
		if err := s.Logs.Create(ctx, &entity.PointLog{
			MemberID:    giverID,
			Point:       -point,
			Detail:      message,
			PresentedID: &receiverID,
			IsSpent:     true,
		}); err != nil {
			return err
		}
		if err := s.Logs.Create(ctx, &entity.PointLog{
			MemberID: receiverID,
			Point:    point,
			Detail:   message,
		}); err != nil {
			return err
		}
		if s.Logger != nil {
			s.Logger.WithField("giver_id", giverID).WithField("receiver_id", receiverID).WithField("point", point).Info("point presented")
		}
		return nil
	})
}

func (s *PointService) ListLogs(ctx context.Context, memberID int64, page repo.PageRequest) ([]entity.PointLog, int64, error) {
	return s.Logs.ListByMember(ctx, memberID, page)
}

// lockPair locks both member rows in id order so opposite presents cannot deadlock.
func (s *PointService) lockPair(ctx context.Context, giverID, receiverID int64) error {
	ids := []int64{giverID, receiverID}
	if receiverID < giverID {
		ids[0], ids[1] = receiverID, giverID
	}
	for _, id := range ids {
		if _, err := s.Members.GetByIDForUpdate(ctx, id); err != nil {
			return notFound(err, apperror.MemberNotFound, "memberId", id)
		}
	}
	return nil
}
