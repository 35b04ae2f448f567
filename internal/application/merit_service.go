package application

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

const meritSheet = "merit"

type MeritService struct {
	Merits  repo.MeritRepository
	Members repo.MemberRepository
	Tx      repo.Transactor
	Logger  *logrus.Logger
}

func NewMeritService(merits repo.MeritRepository, members repo.MemberRepository, tx repo.Transactor, logger *logrus.Logger) *MeritService {
	return &MeritService{Merits: merits, Members: members, Tx: tx, Logger: logger}
}

func (s *MeritService) CreateType(ctx context.Context, merit int, isMerit bool, detail string) (*entity.MeritType, error) {
	t := &entity.MeritType{Merit: merit, IsMerit: isMerit, Detail: detail}
	if err := s.Merits.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *MeritService) ListTypes(ctx context.Context) ([]entity.MeritType, error) {
	return s.Merits.ListTypes(ctx)
}

// Award records a merit log given by giverID and adds it to the awarder's totals.
func (s *MeritService) Award(ctx context.Context, giverID, awarderID, meritTypeID int64) (int64, error) {
	var logID int64
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		t, err := s.Merits.GetType(ctx, meritTypeID)
		if err != nil {
			return notFound(err, apperror.MeritTypeNotFound, "meritTypeId", meritTypeID)
		}
		merit, demerit := t.Merit, 0
		if !t.IsMerit {
			merit, demerit = 0, t.Merit
		}
		if err := s.Members.AddMerit(ctx, awarderID, merit, demerit); err != nil {
			return notFound(err, apperror.MemberNotFound, "awarderId", awarderID)
		}
		l := &entity.MeritLog{
			AwarderID:   awarderID,
			GiverID:     giverID,
			MeritTypeID: t.ID,
			Merit:       t.Merit,
			IsMerit:     t.IsMerit,
			Detail:      t.Detail,
		}
		if err := s.Merits.CreateLog(ctx, l); err != nil {
			return err
		}
		logID = l.ID
		return nil
	})
	return logID, err
}

func (s *MeritService) ListLogs(ctx context.Context, page repo.PageRequest) ([]entity.MeritLog, int64, error) {
	return s.Merits.ListLogs(ctx, page)
}

func (s *MeritService) ListLogsByAwarder(ctx context.Context, awarderID int64, page repo.PageRequest) ([]entity.MeritLog, int64, error) {
	if _, err := s.Members.GetByID(ctx, awarderID); err != nil {
		return nil, 0, notFound(err, apperror.MemberNotFound, "memberId", awarderID)
	}
	return s.Merits.ListLogsByAwarder(ctx, awarderID, page)
}

// Export renders every merit log into an xlsx workbook.
func (s *MeritService) Export(ctx context.Context) ([]byte, error) {
	logs, err := s.Merits.AllLogs(ctx)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), meritSheet); err != nil {
		return nil, err
	}
	header := []any{"ID", "Date", "Awarder", "Giver", "Type", "Merit", "Reason"}
	if err := f.SetSheetRow(meritSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, l := range logs {
		kind := "demerit"
		if l.IsMerit {
			kind = "merit"
		}
		row := []any{l.ID, l.Time.Format("2006-01-02 15:04"), l.AwarderName, l.GiverName, kind, l.Merit, l.Detail}
		if err := f.SetSheetRow(meritSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
