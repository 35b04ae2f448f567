package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
	"github.com/keeper31337/homepage-api/pkg/mailer"
	mailtpl "github.com/keeper31337/homepage-api/pkg/mailer/templates"
)

type LibraryService struct {
	Books   repo.BookRepository
	Borrows repo.BorrowRepository
	Files   *FileService
	Tx      repo.Transactor
	Queue   EmailQueue
	Cfg     *config.Config
	Logger  *logrus.Logger
	Clock   func() time.Time
}

func NewLibraryService(books repo.BookRepository, borrows repo.BorrowRepository, files *FileService, tx repo.Transactor, queue EmailQueue, cfg *config.Config, logger *logrus.Logger) *LibraryService {
	return &LibraryService{Books: books, Borrows: borrows, Files: files, Tx: tx, Queue: queue, Cfg: cfg, Logger: logger}
}

func (s *LibraryService) CreateBook(ctx context.Context, title, author string, quantity int, thumbnail *Upload) (*entity.Book, error) {
	b := &entity.Book{Title: title, Author: author, TotalQuantity: quantity, CurrentQuantity: quantity}
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		thumbID, err := s.Files.SaveOptionalThumbnail(ctx, thumbnail)
		if err != nil {
			return err
		}
		b.ThumbnailID = thumbID
		return s.Books.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *LibraryService) ListBooks(ctx context.Context, search string, page repo.PageRequest) ([]entity.Book, int64, error) {
	return s.Books.List(ctx, search, page)
}

// RequestBorrow queues a borrow request for the member.
func (s *LibraryService) RequestBorrow(ctx context.Context, memberID, bookID int64) (*entity.BookBorrowInfo, error) {
	now := nowFrom(s.Clock)
	var info *entity.BookBorrowInfo
	err := runTx(ctx, s.Tx, func(ctx context.Context) error {
		book, err := s.Books.GetByID(ctx, bookID)
		if err != nil {
			return notFound(err, apperror.BookNotFound, "bookId", bookID)
		}
		if book.CurrentQuantity <= 0 {
			return apperror.New(bookID, "bookId", apperror.BookNotAvailable)
		}
		n, err := s.Borrows.CountActiveByMember(ctx, memberID)
		if err != nil {
			return err
		}
		if n >= entity.MaxBorrowRequests {
			return apperror.New(n, "bookId", apperror.BorrowRequestLimit)
		}
		info = &entity.BookBorrowInfo{
			MemberID:        memberID,
			BookID:          bookID,
			BookTitle:       book.Title,
			BookAuthor:      book.Author,
			Status:          entity.BorrowRequests,
			LastRequestDate: now,
		}
		if err := s.Borrows.Create(ctx, info); err != nil {
			return err
		}
		// reload for the member name kept in the log
		if info, err = s.getBorrow(ctx, info.ID); err != nil {
			return err
		}
		return s.log(ctx, info, entity.BorrowRequests, now)
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// RequestReturn asks the librarian to take back a borrowed book.
func (s *LibraryService) RequestReturn(ctx context.Context, memberID, borrowID int64) error {
	now := nowFrom(s.Clock)
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		info, err := s.getBorrow(ctx, borrowID)
		if err != nil {
			return err
		}
		if info.MemberID != memberID {
			return apperror.New(borrowID, "borrowId", apperror.AccessDenied)
		}
		if info.Status != entity.BorrowInBorrowing {
			return apperror.New(info.Status, "status", apperror.BorrowStatusIsNotBorrowing)
		}
		info.Status = entity.BorrowReturnRequests
		info.LastRequestDate = now
		return s.save(ctx, info, entity.BorrowReturnRequests, now)
	})
}

func (s *LibraryService) ListBorrows(ctx context.Context, filter repo.BorrowFilter, page repo.PageRequest) ([]entity.BookBorrowInfo, int64, error) {
	return s.Borrows.List(ctx, filter, nowFrom(s.Clock), page)
}

// ApproveBorrow hands the book out for BorrowPeriod.
func (s *LibraryService) ApproveBorrow(ctx context.Context, borrowID int64) error {
	now := nowFrom(s.Clock)
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		info, err := s.requested(ctx, borrowID)
		if err != nil {
			return err
		}
		if ok, err := s.Books.AdjustStock(ctx, info.BookID, -1); err != nil {
			return err
		} else if !ok {
			if _, err := s.Books.GetByID(ctx, info.BookID); err != nil {
				return notFound(err, apperror.BookNotFound, "bookId", info.BookID)
			}
			return apperror.New(info.BookID, "bookId", apperror.BookNotAvailable)
		}
		expire := now.Add(entity.BorrowPeriod)
		info.Status = entity.BorrowInBorrowing
		info.BorrowDate = &now
		info.ExpireDate = &expire
		return s.save(ctx, info, entity.BorrowInBorrowing, now)
	})
}

func (s *LibraryService) DenyBorrow(ctx context.Context, borrowID int64) error {
	now := nowFrom(s.Clock)
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		info, err := s.requested(ctx, borrowID)
		if err != nil {
			return err
		}
		info.Status = entity.BorrowDenied
		return s.save(ctx, info, entity.BorrowDenied, now)
	})
}

// ApproveReturn puts the book back on the shelf.
func (s *LibraryService) ApproveReturn(ctx context.Context, borrowID int64) error {
	now := nowFrom(s.Clock)
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		info, err := s.returnRequested(ctx, borrowID)
		if err != nil {
			return err
		}
		// a full shelf stays full
		if ok, err := s.Books.AdjustStock(ctx, info.BookID, 1); err != nil {
			return err
		} else if !ok {
			if _, err := s.Books.GetByID(ctx, info.BookID); err != nil {
				return notFound(err, apperror.BookNotFound, "bookId", info.BookID)
			}
		}
		info.Status = entity.BorrowReturned
		return s.save(ctx, info, entity.BorrowReturned, now)
	})
}

// DenyReturn leaves the book with the member.
func (s *LibraryService) DenyReturn(ctx context.Context, borrowID int64) error {
	now := nowFrom(s.Clock)
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		info, err := s.returnRequested(ctx, borrowID)
		if err != nil {
			return err
		}
		info.Status = entity.BorrowInBorrowing
		return s.save(ctx, info, entity.BorrowReturnDenied, now)
	})
}

func (s *LibraryService) SearchLogs(ctx context.Context, search string, status entity.BorrowStatus, page repo.PageRequest) ([]entity.BookBorrowLog, int64, error) {
	return s.Borrows.SearchLogs(ctx, search, status, page)
}

// RemindOverdue queues a reminder email for every overdue borrow and returns how many were queued.
func (s *LibraryService) RemindOverdue(ctx context.Context) (int, error) {
	if s.Queue == nil {
		return 0, nil
	}
	overdue, err := s.Borrows.ListOverdue(ctx, nowFrom(s.Clock))
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, b := range overdue {
		if b.MemberEmail == "" || b.ExpireDate == nil {
			continue
		}
		job := mailer.EmailJob{
			To:       b.MemberEmail,
			Template: mailtpl.OverdueReminder,
			Data:     mailtpl.NewOverdueReminderData(s.Cfg, b.MemberRealName, b.MemberEmail, b.BookTitle, b.BookAuthor, *b.ExpireDate),
		}
		if err := s.Queue.PublishJSON(ctx, job); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("borrow_id", b.ID).Warn("queue overdue reminder failed")
			}
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *LibraryService) getBorrow(ctx context.Context, borrowID int64) (*entity.BookBorrowInfo, error) {
	info, err := s.Borrows.GetByIDForUpdate(ctx, borrowID)
	if err != nil {
		return nil, notFound(err, apperror.BorrowNotFound, "borrowId", borrowID)
	}
	return info, nil
}

func (s *LibraryService) requested(ctx context.Context, borrowID int64) (*entity.BookBorrowInfo, error) {
	info, err := s.getBorrow(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if info.Status != entity.BorrowRequests {
		return nil, apperror.New(info.Status, "status", apperror.BorrowStatusIsNotRequests)
	}
	return info, nil
}

func (s *LibraryService) returnRequested(ctx context.Context, borrowID int64) (*entity.BookBorrowInfo, error) {
	info, err := s.getBorrow(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if info.Status != entity.BorrowReturnRequests {
		return nil, apperror.New(info.Status, "status", apperror.BorrowStatusIsNotReturnRequests)
	}
	return info, nil
}

func (s *LibraryService) save(ctx context.Context, info *entity.BookBorrowInfo, logged entity.BorrowStatus, now time.Time) error {
	if err := s.Borrows.Update(ctx, info); err != nil {
		return err
	}
	return s.log(ctx, info, logged, now)
}

func (s *LibraryService) log(ctx context.Context, info *entity.BookBorrowInfo, status entity.BorrowStatus, now time.Time) error {
	return s.Borrows.CreateLog(ctx, &entity.BookBorrowLog{
		BorrowInfoID:   info.ID,
		BookTitle:      info.BookTitle,
		BookAuthor:     info.BookAuthor,
		MemberRealName: info.MemberRealName,
		BorrowStatus:   status,
		Time:           now,
	})
}
