package repository

import (
	"context"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

// BorrowFilter narrows the librarian's borrow list.
type BorrowFilter string

const (
	BorrowFilterAll        BorrowFilter = ""
	BorrowFilterRequests   BorrowFilter = "requests"
	BorrowFilterWillReturn BorrowFilter = "will_return"
	BorrowFilterOverdue    BorrowFilter = "overdue"
)

type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id int64) (*entity.Book, error)
	Update(ctx context.Context, b *entity.Book) error
	// AdjustStock moves current_quantity by delta in place, keeping it within
	// [0, total_quantity]. It reports false, changing nothing, otherwise.
	AdjustStock(ctx context.Context, bookID int64, delta int) (bool, error)
	List(ctx context.Context, search string, page PageRequest) ([]entity.Book, int64, error)
}

type BorrowRepository interface {
	Create(ctx context.Context, b *entity.BookBorrowInfo) error
	GetByID(ctx context.Context, id int64) (*entity.BookBorrowInfo, error)
	// GetByIDForUpdate locks the borrow row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.BookBorrowInfo, error)
	Update(ctx context.Context, b *entity.BookBorrowInfo) error
	List(ctx context.Context, filter BorrowFilter, now time.Time, page PageRequest) ([]entity.BookBorrowInfo, int64, error)
	// CountActiveByMember counts borrows that are requested or still in the member's hands.
	CountActiveByMember(ctx context.Context, memberID int64) (int, error)
	ListOverdue(ctx context.Context, now time.Time) ([]entity.BookBorrowInfo, error)
	CreateLog(ctx context.Context, l *entity.BookBorrowLog) error
	// SearchLogs matches search against title, author and member name, newest first.
	SearchLogs(ctx context.Context, search string, status entity.BorrowStatus, page PageRequest) ([]entity.BookBorrowLog, int64, error)
}
