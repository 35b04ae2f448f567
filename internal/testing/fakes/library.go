package fakes

import (
	"context"
	"strings"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type BookRepository struct{ s *Store }

func (s *Store) Books() *BookRepository { return &BookRepository{s} }

func (r *BookRepository) Create(_ context.Context, b *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.next()
	b.RegisterDate = now()
	cp := *b
	r.s.books[b.ID] = &cp
	return nil
}

func (r *BookRepository) view(b *entity.Book) entity.Book {
	cp := *b
	if b.ThumbnailID != nil {
		if t, ok := r.s.thumbnails[*b.ThumbnailID]; ok {
			cp.ThumbnailPath = t.Path
		}
	}
	return cp
}

func (r *BookRepository) GetByID(_ context.Context, id int64) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.view(b)
	return &v, nil
}

func (r *BookRepository) Update(_ context.Context, b *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.s.books[b.ID] = &cp
	return nil
}

func (r *BookRepository) AdjustStock(_ context.Context, bookID int64, delta int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[bookID]
	if !ok {
		return false, nil
	}
	n := b.CurrentQuantity + delta
	if n < 0 || n > b.TotalQuantity {
		return false, nil
	}
	b.CurrentQuantity = n
	return true, nil
}

func (r *BookRepository) List(_ context.Context, search string, p repository.PageRequest) ([]entity.Book, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.books)
	var out []entity.Book
	for i := len(ids) - 1; i >= 0; i-- {
		b := r.s.books[ids[i]]
		if contains(b.Title, search) || contains(b.Author, search) {
			out = append(out, r.view(b))
		}
	}
	items, total := page(out, p)
	return items, total, nil
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type BorrowRepository struct{ s *Store }

func (s *Store) Borrows() *BorrowRepository { return &BorrowRepository{s} }

func (r *BorrowRepository) Create(_ context.Context, b *entity.BookBorrowInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.next()
	b.RegisterTime = now()
	b.LastRequestDate = b.RegisterTime
	cp := *b
	r.s.borrows[b.ID] = &cp
	return nil
}

func (r *BorrowRepository) view(b *entity.BookBorrowInfo) entity.BookBorrowInfo {
	cp := *b
	if m, ok := r.s.members[b.MemberID]; ok {
		cp.MemberRealName = m.RealName
		cp.MemberEmail = m.EmailAddress
	}
	if bk, ok := r.s.books[b.BookID]; ok {
		cp.BookTitle = bk.Title
		cp.BookAuthor = bk.Author
	}
	return cp
}

func (r *BorrowRepository) GetByID(_ context.Context, id int64) (*entity.BookBorrowInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.borrows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.view(b)
	return &v, nil
}

func (r *BorrowRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.BookBorrowInfo, error) {
	return r.GetByID(ctx, id)
}

func (r *BorrowRepository) Update(_ context.Context, b *entity.BookBorrowInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.borrows[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.s.borrows[b.ID] = &cp
	return nil
}

func matchBorrow(b *entity.BookBorrowInfo, filter repository.BorrowFilter, at time.Time) bool {
	switch filter {
	case repository.BorrowFilterRequests:
		return b.Status == entity.BorrowRequests
	case repository.BorrowFilterWillReturn:
		return b.Status == entity.BorrowReturnRequests
	case repository.BorrowFilterOverdue:
		return b.Overdue(at)
	default:
		switch b.Status {
		case entity.BorrowRequests, entity.BorrowInBorrowing, entity.BorrowReturnRequests:
			return true
		}
		return false
	}
}

func (r *BorrowRepository) List(_ context.Context, filter repository.BorrowFilter, at time.Time, p repository.PageRequest) ([]entity.BookBorrowInfo, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.borrows)
	var out []entity.BookBorrowInfo
	for i := len(ids) - 1; i >= 0; i-- {
		if b := r.s.borrows[ids[i]]; matchBorrow(b, filter, at) {
			out = append(out, r.view(b))
		}
	}
	items, total := page(out, p)
	return items, total, nil
}

func (r *BorrowRepository) CountActiveByMember(_ context.Context, memberID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, b := range r.s.borrows {
		if b.MemberID == memberID && matchBorrow(b, repository.BorrowFilterAll, time.Time{}) {
			n++
		}
	}
	return n, nil
}

func (r *BorrowRepository) ListOverdue(_ context.Context, at time.Time) ([]entity.BookBorrowInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.BookBorrowInfo
	for _, id := range sortedIDs(r.s.borrows) {
		if b := r.s.borrows[id]; b.Overdue(at) {
			out = append(out, r.view(b))
		}
	}
	return out, nil
}

func (r *BorrowRepository) CreateLog(_ context.Context, l *entity.BookBorrowLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.next()
	l.Time = now()
	r.s.borrowLogs = append(r.s.borrowLogs, *l)
	return nil
}

func (r *BorrowRepository) SearchLogs(_ context.Context, search string, status entity.BorrowStatus, p repository.PageRequest) ([]entity.BookBorrowLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.BookBorrowLog
	for i := len(r.s.borrowLogs) - 1; i >= 0; i-- {
		l := r.s.borrowLogs[i]
		if status != "" && l.BorrowStatus != status {
			continue
		}
		if contains(l.BookTitle, search) || contains(l.BookAuthor, search) || contains(l.MemberRealName, search) {
			out = append(out, l)
		}
	}
	items, total := page(out, p)
	return items, total, nil
}

// Logs returns every borrow log in insertion order.
func (r *BorrowRepository) Logs() []entity.BookBorrowLog {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.BookBorrowLog(nil), r.s.borrowLogs...)
}

var (
	_ repository.BookRepository   = (*BookRepository)(nil)
	_ repository.BorrowRepository = (*BorrowRepository)(nil)
)
