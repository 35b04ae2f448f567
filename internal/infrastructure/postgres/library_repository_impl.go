package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookSelect = `
	SELECT b.id, b.title, b.author, b.total_quantity, b.current_quantity, b.thumbnail_id, COALESCE(t.path, ''), b.register_date
	FROM book b LEFT JOIN thumbnail t ON t.id = b.thumbnail_id `

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO book (title, author, total_quantity, current_quantity, thumbnail_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, register_date
	`, b.Title, b.Author, b.TotalQuantity, b.CurrentQuantity, b.ThumbnailID)
	return mapErr(row.Scan(&b.ID, &b.RegisterDate))
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	b := &entity.Book{}
	err := conn(ctx, r.pool).QueryRow(ctx, bookSelect+`WHERE b.id = $1`, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.TotalQuantity, &b.CurrentQuantity, &b.ThumbnailID, &b.ThumbnailPath, &b.RegisterDate)
	if err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE book SET title = $1, author = $2, total_quantity = $3, current_quantity = $4, thumbnail_id = $5
		WHERE id = $6
	`, b.Title, b.Author, b.TotalQuantity, b.CurrentQuantity, b.ThumbnailID, b.ID))
}

func (r *BookRepository) AdjustStock(ctx context.Context, bookID int64, delta int) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE book SET current_quantity = current_quantity + $2
		WHERE id = $1 AND current_quantity + $2 BETWEEN 0 AND total_quantity
	`, bookID, delta)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookRepository) List(ctx context.Context, search string, page repository.PageRequest) ([]entity.Book, int64, error) {
	db := conn(ctx, r.pool)
	const where = `WHERE (b.title ILIKE '%' || $1 || '%' OR b.author ILIKE '%' || $1 || '%') `
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM book b `+where, search)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, bookSelect+where+`ORDER BY b.id DESC LIMIT $2 OFFSET $3`, search, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.TotalQuantity, &b.CurrentQuantity, &b.ThumbnailID,
			&b.ThumbnailPath, &b.RegisterDate); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

type BorrowRepository struct {
	pool *pgxpool.Pool
}

func NewBorrowRepository(pool *pgxpool.Pool) *BorrowRepository {
	return &BorrowRepository{pool: pool}
}

const borrowSelect = `
	SELECT i.id, i.member_id, m.real_name, m.email_address, i.book_id, b.title, b.author, i.status,
	       i.register_time, i.borrow_date, i.expire_date, i.last_request_date
	FROM book_borrow_info i
	JOIN member m ON m.id = i.member_id
	JOIN book b ON b.id = i.book_id `

func scanBorrow(row pgx.Row) (*entity.BookBorrowInfo, error) {
	b := &entity.BookBorrowInfo{}
	var status string
	if err := row.Scan(&b.ID, &b.MemberID, &b.MemberRealName, &b.MemberEmail, &b.BookID, &b.BookTitle, &b.BookAuthor,
		&status, &b.RegisterTime, &b.BorrowDate, &b.ExpireDate, &b.LastRequestDate); err != nil {
		return nil, mapErr(err)
	}
	b.Status = entity.BorrowStatus(status)
	return b, nil
}

func collectBorrows(rows pgx.Rows) ([]entity.BookBorrowInfo, error) {
	defer rows.Close()
	var out []entity.BookBorrowInfo
	for rows.Next() {
		b, err := scanBorrow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BorrowRepository) Create(ctx context.Context, b *entity.BookBorrowInfo) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO book_borrow_info (member_id, book_id, status, last_request_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, register_time
	`, b.MemberID, b.BookID, string(b.Status), b.LastRequestDate)
	return mapErr(row.Scan(&b.ID, &b.RegisterTime))
}

func (r *BorrowRepository) GetByID(ctx context.Context, id int64) (*entity.BookBorrowInfo, error) {
	return scanBorrow(conn(ctx, r.pool).QueryRow(ctx, borrowSelect+`WHERE i.id = $1`, id))
}

func (r *BorrowRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.BookBorrowInfo, error) {
	return scanBorrow(conn(ctx, r.pool).QueryRow(ctx, borrowSelect+`WHERE i.id = $1 FOR UPDATE OF i`, id))
}

func (r *BorrowRepository) Update(ctx context.Context, b *entity.BookBorrowInfo) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE book_borrow_info SET status = $1, borrow_date = $2, expire_date = $3, last_request_date = $4
		WHERE id = $5
	`, string(b.Status), b.BorrowDate, b.ExpireDate, b.LastRequestDate, b.ID))
}

// borrowWhere builds the status condition for a filter. $1 is always now.
func borrowWhere(filter repository.BorrowFilter) string {
	switch filter {
	case repository.BorrowFilterRequests:
		return `WHERE i.status = 'REQUESTS' AND $1::timestamptz IS NOT NULL `
	case repository.BorrowFilterWillReturn:
		return `WHERE i.status = 'RETURN_REQUESTS' AND $1::timestamptz IS NOT NULL `
	case repository.BorrowFilterOverdue:
		return `WHERE i.status IN ('IN_BORROWING', 'RETURN_REQUESTS') AND i.expire_date < $1 `
	default:
		return `WHERE i.status IN ('REQUESTS', 'IN_BORROWING', 'RETURN_REQUESTS') AND $1::timestamptz IS NOT NULL `
	}
}

func (r *BorrowRepository) List(ctx context.Context, filter repository.BorrowFilter, now time.Time, page repository.PageRequest) ([]entity.BookBorrowInfo, int64, error) {
	db := conn(ctx, r.pool)
	where := borrowWhere(filter)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM book_borrow_info i `+where, now)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, borrowSelect+where+`ORDER BY i.last_request_date DESC, i.id DESC LIMIT $2 OFFSET $3`,
		now, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := collectBorrows(rows)
	return out, total, err
}

func (r *BorrowRepository) CountActiveByMember(ctx context.Context, memberID int64) (int, error) {
	n, err := countRows(ctx, conn(ctx, r.pool), `
		SELECT COUNT(*) FROM book_borrow_info
		WHERE member_id = $1 AND status IN ('REQUESTS', 'IN_BORROWING', 'RETURN_REQUESTS')
	`, memberID)
	return int(n), err
}

func (r *BorrowRepository) ListOverdue(ctx context.Context, now time.Time) ([]entity.BookBorrowInfo, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, borrowSelect+borrowWhere(repository.BorrowFilterOverdue)+`ORDER BY i.expire_date`, now)
	if err != nil {
		return nil, err
	}
	return collectBorrows(rows)
}

func (r *BorrowRepository) CreateLog(ctx context.Context, l *entity.BookBorrowLog) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO book_borrow_log (borrow_info_id, book_title, book_author, member_real_name, borrow_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, time
	`, l.BorrowInfoID, l.BookTitle, l.BookAuthor, l.MemberRealName, string(l.BorrowStatus))
	return mapErr(row.Scan(&l.ID, &l.Time))
}

func (r *BorrowRepository) SearchLogs(ctx context.Context, search string, status entity.BorrowStatus, page repository.PageRequest) ([]entity.BookBorrowLog, int64, error) {
	db := conn(ctx, r.pool)
	const where = `
		WHERE ($2 = '' OR borrow_status = $2)
		  AND (book_title ILIKE '%' || $1 || '%' OR book_author ILIKE '%' || $1 || '%' OR member_real_name ILIKE '%' || $1 || '%') `
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM book_borrow_log `+where, search, string(status))
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, `
		SELECT id, COALESCE(borrow_info_id, 0), book_title, book_author, member_real_name, borrow_status, time
		FROM book_borrow_log `+where+`ORDER BY id DESC LIMIT $3 OFFSET $4`, search, string(status), page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []entity.BookBorrowLog
	for rows.Next() {
		var l entity.BookBorrowLog
		var st string
		if err := rows.Scan(&l.ID, &l.BorrowInfoID, &l.BookTitle, &l.BookAuthor, &l.MemberRealName, &st, &l.Time); err != nil {
			return nil, 0, err
		}
		l.BorrowStatus = entity.BorrowStatus(st)
		out = append(out, l)
	}
	return out, total, rows.Err()
}

var (
	_ repository.BookRepository   = (*BookRepository)(nil)
	_ repository.BorrowRepository = (*BorrowRepository)(nil)
)
