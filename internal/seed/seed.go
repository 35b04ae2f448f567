// Package seed inserts the reference rows the homepage expects to exist.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

// Category is a board created on first boot.
type Category struct {
	Name string
	Slug string
}

// MeritType is a merit or demerit reason created on first boot.
type MeritType struct {
	Merit   int
	IsMerit bool
	Detail  string
}

var DefaultCategories = []Category{
	{Name: "공지사항", Slug: "notice"},
	{Name: "자유게시판", Slug: "free"},
	{Name: "익명게시판", Slug: "anonymous"},
	{Name: "정보게시판", Slug: "info"},
}

var DefaultMeritTypes = []MeritType{
	{Merit: 3, IsMerit: true, Detail: "세미나 발표"},
	{Merit: 2, IsMerit: true, Detail: "행사 참여"},
	{Merit: 2, IsMerit: false, Detail: "무단 결석"},
	{Merit: 1, IsMerit: false, Detail: "지각"},
}

// Admin is an optional member created with every job listed in Jobs.
type Admin struct {
	LoginID      string
	Email        string
	PasswordHash string
	RealName     string
	Jobs         []entity.JobType
}

type Options struct {
	VirtualMemberID int64
	Categories      []Category
	MeritTypes      []MeritType
	Admin           *Admin
}

// Report counts the rows inserted by Run. Existing rows are not counted.
type Report struct {
	Jobs          int64
	VirtualMember bool
	Categories    int64
	MeritTypes    int64
	AdminID       int64
}

const (
	upsertJob = `INSERT INTO member_job (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`

	insertVirtualMember = `
		INSERT INTO member (id, login_id, email_address, password, real_name, nickname)
		VALUES ($1, 'virtual_member', 'virtual_member@keeper.local', '!', '(알 수 없음)', '(알 수 없음)')
		ON CONFLICT (id) DO NOTHING`

	syncMemberSeq = `SELECT setval(pg_get_serial_sequence('member', 'id'), (SELECT MAX(id) FROM member))`

	upsertCategory = `INSERT INTO category (name, slug) VALUES ($1, $2) ON CONFLICT (slug) DO NOTHING`

	insertMeritType = `
		INSERT INTO merit_type (merit, is_merit, detail)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM merit_type WHERE detail = $3 AND is_merit = $2)`

	upsertAdmin = `
		INSERT INTO member (login_id, email_address, password, real_name, nickname)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (login_id) DO UPDATE SET password = EXCLUDED.password
		RETURNING id`

	grantJob = `
		INSERT INTO member_has_member_job (member_id, member_job_id)
		SELECT $1, id FROM member_job WHERE name = $2
		ON CONFLICT DO NOTHING`
)

// Run applies every seed in one transaction. Running it twice is a no-op.
func Run(ctx context.Context, db *sql.DB, opts Options) (Report, error) {
	var rep Report
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return rep, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, job := range entity.AllJobs {
		n, err := exec(ctx, tx, upsertJob, string(job))
		if err != nil {
			return rep, fmt.Errorf("seed job %s: %w", job, err)
		}
		rep.Jobs += n
	}

	if opts.VirtualMemberID > 0 {
		n, err := exec(ctx, tx, insertVirtualMember, opts.VirtualMemberID)
		if err != nil {
			return rep, fmt.Errorf("seed virtual member: %w", err)
		}
		rep.VirtualMember = n > 0
		if _, err := tx.ExecContext(ctx, syncMemberSeq); err != nil {
			return rep, fmt.Errorf("sync member sequence: %w", err)
		}
	}

	for _, c := range opts.Categories {
		n, err := exec(ctx, tx, upsertCategory, c.Name, c.Slug)
		if err != nil {
			return rep, fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
		rep.Categories += n
	}

	for _, m := range opts.MeritTypes {
		n, err := exec(ctx, tx, insertMeritType, m.Merit, m.IsMerit, m.Detail)
		if err != nil {
			return rep, fmt.Errorf("seed merit type %s: %w", m.Detail, err)
		}
		rep.MeritTypes += n
	}

	if a := opts.Admin; a != nil {
		if err := tx.QueryRowContext(ctx, upsertAdmin, a.LoginID, a.Email, a.PasswordHash, a.RealName).Scan(&rep.AdminID); err != nil {
			return rep, fmt.Errorf("seed admin: %w", err)
		}
		for _, job := range a.Jobs {
			if _, err := tx.ExecContext(ctx, grantJob, rep.AdminID, string(job)); err != nil {
				return rep, fmt.Errorf("grant %s: %w", job, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return rep, fmt.Errorf("commit: %w", err)
	}
	return rep, nil
}

func exec(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
