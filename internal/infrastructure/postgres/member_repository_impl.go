package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const memberColumns = `
	m.id, m.login_id, m.email_address, m.password, m.real_name, m.nickname, m.birthday, m.student_id,
	m.generation::float8, m.point, m.level, m.merit, m.demerit, m.total_attendance, m.thumbnail_id,
	COALESCE(t.path, ''), m.register_time,
	ARRAY(SELECT j.name FROM member_has_member_job mj JOIN member_job j ON j.id = mj.member_job_id
	      WHERE mj.member_id = m.id ORDER BY j.id)`

const memberFrom = ` FROM member m LEFT JOIN thumbnail t ON t.id = m.thumbnail_id `

func scanMember(row pgx.Row) (*entity.Member, error) {
	m := &entity.Member{}
	var jobs []string
	if err := row.Scan(&m.ID, &m.LoginID, &m.EmailAddress, &m.Password, &m.RealName, &m.NickName,
		&m.Birthday, &m.StudentID, &m.Generation, &m.Point, &m.Level, &m.Merit, &m.Demerit,
		&m.TotalAttendance, &m.ThumbnailID, &m.ThumbnailPath, &m.RegisterTime, &jobs); err != nil {
		return nil, mapErr(err)
	}
	m.Jobs = make([]entity.JobType, 0, len(jobs))
	for _, j := range jobs {
		m.Jobs = append(m.Jobs, entity.JobType(j))
	}
	return m, nil
}

func (r *MemberRepository) Create(ctx context.Context, m *entity.Member) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO member (login_id, email_address, password, real_name, nickname, birthday, student_id,
		                    generation, point, level, merit, demerit, total_attendance, thumbnail_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, register_time
	`, m.LoginID, m.EmailAddress, m.Password, m.RealName, m.NickName, m.Birthday, m.StudentID,
		m.Generation, m.Point, m.Level, m.Merit, m.Demerit, m.TotalAttendance, m.ThumbnailID)
	return mapErr(row.Scan(&m.ID, &m.RegisterTime))
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*entity.Member, error) {
	return scanMember(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+memberColumns+memberFrom+`WHERE m.id = $1`, id))
}

func (r *MemberRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Member, error) {
	return scanMember(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+memberColumns+memberFrom+`WHERE m.id = $1 FOR UPDATE OF m`, id))
}

func (r *MemberRepository) GetByLoginID(ctx context.Context, loginID string) (*entity.Member, error) {
	return scanMember(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+memberColumns+memberFrom+`WHERE m.login_id = $1`, loginID))
}

func (r *MemberRepository) exists(ctx context.Context, column, value string) (bool, error) {
	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM member WHERE `+column+` = $1)`, value).Scan(&ok)
	return ok, err
}

func (r *MemberRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	return r.exists(ctx, "login_id", loginID)
}

func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email_address", email)
}

func (r *MemberRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	return r.exists(ctx, "student_id", studentID)
}

func (r *MemberRepository) Update(ctx context.Context, m *entity.Member) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE member SET email_address = $1, nickname = $2, thumbnail_id = $3 WHERE id = $4
	`, m.EmailAddress, m.NickName, m.ThumbnailID, m.ID))
}

func (r *MemberRepository) AddPoint(ctx context.Context, memberID int64, delta int) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE member SET point = point + $2 WHERE id = $1 AND point + $2 >= 0
	`, memberID, delta)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *MemberRepository) AddMerit(ctx context.Context, memberID int64, merit, demerit int) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE member SET merit = merit + $2, demerit = demerit + $3 WHERE id = $1
	`, memberID, merit, demerit))
}

func (r *MemberRepository) AddAttendance(ctx context.Context, memberID int64, n int) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE member SET total_attendance = total_attendance + $2 WHERE id = $1
	`, memberID, n))
}

func (r *MemberRepository) AssignJob(ctx context.Context, memberID int64, job entity.JobType) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO member_has_member_job (member_id, member_job_id)
		SELECT $1, id FROM member_job WHERE name = $2
		ON CONFLICT DO NOTHING
	`, memberID, string(job)))
}

func (r *MemberRepository) RemoveJob(ctx context.Context, memberID int64, job entity.JobType) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		DELETE FROM member_has_member_job
		WHERE member_id = $1 AND member_job_id = (SELECT id FROM member_job WHERE name = $2)
	`, memberID, string(job))
	return err
}

func (r *MemberRepository) GetJob(ctx context.Context, jobID int64) (*entity.MemberJob, error) {
	j := &entity.MemberJob{}
	var name string
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, name FROM member_job WHERE id = $1`, jobID).Scan(&j.ID, &name); err != nil {
		return nil, mapErr(err)
	}
	j.Name = entity.JobType(name)
	return j, nil
}

func (r *MemberRepository) ListByPoint(ctx context.Context, page repository.PageRequest) ([]entity.Member, int64, error) {
	db := conn(ctx, r.pool)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM member`)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, `SELECT `+memberColumns+memberFrom+`ORDER BY m.point DESC, m.id LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]entity.Member, 0, page.Size)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	return out, total, rows.Err()
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
