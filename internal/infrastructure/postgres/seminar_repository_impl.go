package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type SeminarRepository struct {
	pool *pgxpool.Pool
}

func NewSeminarRepository(pool *pgxpool.Pool) *SeminarRepository {
	return &SeminarRepository{pool: pool}
}

const seminarSelect = `
	SELECT id, name, open_time, attendance_close_time, lateness_close_time, attendance_code, starter_id, register_time
	FROM seminar `

func scanSeminar(row pgx.Row) (*entity.Seminar, error) {
	s := &entity.Seminar{}
	if err := row.Scan(&s.ID, &s.Name, &s.OpenTime, &s.AttendanceCloseTime, &s.LatenessCloseTime,
		&s.AttendanceCode, &s.StarterID, &s.RegisterTime); err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func collectSeminars(rows pgx.Rows) ([]entity.Seminar, error) {
	defer rows.Close()
	var out []entity.Seminar
	for rows.Next() {
		s, err := scanSeminar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SeminarRepository) Create(ctx context.Context, s *entity.Seminar) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO seminar (name, open_time) VALUES ($1, $2) RETURNING id, register_time
	`, s.Name, s.OpenTime)
	return mapErr(row.Scan(&s.ID, &s.RegisterTime))
}

func (r *SeminarRepository) GetByID(ctx context.Context, id int64) (*entity.Seminar, error) {
	return scanSeminar(conn(ctx, r.pool).QueryRow(ctx, seminarSelect+`WHERE id = $1`, id))
}

func (r *SeminarRepository) Update(ctx context.Context, s *entity.Seminar) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE seminar
		SET name = $1, attendance_close_time = $2, lateness_close_time = $3, attendance_code = $4, starter_id = $5
		WHERE id = $6
	`, s.Name, s.AttendanceCloseTime, s.LatenessCloseTime, s.AttendanceCode, s.StarterID, s.ID))
}

func (r *SeminarRepository) Delete(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM seminar WHERE id = $1`, id))
}

func (r *SeminarRepository) List(ctx context.Context) ([]entity.Seminar, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, seminarSelect+`ORDER BY open_time DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectSeminars(rows)
}

func (r *SeminarRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Seminar, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, seminarSelect+`WHERE open_time >= $1 AND open_time < $2 ORDER BY open_time`, from, to)
	if err != nil {
		return nil, err
	}
	return collectSeminars(rows)
}

func (r *SeminarRepository) FindAvailable(ctx context.Context, now time.Time) (*entity.Seminar, error) {
	return scanSeminar(conn(ctx, r.pool).QueryRow(ctx, seminarSelect+`
		WHERE attendance_code IS NOT NULL AND lateness_close_time >= $1
		ORDER BY open_time DESC LIMIT 1`, now))
}

func (r *SeminarRepository) CreateAttendance(ctx context.Context, a *entity.SeminarAttendance) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO seminar_attendance (seminar_id, member_id, status, attend_time) VALUES ($1, $2, $3, $4)
		RETURNING id
	`, a.SeminarID, a.MemberID, string(a.Status), a.AttendTime)
	return mapErr(row.Scan(&a.ID))
}

func (r *SeminarRepository) ExistsAttendance(ctx context.Context, seminarID, memberID int64) (bool, error) {
	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM seminar_attendance WHERE seminar_id = $1 AND member_id = $2)
	`, seminarID, memberID).Scan(&ok)
	return ok, err
}

const attendanceSelect = `
	SELECT a.id, a.seminar_id, a.member_id, m.real_name, a.status, a.attend_time, e.absence_excuse
	FROM seminar_attendance a
	JOIN member m ON m.id = a.member_id
	LEFT JOIN seminar_attendance_excuse e ON e.seminar_attendance_id = a.id `

func scanAttendance(row pgx.Row) (*entity.SeminarAttendance, error) {
	a := &entity.SeminarAttendance{}
	var status string
	if err := row.Scan(&a.ID, &a.SeminarID, &a.MemberID, &a.MemberName, &status, &a.AttendTime, &a.Excuse); err != nil {
		return nil, mapErr(err)
	}
	a.Status = entity.AttendanceStatus(status)
	return a, nil
}

func (r *SeminarRepository) GetAttendance(ctx context.Context, seminarID, memberID int64) (*entity.SeminarAttendance, error) {
	return scanAttendance(conn(ctx, r.pool).QueryRow(ctx, attendanceSelect+`WHERE a.seminar_id = $1 AND a.member_id = $2`, seminarID, memberID))
}

func (r *SeminarRepository) ListAttendances(ctx context.Context, seminarID int64) ([]entity.SeminarAttendance, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, attendanceSelect+`WHERE a.seminar_id = $1 ORDER BY a.attend_time, a.id`, seminarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.SeminarAttendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *SeminarRepository) UpdateAttendanceStatus(ctx context.Context, attendanceID int64, status entity.AttendanceStatus) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `UPDATE seminar_attendance SET status = $1 WHERE id = $2`, string(status), attendanceID))
}

func (r *SeminarRepository) SaveExcuse(ctx context.Context, attendanceID int64, excuse string) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO seminar_attendance_excuse (seminar_attendance_id, absence_excuse) VALUES ($1, $2)
		ON CONFLICT (seminar_attendance_id) DO UPDATE SET absence_excuse = EXCLUDED.absence_excuse
	`, attendanceID, excuse)
	return mapErr(err)
}

var _ repository.SeminarRepository = (*SeminarRepository)(nil)
