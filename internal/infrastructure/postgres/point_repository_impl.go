package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type PointLogRepository struct {
	pool *pgxpool.Pool
}

func NewPointLogRepository(pool *pgxpool.Pool) *PointLogRepository {
	return &PointLogRepository{pool: pool}
}

func (r *PointLogRepository) Create(ctx context.Context, l *entity.PointLog) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO point_log (member_id, point, detail, presented_id, is_spent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, time
	`, l.MemberID, l.Point, l.Detail, l.PresentedID, l.IsSpent)
	return mapErr(row.Scan(&l.ID, &l.Time))
}

func (r *PointLogRepository) ListByMember(ctx context.Context, memberID int64, page repository.PageRequest) ([]entity.PointLog, int64, error) {
	db := conn(ctx, r.pool)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM point_log WHERE member_id = $1`, memberID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, `
		SELECT id, member_id, point, detail, presented_id, is_spent, time
		FROM point_log WHERE member_id = $1
		ORDER BY time DESC, id DESC LIMIT $2 OFFSET $3
	`, memberID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []entity.PointLog
	for rows.Next() {
		var l entity.PointLog
		if err := rows.Scan(&l.ID, &l.MemberID, &l.Point, &l.Detail, &l.PresentedID, &l.IsSpent, &l.Time); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

type MeritRepository struct {
	pool *pgxpool.Pool
}

func NewMeritRepository(pool *pgxpool.Pool) *MeritRepository {
	return &MeritRepository{pool: pool}
}

func (r *MeritRepository) CreateType(ctx context.Context, t *entity.MeritType) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO merit_type (merit, is_merit, detail) VALUES ($1, $2, $3) RETURNING id
	`, t.Merit, t.IsMerit, t.Detail)
	return mapErr(row.Scan(&t.ID))
}

func (r *MeritRepository) GetType(ctx context.Context, id int64) (*entity.MeritType, error) {
	t := &entity.MeritType{}
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, merit, is_merit, detail FROM merit_type WHERE id = $1`, id).
		Scan(&t.ID, &t.Merit, &t.IsMerit, &t.Detail)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (r *MeritRepository) ListTypes(ctx context.Context) ([]entity.MeritType, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT id, merit, is_merit, detail FROM merit_type ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.MeritType
	for rows.Next() {
		var t entity.MeritType
		if err := rows.Scan(&t.ID, &t.Merit, &t.IsMerit, &t.Detail); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *MeritRepository) CreateLog(ctx context.Context, l *entity.MeritLog) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO merit_log (awarder_id, giver_id, merit_type_id, merit, is_merit, detail)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, time
	`, l.AwarderID, l.GiverID, l.MeritTypeID, l.Merit, l.IsMerit, l.Detail)
	return mapErr(row.Scan(&l.ID, &l.Time))
}

const meritLogSelect = `
	SELECT l.id, l.awarder_id, a.real_name, l.giver_id, g.real_name, l.merit_type_id, l.merit, l.is_merit, l.detail, l.time
	FROM merit_log l
	JOIN member a ON a.id = l.awarder_id
	JOIN member g ON g.id = l.giver_id `

func collectMeritLogs(rows pgx.Rows) ([]entity.MeritLog, error) {
	defer rows.Close()
	var out []entity.MeritLog
	for rows.Next() {
		var l entity.MeritLog
		if err := rows.Scan(&l.ID, &l.AwarderID, &l.AwarderName, &l.GiverID, &l.GiverName, &l.MeritTypeID,
			&l.Merit, &l.IsMerit, &l.Detail, &l.Time); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *MeritRepository) ListLogs(ctx context.Context, page repository.PageRequest) ([]entity.MeritLog, int64, error) {
	db := conn(ctx, r.pool)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM merit_log`)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, meritLogSelect+`ORDER BY l.time DESC, l.id DESC LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := collectMeritLogs(rows)
	return out, total, err
}

func (r *MeritRepository) ListLogsByAwarder(ctx context.Context, awarderID int64, page repository.PageRequest) ([]entity.MeritLog, int64, error) {
	db := conn(ctx, r.pool)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM merit_log WHERE awarder_id = $1`, awarderID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, meritLogSelect+`WHERE l.awarder_id = $1 ORDER BY l.time DESC, l.id DESC LIMIT $2 OFFSET $3`,
		awarderID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := collectMeritLogs(rows)
	return out, total, err
}

func (r *MeritRepository) AllLogs(ctx context.Context) ([]entity.MeritLog, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, meritLogSelect+`ORDER BY l.time, l.id`)
	if err != nil {
		return nil, err
	}
	return collectMeritLogs(rows)
}

var (
	_ repository.PointLogRepository = (*PointLogRepository)(nil)
	_ repository.MeritRepository    = (*MeritRepository)(nil)
)
