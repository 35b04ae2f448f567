package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type CtfContestRepository struct {
	pool *pgxpool.Pool
}

func NewCtfContestRepository(pool *pgxpool.Pool) *CtfContestRepository {
	return &CtfContestRepository{pool: pool}
}

const ctfContestSelect = `
	SELECT c.id, c.name, c.description, c.creator_id, m.real_name, c.is_joinable, c.register_time
	FROM ctf_contest c JOIN member m ON m.id = c.creator_id `

func (r *CtfContestRepository) Create(ctx context.Context, c *entity.CtfContest) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO ctf_contest (name, description, creator_id, is_joinable) VALUES ($1, $2, $3, $4)
		RETURNING id, register_time
	`, c.Name, c.Description, c.CreatorID, c.IsJoinable)
	return mapErr(row.Scan(&c.ID, &c.RegisterTime))
}

func (r *CtfContestRepository) GetByID(ctx context.Context, id int64) (*entity.CtfContest, error) {
	c := &entity.CtfContest{}
	err := conn(ctx, r.pool).QueryRow(ctx, ctfContestSelect+`WHERE c.id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatorID, &c.CreatorName, &c.IsJoinable, &c.RegisterTime)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CtfContestRepository) Update(ctx context.Context, c *entity.CtfContest) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE ctf_contest SET name = $1, description = $2, is_joinable = $3 WHERE id = $4
	`, c.Name, c.Description, c.IsJoinable, c.ID))
}

func (r *CtfContestRepository) List(ctx context.Context, page repository.PageRequest) ([]entity.CtfContest, int64, error) {
	db := conn(ctx, r.pool)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM ctf_contest`)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, ctfContestSelect+`ORDER BY c.id DESC LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []entity.CtfContest
	for rows.Next() {
		var c entity.CtfContest
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatorID, &c.CreatorName, &c.IsJoinable, &c.RegisterTime); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

var _ repository.CtfContestRepository = (*CtfContestRepository)(nil)
