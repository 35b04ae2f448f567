package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type ElectionRepository struct {
	pool *pgxpool.Pool
}

func NewElectionRepository(pool *pgxpool.Pool) *ElectionRepository {
	return &ElectionRepository{pool: pool}
}

func (r *ElectionRepository) Create(ctx context.Context, e *entity.Election) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO election (name, description, member_id, is_available) VALUES ($1, $2, $3, $4)
		RETURNING id, register_time
	`, e.Name, e.Description, e.MemberID, e.IsAvailable)
	return mapErr(row.Scan(&e.ID, &e.RegisterTime))
}

func (r *ElectionRepository) GetByID(ctx context.Context, id int64) (*entity.Election, error) {
	e := &entity.Election{}
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT id, name, description, member_id, register_time, is_available FROM election WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Description, &e.MemberID, &e.RegisterTime, &e.IsAvailable)
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *ElectionRepository) Update(ctx context.Context, e *entity.Election) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE election SET name = $1, description = $2, is_available = $3 WHERE id = $4
	`, e.Name, e.Description, e.IsAvailable, e.ID))
}

func (r *ElectionRepository) Delete(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM election WHERE id = $1`, id))
}

func (r *ElectionRepository) List(ctx context.Context, page repository.PageRequest) ([]entity.Election, int64, error) {
	db := conn(ctx, r.pool)
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM election`)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, `
		SELECT id, name, description, member_id, register_time, is_available
		FROM election ORDER BY id DESC LIMIT $1 OFFSET $2
	`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []entity.Election
	for rows.Next() {
		var e entity.Election
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MemberID, &e.RegisterTime, &e.IsAvailable); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *ElectionRepository) CreateCandidate(ctx context.Context, c *entity.ElectionCandidate) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO election_candidate (election_id, member_id, member_job_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, register_time
	`, c.ElectionID, c.MemberID, c.MemberJobID, c.Description)
	return mapErr(row.Scan(&c.ID, &c.RegisterTime))
}

const candidateSelect = `
	SELECT c.id, c.election_id, c.member_id, m.real_name, c.member_job_id, j.name, c.description,
	       c.vote_count, c.register_time
	FROM election_candidate c
	JOIN member m ON m.id = c.member_id
	JOIN member_job j ON j.id = c.member_job_id `

func (r *ElectionRepository) GetCandidate(ctx context.Context, electionID, candidateID int64) (*entity.ElectionCandidate, error) {
	c := &entity.ElectionCandidate{}
	var job string
	err := conn(ctx, r.pool).QueryRow(ctx, candidateSelect+`WHERE c.election_id = $1 AND c.id = $2`, electionID, candidateID).
		Scan(&c.ID, &c.ElectionID, &c.MemberID, &c.MemberName, &c.MemberJobID, &job, &c.Description, &c.VoteCount, &c.RegisterTime)
	if err != nil {
		return nil, mapErr(err)
	}
	c.JobName = entity.JobType(job)
	return c, nil
}

func (r *ElectionRepository) DeleteCandidate(ctx context.Context, candidateID int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM election_candidate WHERE id = $1`, candidateID))
}

func (r *ElectionRepository) ListCandidates(ctx context.Context, electionID int64) ([]entity.ElectionCandidate, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, candidateSelect+`WHERE c.election_id = $1 ORDER BY c.member_job_id, c.id`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.ElectionCandidate
	for rows.Next() {
		var c entity.ElectionCandidate
		var job string
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.MemberID, &c.MemberName, &c.MemberJobID, &job,
			&c.Description, &c.VoteCount, &c.RegisterTime); err != nil {
			return nil, err
		}
		c.JobName = entity.JobType(job)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ElectionRepository) IncrementVote(ctx context.Context, candidateID int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `UPDATE election_candidate SET vote_count = vote_count + 1 WHERE id = $1`, candidateID))
}

func (r *ElectionRepository) AddVoter(ctx context.Context, v *entity.ElectionVoter) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO election_voter (election_id, member_id, is_voted) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, v.ElectionID, v.MemberID, v.IsVoted)
	return mapErr(err)
}

func (r *ElectionRepository) GetVoter(ctx context.Context, electionID, memberID int64) (*entity.ElectionVoter, error) {
	v := &entity.ElectionVoter{}
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT election_id, member_id, is_voted FROM election_voter WHERE election_id = $1 AND member_id = $2
	`, electionID, memberID).Scan(&v.ElectionID, &v.MemberID, &v.IsVoted)
	if err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (r *ElectionRepository) MarkVoted(ctx context.Context, electionID, memberID int64) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE election_voter SET is_voted = TRUE
		WHERE election_id = $1 AND member_id = $2 AND is_voted = FALSE
	`, electionID, memberID)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

var _ repository.ElectionRepository = (*ElectionRepository)(nil)
