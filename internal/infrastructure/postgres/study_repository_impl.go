package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type StudyRepository struct {
	pool *pgxpool.Pool
}

func NewStudyRepository(pool *pgxpool.Pool) *StudyRepository {
	return &StudyRepository{pool: pool}
}

const studySelect = `
	SELECT s.id, s.title, s.information, s.year, s.season, s.git_link, s.note_link, s.etc_link,
	       s.head_member_id, s.thumbnail_id, COALESCE(t.path, ''), s.register_time
	FROM study s LEFT JOIN thumbnail t ON t.id = s.thumbnail_id `

func (r *StudyRepository) Create(ctx context.Context, s *entity.Study) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO study (title, information, year, season, git_link, note_link, etc_link, head_member_id, thumbnail_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, register_time
	`, s.Title, s.Information, s.Year, s.Season, s.GitLink, s.NoteLink, s.EtcLink, s.HeadMemberID, s.ThumbnailID)
	return mapErr(row.Scan(&s.ID, &s.RegisterTime))
}

func (r *StudyRepository) GetByID(ctx context.Context, id int64) (*entity.Study, error) {
	s := &entity.Study{}
	err := conn(ctx, r.pool).QueryRow(ctx, studySelect+`WHERE s.id = $1`, id).Scan(
		&s.ID, &s.Title, &s.Information, &s.Year, &s.Season, &s.GitLink, &s.NoteLink, &s.EtcLink,
		&s.HeadMemberID, &s.ThumbnailID, &s.ThumbnailPath, &s.RegisterTime)
	if err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func (r *StudyRepository) Update(ctx context.Context, s *entity.Study) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE study
		SET title = $1, information = $2, year = $3, season = $4, git_link = $5, note_link = $6, etc_link = $7,
		    thumbnail_id = $8
		WHERE id = $9
	`, s.Title, s.Information, s.Year, s.Season, s.GitLink, s.NoteLink, s.EtcLink, s.ThumbnailID, s.ID))
}

func (r *StudyRepository) Delete(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM study WHERE id = $1`, id))
}

func (r *StudyRepository) List(ctx context.Context, year, season int) ([]entity.Study, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, studySelect+`WHERE s.year = $1 AND s.season = $2 ORDER BY s.id`, year, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Study
	for rows.Next() {
		var s entity.Study
		if err := rows.Scan(&s.ID, &s.Title, &s.Information, &s.Year, &s.Season, &s.GitLink, &s.NoteLink, &s.EtcLink,
			&s.HeadMemberID, &s.ThumbnailID, &s.ThumbnailPath, &s.RegisterTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StudyRepository) AddMember(ctx context.Context, studyID, memberID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO study_has_member (study_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
	`, studyID, memberID)
	return mapErr(err)
}

func (r *StudyRepository) RemoveMember(ctx context.Context, studyID, memberID int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM study_has_member WHERE study_id = $1 AND member_id = $2`, studyID, memberID))
}

func (r *StudyRepository) ListMembers(ctx context.Context, studyID int64) ([]entity.StudyMember, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT m.id, m.real_name FROM study_has_member sm JOIN member m ON m.id = sm.member_id
		WHERE sm.study_id = $1 ORDER BY m.id
	`, studyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.StudyMember
	for rows.Next() {
		var m entity.StudyMember
		if err := rows.Scan(&m.MemberID, &m.RealName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.StudyRepository = (*StudyRepository)(nil)
