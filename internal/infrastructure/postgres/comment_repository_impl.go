package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.member_id, c.parent_id, c.content, c.ip_address, c.register_time,
	       m.nickname, COALESCE(t.path, ''),
	       (SELECT COUNT(*) FROM member_has_comment_like l WHERE l.comment_id = c.id),
	       (SELECT COUNT(*) FROM member_has_comment_dislike d WHERE d.comment_id = c.id)
	FROM comment c
	JOIN member m ON m.id = c.member_id
	LEFT JOIN thumbnail t ON t.id = m.thumbnail_id `

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO comment (post_id, member_id, parent_id, content, ip_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, register_time
	`, c.PostID, c.MemberID, c.ParentID, c.Content, c.IPAddress)
	return mapErr(row.Scan(&c.ID, &c.RegisterTime))
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := conn(ctx, r.pool).QueryRow(ctx, commentSelect+`WHERE c.id = $1`, id).Scan(
		&c.ID, &c.PostID, &c.MemberID, &c.ParentID, &c.Content, &c.IPAddress, &c.RegisterTime,
		&c.WriterName, &c.WriterThumbnailPath, &c.LikeCount, &c.DislikeCount)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]entity.Comment, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, commentSelect+`WHERE c.post_id = $1 ORDER BY c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.MemberID, &c.ParentID, &c.Content, &c.IPAddress, &c.RegisterTime,
			&c.WriterName, &c.WriterThumbnailPath, &c.LikeCount, &c.DislikeCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `UPDATE comment SET member_id = $1, content = $2 WHERE id = $3`,
		c.MemberID, c.Content, c.ID))
}

func (r *CommentRepository) ToggleLike(ctx context.Context, memberID, commentID int64) (bool, error) {
	return toggle(ctx, conn(ctx, r.pool), "member_has_comment_like", "comment_id", memberID, commentID)
}

func (r *CommentRepository) ToggleDislike(ctx context.Context, memberID, commentID int64) (bool, error) {
	return toggle(ctx, conn(ctx, r.pool), "member_has_comment_dislike", "comment_id", memberID, commentID)
}

func (r *CommentRepository) ClearReactions(ctx context.Context, commentID int64) error {
	db := conn(ctx, r.pool)
	if _, err := db.Exec(ctx, `DELETE FROM member_has_comment_like WHERE comment_id = $1`, commentID); err != nil {
		return err
	}
	_, err := db.Exec(ctx, `DELETE FROM member_has_comment_dislike WHERE comment_id = $1`, commentID)
	return err
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
