package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO category (name, slug, parent_id) VALUES ($1, $2, $3) RETURNING id
	`, c.Name, c.Slug, c.ParentID)
	return mapErr(row.Scan(&c.ID))
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c := &entity.Category{}
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, name, slug, parent_id FROM category WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT id, name, slug, parent_id FROM category ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete relies on ON DELETE CASCADE from post.category_id.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM category WHERE id = $1`, id))
}

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `
	p.id, p.category_id, p.member_id, m.nickname, p.title, p.content, p.visit_count, p.ip_address,
	p.allow_comment, p.is_notice, p.is_secret, p.is_temp, p.password, p.thumbnail_id, COALESCE(t.path, ''),
	(SELECT COUNT(*) FROM member_has_post_like l WHERE l.post_id = p.id),
	(SELECT COUNT(*) FROM member_has_post_dislike d WHERE d.post_id = p.id),
	p.register_time, p.update_time`

const postFrom = ` FROM post p JOIN member m ON m.id = p.member_id LEFT JOIN thumbnail t ON t.id = p.thumbnail_id `

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.CategoryID, &p.MemberID, &p.WriterName, &p.Title, &p.Content, &p.VisitCount,
		&p.IPAddress, &p.AllowComment, &p.IsNotice, &p.IsSecret, &p.IsTemp, &p.Password, &p.ThumbnailID,
		&p.ThumbnailPath, &p.LikeCount, &p.DislikeCount, &p.RegisterTime, &p.UpdateTime); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func collectPosts(rows pgx.Rows) ([]entity.Post, error) {
	defer rows.Close()
	var out []entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO post (category_id, member_id, title, content, ip_address, allow_comment, is_notice,
		                  is_secret, is_temp, password, thumbnail_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, register_time, update_time
	`, p.CategoryID, p.MemberID, p.Title, p.Content, p.IPAddress, p.AllowComment, p.IsNotice,
		p.IsSecret, p.IsTemp, p.Password, p.ThumbnailID)
	return mapErr(row.Scan(&p.ID, &p.RegisterTime, &p.UpdateTime))
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	return scanPost(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+postColumns+postFrom+`WHERE p.id = $1`, id))
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdateTime = time.Now()
	return affected(conn(ctx, r.pool).Exec(ctx, `
		UPDATE post
		SET category_id = $1, title = $2, content = $3, allow_comment = $4, is_notice = $5, is_secret = $6,
		    is_temp = $7, password = $8, thumbnail_id = $9, update_time = $10
		WHERE id = $11
	`, p.CategoryID, p.Title, p.Content, p.AllowComment, p.IsNotice, p.IsSecret, p.IsTemp, p.Password,
		p.ThumbnailID, p.UpdateTime, p.ID))
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM post WHERE id = $1`, id))
}

func (r *PostRepository) List(ctx context.Context, categoryID *int64, page repository.PageRequest) ([]entity.Post, int64, error) {
	db := conn(ctx, r.pool)
	const where = `WHERE p.is_temp = FALSE AND ($1::bigint IS NULL OR p.category_id = $1) `
	total, err := countRows(ctx, db, `SELECT COUNT(*) FROM post p `+where, categoryID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := db.Query(ctx, `SELECT `+postColumns+postFrom+where+
		`ORDER BY p.is_notice DESC, p.register_time DESC, p.id DESC LIMIT $2 OFFSET $3`,
		categoryID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := collectPosts(rows)
	return out, total, err
}

func (r *PostRepository) ListByIDs(ctx context.Context, ids []int64) ([]entity.Post, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+postColumns+postFrom+`WHERE p.id = ANY($1) ORDER BY array_position($1, p.id)`, ids)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (r *PostRepository) AddFile(ctx context.Context, postID, fileID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `INSERT INTO post_has_file (post_id, file_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, fileID)
	return mapErr(err)
}

func (r *PostRepository) MarkRead(ctx context.Context, memberID, postID int64) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO member_read_post (member_id, post_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
	`, memberID, postID)
	if err != nil {
		return false, mapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostRepository) IncrementVisit(ctx context.Context, postID int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `UPDATE post SET visit_count = visit_count + 1 WHERE id = $1`, postID))
}

func (r *PostRepository) ToggleLike(ctx context.Context, memberID, postID int64) (bool, error) {
	return toggle(ctx, conn(ctx, r.pool), "member_has_post_like", "post_id", memberID, postID)
}

func (r *PostRepository) ToggleDislike(ctx context.Context, memberID, postID int64) (bool, error) {
	return toggle(ctx, conn(ctx, r.pool), "member_has_post_dislike", "post_id", memberID, postID)
}

// toggle deletes the (member, target) pair when present and inserts it otherwise.
func toggle(ctx context.Context, db DBTX, table, column string, memberID, targetID int64) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE member_id = $1 AND `+column+` = $2`, memberID, targetID)
	if err != nil {
		return false, mapErr(err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	if _, err := db.Exec(ctx, `INSERT INTO `+table+` (member_id, `+column+`) VALUES ($1, $2)`, memberID, targetID); err != nil {
		return false, mapErr(err)
	}
	return true, nil
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.PostRepository     = (*PostRepository)(nil)
)
