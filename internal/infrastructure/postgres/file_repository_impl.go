package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type FileRepository struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

func (r *FileRepository) CreateFile(ctx context.Context, f *entity.File) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO file (file_name, file_path, file_size, upload_time, ip_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, f.FileName, f.FilePath, f.FileSize, f.UploadTime, f.IPAddress)
	return mapErr(row.Scan(&f.ID))
}

func (r *FileRepository) GetFile(ctx context.Context, id int64) (*entity.File, error) {
	f := &entity.File{}
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT id, file_name, file_path, file_size, upload_time, ip_address FROM file WHERE id = $1
	`, id).Scan(&f.ID, &f.FileName, &f.FilePath, &f.FileSize, &f.UploadTime, &f.IPAddress)
	if err != nil {
		return nil, mapErr(err)
	}
	return f, nil
}

func (r *FileRepository) DeleteFile(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM file WHERE id = $1`, id))
}

func (r *FileRepository) CreateThumbnail(ctx context.Context, t *entity.Thumbnail) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `INSERT INTO thumbnail (path, file_id) VALUES ($1, $2) RETURNING id`, t.Path, t.FileID)
	return mapErr(row.Scan(&t.ID))
}

func (r *FileRepository) GetThumbnail(ctx context.Context, id int64) (*entity.Thumbnail, error) {
	t := &entity.Thumbnail{}
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, path, file_id FROM thumbnail WHERE id = $1`, id).
		Scan(&t.ID, &t.Path, &t.FileID)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (r *FileRepository) DeleteThumbnail(ctx context.Context, id int64) error {
	return affected(conn(ctx, r.pool).Exec(ctx, `DELETE FROM thumbnail WHERE id = $1`, id))
}

var _ repository.FileRepository = (*FileRepository)(nil)
