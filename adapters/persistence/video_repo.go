package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresVideoRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresVideoRepo(db *pgxpool.Pool, log logger.Logger) video.Repository {
	return &postgresVideoRepo{db: db, logger: log}
}

const videoColumns = `id, title, description, year_launched, opened, rating, duration,
	thumb_file, banner_file, trailer_file, video_file, created_at, updated_at, deleted_at`

func scanVideo(row pgx.Row) (*video.Video, error) {
	v := &video.Video{}
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.YearLaunched, &v.Opened, &v.Rating, &v.Duration,
		&v.ThumbFile, &v.BannerFile, &v.TrailerFile, &v.VideoFile,
		&v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("video", "")
		}
		return nil, apperror.NewInternal("failed to scan video row", err)
	}
	return v, nil
}

func (r *postgresVideoRepo) Save(ctx context.Context, v *video.Video) error {
	query := `
		INSERT INTO videos (id, title, description, year_launched, opened, rating, duration,
			thumb_file, banner_file, trailer_file, video_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := querierFrom(ctx, r.db).Exec(ctx, query,
		v.ID, v.Title, v.Description, v.YearLaunched, v.Opened, v.Rating, v.Duration,
		v.ThumbFile, v.BannerFile, v.TrailerFile, v.VideoFile, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save video", err)
	}
	return nil
}

func (r *postgresVideoRepo) Update(ctx context.Context, v *video.Video) error {
	query := `
		UPDATE videos SET
			title = $2, description = $3, year_launched = $4, opened = $5, rating = $6, duration = $7,
			thumb_file = $8, banner_file = $9, trailer_file = $10, video_file = $11, updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query,
		v.ID, v.Title, v.Description, v.YearLaunched, v.Opened, v.Rating, v.Duration,
		v.ThumbFile, v.BannerFile, v.TrailerFile, v.VideoFile, v.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to update video", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("video", v.ID.String())
	}
	return nil
}

func (r *postgresVideoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE videos SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return apperror.NewInternal("failed to delete video", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("video", id.String())
	}
	return nil
}

func (r *postgresVideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	q := querierFrom(ctx, r.db)
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1 AND deleted_at IS NULL`, videoColumns)
	v, err := scanVideo(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("video", id.String())
		}
		return nil, err
	}

	// Relations keep soft-deleted categories/genres visible: the junction
	// rows are read without joining the parent tables' deleted_at filter.
	v.CategoryIDs, err = r.relatedIDs(ctx, `SELECT category_id FROM category_video WHERE video_id = $1 ORDER BY category_id`, id)
	if err != nil {
		return nil, err
	}
	v.GenreIDs, err = r.relatedIDs(ctx, `SELECT genre_id FROM genre_video WHERE video_id = $1 ORDER BY genre_id`, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *postgresVideoRepo) relatedIDs(ctx context.Context, query string, videoID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := querierFrom(ctx, r.db).Query(ctx, query, videoID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load video relations", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewInternal("failed to scan relation row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating relation rows", err)
	}
	return ids, nil
}

func (r *postgresVideoRepo) List(ctx context.Context, params video.ListParams) ([]*video.Video, int64, error) {
	q := querierFrom(ctx, r.db)

	base := psql.Select().From("videos").Where(sq.Eq{"deleted_at": nil})
	if params.Search != "" {
		base = base.Where(sq.ILike{"title": "%" + params.Search + "%"})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build video count query", err)
	}
	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.NewInternal("failed to count videos", err)
	}

	offset := uint64((params.Page - 1) * params.PerPage)
	listSQL, listArgs, err := base.Columns(videoColumns).
		OrderBy("created_at DESC").
		Limit(uint64(params.PerPage)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build video list query", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to list videos", err)
	}
	defer rows.Close()

	videos := make([]*video.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal("error iterating video rows", err)
	}
	return videos, total, nil
}

// SyncCategories makes the junction set exactly equal to categoryIDs:
// rows outside the set are deleted, missing rows are inserted. Calling it
// twice with the same set is a no-op the second time.
func (r *postgresVideoRepo) SyncCategories(ctx context.Context, videoID uuid.UUID, categoryIDs []uuid.UUID) error {
	return r.syncJunction(ctx, "category_video", "category_id", videoID, categoryIDs)
}

func (r *postgresVideoRepo) SyncGenres(ctx context.Context, videoID uuid.UUID, genreIDs []uuid.UUID) error {
	return r.syncJunction(ctx, "genre_video", "genre_id", videoID, genreIDs)
}

func (r *postgresVideoRepo) syncJunction(ctx context.Context, table, column string, videoID uuid.UUID, ids []uuid.UUID) error {
	q := querierFrom(ctx, r.db)

	if len(ids) == 0 {
		query := fmt.Sprintf(`DELETE FROM %s WHERE video_id = $1`, table)
		if _, err := q.Exec(ctx, query, videoID); err != nil {
			return apperror.NewInternal(fmt.Sprintf("failed to clear %s", table), err)
		}
		return nil
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE video_id = $1 AND NOT (%s = ANY($2))`, table, column)
	if _, err := q.Exec(ctx, deleteQuery, videoID, ids); err != nil {
		return apperror.NewInternal(fmt.Sprintf("failed to prune %s", table), err)
	}

	insertQuery := fmt.Sprintf(
		`INSERT INTO %s (%s, video_id) SELECT unnest($1::uuid[]), $2 ON CONFLICT DO NOTHING`,
		table, column,
	)
	if _, err := q.Exec(ctx, insertQuery, ids, videoID); err != nil {
		return apperror.NewInternal(fmt.Sprintf("failed to fill %s", table), err)
	}
	return nil
}
