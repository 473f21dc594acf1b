package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type postgresGenreRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresGenreRepo(db *pgxpool.Pool, log logger.Logger) genre.Repository {
	return &postgresGenreRepo{db: db, logger: log}
}

const genreColumns = `id, name, is_active, created_at, updated_at, deleted_at`

func scanGenre(row pgx.Row) (*genre.Genre, error) {
	g := &genre.Genre{}
	err := row.Scan(&g.ID, &g.Name, &g.IsActive, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("genre", "")
		}
		return nil, apperror.NewInternal("failed to scan genre row", err)
	}
	return g, nil
}

func (r *postgresGenreRepo) Save(ctx context.Context, g *genre.Genre) error {
	query := `
		INSERT INTO genres (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := querierFrom(ctx, r.db).Exec(ctx, query, g.ID, g.Name, g.IsActive, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save genre", err)
	}
	return nil
}

func (r *postgresGenreRepo) Update(ctx context.Context, g *genre.Genre) error {
	query := `
		UPDATE genres SET name = $2, is_active = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, g.ID, g.Name, g.IsActive, g.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to update genre", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("genre", g.ID.String())
	}
	return nil
}

func (r *postgresGenreRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE genres SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return apperror.NewInternal("failed to delete genre", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("genre", id.String())
	}
	return nil
}

func (r *postgresGenreRepo) FindByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	q := querierFrom(ctx, r.db)
	query := `SELECT ` + genreColumns + ` FROM genres WHERE id = $1 AND deleted_at IS NULL`
	g, err := scanGenre(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("genre", id.String())
		}
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT category_id FROM category_genre WHERE genre_id = $1 ORDER BY category_id`, id)
	if err != nil {
		return nil, apperror.NewInternal("failed to load genre categories", err)
	}
	defer rows.Close()

	g.CategoryIDs = make([]uuid.UUID, 0)
	for rows.Next() {
		var catID uuid.UUID
		if err := rows.Scan(&catID); err != nil {
			return nil, apperror.NewInternal("failed to scan genre category", err)
		}
		g.CategoryIDs = append(g.CategoryIDs, catID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating genre categories", err)
	}
	return g, nil
}

func (r *postgresGenreRepo) List(ctx context.Context, params genre.ListParams) ([]*genre.Genre, int64, error) {
	q := querierFrom(ctx, r.db)

	base := psql.Select().From("genres").Where(sq.Eq{"deleted_at": nil})
	if params.Search != "" {
		base = base.Where(sq.ILike{"name": "%" + params.Search + "%"})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build genre count query", err)
	}
	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.NewInternal("failed to count genres", err)
	}

	listSQL, listArgs, err := base.Columns(genreColumns).
		OrderBy("created_at DESC").
		Limit(uint64(params.PerPage)).
		Offset(uint64((params.Page - 1) * params.PerPage)).
		ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build genre list query", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to list genres", err)
	}
	defer rows.Close()

	genres := make([]*genre.Genre, 0)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, 0, err
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal("error iterating genre rows", err)
	}
	return genres, total, nil
}

// SyncCategories replaces the genre's category links with the given set.
func (r *postgresGenreRepo) SyncCategories(ctx context.Context, genreID uuid.UUID, categoryIDs []uuid.UUID) error {
	q := querierFrom(ctx, r.db)

	if len(categoryIDs) == 0 {
		if _, err := q.Exec(ctx, `DELETE FROM category_genre WHERE genre_id = $1`, genreID); err != nil {
			return apperror.NewInternal("failed to clear category_genre", err)
		}
		return nil
	}

	deleteQuery := `DELETE FROM category_genre WHERE genre_id = $1 AND NOT (category_id = ANY($2))`
	if _, err := q.Exec(ctx, deleteQuery, genreID, categoryIDs); err != nil {
		return apperror.NewInternal("failed to prune category_genre", err)
	}

	insertQuery := `
		INSERT INTO category_genre (category_id, genre_id)
		SELECT unnest($1::uuid[]), $2 ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, insertQuery, categoryIDs, genreID); err != nil {
		return apperror.NewInternal("failed to fill category_genre", err)
	}
	return nil
}

func (r *postgresGenreRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}
	query := `SELECT id FROM genres WHERE id = ANY($1) AND deleted_at IS NULL`
	rows, err := querierFrom(ctx, r.db).Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to check genre IDs", err)
	}
	defer rows.Close()

	found := make([]uuid.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewInternal("failed to scan genre ID", err)
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating genre IDs", err)
	}
	return found, nil
}

func (r *postgresGenreRepo) LinkedCategories(ctx context.Context, genreIDs, categoryIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	linked := make(map[uuid.UUID][]uuid.UUID, len(genreIDs))
	if len(genreIDs) == 0 || len(categoryIDs) == 0 {
		return linked, nil
	}

	query := `
		SELECT genre_id, category_id FROM category_genre
		WHERE genre_id = ANY($1) AND category_id = ANY($2)
	`
	rows, err := querierFrom(ctx, r.db).Query(ctx, query, genreIDs, categoryIDs)
	if err != nil {
		return nil, apperror.NewInternal("failed to load genre/category links", err)
	}
	defer rows.Close()

	for rows.Next() {
		var genreID, catID uuid.UUID
		if err := rows.Scan(&genreID, &catID); err != nil {
			return nil, apperror.NewInternal("failed to scan genre/category link", err)
		}
		linked[genreID] = append(linked[genreID], catID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating genre/category links", err)
	}
	return linked, nil
}
