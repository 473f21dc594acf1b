package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type postgresCategoryRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCategoryRepo(db *pgxpool.Pool, log logger.Logger) category.Repository {
	return &postgresCategoryRepo{db: db, logger: log}
}

const categoryColumns = `id, name, description, is_active, created_at, updated_at, deleted_at`

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("category", "")
		}
		return nil, apperror.NewInternal("failed to scan category row", err)
	}
	return c, nil
}

func (r *postgresCategoryRepo) Save(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := querierFrom(ctx, r.db).Exec(ctx, query,
		c.ID, c.Name, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save category", err)
	}
	return nil
}

func (r *postgresCategoryRepo) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, c.ID, c.Name, c.Description, c.IsActive, c.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to update category", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("category", c.ID.String())
	}
	return nil
}

func (r *postgresCategoryRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE categories SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return apperror.NewInternal("failed to delete category", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("category", id.String())
	}
	return nil
}

func (r *postgresCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND deleted_at IS NULL`
	c, err := scanCategory(querierFrom(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("category", id.String())
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCategoryRepo) List(ctx context.Context, params category.ListParams) ([]*category.Category, int64, error) {
	q := querierFrom(ctx, r.db)

	base := psql.Select().From("categories").Where(sq.Eq{"deleted_at": nil})
	if params.Search != "" {
		base = base.Where(sq.ILike{"name": "%" + params.Search + "%"})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build category count query", err)
	}
	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.NewInternal("failed to count categories", err)
	}

	listSQL, listArgs, err := base.Columns(categoryColumns).
		OrderBy("created_at DESC").
		Limit(uint64(params.PerPage)).
		Offset(uint64((params.Page - 1) * params.PerPage)).
		ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build category list query", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to list categories", err)
	}
	defer rows.Close()

	categories := make([]*category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal("error iterating category rows", err)
	}
	return categories, total, nil
}

func (r *postgresCategoryRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}
	query := `SELECT id FROM categories WHERE id = ANY($1) AND deleted_at IS NULL`
	rows, err := querierFrom(ctx, r.db).Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to check category IDs", err)
	}
	defer rows.Close()

	found := make([]uuid.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewInternal("failed to scan category ID", err)
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating category IDs", err)
	}
	return found, nil
}
