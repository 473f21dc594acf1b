package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeflix/catalog-admin-api/internal/domain/castmember"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type postgresCastMemberRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCastMemberRepo(db *pgxpool.Pool, log logger.Logger) castmember.Repository {
	return &postgresCastMemberRepo{db: db, logger: log}
}

const castMemberColumns = `id, name, type, created_at, updated_at, deleted_at`

func scanCastMember(row pgx.Row) (*castmember.CastMember, error) {
	m := &castmember.CastMember{}
	err := row.Scan(&m.ID, &m.Name, &m.Type, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("cast member", "")
		}
		return nil, apperror.NewInternal("failed to scan cast member row", err)
	}
	return m, nil
}

func (r *postgresCastMemberRepo) Save(ctx context.Context, m *castmember.CastMember) error {
	query := `
		INSERT INTO cast_members (id, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := querierFrom(ctx, r.db).Exec(ctx, query, m.ID, m.Name, m.Type, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save cast member", err)
	}
	return nil
}

func (r *postgresCastMemberRepo) Update(ctx context.Context, m *castmember.CastMember) error {
	query := `UPDATE cast_members SET name = $2, type = $3, updated_at = $4 WHERE id = $1 AND deleted_at IS NULL`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, m.ID, m.Name, m.Type, m.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to update cast member", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("cast member", m.ID.String())
	}
	return nil
}

func (r *postgresCastMemberRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE cast_members SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmdTag, err := querierFrom(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return apperror.NewInternal("failed to delete cast member", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("cast member", id.String())
	}
	return nil
}

func (r *postgresCastMemberRepo) FindByID(ctx context.Context, id uuid.UUID) (*castmember.CastMember, error) {
	query := `SELECT ` + castMemberColumns + ` FROM cast_members WHERE id = $1 AND deleted_at IS NULL`
	m, err := scanCastMember(querierFrom(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("cast member", id.String())
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresCastMemberRepo) List(ctx context.Context, params castmember.ListParams) ([]*castmember.CastMember, int64, error) {
	q := querierFrom(ctx, r.db)

	base := psql.Select().From("cast_members").Where(sq.Eq{"deleted_at": nil})
	if params.Search != "" {
		base = base.Where(sq.ILike{"name": "%" + params.Search + "%"})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build cast member count query", err)
	}
	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.NewInternal("failed to count cast members", err)
	}

	listSQL, listArgs, err := base.Columns(castMemberColumns).
		OrderBy("created_at DESC").
		Limit(uint64(params.PerPage)).
		Offset(uint64((params.Page - 1) * params.PerPage)).
		ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build cast member list query", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to list cast members", err)
	}
	defer rows.Close()

	members := make([]*castmember.CastMember, 0)
	for rows.Next() {
		m, err := scanCastMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal("error iterating cast member rows", err)
	}
	return members, total, nil
}
