package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/homologation"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// HomologationRepository は PostgreSQL を利用した会社別コース要件の永続化実装です。
type HomologationRepository struct {
	pool pgdb.Queryer
}

// NewHomologationRepository は HomologationRepository を生成します。
func NewHomologationRepository(pool pgdb.Queryer) *HomologationRepository {
	return &HomologationRepository{pool: pool}
}

// Create は設定を新規作成します。
func (r *HomologationRepository) Create(ctx context.Context, h *homologation.Homologation) (*homologation.Homologation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO homologations (company_id, course_id, is_required, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, company_id, course_id, is_required, created_at, updated_at
    `, h.CompanyID, h.CourseID, h.IsRequired, h.CreatedAt, h.UpdatedAt)

	created, err := scanHomologation(row)
	if err != nil {
		return nil, translateHomologationPgError(err)
	}
	return created, nil
}

// Update は設定を更新します。
func (r *HomologationRepository) Update(ctx context.Context, h *homologation.Homologation) (*homologation.Homologation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE homologations
           SET company_id = $1,
               course_id = $2,
               is_required = $3,
               updated_at = $4
         WHERE id = $5
        RETURNING id, company_id, course_id, is_required, created_at, updated_at
    `, h.CompanyID, h.CourseID, h.IsRequired, h.UpdatedAt, h.ID)

	updated, err := scanHomologation(row)
	if err != nil {
		return nil, translateHomologationPgError(err)
	}
	return updated, nil
}

// Delete は設定を削除します。
func (r *HomologationRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM homologations WHERE id = $1`, id)
	if err != nil {
		return translateHomologationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return homologation.ErrHomologationNotFound
	}
	return nil
}

// FindByID は ID で設定を取得します。
func (r *HomologationRepository) FindByID(ctx context.Context, id string) (*homologation.Homologation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, company_id, course_id, is_required, created_at, updated_at
          FROM homologations
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanHomologation(row)
	if err != nil {
		return nil, translateHomologationPgError(err)
	}
	return found, nil
}

// List は設定一覧を作成日時順で取得します。
func (r *HomologationRepository) List(ctx context.Context, filter homologation.ListHomologationsFilter) ([]*homologation.Homologation, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.CompanyID != nil {
		b.add("company_id = ?", *filter.CompanyID)
	}
	if filter.CourseID != nil {
		b.add("course_id = ?", *filter.CourseID)
	}

	query := `
        SELECT id, company_id, course_id, is_required, created_at, updated_at
          FROM homologations` + b.where() + `
         ORDER BY created_at ASC, id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateHomologationPgError(err)
	}
	defer rows.Close()

	var items []*homologation.Homologation
	for rows.Next() {
		found, err := scanHomologation(rows)
		if err != nil {
			return nil, "", translateHomologationPgError(err)
		}
		items = append(items, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateHomologationPgError(err)
	}

	items, nextToken := trimPage(items, filter.Limit, filter.Offset)
	return items, nextToken, nil
}

func scanHomologation(row pgx.Row) (*homologation.Homologation, error) {
	var (
		h                    homologation.Homologation
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&h.ID, &h.CompanyID, &h.CourseID, &h.IsRequired, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, homologation.ErrHomologationNotFound
		}
		return nil, err
	}

	h.CreatedAt = createdAt
	h.UpdatedAt = updatedAt
	return &h, nil
}

func translateHomologationPgError(err error) error {
	switch code, _ := pgErrorCode(err); code {
	case uniqueViolationCode:
		return homologation.ErrHomologationAlreadyExists
	case foreignKeyViolationCode:
		return homologation.ErrReferenceNotFound
	}
	return err
}
