package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/company"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// CompanyRepository は PostgreSQL を利用した会社永続化の実装です。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// Create は会社を新規作成します。
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO companies (name, description, cost_center, work_mode, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, name, description, cost_center, work_mode, created_at, updated_at
    `, c.Name, nullableString(c.Description), nullableString(c.CostCenter), c.WorkMode, c.CreatedAt, c.UpdatedAt)

	created, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return created, nil
}

// Update は会社情報を更新します。
func (r *CompanyRepository) Update(ctx context.Context, c *company.Company) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE companies
           SET name = $1,
               description = $2,
               cost_center = $3,
               work_mode = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING id, name, description, cost_center, work_mode, created_at, updated_at
    `, c.Name, nullableString(c.Description), nullableString(c.CostCenter), c.WorkMode, c.UpdatedAt, c.ID)

	updated, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return updated, nil
}

// Delete は会社を削除します。
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return translateCompanyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// FindByID は ID で会社を取得します。
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, description, cost_center, work_mode, created_at, updated_at
          FROM companies
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanCompany(row)
	if err != nil {
		return nil, translateCompanyPgError(err)
	}
	return found, nil
}

// List は会社一覧を名前順で取得します。
func (r *CompanyRepository) List(ctx context.Context, filter company.ListCompaniesFilter) ([]*company.Company, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.WorkMode != nil {
		b.add("work_mode = ?", *filter.WorkMode)
	}

	query := `
        SELECT id, name, description, cost_center, work_mode, created_at, updated_at
          FROM companies` + b.where() + `
         ORDER BY name ASC, id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateCompanyPgError(err)
	}
	defer rows.Close()

	var companies []*company.Company
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, "", translateCompanyPgError(err)
		}
		companies = append(companies, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateCompanyPgError(err)
	}

	companies, nextToken := trimPage(companies, filter.Limit, filter.Offset)
	return companies, nextToken, nil
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	var (
		id                   string
		name                 string
		description          sql.NullString
		costCenter           sql.NullString
		workMode             string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &description, &costCenter, &workMode, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}

	return &company.Company{
		ID:          id,
		Name:        name,
		Description: stringPtr(description),
		CostCenter:  stringPtr(costCenter),
		WorkMode:    company.WorkMode(workMode),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func translateCompanyPgError(err error) error {
	if code, _ := pgErrorCode(err); code == foreignKeyViolationCode {
		return company.ErrCompanyInUse
	}
	return err
}
