package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/service"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

const (
	serviceCompanyForeignKey = "services_company_id_fkey"
	serviceManagerForeignKey = "services_manager_id_fkey"
)

// ServiceRepository は PostgreSQL を利用したサービス永続化の実装です。
type ServiceRepository struct {
	pool pgdb.Queryer
}

// NewServiceRepository は ServiceRepository を生成します。
func NewServiceRepository(pool pgdb.Queryer) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// Create はサービスを新規作成します。
func (r *ServiceRepository) Create(ctx context.Context, s *service.Service) (*service.Service, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO services (name, description, company_id, status, manager_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, name, description, company_id, status, manager_id, created_at, updated_at
    `, s.Name, nullableString(s.Description), s.CompanyID, s.Status, nullableString(s.ManagerID), s.CreatedAt, s.UpdatedAt)

	created, err := scanService(row)
	if err != nil {
		return nil, translateServicePgError(err)
	}
	return created, nil
}

// Update はサービス情報を更新します。
func (r *ServiceRepository) Update(ctx context.Context, s *service.Service) (*service.Service, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE services
           SET name = $1,
               description = $2,
               company_id = $3,
               status = $4,
               manager_id = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING id, name, description, company_id, status, manager_id, created_at, updated_at
    `, s.Name, nullableString(s.Description), s.CompanyID, s.Status, nullableString(s.ManagerID), s.UpdatedAt, s.ID)

	updated, err := scanService(row)
	if err != nil {
		return nil, translateServicePgError(err)
	}
	return updated, nil
}

// Delete はサービスを削除します。
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return translateServicePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrServiceNotFound
	}
	return nil
}

// FindByID は ID でサービスを取得します。
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*service.Service, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, description, company_id, status, manager_id, created_at, updated_at
          FROM services
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanService(row)
	if err != nil {
		return nil, translateServicePgError(err)
	}
	return found, nil
}

// List はサービス一覧を名前順で取得します。
func (r *ServiceRepository) List(ctx context.Context, filter service.ListServicesFilter) ([]*service.Service, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.CompanyID != nil {
		b.add("company_id = ?", *filter.CompanyID)
	}
	if filter.Status != nil {
		b.add("status = ?", *filter.Status)
	}

	query := `
        SELECT id, name, description, company_id, status, manager_id, created_at, updated_at
          FROM services` + b.where() + `
         ORDER BY name ASC, id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateServicePgError(err)
	}
	defer rows.Close()

	var services []*service.Service
	for rows.Next() {
		found, err := scanService(rows)
		if err != nil {
			return nil, "", translateServicePgError(err)
		}
		services = append(services, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateServicePgError(err)
	}

	services, nextToken := trimPage(services, filter.Limit, filter.Offset)
	return services, nextToken, nil
}

func scanService(row pgx.Row) (*service.Service, error) {
	var (
		id, name             string
		description          sql.NullString
		companyID            string
		status               string
		managerID            sql.NullString
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &description, &companyID, &status, &managerID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrServiceNotFound
		}
		return nil, err
	}

	return &service.Service{
		ID:          id,
		Name:        name,
		Description: stringPtr(description),
		CompanyID:   companyID,
		Status:      service.Status(status),
		ManagerID:   stringPtr(managerID),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func translateServicePgError(err error) error {
	code, constraint := pgErrorCode(err)
	if code == foreignKeyViolationCode {
		switch constraint {
		case serviceCompanyForeignKey, serviceManagerForeignKey:
			return service.ErrReferenceNotFound
		default:
			return service.ErrServiceInUse
		}
	}
	return err
}
