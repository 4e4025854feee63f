package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/assignment"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// AssignmentRepository は PostgreSQL を利用した配属 (worker_services) 永続化の実装です。
// 有効な配属の重複は部分一意インデックス worker_services_active_uniq で防ぎます。
type AssignmentRepository struct {
	pool pgdb.Queryer
}

// NewAssignmentRepository は AssignmentRepository を生成します。
func NewAssignmentRepository(pool pgdb.Queryer) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Create は配属を新規作成します。
func (r *AssignmentRepository) Create(ctx context.Context, a *assignment.Assignment) (*assignment.Assignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO worker_services (worker_id, service_id, start_date, end_date, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, worker_id, service_id, start_date, end_date, status, created_at, updated_at
    `, a.WorkerID, a.ServiceID, a.StartDate, nullableTime(a.EndDate), a.Status, a.CreatedAt, a.UpdatedAt)

	created, err := scanAssignment(row)
	if err != nil {
		return nil, translateAssignmentPgError(err)
	}
	return created, nil
}

// Update は配属を更新します。
func (r *AssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) (*assignment.Assignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE worker_services
           SET start_date = $1,
               end_date = $2,
               status = $3,
               updated_at = $4
         WHERE id = $5
        RETURNING id, worker_id, service_id, start_date, end_date, status, created_at, updated_at
    `, a.StartDate, nullableTime(a.EndDate), a.Status, a.UpdatedAt, a.ID)

	updated, err := scanAssignment(row)
	if err != nil {
		return nil, translateAssignmentPgError(err)
	}
	return updated, nil
}

// Delete は配属を削除します。
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM worker_services WHERE id = $1`, id)
	if err != nil {
		return translateAssignmentPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}
	return nil
}

// FindByID は ID で配属を取得します。
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*assignment.Assignment, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, worker_id, service_id, start_date, end_date, status, created_at, updated_at
          FROM worker_services
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanAssignment(row)
	if err != nil {
		return nil, translateAssignmentPgError(err)
	}
	return found, nil
}

// List は配属一覧を開始日の新しい順で取得します。
func (r *AssignmentRepository) List(ctx context.Context, filter assignment.ListAssignmentsFilter) ([]*assignment.Assignment, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.ServiceID != nil {
		b.add("service_id = ?", *filter.ServiceID)
	}
	if filter.WorkerID != nil {
		b.add("worker_id = ?", *filter.WorkerID)
	}
	if filter.Status != nil {
		b.add("status = ?", *filter.Status)
	}

	query := `
        SELECT id, worker_id, service_id, start_date, end_date, status, created_at, updated_at
          FROM worker_services` + b.where() + `
         ORDER BY start_date DESC, id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateAssignmentPgError(err)
	}
	defer rows.Close()

	var items []*assignment.Assignment
	for rows.Next() {
		found, err := scanAssignment(rows)
		if err != nil {
			return nil, "", translateAssignmentPgError(err)
		}
		items = append(items, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateAssignmentPgError(err)
	}

	items, nextToken := trimPage(items, filter.Limit, filter.Offset)
	return items, nextToken, nil
}

// ActiveWorkerIDs はサービスに有効な配属を持つ作業員の ID を返します。
func (r *AssignmentRepository) ActiveWorkerIDs(ctx context.Context, serviceID string) ([]string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT worker_id
          FROM worker_services
         WHERE service_id = $1
           AND status = $2
    `, serviceID, assignment.StatusActivo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanAssignment(row pgx.Row) (*assignment.Assignment, error) {
	var (
		id, workerID, serviceID string
		startDate               time.Time
		endDate                 sql.NullTime
		status                  string
		createdAt, updatedAt    time.Time
	)

	if err := row.Scan(&id, &workerID, &serviceID, &startDate, &endDate, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, err
	}

	return &assignment.Assignment{
		ID:        id,
		WorkerID:  workerID,
		ServiceID: serviceID,
		StartDate: startDate,
		EndDate:   timePtr(endDate),
		Status:    assignment.Status(status),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func translateAssignmentPgError(err error) error {
	switch code, _ := pgErrorCode(err); code {
	case uniqueViolationCode:
		return assignment.ErrAlreadyAssigned
	case foreignKeyViolationCode:
		return assignment.ErrReferenceNotFound
	case checkViolationCode:
		return assignment.ErrInvalidPeriod
	}
	return err
}
