package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

const (
	workerCompanyForeignKey  = "workers_company_id_fkey"
	workerHomologationPeriod = "workers_homologation_period_check"
)

const workerColumns = `id, dni, full_name, status, company_id, profile,
               is_homologated, homologation_type, homologation_status, homologation_date, homologation_expiry,
               homologation_entity, certificate_number, homologation_notes, created_at, updated_at`

// WorkerRepository は PostgreSQL を利用した作業員永続化の実装です。
type WorkerRepository struct {
	pool pgdb.Queryer
}

// NewWorkerRepository は WorkerRepository を生成します。
func NewWorkerRepository(pool pgdb.Queryer) *WorkerRepository {
	return &WorkerRepository{pool: pool}
}

// Create は作業員を新規作成します。
func (r *WorkerRepository) Create(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	profile, err := json.Marshal(w.Profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	h := w.Homologation
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO workers (dni, full_name, status, company_id, profile,
                             is_homologated, homologation_type, homologation_status, homologation_date, homologation_expiry,
                             homologation_entity, certificate_number, homologation_notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING `+workerColumns,
		w.DNI, w.FullName, w.Status, nullableString(w.CompanyID), profile,
		h.IsHomologated, nullableHomologationType(h.Type), h.Status, nullableTime(h.Date), nullableTime(h.Expiry),
		nullableString(h.Entity), nullableString(h.CertificateNumber), nullableString(h.Notes), w.CreatedAt, w.UpdatedAt)

	created, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return created, nil
}

// Update は作業員情報を更新します。
func (r *WorkerRepository) Update(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	profile, err := json.Marshal(w.Profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	h := w.Homologation
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE workers
           SET dni = $1,
               full_name = $2,
               status = $3,
               company_id = $4,
               profile = $5,
               is_homologated = $6,
               homologation_type = $7,
               homologation_status = $8,
               homologation_date = $9,
               homologation_expiry = $10,
               homologation_entity = $11,
               certificate_number = $12,
               homologation_notes = $13,
               updated_at = $14
         WHERE id = $15
        RETURNING `+workerColumns,
		w.DNI, w.FullName, w.Status, nullableString(w.CompanyID), profile,
		h.IsHomologated, nullableHomologationType(h.Type), h.Status, nullableTime(h.Date), nullableTime(h.Expiry),
		nullableString(h.Entity), nullableString(h.CertificateNumber), nullableString(h.Notes), w.UpdatedAt, w.ID)

	updated, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return updated, nil
}

// Delete は作業員を削除します。
func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return translateWorkerPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// FindByID は ID で作業員を取得します。
func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+workerColumns+`
          FROM workers
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return found, nil
}

// List は作業員一覧を氏名順で取得します。Search は氏名と DNI の部分一致です。
func (r *WorkerRepository) List(ctx context.Context, filter worker.ListWorkersFilter) ([]*worker.Worker, string, error) {
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
	if filter.Search != nil {
		b.add("(full_name ILIKE ? OR dni ILIKE ?)", "%"+*filter.Search+"%")
	}

	query := `
        SELECT ` + workerColumns + `
          FROM workers` + b.where() + `
         ORDER BY full_name ASC, id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateWorkerPgError(err)
	}
	defer rows.Close()

	var workers []*worker.Worker
	for rows.Next() {
		found, err := scanWorker(rows)
		if err != nil {
			return nil, "", translateWorkerPgError(err)
		}
		workers = append(workers, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateWorkerPgError(err)
	}

	workers, nextToken := trimPage(workers, filter.Limit, filter.Offset)
	return workers, nextToken, nil
}

// ListAssignmentCandidates は会社に所属し、就労可能かつ認証済み (vigente) の作業員を氏名順で返します。
func (r *WorkerRepository) ListAssignmentCandidates(ctx context.Context, companyID string) ([]*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, dni, full_name, status, company_id, is_homologated, homologation_status, homologation_expiry
          FROM workers
         WHERE company_id = $1
           AND status = $2
           AND is_homologated
           AND homologation_status = $3
         ORDER BY full_name ASC, id ASC
    `, companyID, worker.StatusHabilitado, lifecycle.HomologationVigente)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*worker.Worker
	for rows.Next() {
		var (
			w             worker.Worker
			status        string
			company       sql.NullString
			homologStatus string
			homologExpiry sql.NullTime
		)
		if err := rows.Scan(&w.ID, &w.DNI, &w.FullName, &status, &company, &w.Homologation.IsHomologated, &homologStatus, &homologExpiry); err != nil {
			return nil, err
		}
		w.Status = worker.Status(status)
		w.CompanyID = stringPtr(company)
		w.Homologation.Status = lifecycle.HomologationStatus(homologStatus)
		w.Homologation.Expiry = timePtr(homologExpiry)
		candidates = append(candidates, &w)
	}
	return candidates, rows.Err()
}

// ExpireHomologations は asOf より前に期限を迎えた vigente 認証を vencida に更新します。
func (r *WorkerRepository) ExpireHomologations(ctx context.Context, asOf time.Time) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE workers
           SET homologation_status = $1,
               updated_at = $2
         WHERE is_homologated
           AND homologation_status = $3
           AND homologation_expiry < $4
    `, lifecycle.HomologationVencida, asOf, lifecycle.HomologationVigente, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanWorker(row pgx.Row) (*worker.Worker, error) {
	var (
		id, dni, fullName    string
		status               string
		companyID            sql.NullString
		profile              []byte
		isHomologated        bool
		homologType          sql.NullString
		homologStatus        string
		homologDate          sql.NullTime
		homologExpiry        sql.NullTime
		entity               sql.NullString
		certificateNumber    sql.NullString
		notes                sql.NullString
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &dni, &fullName, &status, &companyID, &profile,
		&isHomologated, &homologType, &homologStatus, &homologDate, &homologExpiry,
		&entity, &certificateNumber, &notes, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, worker.ErrWorkerNotFound
		}
		return nil, err
	}

	w := &worker.Worker{
		ID:        id,
		DNI:       dni,
		FullName:  fullName,
		Status:    worker.Status(status),
		CompanyID: stringPtr(companyID),
		Homologation: worker.Homologation{
			IsHomologated:     isHomologated,
			Status:            lifecycle.HomologationStatus(homologStatus),
			Date:              timePtr(homologDate),
			Expiry:            timePtr(homologExpiry),
			Entity:            stringPtr(entity),
			CertificateNumber: stringPtr(certificateNumber),
			Notes:             stringPtr(notes),
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if homologType.Valid {
		t := worker.HomologationType(homologType.String)
		w.Homologation.Type = &t
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &w.Profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	return w, nil
}

func nullableHomologationType(t *worker.HomologationType) any {
	if t == nil {
		return nil
	}
	return string(*t)
}

func translateWorkerPgError(err error) error {
	code, constraint := pgErrorCode(err)
	switch code {
	case uniqueViolationCode:
		return worker.ErrDNIAlreadyExists
	case foreignKeyViolationCode:
		if constraint == workerCompanyForeignKey {
			return worker.ErrCompanyNotFound
		}
		return worker.ErrWorkerInUse
	case checkViolationCode:
		if constraint == workerHomologationPeriod {
			return worker.ErrInvalidHomologationPeriod
		}
	}
	return err
}
