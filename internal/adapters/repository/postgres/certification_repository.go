package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// certificationSelect は作業員名とコース名を結合した読み出し列です。c は認定行のエイリアスです。
const certificationSelect = `
        SELECT c.id, c.worker_id, c.course_id, c.issue_date, c.expiry_date, c.document_url, c.status,
               w.full_name, co.name, c.created_at, c.updated_at`

const certificationJoins = `
          JOIN workers w ON w.id = c.worker_id
          JOIN courses co ON co.id = c.course_id`

// CertificationRepository は PostgreSQL を利用した認定永続化の実装です。
type CertificationRepository struct {
	pool pgdb.Queryer
}

// NewCertificationRepository は CertificationRepository を生成します。
func NewCertificationRepository(pool pgdb.Queryer) *CertificationRepository {
	return &CertificationRepository{pool: pool}
}

// Create は認定を新規作成します。
func (r *CertificationRepository) Create(ctx context.Context, cert *certification.Certification) (*certification.Certification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH c AS (
            INSERT INTO certifications (worker_id, course_id, issue_date, expiry_date, document_url, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING *
        )`+certificationSelect+`
          FROM c`+certificationJoins+`
    `, cert.WorkerID, cert.CourseID, cert.IssueDate, cert.ExpiryDate, nullableString(cert.DocumentURL), cert.Status, cert.CreatedAt, cert.UpdatedAt)

	created, err := scanCertification(row)
	if err != nil {
		return nil, translateCertificationPgError(err)
	}
	return created, nil
}

// Update は認定を更新します。
func (r *CertificationRepository) Update(ctx context.Context, cert *certification.Certification) (*certification.Certification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH c AS (
            UPDATE certifications
               SET worker_id = $1,
                   course_id = $2,
                   issue_date = $3,
                   expiry_date = $4,
                   document_url = $5,
                   status = $6,
                   updated_at = $7
             WHERE id = $8
            RETURNING *
        )`+certificationSelect+`
          FROM c`+certificationJoins+`
    `, cert.WorkerID, cert.CourseID, cert.IssueDate, cert.ExpiryDate, nullableString(cert.DocumentURL), cert.Status, cert.UpdatedAt, cert.ID)

	updated, err := scanCertification(row)
	if err != nil {
		return nil, translateCertificationPgError(err)
	}
	return updated, nil
}

// Delete は認定を削除します。
func (r *CertificationRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM certifications WHERE id = $1`, id)
	if err != nil {
		return translateCertificationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return certification.ErrCertificationNotFound
	}
	return nil
}

// FindByID は ID で認定を取得します。
func (r *CertificationRepository) FindByID(ctx context.Context, id string) (*certification.Certification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, certificationSelect+`
          FROM certifications c`+certificationJoins+`
         WHERE c.id = $1
         LIMIT 1
    `, id)

	found, err := scanCertification(row)
	if err != nil {
		return nil, translateCertificationPgError(err)
	}
	return found, nil
}

// List は認定一覧を有効期限の昇順で取得します。
func (r *CertificationRepository) List(ctx context.Context, filter certification.ListCertificationsFilter) ([]*certification.Certification, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.WorkerID != nil {
		b.add("c.worker_id = ?", *filter.WorkerID)
	}
	if filter.CourseID != nil {
		b.add("c.course_id = ?", *filter.CourseID)
	}
	if filter.ExpiresFrom != nil {
		b.add("c.expiry_date >= ?", *filter.ExpiresFrom)
	}
	if filter.ExpiresUntil != nil {
		b.add("c.expiry_date <= ?", *filter.ExpiresUntil)
	}

	query := certificationSelect + `
          FROM certifications c` + certificationJoins + b.where() + `
         ORDER BY c.expiry_date ASC, c.id ASC` + b.page(filter.Limit, filter.Offset)

	certs, err := r.query(ctx, query, b.args...)
	if err != nil {
		return nil, "", err
	}

	certs, nextToken := trimPage(certs, filter.Limit, filter.Offset)
	return certs, nextToken, nil
}

// ListUnexpired は保存状態が vencido 以外の認定を有効期限の昇順で取得します。
func (r *CertificationRepository) ListUnexpired(ctx context.Context) ([]*certification.Certification, error) {
	return r.query(ctx, certificationSelect+`
          FROM certifications c`+certificationJoins+`
         WHERE c.status <> $1
         ORDER BY c.expiry_date ASC, c.id ASC
    `, lifecycle.CertificationVencido)
}

// UpdateStatus は保存されている状態のみを更新します。
func (r *CertificationRepository) UpdateStatus(ctx context.Context, id string, status lifecycle.CertificationStatus, updatedAt time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE certifications
           SET status = $1,
               updated_at = $2
         WHERE id = $3
    `, status, updatedAt, id)
	if err != nil {
		return translateCertificationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return certification.ErrCertificationNotFound
	}
	return nil
}

func (r *CertificationRepository) query(ctx context.Context, query string, args ...any) ([]*certification.Certification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateCertificationPgError(err)
	}
	defer rows.Close()

	var certs []*certification.Certification
	for rows.Next() {
		found, err := scanCertification(rows)
		if err != nil {
			return nil, translateCertificationPgError(err)
		}
		certs = append(certs, found)
	}

	if err := rows.Err(); err != nil {
		return nil, translateCertificationPgError(err)
	}
	return certs, nil
}

func scanCertification(row pgx.Row) (*certification.Certification, error) {
	var (
		id, workerID, courseID string
		issueDate, expiryDate  time.Time
		documentURL            sql.NullString
		status                 string
		workerName, courseName string
		createdAt, updatedAt   time.Time
	)

	if err := row.Scan(&id, &workerID, &courseID, &issueDate, &expiryDate, &documentURL, &status,
		&workerName, &courseName, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, certification.ErrCertificationNotFound
		}
		return nil, err
	}

	return &certification.Certification{
		ID:          id,
		WorkerID:    workerID,
		CourseID:    courseID,
		IssueDate:   issueDate,
		ExpiryDate:  expiryDate,
		DocumentURL: stringPtr(documentURL),
		Status:      lifecycle.CertificationStatus(status),
		WorkerName:  workerName,
		CourseName:  courseName,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func translateCertificationPgError(err error) error {
	switch code, _ := pgErrorCode(err); code {
	case foreignKeyViolationCode:
		return certification.ErrReferenceNotFound
	case checkViolationCode:
		return certification.ErrInvalidPeriod
	}
	return err
}
