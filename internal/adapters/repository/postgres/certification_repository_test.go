package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var certificationColumnNames = []string{
	"id", "worker_id", "course_id", "issue_date", "expiry_date", "document_url", "status",
	"full_name", "name", "created_at", "updated_at",
}

func TestCertificationRepository_List_WithExpiryRange(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCertificationRepository(mock)

	from := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 30)
	workerID := "worker-1"
	now := time.Now().UTC()

	rows := pgxmock.NewRows(certificationColumnNames).
		AddRow("cert-1", workerID, "course-1", from.AddDate(-1, 0, 0), from.AddDate(0, 0, 5), nil, string(lifecycle.CertificationPorVencer),
			"Rosa Quispe", "Trabajos en altura", now, now).
		AddRow("cert-2", workerID, "course-2", from.AddDate(-1, 0, 0), from.AddDate(0, 0, 20), "https://docs.minera.pe/c2.pdf", string(lifecycle.CertificationPorVencer),
			"Rosa Quispe", "Espacios confinados", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM certifications c JOIN workers w ON w.id = c.worker_id JOIN courses co ON co.id = c.course_id WHERE c.worker_id = $1 AND c.expiry_date >= $2 AND c.expiry_date <= $3 ORDER BY c.expiry_date ASC, c.id ASC LIMIT $4 OFFSET $5`)).
		WithArgs(workerID, from, until, 51, 0).
		WillReturnRows(rows)

	certs, nextToken, err := repo.List(context.Background(), certification.ListCertificationsFilter{
		Limit:        50,
		WorkerID:     &workerID,
		ExpiresFrom:  &from,
		ExpiresUntil: &until,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(certs) != 2 || nextToken != "" {
		t.Fatalf("expected 2 certifications without next token, got %d %q", len(certs), nextToken)
	}
	if certs[0].WorkerName != "Rosa Quispe" || certs[0].CourseName != "Trabajos en altura" {
		t.Fatalf("expected joined names, got %+v", certs[0])
	}
	if certs[0].DocumentURL != nil || certs[1].DocumentURL == nil {
		t.Fatalf("unexpected document urls %v %v", certs[0].DocumentURL, certs[1].DocumentURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCertificationRepository_ListUnexpired(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCertificationRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.status <> $1`)).
		WithArgs(lifecycle.CertificationVencido).
		WillReturnRows(pgxmock.NewRows(certificationColumnNames).
			AddRow("cert-1", "worker-1", "course-1", now, now, nil, string(lifecycle.CertificationVigente), "Rosa", "Altura", now, now))

	certs, err := repo.ListUnexpired(context.Background())
	if err != nil {
		t.Fatalf("ListUnexpired returned error: %v", err)
	}
	if len(certs) != 1 || certs[0].Status != lifecycle.CertificationVigente {
		t.Fatalf("unexpected certifications %+v", certs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCertificationRepository_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCertificationRepository(mock)
	at := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE certifications SET status = $1`)).
		WithArgs(lifecycle.CertificationVencido, at, "cert-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdateStatus(context.Background(), "cert-1", lifecycle.CertificationVencido, at); !errors.Is(err, certification.ErrCertificationNotFound) {
		t.Fatalf("expected ErrCertificationNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCertificationRepository_Create_MissingReference(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCertificationRepository(mock)
	issue := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := issue.AddDate(1, 0, 0)
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO certifications`)).
		WithArgs("worker-1", "course-1", issue, expiry, nil, lifecycle.CertificationVigente, now, now).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	_, err = repo.Create(context.Background(), &certification.Certification{
		WorkerID:   "worker-1",
		CourseID:   "course-1",
		IssueDate:  issue,
		ExpiryDate: expiry,
		Status:     lifecycle.CertificationVigente,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if !errors.Is(err, certification.ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}

	if !errors.Is(translateCertificationPgError(&pgconn.PgError{Code: checkViolationCode}), certification.ErrInvalidPeriod) {
		t.Fatalf("expected check violation to map to ErrInvalidPeriod")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
