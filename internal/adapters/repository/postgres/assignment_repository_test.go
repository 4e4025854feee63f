package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/assignment"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestAssignmentRepository_Create_ActiveDuplicate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAssignmentRepository(mock)
	start := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO worker_services`)).
		WithArgs("worker-1", "service-1", start, nil, assignment.StatusActivo, start, start).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "worker_services_active_uniq"})

	_, err = repo.Create(context.Background(), &assignment.Assignment{
		WorkerID:  "worker-1",
		ServiceID: "service-1",
		StartDate: start,
		Status:    assignment.StatusActivo,
		CreatedAt: start,
		UpdatedAt: start,
	})
	if !errors.Is(err, assignment.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected AlreadyExists kind, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignmentRepository_ActiveWorkerIDs(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAssignmentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT worker_id FROM worker_services WHERE service_id = $1 AND status = $2`)).
		WithArgs("service-1", assignment.StatusActivo).
		WillReturnRows(pgxmock.NewRows([]string{"worker_id"}).AddRow("worker-1").AddRow("worker-3"))

	ids, err := repo.ActiveWorkerIDs(context.Background(), "service-1")
	if err != nil {
		t.Fatalf("ActiveWorkerIDs returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "worker-1" || ids[1] != "worker-3" {
		t.Fatalf("unexpected ids %v", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignmentRepository_List_WithFilters(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewAssignmentRepository(mock)
	serviceID := "service-1"
	finished := assignment.StatusFinalizado
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	rows := pgxmock.NewRows([]string{"id", "worker_id", "service_id", "start_date", "end_date", "status", "created_at", "updated_at"}).
		AddRow("a-1", "worker-1", serviceID, start, end, string(assignment.StatusFinalizado), start, end)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM worker_services WHERE service_id = $1 AND status = $2 ORDER BY start_date DESC, id ASC LIMIT $3 OFFSET $4`)).
		WithArgs(serviceID, finished, 6, 0).
		WillReturnRows(rows)

	items, nextToken, err := repo.List(context.Background(), assignment.ListAssignmentsFilter{Limit: 5, ServiceID: &serviceID, Status: &finished})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || nextToken != "" {
		t.Fatalf("unexpected page %d %q", len(items), nextToken)
	}
	if items[0].EndDate == nil || !items[0].EndDate.Equal(end) {
		t.Fatalf("expected end date %v, got %v", end, items[0].EndDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateAssignmentPgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateAssignmentPgError(&pgconn.PgError{Code: foreignKeyViolationCode}), assignment.ErrReferenceNotFound) {
		t.Fatalf("expected foreign key violation to map to ErrReferenceNotFound")
	}
	if !errors.Is(translateAssignmentPgError(&pgconn.PgError{Code: checkViolationCode}), assignment.ErrInvalidPeriod) {
		t.Fatalf("expected check violation to map to ErrInvalidPeriod")
	}
}
