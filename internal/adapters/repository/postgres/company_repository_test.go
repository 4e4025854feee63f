package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/company"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestScanCompany_Success(t *testing.T) {
	t.Parallel()

	costCenter := "CC-104"
	createdAt := time.Now().UTC()
	updatedAt := createdAt.Add(time.Minute)

	row := stubRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 7 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "company-1"
		*(dest[1].(*string)) = "Minera Andina"

		cc := dest[3].(*sql.NullString)
		cc.String = costCenter
		cc.Valid = true

		*(dest[4].(*string)) = string(company.WorkModeHibrido)
		*(dest[5].(*time.Time)) = createdAt
		*(dest[6].(*time.Time)) = updatedAt
		return nil
	}}

	c, err := scanCompany(row)
	if err != nil {
		t.Fatalf("scanCompany returned error: %v", err)
	}

	if c.Description != nil {
		t.Fatalf("expected nil description, got %v", *c.Description)
	}
	if c.CostCenter == nil || *c.CostCenter != costCenter {
		t.Fatalf("expected cost center %s, got %+v", costCenter, c.CostCenter)
	}
	if c.WorkMode != company.WorkModeHibrido {
		t.Fatalf("expected work mode hibrido, got %s", c.WorkMode)
	}
}

func TestScanCompany_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanCompany(row)
	if !errors.Is(err, company.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestTranslateCompanyPgError(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: foreignKeyViolationCode}
	if !errors.Is(translateCompanyPgError(pgErr), company.ErrCompanyInUse) {
		t.Fatalf("expected company in use error mapping")
	}

	otherErr := errors.New("random")
	if translateCompanyPgError(otherErr) != otherErr {
		t.Fatalf("unexpected translation for generic error")
	}
}

func TestCompanyRepository_List_WithNextToken(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCompanyRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "cost_center", "work_mode", "created_at", "updated_at"}).
		AddRow("company-1", "Andina", nil, nil, string(company.WorkModePresencial), now, now).
		AddRow("company-2", "Buenaventura", nil, nil, string(company.WorkModePresencial), now, now).
		AddRow("company-3", "Cerro Verde", nil, nil, string(company.WorkModeRemoto), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM companies ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`)).
		WithArgs(3, 0).
		WillReturnRows(rows)

	companies, nextToken, err := repo.List(context.Background(), company.ListCompaniesFilter{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(companies))
	}

	if nextToken != "2" {
		t.Fatalf("expected next token '2', got %s", nextToken)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompanyRepository_List_WithWorkModeFilter(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCompanyRepository(mock)
	remoto := company.WorkModeRemoto

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "cost_center", "work_mode", "created_at", "updated_at"}).
		AddRow("company-5", "Remota", nil, nil, string(company.WorkModeRemoto), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM companies WHERE work_mode = $1 ORDER BY name ASC, id ASC LIMIT $2 OFFSET $3`)).
		WithArgs(remoto, 3, 4).
		WillReturnRows(rows)

	companies, nextToken, err := repo.List(context.Background(), company.ListCompaniesFilter{Limit: 2, Offset: 4, WorkMode: &remoto})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}

	if nextToken != "" {
		t.Fatalf("expected empty next token, got %s", nextToken)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompanyRepository_Delete_InUse(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewCompanyRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM companies WHERE id = $1`)).
		WithArgs("company-1").
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "workers_company_id_fkey"})

	if err := repo.Delete(context.Background(), "company-1"); !errors.Is(err, company.ErrCompanyInUse) {
		t.Fatalf("expected ErrCompanyInUse, got %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM companies WHERE id = $1`)).
		WithArgs("company-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "company-2"); !errors.Is(err, company.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
