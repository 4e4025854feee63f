package handler

import (
	"context"
	"testing"
	"time"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubCertificationUseCase struct {
	certification.UseCase

	createInput certification.CreateCertificationInput
	createOut   *certification.Certification
	createErr   error

	expiringInput certification.ListExpiringInput
	expiringOut   []certification.Expiring
	expiringErr   error

	refreshOut *certification.RefreshResult
	refreshErr error
}

func (s *stubCertificationUseCase) CreateCertification(ctx context.Context, in certification.CreateCertificationInput) (*certification.Certification, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubCertificationUseCase) ListExpiring(ctx context.Context, in certification.ListExpiringInput) ([]certification.Expiring, error) {
	s.expiringInput = in
	return s.expiringOut, s.expiringErr
}

func (s *stubCertificationUseCase) RefreshStatuses(ctx context.Context) (*certification.RefreshResult, error) {
	return s.refreshOut, s.refreshErr
}

func TestCertificationGrpcHandler_CreateCertification_ParsesDates(t *testing.T) {
	t.Parallel()

	issue := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	expiry := issue.AddDate(1, 0, 0)
	stub := &stubCertificationUseCase{createOut: &certification.Certification{
		ID:         "cert-1",
		WorkerID:   "worker-1",
		CourseID:   "course-1",
		IssueDate:  issue,
		ExpiryDate: expiry,
		Status:     lifecycle.CertificationVigente,
	}}
	handler := NewCertificationGrpcHandler(stub)

	resp, err := handler.CreateCertification(context.Background(), &apiv1.CreateCertificationRequest{
		WorkerID:   "worker-1",
		CourseID:   "course-1",
		IssueDate:  "2026-01-10",
		ExpiryDate: "2027-01-10",
	})
	if err != nil {
		t.Fatalf("CreateCertification returned error: %v", err)
	}

	if !stub.createInput.IssueDate.Equal(issue) || !stub.createInput.ExpiryDate.Equal(expiry) {
		t.Fatalf("unexpected dates %v %v", stub.createInput.IssueDate, stub.createInput.ExpiryDate)
	}
	if resp.Certification.ExpiryDate != "2027-01-10" || resp.Certification.Status != "vigente" {
		t.Fatalf("unexpected response %+v", resp.Certification)
	}
}

func TestCertificationGrpcHandler_CreateCertification_InvalidDate(t *testing.T) {
	t.Parallel()

	stub := &stubCertificationUseCase{}
	handler := NewCertificationGrpcHandler(stub)

	_, err := handler.CreateCertification(context.Background(), &apiv1.CreateCertificationRequest{
		WorkerID:   "worker-1",
		CourseID:   "course-1",
		IssueDate:  "10/01/2026",
		ExpiryDate: "2027-01-10",
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", status.Code(err))
	}
	if stub.createInput.WorkerID != "" {
		t.Fatalf("expected use case not to be called")
	}
}

func TestCertificationGrpcHandler_ListExpiring(t *testing.T) {
	t.Parallel()

	stub := &stubCertificationUseCase{expiringOut: []certification.Expiring{
		{
			Certification: &certification.Certification{ID: "cert-1", ExpiryDate: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), Status: lifecycle.CertificationPorVencer},
			DaysUntil:     2,
			Window:        lifecycle.WindowCritical,
		},
		{
			Certification: &certification.Certification{ID: "cert-2", ExpiryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Status: lifecycle.CertificationVencido},
			DaysUntil:     -14,
			Window:        lifecycle.WindowExpired,
		},
	}}
	handler := NewCertificationGrpcHandler(stub)

	resp, err := handler.ListExpiring(context.Background(), &apiv1.ListExpiringRequest{WithinDays: 15, IncludeExpired: true})
	if err != nil {
		t.Fatalf("ListExpiring returned error: %v", err)
	}

	if stub.expiringInput.WithinDays != 15 || !stub.expiringInput.IncludeExpired {
		t.Fatalf("unexpected input %+v", stub.expiringInput)
	}
	if len(resp.Certifications) != 2 {
		t.Fatalf("expected 2 certifications, got %d", len(resp.Certifications))
	}
	first := resp.Certifications[0]
	if first.DaysUntil == nil || *first.DaysUntil != 2 || first.Window != "critical" {
		t.Fatalf("unexpected first item %+v", first)
	}
	if second := resp.Certifications[1]; *second.DaysUntil != -14 || second.Window != "expired" {
		t.Fatalf("unexpected second item %+v", second)
	}
}

func TestCertificationGrpcHandler_ListExpiring_InvalidWindow(t *testing.T) {
	t.Parallel()

	stub := &stubCertificationUseCase{expiringErr: certification.ErrInvalidWithinDays}
	handler := NewCertificationGrpcHandler(stub)

	_, err := handler.ListExpiring(context.Background(), &apiv1.ListExpiringRequest{WithinDays: -1})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", status.Code(err))
	}
}

func TestCertificationGrpcHandler_RefreshStatuses(t *testing.T) {
	t.Parallel()

	stub := &stubCertificationUseCase{refreshOut: &certification.RefreshResult{Scanned: 10, Updated: 3, Expired: 2, Notified: 4, HomologationsExpired: 1}}
	handler := NewCertificationGrpcHandler(stub)

	resp, err := handler.RefreshStatuses(context.Background(), &apiv1.Empty{})
	if err != nil {
		t.Fatalf("RefreshStatuses returned error: %v", err)
	}
	if resp.Scanned != 10 || resp.Updated != 3 || resp.Expired != 2 || resp.Notified != 4 || resp.HomologationsExpired != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}
