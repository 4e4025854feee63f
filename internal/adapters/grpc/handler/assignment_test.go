package handler

import (
	"context"
	"testing"
	"time"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/assignment"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubAssignmentUseCase struct {
	assignment.UseCase

	assignInput assignment.AssignWorkerInput
	assignOut   *assignment.Assignment
	assignErr   error

	finishInput assignment.FinishAssignmentInput
	finishOut   *assignment.Assignment
	finishErr   error

	listInput assignment.ListAssignmentsInput
	listOut   *assignment.ListAssignmentsResult

	availableInput assignment.AvailableWorkersInput
	availableOut   []*worker.Worker
}

func (s *stubAssignmentUseCase) AssignWorker(ctx context.Context, in assignment.AssignWorkerInput) (*assignment.Assignment, error) {
	s.assignInput = in
	return s.assignOut, s.assignErr
}

func (s *stubAssignmentUseCase) FinishAssignment(ctx context.Context, in assignment.FinishAssignmentInput) (*assignment.Assignment, error) {
	s.finishInput = in
	return s.finishOut, s.finishErr
}

func (s *stubAssignmentUseCase) ListAssignments(ctx context.Context, in assignment.ListAssignmentsInput) (*assignment.ListAssignmentsResult, error) {
	s.listInput = in
	return s.listOut, nil
}

func (s *stubAssignmentUseCase) AvailableWorkers(ctx context.Context, in assignment.AvailableWorkersInput) ([]*worker.Worker, error) {
	s.availableInput = in
	return s.availableOut, nil
}

func TestAssignmentGrpcHandler_AssignWorker(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubAssignmentUseCase{assignOut: &assignment.Assignment{
		ID:        "a-1",
		WorkerID:  "worker-1",
		ServiceID: "service-1",
		StartDate: start,
		Status:    assignment.StatusActivo,
	}}
	handler := NewAssignmentGrpcHandler(stub, lifecycle.DefaultThresholds, nil)

	resp, err := handler.AssignWorker(context.Background(), &apiv1.AssignWorkerRequest{WorkerID: "worker-1", ServiceID: "service-1", StartDate: "2026-10-01"})
	if err != nil {
		t.Fatalf("AssignWorker returned error: %v", err)
	}

	if stub.assignInput.StartDate == nil || !stub.assignInput.StartDate.Equal(start) {
		t.Fatalf("unexpected start date %v", stub.assignInput.StartDate)
	}
	if resp.Assignment.StartDate != "2026-10-01" || resp.Assignment.EndDate != "" || resp.Assignment.Status != "activo" {
		t.Fatalf("unexpected response %+v", resp.Assignment)
	}
}

func TestAssignmentGrpcHandler_AssignWorker_DefaultStartDate(t *testing.T) {
	t.Parallel()

	stub := &stubAssignmentUseCase{assignOut: &assignment.Assignment{ID: "a-1"}}
	handler := NewAssignmentGrpcHandler(stub, lifecycle.DefaultThresholds, nil)

	if _, err := handler.AssignWorker(context.Background(), &apiv1.AssignWorkerRequest{WorkerID: "worker-1", ServiceID: "service-1"}); err != nil {
		t.Fatalf("AssignWorker returned error: %v", err)
	}
	if stub.assignInput.StartDate != nil {
		t.Fatalf("expected nil start date to defer to the use case, got %v", stub.assignInput.StartDate)
	}
}

func TestAssignmentGrpcHandler_AssignWorker_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want codes.Code
	}{
		{err: assignment.ErrAlreadyAssigned, want: codes.AlreadyExists},
		{err: assignment.ErrWorkerNotEligible, want: codes.FailedPrecondition},
		{err: assignment.ErrServiceInactive, want: codes.FailedPrecondition},
	}

	for _, tc := range cases {
		stub := &stubAssignmentUseCase{assignErr: tc.err}
		handler := NewAssignmentGrpcHandler(stub, lifecycle.DefaultThresholds, nil)

		_, err := handler.AssignWorker(context.Background(), &apiv1.AssignWorkerRequest{WorkerID: "worker-1", ServiceID: "service-1"})
		if status.Code(err) != tc.want {
			t.Fatalf("expected %v for %v, got %v", tc.want, tc.err, status.Code(err))
		}
	}
}

func TestAssignmentGrpcHandler_FinishAssignment(t *testing.T) {
	t.Parallel()

	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	stub := &stubAssignmentUseCase{finishOut: &assignment.Assignment{ID: "a-1", EndDate: &end, Status: assignment.StatusFinalizado}}
	handler := NewAssignmentGrpcHandler(stub, lifecycle.DefaultThresholds, nil)

	resp, err := handler.FinishAssignment(context.Background(), &apiv1.FinishAssignmentRequest{ID: "a-1", EndDate: "2026-12-31"})
	if err != nil {
		t.Fatalf("FinishAssignment returned error: %v", err)
	}
	if stub.finishInput.EndDate == nil || !stub.finishInput.EndDate.Equal(end) {
		t.Fatalf("unexpected end date %v", stub.finishInput.EndDate)
	}
	if resp.Assignment.EndDate != "2026-12-31" || resp.Assignment.Status != "finalizado" {
		t.Fatalf("unexpected response %+v", resp.Assignment)
	}

	_, err = handler.FinishAssignment(context.Background(), &apiv1.FinishAssignmentRequest{ID: "a-1", EndDate: "31-12-2026"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for bad end date, got %v", status.Code(err))
	}
}

func TestAssignmentGrpcHandler_ListAssignments_Filters(t *testing.T) {
	t.Parallel()

	stub := &stubAssignmentUseCase{listOut: &assignment.ListAssignmentsResult{}}
	handler := NewAssignmentGrpcHandler(stub, lifecycle.DefaultThresholds, nil)

	if _, err := handler.ListAssignments(context.Background(), &apiv1.ListAssignmentsRequest{ServiceID: "service-1", Status: "activo"}); err != nil {
		t.Fatalf("ListAssignments returned error: %v", err)
	}
	in := stub.listInput
	if in.ServiceID == nil || *in.ServiceID != "service-1" || in.WorkerID != nil {
		t.Fatalf("unexpected id filters %+v", in)
	}
	if in.Status == nil || *in.Status != assignment.StatusActivo {
		t.Fatalf("expected status filter activo")
	}
}

func TestAssignmentGrpcHandler_AvailableWorkers(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	stub := &stubAssignmentUseCase{availableOut: []*worker.Worker{{
		ID:     "worker-1",
		Status: worker.StatusHabilitado,
		Homologation: worker.Homologation{
			IsHomologated: true,
			Status:        lifecycle.HomologationVigente,
			Expiry:        datePtr(2026, 10, 28),
		},
	}}}
	handler := NewAssignmentGrpcHandler(stub, lifecycle.DefaultThresholds, fixedClock{now: now})

	resp, err := handler.AvailableWorkers(context.Background(), &apiv1.AvailableWorkersRequest{ServiceID: "service-1"})
	if err != nil {
		t.Fatalf("AvailableWorkers returned error: %v", err)
	}
	if stub.availableInput.ServiceID != "service-1" {
		t.Fatalf("expected service id to be passed through")
	}
	if len(resp.Workers) != 1 || resp.Workers[0].Homologation.Window != "warning" {
		t.Fatalf("unexpected workers %+v", resp.Workers)
	}
}
