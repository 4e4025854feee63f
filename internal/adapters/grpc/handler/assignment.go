package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/assignment"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// AssignmentGrpcHandler は AssignmentService の gRPC 実装です。
type AssignmentGrpcHandler struct {
	svc  assignment.UseCase
	view expiryView
}

var _ apiv1.AssignmentServiceServer = (*AssignmentGrpcHandler)(nil)

// NewAssignmentGrpcHandler は AssignmentGrpcHandler を生成します。
func NewAssignmentGrpcHandler(svc assignment.UseCase, thresholds lifecycle.Thresholds, clock common.Clock) *AssignmentGrpcHandler {
	return &AssignmentGrpcHandler{svc: svc, view: newExpiryView(thresholds, clock)}
}

// AssignWorker は作業員をサービスに配属します。
func (h *AssignmentGrpcHandler) AssignWorker(ctx context.Context, req *apiv1.AssignWorkerRequest) (*apiv1.AssignmentResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.AssignWorker(ctx, assignment.AssignWorkerInput{
		WorkerID:  req.WorkerID,
		ServiceID: req.ServiceID,
		StartDate: start,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.AssignmentResponse{Assignment: toAPIAssignment(created)}, nil
}

// GetAssignment は配属を取得します。
func (h *AssignmentGrpcHandler) GetAssignment(ctx context.Context, req *apiv1.IDRequest) (*apiv1.AssignmentResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetAssignment(ctx, assignment.GetAssignmentInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.AssignmentResponse{Assignment: toAPIAssignment(found)}, nil
}

// ListAssignments は配属の一覧を取得します。
func (h *AssignmentGrpcHandler) ListAssignments(ctx context.Context, req *apiv1.ListAssignmentsRequest) (*apiv1.ListAssignmentsResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListAssignments(ctx, assignment.ListAssignmentsInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		ServiceID: optionalString(req.ServiceID),
		WorkerID:  optionalString(req.WorkerID),
		Status:    optionalEnum[assignment.Status](req.Status),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	items := make([]*apiv1.Assignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		items = append(items, toAPIAssignment(a))
	}

	return &apiv1.ListAssignmentsResponse{Assignments: items, NextPageToken: result.NextPageToken}, nil
}

// FinishAssignment は配属を終了します。
func (h *AssignmentGrpcHandler) FinishAssignment(ctx context.Context, req *apiv1.FinishAssignmentRequest) (*apiv1.AssignmentResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, toStatusError(err)
	}

	finished, err := h.svc.FinishAssignment(ctx, assignment.FinishAssignmentInput{ID: req.ID, EndDate: end})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.AssignmentResponse{Assignment: toAPIAssignment(finished)}, nil
}

// DeleteAssignment は配属を削除します。
func (h *AssignmentGrpcHandler) DeleteAssignment(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteAssignment(ctx, assignment.DeleteAssignmentInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

// AvailableWorkers はサービスへ配属可能な作業員を返します。
func (h *AssignmentGrpcHandler) AvailableWorkers(ctx context.Context, req *apiv1.AvailableWorkersRequest) (*apiv1.AvailableWorkersResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	workers, err := h.svc.AvailableWorkers(ctx, assignment.AvailableWorkersInput{ServiceID: req.ServiceID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.AvailableWorkersResponse{Workers: h.view.workers(workers)}, nil
}

func toAPIAssignment(a *assignment.Assignment) *apiv1.Assignment {
	if a == nil {
		return nil
	}
	return &apiv1.Assignment{
		ID:        a.ID,
		WorkerID:  a.WorkerID,
		ServiceID: a.ServiceID,
		StartDate: formatDate(a.StartDate),
		EndDate:   lifecycle.FormatDate(a.EndDate),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
