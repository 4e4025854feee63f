package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/evaluation"
)

// EvaluationGrpcHandler は EvaluationService の gRPC 実装です。
type EvaluationGrpcHandler struct {
	svc evaluation.UseCase
}

var _ apiv1.EvaluationServiceServer = (*EvaluationGrpcHandler)(nil)

// NewEvaluationGrpcHandler は EvaluationGrpcHandler を生成します。
func NewEvaluationGrpcHandler(svc evaluation.UseCase) *EvaluationGrpcHandler {
	return &EvaluationGrpcHandler{svc: svc}
}

func (h *EvaluationGrpcHandler) CreateEvaluation(ctx context.Context, req *apiv1.CreateEvaluationRequest) (*apiv1.EvaluationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateEvaluation(ctx, evaluation.CreateEvaluationInput{
		WorkerID:    req.WorkerID,
		EvaluatorID: req.EvaluatorID,
		Type:        evaluation.Type(req.EvaluationType),
		Score:       intPtr(req.Score),
		Date:        date,
		Comments:    req.Comments,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.EvaluationResponse{Evaluation: toAPIEvaluation(created)}, nil
}

func (h *EvaluationGrpcHandler) GetEvaluation(ctx context.Context, req *apiv1.IDRequest) (*apiv1.EvaluationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetEvaluation(ctx, evaluation.GetEvaluationInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.EvaluationResponse{Evaluation: toAPIEvaluation(found)}, nil
}

func (h *EvaluationGrpcHandler) ListEvaluations(ctx context.Context, req *apiv1.ListEvaluationsRequest) (*apiv1.ListEvaluationsResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListEvaluations(ctx, evaluation.ListEvaluationsInput{
		PageSize:    int(req.PageSize),
		PageToken:   req.PageToken,
		WorkerID:    optionalString(req.WorkerID),
		EvaluatorID: optionalString(req.EvaluatorID),
		Type:        optionalEnum[evaluation.Type](req.EvaluationType),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	items := make([]*apiv1.Evaluation, 0, len(result.Evaluations))
	for _, e := range result.Evaluations {
		items = append(items, toAPIEvaluation(e))
	}

	return &apiv1.ListEvaluationsResponse{Evaluations: items, NextPageToken: result.NextPageToken}, nil
}

func (h *EvaluationGrpcHandler) UpdateEvaluation(ctx context.Context, req *apiv1.UpdateEvaluationRequest) (*apiv1.EvaluationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	date, err := parseDatePtr("date", req.Date)
	if err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateEvaluation(ctx, evaluation.UpdateEvaluationInput{
		ID:       req.ID,
		Type:     enumPtr[evaluation.Type](req.EvaluationType),
		Score:    intPtr(req.Score),
		Date:     date,
		Comments: req.Comments,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.EvaluationResponse{Evaluation: toAPIEvaluation(updated)}, nil
}

func (h *EvaluationGrpcHandler) DeleteEvaluation(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteEvaluation(ctx, evaluation.DeleteEvaluationInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPIEvaluation(e *evaluation.Evaluation) *apiv1.Evaluation {
	if e == nil {
		return nil
	}
	return &apiv1.Evaluation{
		ID:             e.ID,
		WorkerID:       e.WorkerID,
		WorkerName:     e.WorkerName,
		EvaluatorID:    e.EvaluatorID,
		EvaluationType: string(e.Type),
		Score:          int32Ptr(e.Score),
		Date:           formatDate(e.Date),
		Comments:       e.Comments,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
