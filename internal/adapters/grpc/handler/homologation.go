package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/homologation"
)

// HomologationGrpcHandler は HomologationService の gRPC 実装です。
type HomologationGrpcHandler struct {
	svc homologation.UseCase
}

var _ apiv1.HomologationServiceServer = (*HomologationGrpcHandler)(nil)

// NewHomologationGrpcHandler は HomologationGrpcHandler を生成します。
func NewHomologationGrpcHandler(svc homologation.UseCase) *HomologationGrpcHandler {
	return &HomologationGrpcHandler{svc: svc}
}

func (h *HomologationGrpcHandler) CreateHomologation(ctx context.Context, req *apiv1.CreateHomologationRequest) (*apiv1.HomologationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.CreateHomologation(ctx, homologation.CreateHomologationInput{
		CompanyID:  req.CompanyID,
		CourseID:   req.CourseID,
		IsRequired: req.IsRequired,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.HomologationResponse{Homologation: toAPIHomologation(created)}, nil
}

func (h *HomologationGrpcHandler) GetHomologation(ctx context.Context, req *apiv1.IDRequest) (*apiv1.HomologationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetHomologation(ctx, homologation.GetHomologationInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.HomologationResponse{Homologation: toAPIHomologation(found)}, nil
}

func (h *HomologationGrpcHandler) ListHomologations(ctx context.Context, req *apiv1.ListHomologationsRequest) (*apiv1.ListHomologationsResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListHomologations(ctx, homologation.ListHomologationsInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		CompanyID: optionalString(req.CompanyID),
		CourseID:  optionalString(req.CourseID),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	items := make([]*apiv1.Homologation, 0, len(result.Homologations))
	for _, item := range result.Homologations {
		items = append(items, toAPIHomologation(item))
	}

	return &apiv1.ListHomologationsResponse{Homologations: items, NextPageToken: result.NextPageToken}, nil
}

func (h *HomologationGrpcHandler) UpdateHomologation(ctx context.Context, req *apiv1.UpdateHomologationRequest) (*apiv1.HomologationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.UpdateHomologation(ctx, homologation.UpdateHomologationInput{
		ID:         req.ID,
		IsRequired: req.IsRequired,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.HomologationResponse{Homologation: toAPIHomologation(updated)}, nil
}

func (h *HomologationGrpcHandler) DeleteHomologation(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteHomologation(ctx, homologation.DeleteHomologationInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPIHomologation(h *homologation.Homologation) *apiv1.Homologation {
	if h == nil {
		return nil
	}
	return &apiv1.Homologation{
		ID:         h.ID,
		CompanyID:  h.CompanyID,
		CourseID:   h.CourseID,
		IsRequired: h.IsRequired,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}
