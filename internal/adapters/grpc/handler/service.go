package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/service"
)

// ServiceGrpcHandler は現場サービスを扱う ServiceService の gRPC 実装です。
type ServiceGrpcHandler struct {
	svc service.UseCase
}

var _ apiv1.ServiceServiceServer = (*ServiceGrpcHandler)(nil)

// NewServiceGrpcHandler は ServiceGrpcHandler を生成します。
func NewServiceGrpcHandler(svc service.UseCase) *ServiceGrpcHandler {
	return &ServiceGrpcHandler{svc: svc}
}

func (h *ServiceGrpcHandler) CreateService(ctx context.Context, req *apiv1.CreateServiceRequest) (*apiv1.ServiceResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.CreateService(ctx, service.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		Status:      enumPtr[service.Status](req.Status),
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.ServiceResponse{Service: toAPIService(created)}, nil
}

func (h *ServiceGrpcHandler) GetService(ctx context.Context, req *apiv1.IDRequest) (*apiv1.ServiceResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetService(ctx, service.GetServiceInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.ServiceResponse{Service: toAPIService(found)}, nil
}

func (h *ServiceGrpcHandler) ListServices(ctx context.Context, req *apiv1.ListServicesRequest) (*apiv1.ListServicesResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListServices(ctx, service.ListServicesInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		CompanyID: optionalString(req.CompanyID),
		Status:    optionalEnum[service.Status](req.Status),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	services := make([]*apiv1.Service, 0, len(result.Services))
	for _, s := range result.Services {
		services = append(services, toAPIService(s))
	}

	return &apiv1.ListServicesResponse{Services: services, NextPageToken: result.NextPageToken}, nil
}

func (h *ServiceGrpcHandler) UpdateService(ctx context.Context, req *apiv1.UpdateServiceRequest) (*apiv1.ServiceResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.UpdateService(ctx, service.UpdateServiceInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		Status:      enumPtr[service.Status](req.Status),
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.ServiceResponse{Service: toAPIService(updated)}, nil
}

func (h *ServiceGrpcHandler) DeleteService(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteService(ctx, service.DeleteServiceInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPIService(s *service.Service) *apiv1.Service {
	if s == nil {
		return nil
	}
	return &apiv1.Service{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CompanyID:   s.CompanyID,
		Status:      string(s.Status),
		ManagerID:   s.ManagerID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
