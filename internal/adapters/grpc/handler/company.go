package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/company"
)

// CompanyGrpcHandler は CompanyService の gRPC 実装です。
type CompanyGrpcHandler struct {
	svc company.UseCase
}

var _ apiv1.CompanyServiceServer = (*CompanyGrpcHandler)(nil)

// NewCompanyGrpcHandler は CompanyGrpcHandler を生成します。
func NewCompanyGrpcHandler(svc company.UseCase) *CompanyGrpcHandler {
	return &CompanyGrpcHandler{svc: svc}
}

// CreateCompany は会社を作成します。
func (h *CompanyGrpcHandler) CreateCompany(ctx context.Context, req *apiv1.CreateCompanyRequest) (*apiv1.CompanyResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.CreateCompany(ctx, company.CreateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		CostCenter:  req.CostCenter,
		WorkMode:    enumPtr[company.WorkMode](req.WorkMode),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CompanyResponse{Company: toAPICompany(created)}, nil
}

// GetCompany は会社を取得します。
func (h *CompanyGrpcHandler) GetCompany(ctx context.Context, req *apiv1.IDRequest) (*apiv1.CompanyResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetCompany(ctx, company.GetCompanyInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CompanyResponse{Company: toAPICompany(found)}, nil
}

// ListCompanies は会社の一覧を取得します。
func (h *CompanyGrpcHandler) ListCompanies(ctx context.Context, req *apiv1.ListCompaniesRequest) (*apiv1.ListCompaniesResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListCompanies(ctx, company.ListCompaniesInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		WorkMode:  optionalEnum[company.WorkMode](req.WorkMode),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	companies := make([]*apiv1.Company, 0, len(result.Companies))
	for _, c := range result.Companies {
		companies = append(companies, toAPICompany(c))
	}

	return &apiv1.ListCompaniesResponse{Companies: companies, NextPageToken: result.NextPageToken}, nil
}

// UpdateCompany は会社情報を更新します。
func (h *CompanyGrpcHandler) UpdateCompany(ctx context.Context, req *apiv1.UpdateCompanyRequest) (*apiv1.CompanyResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.UpdateCompany(ctx, company.UpdateCompanyInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		CostCenter:  req.CostCenter,
		WorkMode:    enumPtr[company.WorkMode](req.WorkMode),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CompanyResponse{Company: toAPICompany(updated)}, nil
}

// DeleteCompany は会社を削除します。
func (h *CompanyGrpcHandler) DeleteCompany(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteCompany(ctx, company.DeleteCompanyInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPICompany(c *company.Company) *apiv1.Company {
	if c == nil {
		return nil
	}
	return &apiv1.Company{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CostCenter:  c.CostCenter,
		WorkMode:    string(c.WorkMode),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
