package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// CompanyServiceName は CompanyService の完全修飾名です。
const CompanyServiceName = packageName + ".CompanyService"

type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CostCenter  *string   `json:"cost_center,omitempty"`
	WorkMode    string    `json:"work_mode"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CostCenter  *string `json:"cost_center,omitempty"`
	WorkMode    *string `json:"work_mode,omitempty"`
}

type UpdateCompanyRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CostCenter  *string `json:"cost_center,omitempty"`
	WorkMode    *string `json:"work_mode,omitempty"`
}

type ListCompaniesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	WorkMode  string `json:"work_mode,omitempty"`
}

type ListCompaniesResponse struct {
	Companies     []*Company `json:"companies"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

type CompanyResponse struct {
	Company *Company `json:"company"`
}

// CompanyServiceServer は CompanyService のサーバー実装です。
type CompanyServiceServer interface {
	CreateCompany(context.Context, *CreateCompanyRequest) (*CompanyResponse, error)
	GetCompany(context.Context, *IDRequest) (*CompanyResponse, error)
	ListCompanies(context.Context, *ListCompaniesRequest) (*ListCompaniesResponse, error)
	UpdateCompany(context.Context, *UpdateCompanyRequest) (*CompanyResponse, error)
	DeleteCompany(context.Context, *IDRequest) (*Empty, error)
}

var CompanyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CompanyServiceName,
	HandlerType: (*CompanyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CompanyServiceName, "CreateCompany", CompanyServiceServer.CreateCompany),
		unary(CompanyServiceName, "GetCompany", CompanyServiceServer.GetCompany),
		unary(CompanyServiceName, "ListCompanies", CompanyServiceServer.ListCompanies),
		unary(CompanyServiceName, "UpdateCompany", CompanyServiceServer.UpdateCompany),
		unary(CompanyServiceName, "DeleteCompany", CompanyServiceServer.DeleteCompany),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCompanyServiceServer(s grpc.ServiceRegistrar, srv CompanyServiceServer) {
	s.RegisterService(&CompanyService_ServiceDesc, srv)
}
