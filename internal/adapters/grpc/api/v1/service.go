package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// ServiceServiceName は現場サービスを扱う ServiceService の完全修飾名です。
const ServiceServiceName = packageName + ".ServiceService"

type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CompanyID   string    `json:"company_id"`
	Status      string    `json:"status"`
	ManagerID   *string   `json:"manager_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CompanyID   string  `json:"company_id"`
	Status      *string `json:"status,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
}

type UpdateServiceRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CompanyID   *string `json:"company_id,omitempty"`
	Status      *string `json:"status,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
}

type ListServicesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type ListServicesResponse struct {
	Services      []*Service `json:"services"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

type ServiceResponse struct {
	Service *Service `json:"service"`
}

// ServiceServiceServer は ServiceService のサーバー実装です。
type ServiceServiceServer interface {
	CreateService(context.Context, *CreateServiceRequest) (*ServiceResponse, error)
	GetService(context.Context, *IDRequest) (*ServiceResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
	UpdateService(context.Context, *UpdateServiceRequest) (*ServiceResponse, error)
	DeleteService(context.Context, *IDRequest) (*Empty, error)
}

var ServiceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceServiceName,
	HandlerType: (*ServiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ServiceServiceName, "CreateService", ServiceServiceServer.CreateService),
		unary(ServiceServiceName, "GetService", ServiceServiceServer.GetService),
		unary(ServiceServiceName, "ListServices", ServiceServiceServer.ListServices),
		unary(ServiceServiceName, "UpdateService", ServiceServiceServer.UpdateService),
		unary(ServiceServiceName, "DeleteService", ServiceServiceServer.DeleteService),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterServiceServiceServer(s grpc.ServiceRegistrar, srv ServiceServiceServer) {
	s.RegisterService(&ServiceService_ServiceDesc, srv)
}
