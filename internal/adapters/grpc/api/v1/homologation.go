package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// HomologationServiceName は HomologationService の完全修飾名です。
const HomologationServiceName = packageName + ".HomologationService"

type Homologation struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	CourseID   string    `json:"course_id"`
	IsRequired bool      `json:"is_required"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateHomologationRequest struct {
	CompanyID  string `json:"company_id"`
	CourseID   string `json:"course_id"`
	IsRequired *bool  `json:"is_required,omitempty"`
}

type UpdateHomologationRequest struct {
	ID         string `json:"id"`
	IsRequired *bool  `json:"is_required,omitempty"`
}

type ListHomologationsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
	CourseID  string `json:"course_id,omitempty"`
}

type ListHomologationsResponse struct {
	Homologations []*Homologation `json:"homologations"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

type HomologationResponse struct {
	Homologation *Homologation `json:"homologation"`
}

// HomologationServiceServer は HomologationService のサーバー実装です。
type HomologationServiceServer interface {
	CreateHomologation(context.Context, *CreateHomologationRequest) (*HomologationResponse, error)
	GetHomologation(context.Context, *IDRequest) (*HomologationResponse, error)
	ListHomologations(context.Context, *ListHomologationsRequest) (*ListHomologationsResponse, error)
	UpdateHomologation(context.Context, *UpdateHomologationRequest) (*HomologationResponse, error)
	DeleteHomologation(context.Context, *IDRequest) (*Empty, error)
}

var HomologationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: HomologationServiceName,
	HandlerType: (*HomologationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(HomologationServiceName, "CreateHomologation", HomologationServiceServer.CreateHomologation),
		unary(HomologationServiceName, "GetHomologation", HomologationServiceServer.GetHomologation),
		unary(HomologationServiceName, "ListHomologations", HomologationServiceServer.ListHomologations),
		unary(HomologationServiceName, "UpdateHomologation", HomologationServiceServer.UpdateHomologation),
		unary(HomologationServiceName, "DeleteHomologation", HomologationServiceServer.DeleteHomologation),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterHomologationServiceServer(s grpc.ServiceRegistrar, srv HomologationServiceServer) {
	s.RegisterService(&HomologationService_ServiceDesc, srv)
}
