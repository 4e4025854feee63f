package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// AssignmentServiceName は AssignmentService の完全修飾名です。
const AssignmentServiceName = packageName + ".AssignmentService"

type Assignment struct {
	ID        string    `json:"id"`
	WorkerID  string    `json:"worker_id"`
	ServiceID string    `json:"service_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AssignWorkerRequest struct {
	WorkerID  string `json:"worker_id"`
	ServiceID string `json:"service_id"`
	StartDate string `json:"start_date,omitempty"`
}

type FinishAssignmentRequest struct {
	ID      string `json:"id"`
	EndDate string `json:"end_date,omitempty"`
}

type ListAssignmentsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
	WorkerID  string `json:"worker_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type ListAssignmentsResponse struct {
	Assignments   []*Assignment `json:"assignments"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

type AssignmentResponse struct {
	Assignment *Assignment `json:"assignment"`
}

type AvailableWorkersRequest struct {
	ServiceID string `json:"service_id"`
}

type AvailableWorkersResponse struct {
	Workers []*Worker `json:"workers"`
}

// AssignmentServiceServer は AssignmentService のサーバー実装です。
type AssignmentServiceServer interface {
	AssignWorker(context.Context, *AssignWorkerRequest) (*AssignmentResponse, error)
	GetAssignment(context.Context, *IDRequest) (*AssignmentResponse, error)
	ListAssignments(context.Context, *ListAssignmentsRequest) (*ListAssignmentsResponse, error)
	FinishAssignment(context.Context, *FinishAssignmentRequest) (*AssignmentResponse, error)
	DeleteAssignment(context.Context, *IDRequest) (*Empty, error)
	AvailableWorkers(context.Context, *AvailableWorkersRequest) (*AvailableWorkersResponse, error)
}

var AssignmentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AssignmentServiceName,
	HandlerType: (*AssignmentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AssignmentServiceName, "AssignWorker", AssignmentServiceServer.AssignWorker),
		unary(AssignmentServiceName, "GetAssignment", AssignmentServiceServer.GetAssignment),
		unary(AssignmentServiceName, "ListAssignments", AssignmentServiceServer.ListAssignments),
		unary(AssignmentServiceName, "FinishAssignment", AssignmentServiceServer.FinishAssignment),
		unary(AssignmentServiceName, "DeleteAssignment", AssignmentServiceServer.DeleteAssignment),
		unary(AssignmentServiceName, "AvailableWorkers", AssignmentServiceServer.AvailableWorkers),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAssignmentServiceServer(s grpc.ServiceRegistrar, srv AssignmentServiceServer) {
	s.RegisterService(&AssignmentService_ServiceDesc, srv)
}
