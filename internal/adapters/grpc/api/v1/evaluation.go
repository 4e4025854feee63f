package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// EvaluationServiceName は EvaluationService の完全修飾名です。
const EvaluationServiceName = packageName + ".EvaluationService"

type Evaluation struct {
	ID             string    `json:"id"`
	WorkerID       string    `json:"worker_id"`
	WorkerName     string    `json:"worker_name,omitempty"`
	EvaluatorID    string    `json:"evaluator_id"`
	EvaluationType string    `json:"evaluation_type"`
	Score          *int32    `json:"score,omitempty"`
	Date           string    `json:"date"`
	Comments       *string   `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateEvaluationRequest struct {
	WorkerID       string  `json:"worker_id"`
	EvaluatorID    string  `json:"evaluator_id"`
	EvaluationType string  `json:"evaluation_type"`
	Score          *int32  `json:"score,omitempty"`
	Date           string  `json:"date,omitempty"`
	Comments       *string `json:"comments,omitempty"`
}

type UpdateEvaluationRequest struct {
	ID             string  `json:"id"`
	EvaluationType *string `json:"evaluation_type,omitempty"`
	Score          *int32  `json:"score,omitempty"`
	Date           *string `json:"date,omitempty"`
	Comments       *string `json:"comments,omitempty"`
}

type ListEvaluationsRequest struct {
	PageSize       int32  `json:"page_size,omitempty"`
	PageToken      string `json:"page_token,omitempty"`
	WorkerID       string `json:"worker_id,omitempty"`
	EvaluatorID    string `json:"evaluator_id,omitempty"`
	EvaluationType string `json:"evaluation_type,omitempty"`
}

type ListEvaluationsResponse struct {
	Evaluations   []*Evaluation `json:"evaluations"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

type EvaluationResponse struct {
	Evaluation *Evaluation `json:"evaluation"`
}

// EvaluationServiceServer は EvaluationService のサーバー実装です。
type EvaluationServiceServer interface {
	CreateEvaluation(context.Context, *CreateEvaluationRequest) (*EvaluationResponse, error)
	GetEvaluation(context.Context, *IDRequest) (*EvaluationResponse, error)
	ListEvaluations(context.Context, *ListEvaluationsRequest) (*ListEvaluationsResponse, error)
	UpdateEvaluation(context.Context, *UpdateEvaluationRequest) (*EvaluationResponse, error)
	DeleteEvaluation(context.Context, *IDRequest) (*Empty, error)
}

var EvaluationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: EvaluationServiceName,
	HandlerType: (*EvaluationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(EvaluationServiceName, "CreateEvaluation", EvaluationServiceServer.CreateEvaluation),
		unary(EvaluationServiceName, "GetEvaluation", EvaluationServiceServer.GetEvaluation),
		unary(EvaluationServiceName, "ListEvaluations", EvaluationServiceServer.ListEvaluations),
		unary(EvaluationServiceName, "UpdateEvaluation", EvaluationServiceServer.UpdateEvaluation),
		unary(EvaluationServiceName, "DeleteEvaluation", EvaluationServiceServer.DeleteEvaluation),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterEvaluationServiceServer(s grpc.ServiceRegistrar, srv EvaluationServiceServer) {
	s.RegisterService(&EvaluationService_ServiceDesc, srv)
}
