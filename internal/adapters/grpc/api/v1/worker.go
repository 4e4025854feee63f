package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// WorkerServiceName は WorkerService の完全修飾名です。
const WorkerServiceName = packageName + ".WorkerService"

// WorkerProfile は作業員の付帯情報です。日付は YYYY-MM-DD 形式です。
type WorkerProfile struct {
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty"`
	Position          *string `json:"position,omitempty"`
	PhotoURL          *string `json:"photo_url,omitempty"`
	Country           *string `json:"country,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	MaritalStatus     *string `json:"marital_status,omitempty"`
	BirthDate         string  `json:"birth_date,omitempty"`
	PersonalEmail     *string `json:"personal_email,omitempty"`
	Address           *string `json:"address,omitempty"`
	Landline          *string `json:"landline,omitempty"`
	Career            *string `json:"career,omitempty"`
	StartDate         string  `json:"start_date,omitempty"`
	EndDate           string  `json:"end_date,omitempty"`
	Site              *string `json:"site,omitempty"`
	Area              *string `json:"area,omitempty"`
	Local             *string `json:"local,omitempty"`
	WorkingConditions *string `json:"working_conditions,omitempty"`
}

// WorkerHomologation は作業員の認証情報です。Status は実効状態、Window は期限の緊急度区分です。
type WorkerHomologation struct {
	IsHomologated     bool    `json:"is_homologated"`
	Type              *string `json:"type,omitempty"`
	Status            string  `json:"status"`
	Date              string  `json:"date,omitempty"`
	Expiry            string  `json:"expiry,omitempty"`
	Entity            *string `json:"entity,omitempty"`
	CertificateNumber *string `json:"certificate_number,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	Window            string  `json:"window,omitempty"`
}

type Worker struct {
	ID           string             `json:"id"`
	DNI          string             `json:"dni"`
	FullName     string             `json:"full_name"`
	Status       string             `json:"status"`
	CompanyID    *string            `json:"company_id,omitempty"`
	Profile      WorkerProfile      `json:"profile"`
	Homologation WorkerHomologation `json:"homologation"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// WorkerHomologationInput は認証情報の入力です。指定時は認証情報全体を置き換えます。
type WorkerHomologationInput struct {
	IsHomologated     bool    `json:"is_homologated"`
	Type              *string `json:"type,omitempty"`
	Status            *string `json:"status,omitempty"`
	Date              string  `json:"date,omitempty"`
	Expiry            string  `json:"expiry,omitempty"`
	Entity            *string `json:"entity,omitempty"`
	CertificateNumber *string `json:"certificate_number,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

type CreateWorkerRequest struct {
	DNI          string                   `json:"dni"`
	FullName     string                   `json:"full_name"`
	Status       *string                  `json:"status,omitempty"`
	CompanyID    *string                  `json:"company_id,omitempty"`
	Profile      *WorkerProfile           `json:"profile,omitempty"`
	Homologation *WorkerHomologationInput `json:"homologation,omitempty"`
}

type UpdateWorkerRequest struct {
	ID           string                   `json:"id"`
	DNI          *string                  `json:"dni,omitempty"`
	FullName     *string                  `json:"full_name,omitempty"`
	Status       *string                  `json:"status,omitempty"`
	CompanyID    *string                  `json:"company_id,omitempty"`
	Profile      *WorkerProfile           `json:"profile,omitempty"`
	Homologation *WorkerHomologationInput `json:"homologation,omitempty"`
}

type ListWorkersRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Search    string `json:"search,omitempty"`
}

type ListWorkersResponse struct {
	Workers       []*Worker `json:"workers"`
	NextPageToken string    `json:"next_page_token,omitempty"`
}

type WorkerResponse struct {
	Worker *Worker `json:"worker"`
}

// WorkerServiceServer は WorkerService のサーバー実装です。
type WorkerServiceServer interface {
	CreateWorker(context.Context, *CreateWorkerRequest) (*WorkerResponse, error)
	GetWorker(context.Context, *IDRequest) (*WorkerResponse, error)
	ListWorkers(context.Context, *ListWorkersRequest) (*ListWorkersResponse, error)
	UpdateWorker(context.Context, *UpdateWorkerRequest) (*WorkerResponse, error)
	DeleteWorker(context.Context, *IDRequest) (*Empty, error)
}

var WorkerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WorkerServiceName,
	HandlerType: (*WorkerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(WorkerServiceName, "CreateWorker", WorkerServiceServer.CreateWorker),
		unary(WorkerServiceName, "GetWorker", WorkerServiceServer.GetWorker),
		unary(WorkerServiceName, "ListWorkers", WorkerServiceServer.ListWorkers),
		unary(WorkerServiceName, "UpdateWorker", WorkerServiceServer.UpdateWorker),
		unary(WorkerServiceName, "DeleteWorker", WorkerServiceServer.DeleteWorker),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterWorkerServiceServer(s grpc.ServiceRegistrar, srv WorkerServiceServer) {
	s.RegisterService(&WorkerService_ServiceDesc, srv)
}
