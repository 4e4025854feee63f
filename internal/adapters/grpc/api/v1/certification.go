package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// CertificationServiceName は CertificationService の完全修飾名です。
const CertificationServiceName = packageName + ".CertificationService"

// Certification は認定です。DaysUntil と Window は期限一覧でのみ設定されます。
type Certification struct {
	ID          string    `json:"id"`
	WorkerID    string    `json:"worker_id"`
	WorkerName  string    `json:"worker_name,omitempty"`
	CourseID    string    `json:"course_id"`
	CourseName  string    `json:"course_name,omitempty"`
	IssueDate   string    `json:"issue_date"`
	ExpiryDate  string    `json:"expiry_date"`
	DocumentURL *string   `json:"document_url,omitempty"`
	Status      string    `json:"status"`
	DaysUntil   *int32    `json:"days_until,omitempty"`
	Window      string    `json:"window,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCertificationRequest struct {
	WorkerID    string  `json:"worker_id"`
	CourseID    string  `json:"course_id"`
	IssueDate   string  `json:"issue_date"`
	ExpiryDate  string  `json:"expiry_date"`
	DocumentURL *string `json:"document_url,omitempty"`
}

type UpdateCertificationRequest struct {
	ID          string  `json:"id"`
	IssueDate   *string `json:"issue_date,omitempty"`
	ExpiryDate  *string `json:"expiry_date,omitempty"`
	DocumentURL *string `json:"document_url,omitempty"`
}

type ListCertificationsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	WorkerID  string `json:"worker_id,omitempty"`
	CourseID  string `json:"course_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type ListCertificationsResponse struct {
	Certifications []*Certification `json:"certifications"`
	NextPageToken  string           `json:"next_page_token,omitempty"`
}

type CertificationResponse struct {
	Certification *Certification `json:"certification"`
}

// ListExpiringRequest は期限間近の認定一覧のリクエストです。within_days が 0 の場合は info 閾値を使います。
type ListExpiringRequest struct {
	WithinDays     int32 `json:"within_days,omitempty"`
	IncludeExpired bool  `json:"include_expired,omitempty"`
}

type ListExpiringResponse struct {
	Certifications []*Certification `json:"certifications"`
}

type RefreshStatusesResponse struct {
	Scanned              int32 `json:"scanned"`
	Updated              int32 `json:"updated"`
	Expired              int32 `json:"expired"`
	Notified             int32 `json:"notified"`
	HomologationsExpired int64 `json:"homologations_expired"`
}

// CertificationServiceServer は CertificationService のサーバー実装です。
type CertificationServiceServer interface {
	CreateCertification(context.Context, *CreateCertificationRequest) (*CertificationResponse, error)
	GetCertification(context.Context, *IDRequest) (*CertificationResponse, error)
	ListCertifications(context.Context, *ListCertificationsRequest) (*ListCertificationsResponse, error)
	UpdateCertification(context.Context, *UpdateCertificationRequest) (*CertificationResponse, error)
	DeleteCertification(context.Context, *IDRequest) (*Empty, error)
	ListExpiring(context.Context, *ListExpiringRequest) (*ListExpiringResponse, error)
	RefreshStatuses(context.Context, *Empty) (*RefreshStatusesResponse, error)
}

var CertificationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CertificationServiceName,
	HandlerType: (*CertificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CertificationServiceName, "CreateCertification", CertificationServiceServer.CreateCertification),
		unary(CertificationServiceName, "GetCertification", CertificationServiceServer.GetCertification),
		unary(CertificationServiceName, "ListCertifications", CertificationServiceServer.ListCertifications),
		unary(CertificationServiceName, "UpdateCertification", CertificationServiceServer.UpdateCertification),
		unary(CertificationServiceName, "DeleteCertification", CertificationServiceServer.DeleteCertification),
		unary(CertificationServiceName, "ListExpiring", CertificationServiceServer.ListExpiring),
		unary(CertificationServiceName, "RefreshStatuses", CertificationServiceServer.RefreshStatuses),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCertificationServiceServer(s grpc.ServiceRegistrar, srv CertificationServiceServer) {
	s.RegisterService(&CertificationService_ServiceDesc, srv)
}
