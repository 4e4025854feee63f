package apiv1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	// LifecycleServiceName は状態導出を公開する LifecycleService の完全修飾名です。
	LifecycleServiceName = packageName + ".LifecycleService"
	// DashboardServiceName は DashboardService の完全修飾名です。
	DashboardServiceName = packageName + ".DashboardService"
	// ReportServiceName は ReportService の完全修飾名です。
	ReportServiceName = packageName + ".ReportService"
)

// EvaluateExpiryRequest は有効期限の評価リクエストです。at 未指定時はサーバーの現在日付です。
type EvaluateExpiryRequest struct {
	ExpiryDate string `json:"expiry_date"`
	At         string `json:"at,omitempty"`
}

type EvaluateExpiryResponse struct {
	CertificationStatus string `json:"certification_status"`
	Window              string `json:"window"`
	DaysUntil           int32  `json:"days_until"`
}

type HomologationStatusRequest struct {
	IsHomologated bool   `json:"is_homologated"`
	Status        string `json:"status"`
	Expiry        string `json:"expiry,omitempty"`
	At            string `json:"at,omitempty"`
}

type HomologationStatusResponse struct {
	Status string `json:"status"`
	Window string `json:"window"`
}

// LifecycleServiceServer は LifecycleService のサーバー実装です。
type LifecycleServiceServer interface {
	EvaluateExpiry(context.Context, *EvaluateExpiryRequest) (*EvaluateExpiryResponse, error)
	HomologationStatus(context.Context, *HomologationStatusRequest) (*HomologationStatusResponse, error)
}

var LifecycleService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: LifecycleServiceName,
	HandlerType: (*LifecycleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(LifecycleServiceName, "EvaluateExpiry", LifecycleServiceServer.EvaluateExpiry),
		unary(LifecycleServiceName, "HomologationStatus", LifecycleServiceServer.HomologationStatus),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterLifecycleServiceServer(s grpc.ServiceRegistrar, srv LifecycleServiceServer) {
	s.RegisterService(&LifecycleService_ServiceDesc, srv)
}

type DashboardStats struct {
	Workers                 int32 `json:"workers"`
	WorkersHabilitados      int32 `json:"workers_habilitados"`
	WorkersInhabilitados    int32 `json:"workers_inhabilitados"`
	Companies               int32 `json:"companies"`
	Services                int32 `json:"services"`
	ServicesActivos         int32 `json:"services_activos"`
	Courses                 int32 `json:"courses"`
	Evaluations             int32 `json:"evaluations"`
	Documents               int32 `json:"documents"`
	Certifications          int32 `json:"certifications"`
	CertificationsVigente   int32 `json:"certifications_vigente"`
	CertificationsPorVencer int32 `json:"certifications_por_vencer"`
	CertificationsVencido   int32 `json:"certifications_vencido"`
}

// DashboardServiceServer は DashboardService のサーバー実装です。
type DashboardServiceServer interface {
	GetStats(context.Context, *Empty) (*DashboardStats, error)
}

var DashboardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DashboardServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DashboardServiceName, "GetStats", DashboardServiceServer.GetStats),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardService_ServiceDesc, srv)
}

type ExportExpiringRequest struct {
	WithinDays     int32 `json:"within_days,omitempty"`
	IncludeExpired bool  `json:"include_expired,omitempty"`
}

// ExportResponse は生成したファイルです。content は JSON 上 base64 で表現されます。
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
	Rows        int32  `json:"rows"`
}

// ReportServiceServer は ReportService のサーバー実装です。
type ReportServiceServer interface {
	ExportExpiringCertifications(context.Context, *ExportExpiringRequest) (*ExportResponse, error)
}

var ReportService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ReportServiceName,
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ReportServiceName, "ExportExpiringCertifications", ReportServiceServer.ExportExpiringCertifications),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ReportService_ServiceDesc, srv)
}
