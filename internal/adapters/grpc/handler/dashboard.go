package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/dashboard"
)

// StatsProvider はダッシュボードの集計値を提供します。
type StatsProvider interface {
	GetStats(ctx context.Context) (*dashboard.Stats, error)
}

// DashboardGrpcHandler は DashboardService の gRPC 実装です。
type DashboardGrpcHandler struct {
	stats StatsProvider
}

var _ apiv1.DashboardServiceServer = (*DashboardGrpcHandler)(nil)

// NewDashboardGrpcHandler は DashboardGrpcHandler を生成します。
func NewDashboardGrpcHandler(stats StatsProvider) *DashboardGrpcHandler {
	return &DashboardGrpcHandler{stats: stats}
}

// GetStats は件数の集計を返します。
func (h *DashboardGrpcHandler) GetStats(ctx context.Context, _ *apiv1.Empty) (*apiv1.DashboardStats, error) {
	s, err := h.stats.GetStats(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.DashboardStats{
		Workers:                 int32(s.Workers),
		WorkersHabilitados:      int32(s.WorkersHabilitados),
		WorkersInhabilitados:    int32(s.WorkersInhabilitados),
		Companies:               int32(s.Companies),
		Services:                int32(s.Services),
		ServicesActivos:         int32(s.ServicesActivos),
		Courses:                 int32(s.Courses),
		Evaluations:             int32(s.Evaluations),
		Documents:               int32(s.Documents),
		Certifications:          int32(s.Certifications()),
		CertificationsVigente:   int32(s.CertificationsVigente),
		CertificationsPorVencer: int32(s.CertificationsPorVencer),
		CertificationsVencido:   int32(s.CertificationsVencido),
	}, nil
}
