package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/report/xlsx"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
)

// ExpiringExporter は期限が近い認定のブックを生成します。
type ExpiringExporter interface {
	ExpiringCertifications(ctx context.Context, in certification.ListExpiringInput) (*xlsx.Workbook, error)
}

// ReportGrpcHandler は ReportService の gRPC 実装です。
type ReportGrpcHandler struct {
	exporter ExpiringExporter
}

var _ apiv1.ReportServiceServer = (*ReportGrpcHandler)(nil)

// NewReportGrpcHandler は ReportGrpcHandler を生成します。
func NewReportGrpcHandler(exporter ExpiringExporter) *ReportGrpcHandler {
	return &ReportGrpcHandler{exporter: exporter}
}

// ExportExpiringCertifications は期限が近い認定を xlsx で返します。
func (h *ReportGrpcHandler) ExportExpiringCertifications(ctx context.Context, req *apiv1.ExportExpiringRequest) (*apiv1.ExportResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	wb, err := h.exporter.ExpiringCertifications(ctx, certification.ListExpiringInput{
		WithinDays:     int(req.WithinDays),
		IncludeExpired: req.IncludeExpired,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.ExportResponse{
		Filename:    wb.Filename,
		ContentType: xlsx.ContentType,
		Content:     wb.Content,
		Rows:        int32(wb.Rows),
	}, nil
}
