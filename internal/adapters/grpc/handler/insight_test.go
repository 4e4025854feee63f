package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/report/xlsx"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/dashboard"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubStats struct {
	out *dashboard.Stats
	err error
}

func (s stubStats) GetStats(ctx context.Context) (*dashboard.Stats, error) {
	return s.out, s.err
}

type stubExporter struct {
	in  certification.ListExpiringInput
	out *xlsx.Workbook
	err error
}

func (s *stubExporter) ExpiringCertifications(ctx context.Context, in certification.ListExpiringInput) (*xlsx.Workbook, error) {
	s.in = in
	return s.out, s.err
}

func TestDashboardGrpcHandler_GetStats(t *testing.T) {
	t.Parallel()

	handler := NewDashboardGrpcHandler(stubStats{out: &dashboard.Stats{
		Workers:                 10,
		WorkersHabilitados:      8,
		WorkersInhabilitados:    2,
		CertificationsVigente:   20,
		CertificationsPorVencer: 5,
		CertificationsVencido:   2,
	}})

	resp, err := handler.GetStats(context.Background(), &apiv1.Empty{})
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}
	if resp.Workers != 10 || resp.WorkersHabilitados != 8 || resp.Certifications != 27 || resp.CertificationsPorVencer != 5 {
		t.Fatalf("unexpected stats %+v", resp)
	}
}

func TestDashboardGrpcHandler_QueryFailure(t *testing.T) {
	t.Parallel()

	handler := NewDashboardGrpcHandler(stubStats{err: fmt.Errorf("dashboard: %w", common.ErrQueryFailure)})

	_, err := handler.GetStats(context.Background(), nil)
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v", status.Code(err))
	}
}

func TestReportGrpcHandler_ExportExpiringCertifications(t *testing.T) {
	t.Parallel()

	stub := &stubExporter{out: &xlsx.Workbook{Filename: "certificaciones.xlsx", Content: []byte("PK"), Rows: 4}}
	handler := NewReportGrpcHandler(stub)

	resp, err := handler.ExportExpiringCertifications(context.Background(), &apiv1.ExportExpiringRequest{WithinDays: 15, IncludeExpired: true})
	if err != nil {
		t.Fatalf("ExportExpiringCertifications returned error: %v", err)
	}
	if stub.in.WithinDays != 15 || !stub.in.IncludeExpired {
		t.Fatalf("unexpected input %+v", stub.in)
	}
	if resp.ContentType != xlsx.ContentType || resp.Rows != 4 || string(resp.Content) != "PK" {
		t.Fatalf("unexpected response %+v", resp)
	}

	stub.err = errors.New("excel broke")
	if _, err := handler.ExportExpiringCertifications(context.Background(), &apiv1.ExportExpiringRequest{}); status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", status.Code(err))
	}
}
