package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// CertificationGrpcHandler は CertificationService の gRPC 実装です。
type CertificationGrpcHandler struct {
	svc certification.UseCase
}

var _ apiv1.CertificationServiceServer = (*CertificationGrpcHandler)(nil)

// NewCertificationGrpcHandler は CertificationGrpcHandler を生成します。
func NewCertificationGrpcHandler(svc certification.UseCase) *CertificationGrpcHandler {
	return &CertificationGrpcHandler{svc: svc}
}

// CreateCertification は認定を登録します。
func (h *CertificationGrpcHandler) CreateCertification(ctx context.Context, req *apiv1.CreateCertificationRequest) (*apiv1.CertificationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	issue, err := requiredDate("issue_date", req.IssueDate)
	if err != nil {
		return nil, toStatusError(err)
	}
	expiry, err := requiredDate("expiry_date", req.ExpiryDate)
	if err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateCertification(ctx, certification.CreateCertificationInput{
		WorkerID:    req.WorkerID,
		CourseID:    req.CourseID,
		IssueDate:   issue,
		ExpiryDate:  expiry,
		DocumentURL: req.DocumentURL,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CertificationResponse{Certification: toAPICertification(created)}, nil
}

// GetCertification は認定を取得します。
func (h *CertificationGrpcHandler) GetCertification(ctx context.Context, req *apiv1.IDRequest) (*apiv1.CertificationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetCertification(ctx, certification.GetCertificationInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CertificationResponse{Certification: toAPICertification(found)}, nil
}

// ListCertifications は認定の一覧を取得します。
func (h *CertificationGrpcHandler) ListCertifications(ctx context.Context, req *apiv1.ListCertificationsRequest) (*apiv1.ListCertificationsResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListCertifications(ctx, certification.ListCertificationsInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		WorkerID:  optionalString(req.WorkerID),
		CourseID:  optionalString(req.CourseID),
		Status:    optionalEnum[lifecycle.CertificationStatus](req.Status),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	certs := make([]*apiv1.Certification, 0, len(result.Certifications))
	for _, c := range result.Certifications {
		certs = append(certs, toAPICertification(c))
	}

	return &apiv1.ListCertificationsResponse{Certifications: certs, NextPageToken: result.NextPageToken}, nil
}

// UpdateCertification は認定を更新します。
func (h *CertificationGrpcHandler) UpdateCertification(ctx context.Context, req *apiv1.UpdateCertificationRequest) (*apiv1.CertificationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	issue, err := parseDatePtr("issue_date", req.IssueDate)
	if err != nil {
		return nil, toStatusError(err)
	}
	expiry, err := parseDatePtr("expiry_date", req.ExpiryDate)
	if err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateCertification(ctx, certification.UpdateCertificationInput{
		ID:          req.ID,
		IssueDate:   issue,
		ExpiryDate:  expiry,
		DocumentURL: req.DocumentURL,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.CertificationResponse{Certification: toAPICertification(updated)}, nil
}

// DeleteCertification は認定を削除します。
func (h *CertificationGrpcHandler) DeleteCertification(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteCertification(ctx, certification.DeleteCertificationInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

// ListExpiring は期限間近の認定を残日数と緊急度区分付きで返します。
func (h *CertificationGrpcHandler) ListExpiring(ctx context.Context, req *apiv1.ListExpiringRequest) (*apiv1.ListExpiringResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	expiring, err := h.svc.ListExpiring(ctx, certification.ListExpiringInput{
		WithinDays:     int(req.WithinDays),
		IncludeExpired: req.IncludeExpired,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	certs := make([]*apiv1.Certification, 0, len(expiring))
	for _, e := range expiring {
		c := toAPICertification(e.Certification)
		days := int32(e.DaysUntil)
		c.DaysUntil = &days
		c.Window = string(e.Window)
		certs = append(certs, c)
	}

	return &apiv1.ListExpiringResponse{Certifications: certs}, nil
}

// RefreshStatuses は保存済みの認定状態を再計算します。
func (h *CertificationGrpcHandler) RefreshStatuses(ctx context.Context, req *apiv1.Empty) (*apiv1.RefreshStatusesResponse, error) {
	result, err := h.svc.RefreshStatuses(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.RefreshStatusesResponse{
		Scanned:              int32(result.Scanned),
		Updated:              int32(result.Updated),
		Expired:              int32(result.Expired),
		Notified:             int32(result.Notified),
		HomologationsExpired: result.HomologationsExpired,
	}, nil
}

func toAPICertification(c *certification.Certification) *apiv1.Certification {
	if c == nil {
		return nil
	}
	return &apiv1.Certification{
		ID:          c.ID,
		WorkerID:    c.WorkerID,
		WorkerName:  c.WorkerName,
		CourseID:    c.CourseID,
		CourseName:  c.CourseName,
		IssueDate:   formatDate(c.IssueDate),
		ExpiryDate:  formatDate(c.ExpiryDate),
		DocumentURL: c.DocumentURL,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
