package handler

import (
	"context"
	"fmt"
	"time"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// LifecycleGrpcHandler は有効期限の判定規則をそのまま公開します。
type LifecycleGrpcHandler struct {
	view expiryView
}

var _ apiv1.LifecycleServiceServer = (*LifecycleGrpcHandler)(nil)

// NewLifecycleGrpcHandler は LifecycleGrpcHandler を生成します。
func NewLifecycleGrpcHandler(thresholds lifecycle.Thresholds, clock common.Clock) *LifecycleGrpcHandler {
	return &LifecycleGrpcHandler{view: newExpiryView(thresholds, clock)}
}

// EvaluateExpiry は有効期限から認定状態と緊急度区分を求めます。at を省略した場合は現在日付です。
func (h *LifecycleGrpcHandler) EvaluateExpiry(_ context.Context, req *apiv1.EvaluateExpiryRequest) (*apiv1.EvaluateExpiryResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	expiry, err := requiredDate("expiry_date", req.ExpiryDate)
	if err != nil {
		return nil, toStatusError(err)
	}
	at, err := h.at(req.At)
	if err != nil {
		return nil, toStatusError(err)
	}

	t := h.view.thresholds
	return &apiv1.EvaluateExpiryResponse{
		CertificationStatus: string(lifecycle.CertificationStatusAt(expiry, at)),
		Window:              string(t.Classify(&expiry, at)),
		DaysUntil:           int32(lifecycle.DaysUntil(expiry, at)),
	}, nil
}

// HomologationStatus は保存された状態と期限から実効的な認定状態を求めます。
func (h *LifecycleGrpcHandler) HomologationStatus(_ context.Context, req *apiv1.HomologationStatusRequest) (*apiv1.HomologationStatusResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	expiry, err := parseDate("expiry", req.Expiry)
	if err != nil {
		return nil, toStatusError(err)
	}
	at, err := h.at(req.At)
	if err != nil {
		return nil, toStatusError(err)
	}

	if !req.IsHomologated {
		return &apiv1.HomologationStatusResponse{Status: string(lifecycle.HomologationPendiente)}, nil
	}

	stored := lifecycle.HomologationStatus(req.Status)
	if !stored.IsValid() {
		return nil, toStatusError(common.InvalidInput(fmt.Sprintf("status: unknown homologation status %q", req.Status)))
	}

	return &apiv1.HomologationStatusResponse{
		Status: string(lifecycle.EffectiveHomologationStatus(stored, expiry, at)),
		Window: string(h.view.thresholds.Classify(expiry, at)),
	}, nil
}

func (h *LifecycleGrpcHandler) at(raw string) (time.Time, error) {
	if raw == "" {
		return h.view.clock.Now(), nil
	}
	return requiredDate("at", raw)
}
