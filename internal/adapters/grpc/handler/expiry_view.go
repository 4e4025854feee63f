package handler

import (
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// expiryView は応答に含める緊急度区分を現在日付で計算します。
type expiryView struct {
	thresholds lifecycle.Thresholds
	clock      common.Clock
}

func newExpiryView(thresholds lifecycle.Thresholds, clock common.Clock) expiryView {
	if thresholds == (lifecycle.Thresholds{}) {
		thresholds = lifecycle.DefaultThresholds
	}
	if clock == nil {
		clock = common.SystemClock{}
	}
	return expiryView{thresholds: thresholds, clock: clock}
}

// window は期限を区分します。期限なしは valid です。
func (v expiryView) window(expiry *time.Time) string {
	return string(v.thresholds.Classify(expiry, v.clock.Now()))
}
