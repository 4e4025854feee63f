package lifecycle

import (
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

// CertificationStatus は認定の有効状態です。
type CertificationStatus string

const (
	CertificationVigente   CertificationStatus = "vigente"
	CertificationPorVencer CertificationStatus = "por_vencer"
	CertificationVencido   CertificationStatus = "vencido"
)

// HomologationStatus は作業員の認証 (ホモロゲーション) 状態です。
type HomologationStatus string

const (
	HomologationPendiente  HomologationStatus = "pendiente"
	HomologationVigente    HomologationStatus = "vigente"
	HomologationVencida    HomologationStatus = "vencida"
	HomologationSuspendida HomologationStatus = "suspendida"
)

// IsValid は定義済みの状態かどうかを返します。
func (s CertificationStatus) IsValid() bool {
	switch s {
	case CertificationVigente, CertificationPorVencer, CertificationVencido:
		return true
	default:
		return false
	}
}

// IsValid は定義済みの状態かどうかを返します。
func (s HomologationStatus) IsValid() bool {
	switch s {
	case HomologationPendiente, HomologationVigente, HomologationVencida, HomologationSuspendida:
		return true
	default:
		return false
	}
}

// DaysUntil は now の日付から expiry の日付までの暦日数を返します。過去なら負数です。
func DaysUntil(expiry, now time.Time) int {
	diff := common.TruncateDate(expiry).Sub(common.TruncateDate(now))
	return int(diff / (24 * time.Hour))
}

// PorVencerDays は por_vencer と判定する残日数の上限です。表示用の区分閾値とは独立しています。
const PorVencerDays = 30

// CertificationStatusAt は有効期限と基準時刻から認定状態を導出します。
func CertificationStatusAt(expiry, now time.Time) CertificationStatus {
	days := DaysUntil(expiry, now)
	switch {
	case days < 0:
		return CertificationVencido
	case days <= PorVencerDays:
		return CertificationPorVencer
	default:
		return CertificationVigente
	}
}

// IsExpiryTransition は prev から next への遷移が失効への遷移かどうかを返します。
func IsExpiryTransition(prev, next CertificationStatus) bool {
	return next == CertificationVencido && prev != CertificationVencido
}

// EffectiveHomologationStatus は保存された状態に期限を適用した実効状態を返します。
// vigente のまま期限を過ぎたものだけを vencida として扱い、それ以外は手動設定を尊重します。
func EffectiveHomologationStatus(stored HomologationStatus, expiry *time.Time, now time.Time) HomologationStatus {
	if stored != HomologationVigente || expiry == nil {
		return stored
	}
	if DaysUntil(*expiry, now) < 0 {
		return HomologationVencida
	}
	return stored
}
