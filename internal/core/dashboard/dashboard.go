package dashboard

import (
	"context"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// Stats はダッシュボードの集計値です。認定は有効期限から導出した状態で数えます。
type Stats struct {
	Workers                 int
	WorkersHabilitados      int
	WorkersInhabilitados    int
	Companies               int
	Services                int
	ServicesActivos         int
	Courses                 int
	Evaluations             int
	Documents               int
	CertificationsVigente   int
	CertificationsPorVencer int
	CertificationsVencido   int
}

// Certifications は認定の総数を返します。
func (s Stats) Certifications() int {
	return s.CertificationsVigente + s.CertificationsPorVencer + s.CertificationsVencido
}

// Repository は集計値を取得します。
// today より前に期限を迎えた認定は vencido、porVencerUntil までのものは por_vencer として数えます。
type Repository interface {
	Stats(ctx context.Context, today, porVencerUntil time.Time) (*Stats, error)
}

// Service はダッシュボードのユースケースです。
type Service struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, clock: clock, tx: tx}
}

// GetStats は現在日付での集計値を返します。
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	today := common.TruncateDate(s.clock.Now())
	until := today.AddDate(0, 0, lifecycle.PorVencerDays)

	var stats *Stats
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Stats(txCtx, today, until)
		if err != nil {
			return common.QueryFailure("dashboard stats", err)
		}
		stats = result
		return nil
	}); err != nil {
		return nil, err
	}
	return stats, nil
}
