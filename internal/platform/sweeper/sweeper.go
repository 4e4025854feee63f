package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"go.uber.org/zap"
)

// Refresher は認定状態の再計算を行います。
type Refresher interface {
	RefreshStatuses(ctx context.Context) (*certification.RefreshResult, error)
}

// Sweeper は一定間隔で認定状態を再計算するバックグラウンド処理です。
type Sweeper struct {
	refresher  Refresher
	interval   time.Duration
	runOnStart bool
	runTimeout time.Duration
	logger     *zap.Logger

	mu sync.Mutex
}

// DefaultRunTimeout は一回の再計算に許す既定の時間です。
const DefaultRunTimeout = 5 * time.Minute

// Option は Sweeper の任意設定です。
type Option func(*Sweeper)

// WithRunTimeout は一回の再計算の上限時間を指定します。0 以下は DefaultRunTimeout です。
func WithRunTimeout(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.runTimeout = d
		}
	}
}

// New は Sweeper を生成します。
func New(refresher Refresher, interval time.Duration, runOnStart bool, logger *zap.Logger, opts ...Option) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sweeper{
		refresher:  refresher,
		interval:   interval,
		runOnStart: runOnStart,
		runTimeout: DefaultRunTimeout,
		logger:     logger.Named("sweeper"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run はコンテキストがキャンセルされるまで再計算を繰り返します。
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("status sweeper started", zap.Duration("interval", s.interval))

	if s.runOnStart {
		s.RunOnce(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("status sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce は再計算を runTimeout 以内で一度だけ実行します。実行中の呼び出しとは重複しません。
func (s *Sweeper) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	started := time.Now()
	result, err := s.refresher.RefreshStatuses(runCtx)
	if err != nil {
		s.logger.Error("status refresh failed", zap.Error(err), zap.Duration("timeout", s.runTimeout))
		return
	}

	s.logger.Info("status refresh completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("updated", result.Updated),
		zap.Int("expired", result.Expired),
		zap.Int("notified", result.Notified),
		zap.Int64("homologations_expired", result.HomologationsExpired),
		zap.Duration("elapsed", time.Since(started)),
	)
}
