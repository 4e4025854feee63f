package evaluation

import "context"

// Repository は評価の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, e *Evaluation) (*Evaluation, error)
	Update(ctx context.Context, e *Evaluation) (*Evaluation, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Evaluation, error)
	// List は評価日の新しい順で一覧を返します。
	List(ctx context.Context, filter ListEvaluationsFilter) ([]*Evaluation, string, error)
}

// ListEvaluationsFilter は一覧取得時の検索条件を表します。
type ListEvaluationsFilter struct {
	Limit       int
	Offset      int
	WorkerID    *string
	EvaluatorID *string
	Type        *Type
}

// Notifier は評価の登録を関係者へ通知します。作成した通知件数を返します。
type Notifier interface {
	EvaluationCreated(ctx context.Context, e *Evaluation) (int, error)
}
