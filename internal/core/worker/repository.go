package worker

import (
	"context"
	"time"
)

// Repository は作業員エンティティの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, worker *Worker) (*Worker, error)
	Update(ctx context.Context, worker *Worker) (*Worker, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context, filter ListWorkersFilter) ([]*Worker, string, error)
	// ListAssignmentCandidates は会社に所属し、就労可能かつ認証済み (vigente) の作業員を氏名順で返します。
	// Profile は読み込みません。
	ListAssignmentCandidates(ctx context.Context, companyID string) ([]*Worker, error)
	// ExpireHomologations は期限切れの vigente 認証を vencida に更新し、更新件数を返します。
	ExpireHomologations(ctx context.Context, asOf time.Time) (int64, error)
}

// ListWorkersFilter は一覧取得時の検索条件を表します。
type ListWorkersFilter struct {
	Limit     int
	Offset    int
	CompanyID *string
	Status    *Status
	Search    *string
}
