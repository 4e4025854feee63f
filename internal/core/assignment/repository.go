package assignment

import (
	"context"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/service"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
)

// Repository は配属の永続化を行うインターフェースです。
// Create は (worker_id, service_id) に有効な配属が既にある場合 ErrAlreadyAssigned を返します。
type Repository interface {
	Create(ctx context.Context, a *Assignment) (*Assignment, error)
	Update(ctx context.Context, a *Assignment) (*Assignment, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Assignment, error)
	List(ctx context.Context, filter ListAssignmentsFilter) ([]*Assignment, string, error)
	ActiveWorkerIDs(ctx context.Context, serviceID string) ([]string, error)
}

// ListAssignmentsFilter は一覧取得時の検索条件を表します。
type ListAssignmentsFilter struct {
	Limit     int
	Offset    int
	ServiceID *string
	WorkerID  *string
	Status    *Status
}

// ServiceFinder は配属先サービスを取得します。
type ServiceFinder interface {
	FindByID(ctx context.Context, id string) (*service.Service, error)
}

// WorkerFinder は作業員と配属候補を取得します。
type WorkerFinder interface {
	FindByID(ctx context.Context, id string) (*worker.Worker, error)
	ListAssignmentCandidates(ctx context.Context, companyID string) ([]*worker.Worker, error)
}
