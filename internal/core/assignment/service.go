package assignment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/service"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
)

// Service は配属に関するユースケースをまとめます。
type Service struct {
	repo     Repository
	services ServiceFinder
	workers  WorkerFinder
	clock    common.Clock
	tx       common.TransactionManager
}

// UseCase は配属ユースケースの公開インターフェースです。
type UseCase interface {
	AssignWorker(ctx context.Context, in AssignWorkerInput) (*Assignment, error)
	GetAssignment(ctx context.Context, in GetAssignmentInput) (*Assignment, error)
	ListAssignments(ctx context.Context, in ListAssignmentsInput) (*ListAssignmentsResult, error)
	FinishAssignment(ctx context.Context, in FinishAssignmentInput) (*Assignment, error)
	DeleteAssignment(ctx context.Context, in DeleteAssignmentInput) error
	AvailableWorkers(ctx context.Context, in AvailableWorkersInput) ([]*worker.Worker, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, services ServiceFinder, workers WorkerFinder, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, services: services, workers: workers, clock: clock, tx: tx}
}

// AssignWorkerInput は配属作成時の入力です。StartDate 未指定時は当日です。
type AssignWorkerInput struct {
	WorkerID  string
	ServiceID string
	StartDate *time.Time
}

// FinishAssignmentInput は配属終了時の入力です。EndDate 未指定時は当日です。
type FinishAssignmentInput struct {
	ID      string
	EndDate *time.Time
}

// DeleteAssignmentInput は配属削除時の入力です。
type DeleteAssignmentInput struct {
	ID string
}

// GetAssignmentInput は配属取得時の入力です。
type GetAssignmentInput struct {
	ID string
}

// ListAssignmentsInput は一覧取得時の入力です。
type ListAssignmentsInput struct {
	PageSize  int
	PageToken string
	ServiceID *string
	WorkerID  *string
	Status    *Status
}

// ListAssignmentsResult は一覧取得結果を表します。
type ListAssignmentsResult struct {
	Assignments   []*Assignment
	NextPageToken string
}

// AvailableWorkersInput は配属可能な作業員の取得時の入力です。
type AvailableWorkersInput struct {
	ServiceID string
}

// AvailableWorkers はサービスへ新たに配属できる作業員を氏名順で返します。
// 候補はサービスと同じ会社に所属し、就労可能かつ認証が有効で、当該サービスに有効な配属を持たない作業員です。
// いずれかの問い合わせが失敗した場合は空の一覧ではなく ErrQueryFailure 種別のエラーを返します。
func (s *Service) AvailableWorkers(ctx context.Context, in AvailableWorkersInput) ([]*worker.Worker, error) {
	serviceID, ok := common.NormalizeID(in.ServiceID)
	if !ok {
		return nil, fmt.Errorf("service_id: %w", ErrInvalidID)
	}

	var available []*worker.Worker
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		svc, err := s.services.FindByID(txCtx, serviceID)
		if err != nil {
			return common.QueryFailure("find service", err)
		}

		assigned, err := s.repo.ActiveWorkerIDs(txCtx, serviceID)
		if err != nil {
			return common.QueryFailure("list active assignments", err)
		}

		candidates, err := s.workers.ListAssignmentCandidates(txCtx, svc.CompanyID)
		if err != nil {
			return common.QueryFailure("list assignment candidates", err)
		}

		available = MatchAvailable(svc, candidates, assigned, s.clock.Now())
		return nil
	}); err != nil {
		return nil, err
	}

	return available, nil
}

// MatchAvailable は候補から配属可能な作業員を抽出し、氏名順に並べます。
func MatchAvailable(svc *service.Service, candidates []*worker.Worker, assigned []string, now time.Time) []*worker.Worker {
	excluded := make(map[string]struct{}, len(assigned))
	for _, id := range assigned {
		excluded[id] = struct{}{}
	}

	available := make([]*worker.Worker, 0, len(candidates))
	for _, w := range candidates {
		if _, ok := excluded[w.ID]; ok {
			continue
		}
		if !w.IsAssignable(svc.CompanyID, now) {
			continue
		}
		available = append(available, w)
	}

	sort.SliceStable(available, func(i, j int) bool {
		if available[i].FullName == available[j].FullName {
			return available[i].ID < available[j].ID
		}
		return available[i].FullName < available[j].FullName
	})
	return available
}

// AssignWorker は作業員をサービスへ配属します。
// 配属条件は書き込み直前に再確認し、同時実行による重複はストレージの一意制約で ErrAlreadyAssigned になります。
func (s *Service) AssignWorker(ctx context.Context, in AssignWorkerInput) (*Assignment, error) {
	workerID, ok := common.NormalizeID(in.WorkerID)
	if !ok {
		return nil, fmt.Errorf("worker_id: %w", ErrInvalidID)
	}
	serviceID, ok := common.NormalizeID(in.ServiceID)
	if !ok {
		return nil, fmt.Errorf("service_id: %w", ErrInvalidID)
	}

	var created *Assignment
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()

		svc, err := s.services.FindByID(txCtx, serviceID)
		if err != nil {
			return err
		}
		if svc.Status != service.StatusActivo {
			return ErrServiceInactive
		}

		w, err := s.workers.FindByID(txCtx, workerID)
		if err != nil {
			return err
		}
		if !w.IsAssignable(svc.CompanyID, now) {
			return ErrWorkerNotEligible
		}

		start := common.TruncateDate(now)
		if in.StartDate != nil {
			start = common.TruncateDate(*in.StartDate)
		}

		result, err := s.repo.Create(txCtx, &Assignment{
			WorkerID:  workerID,
			ServiceID: serviceID,
			StartDate: start,
			Status:    StatusActivo,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// FinishAssignment は配属を終了し、終了日を記録します。
func (s *Service) FinishAssignment(ctx context.Context, in FinishAssignmentInput) (*Assignment, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var finished *Assignment
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing.Status == StatusFinalizado {
			return ErrAlreadyFinished
		}

		now := s.clock.Now()
		end := common.TruncateDate(now)
		if in.EndDate != nil {
			end = common.TruncateDate(*in.EndDate)
		}
		if end.Before(existing.StartDate) {
			return ErrInvalidPeriod
		}

		existing.EndDate = &end
		existing.Status = StatusFinalizado
		existing.UpdatedAt = now

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		finished = result
		return nil
	}); err != nil {
		return nil, err
	}

	return finished, nil
}

// DeleteAssignment は配属を削除します。
func (s *Service) DeleteAssignment(ctx context.Context, in DeleteAssignmentInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetAssignment は ID で配属を取得します。
func (s *Service) GetAssignment(ctx context.Context, in GetAssignmentInput) (*Assignment, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Assignment
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListAssignments は配属の一覧を取得します。
func (s *Service) ListAssignments(ctx context.Context, in ListAssignmentsInput) (*ListAssignmentsResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	serviceID, ok := common.NormalizeOptionalID(in.ServiceID)
	if !ok {
		return nil, fmt.Errorf("service_id: %w", ErrInvalidID)
	}
	workerID, ok := common.NormalizeOptionalID(in.WorkerID)
	if !ok {
		return nil, fmt.Errorf("worker_id: %w", ErrInvalidID)
	}

	var result ListAssignmentsResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		items, token, err := s.repo.List(txCtx, ListAssignmentsFilter{
			Limit:     limit,
			Offset:    offset,
			ServiceID: serviceID,
			WorkerID:  workerID,
			Status:    in.Status,
		})
		if err != nil {
			return err
		}
		result = ListAssignmentsResult{Assignments: items, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
