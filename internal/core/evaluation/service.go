package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Service は評価に関するユースケースをまとめます。
type Service struct {
	repo     Repository
	notifier Notifier
	clock    common.Clock
	tx       common.TransactionManager
}

// UseCase は評価ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEvaluation(ctx context.Context, in CreateEvaluationInput) (*Evaluation, error)
	GetEvaluation(ctx context.Context, in GetEvaluationInput) (*Evaluation, error)
	ListEvaluations(ctx context.Context, in ListEvaluationsInput) (*ListEvaluationsResult, error)
	UpdateEvaluation(ctx context.Context, in UpdateEvaluationInput) (*Evaluation, error)
	DeleteEvaluation(ctx context.Context, in DeleteEvaluationInput) error
}

// NewService は Service を生成します。notifier が nil の場合は通知を行いません。
func NewService(repo Repository, notifier Notifier, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, notifier: notifier, clock: clock, tx: tx}
}

// CreateEvaluationInput は評価作成時の入力です。Date 未指定時は当日です。
type CreateEvaluationInput struct {
	WorkerID    string     `field:"worker_id" validate:"required,uuid"`
	EvaluatorID string     `field:"evaluator_id" validate:"required,uuid"`
	Type        Type       `field:"evaluation_type" validate:"required"`
	Score       *int       `field:"score" validate:"omitempty,min=0,max=100"`
	Date        *time.Time `field:"date"`
	Comments    *string    `field:"comments"`
}

// UpdateEvaluationInput は評価更新時の入力です。
type UpdateEvaluationInput struct {
	ID       string
	Type     *Type      `field:"evaluation_type"`
	Score    *int       `field:"score" validate:"omitempty,min=0,max=100"`
	Date     *time.Time `field:"date"`
	Comments *string    `field:"comments"`
}

// DeleteEvaluationInput は評価削除時の入力です。
type DeleteEvaluationInput struct {
	ID string
}

// GetEvaluationInput は評価取得時の入力です。
type GetEvaluationInput struct {
	ID string
}

// ListEvaluationsInput は一覧取得時の入力です。
type ListEvaluationsInput struct {
	PageSize    int
	PageToken   string
	WorkerID    *string
	EvaluatorID *string
	Type        *Type
}

// ListEvaluationsResult は一覧取得結果を表します。
type ListEvaluationsResult struct {
	Evaluations   []*Evaluation
	NextPageToken string
}

// CreateEvaluation は評価を登録し、同じトランザクション内で nueva_evaluacion 通知を発行します。
func (s *Service) CreateEvaluation(ctx context.Context, in CreateEvaluationInput) (*Evaluation, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !in.Type.IsValid() {
		return nil, ErrInvalidType
	}
	workerID, _ := common.NormalizeID(in.WorkerID)
	evaluatorID, _ := common.NormalizeID(in.EvaluatorID)

	var created *Evaluation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		date := common.TruncateDate(now)
		if in.Date != nil {
			date = common.TruncateDate(*in.Date)
		}

		result, err := s.repo.Create(txCtx, &Evaluation{
			WorkerID:    workerID,
			EvaluatorID: evaluatorID,
			Type:        in.Type,
			Score:       in.Score,
			Date:        date,
			Comments:    common.NormalizeText(in.Comments),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		if s.notifier != nil {
			if _, err := s.notifier.EvaluationCreated(txCtx, result); err != nil {
				return fmt.Errorf("notify evaluation: %w", err)
			}
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEvaluation は評価を更新します。
func (s *Service) UpdateEvaluation(ctx context.Context, in UpdateEvaluationInput) (*Evaluation, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Type != nil && !in.Type.IsValid() {
		return nil, ErrInvalidType
	}

	var updated *Evaluation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.Type != nil {
			existing.Type = *in.Type
		}
		if in.Score != nil {
			existing.Score = in.Score
		}
		if in.Date != nil {
			existing.Date = common.TruncateDate(*in.Date)
		}
		if in.Comments != nil {
			existing.Comments = common.NormalizeText(in.Comments)
		}
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEvaluation は評価を削除します。
func (s *Service) DeleteEvaluation(ctx context.Context, in DeleteEvaluationInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetEvaluation は ID で評価を取得します。
func (s *Service) GetEvaluation(ctx context.Context, in GetEvaluationInput) (*Evaluation, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Evaluation
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

// ListEvaluations は評価の一覧を新しい順で取得します。
func (s *Service) ListEvaluations(ctx context.Context, in ListEvaluationsInput) (*ListEvaluationsResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	if in.Type != nil && !in.Type.IsValid() {
		return nil, ErrInvalidType
	}

	workerID, ok := common.NormalizeOptionalID(in.WorkerID)
	if !ok {
		return nil, fmt.Errorf("worker_id: %w", ErrInvalidID)
	}
	evaluatorID, ok := common.NormalizeOptionalID(in.EvaluatorID)
	if !ok {
		return nil, fmt.Errorf("evaluator_id: %w", ErrInvalidID)
	}

	var result ListEvaluationsResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		items, token, err := s.repo.List(txCtx, ListEvaluationsFilter{
			Limit:       limit,
			Offset:      offset,
			WorkerID:    workerID,
			EvaluatorID: evaluatorID,
			Type:        in.Type,
		})
		if err != nil {
			return err
		}
		result = ListEvaluationsResult{Evaluations: items, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
