package homologation

import (
	"context"
	"fmt"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Service は会社別コース要件のユースケースをまとめます。
type Service struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// UseCase は会社別コース要件ユースケースの公開インターフェースです。
type UseCase interface {
	CreateHomologation(ctx context.Context, in CreateHomologationInput) (*Homologation, error)
	GetHomologation(ctx context.Context, in GetHomologationInput) (*Homologation, error)
	ListHomologations(ctx context.Context, in ListHomologationsInput) (*ListHomologationsResult, error)
	UpdateHomologation(ctx context.Context, in UpdateHomologationInput) (*Homologation, error)
	DeleteHomologation(ctx context.Context, in DeleteHomologationInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateHomologationInput は作成時の入力です。IsRequired の既定値は true です。
type CreateHomologationInput struct {
	CompanyID  string `field:"company_id" validate:"required,uuid"`
	CourseID   string `field:"course_id" validate:"required,uuid"`
	IsRequired *bool
}

// UpdateHomologationInput は更新時の入力です。
type UpdateHomologationInput struct {
	ID         string
	IsRequired *bool
}

// DeleteHomologationInput は削除時の入力です。
type DeleteHomologationInput struct {
	ID string
}

// GetHomologationInput は取得時の入力です。
type GetHomologationInput struct {
	ID string
}

// ListHomologationsInput は一覧取得時の入力です。
type ListHomologationsInput struct {
	PageSize  int
	PageToken string
	CompanyID *string
	CourseID  *string
}

// ListHomologationsResult は一覧取得結果を表します。
type ListHomologationsResult struct {
	Homologations []*Homologation
	NextPageToken string
}

// CreateHomologation は会社とコースを結び付けます。
func (s *Service) CreateHomologation(ctx context.Context, in CreateHomologationInput) (*Homologation, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	companyID, _ := common.NormalizeID(in.CompanyID)
	courseID, _ := common.NormalizeID(in.CourseID)

	required := true
	if in.IsRequired != nil {
		required = *in.IsRequired
	}

	var created *Homologation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Homologation{
			CompanyID:  companyID,
			CourseID:   courseID,
			IsRequired: required,
			CreatedAt:  now,
			UpdatedAt:  now,
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

// UpdateHomologation は必須フラグを更新します。
func (s *Service) UpdateHomologation(ctx context.Context, in UpdateHomologationInput) (*Homologation, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Homologation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if in.IsRequired != nil {
			existing.IsRequired = *in.IsRequired
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

// DeleteHomologation は設定を削除します。
func (s *Service) DeleteHomologation(ctx context.Context, in DeleteHomologationInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetHomologation は ID で設定を取得します。
func (s *Service) GetHomologation(ctx context.Context, in GetHomologationInput) (*Homologation, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Homologation
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

// ListHomologations は設定の一覧を取得します。
func (s *Service) ListHomologations(ctx context.Context, in ListHomologationsInput) (*ListHomologationsResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	companyID, ok := common.NormalizeOptionalID(in.CompanyID)
	if !ok {
		return nil, fmt.Errorf("company_id: %w", ErrInvalidID)
	}
	courseID, ok := common.NormalizeOptionalID(in.CourseID)
	if !ok {
		return nil, fmt.Errorf("course_id: %w", ErrInvalidID)
	}

	var result ListHomologationsResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		items, token, err := s.repo.List(txCtx, ListHomologationsFilter{
			Limit:     limit,
			Offset:    offset,
			CompanyID: companyID,
			CourseID:  courseID,
		})
		if err != nil {
			return err
		}
		result = ListHomologationsResult{Homologations: items, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
