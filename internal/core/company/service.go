package company

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Service は会社に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// UseCase は会社ユースケースの公開インターフェースです。
type UseCase interface {
	CreateCompany(ctx context.Context, in CreateCompanyInput) (*Company, error)
	GetCompany(ctx context.Context, in GetCompanyInput) (*Company, error)
	ListCompanies(ctx context.Context, in ListCompaniesInput) (*ListCompaniesResult, error)
	UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*Company, error)
	DeleteCompany(ctx context.Context, in DeleteCompanyInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateCompanyInput は会社作成時の入力です。
type CreateCompanyInput struct {
	Name        string    `field:"name" validate:"min=3,max=255"`
	Description *string   `field:"description"`
	CostCenter  *string   `field:"cost_center" validate:"omitempty,max=100"`
	WorkMode    *WorkMode `field:"work_mode"`
}

// UpdateCompanyInput は会社更新時の入力です。
type UpdateCompanyInput struct {
	ID          string
	Name        *string   `field:"name" validate:"omitempty,min=3,max=255"`
	Description *string   `field:"description"`
	CostCenter  *string   `field:"cost_center" validate:"omitempty,max=100"`
	WorkMode    *WorkMode `field:"work_mode"`
}

// DeleteCompanyInput は会社削除時の入力です。
type DeleteCompanyInput struct {
	ID string
}

// GetCompanyInput は会社取得時の入力です。
type GetCompanyInput struct {
	ID string
}

// ListCompaniesInput は一覧取得時の入力です。
type ListCompaniesInput struct {
	PageSize  int
	PageToken string
	WorkMode  *WorkMode
}

// ListCompaniesResult は一覧取得結果を表します。
type ListCompaniesResult struct {
	Companies     []*Company
	NextPageToken string
}

// CreateCompany は新しい会社を作成します。
func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (*Company, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	mode := WorkModePresencial
	if in.WorkMode != nil {
		if !in.WorkMode.IsValid() {
			return nil, ErrInvalidWorkMode
		}
		mode = *in.WorkMode
	}

	var created *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Company{
			Name:        in.Name,
			Description: common.NormalizeText(in.Description),
			CostCenter:  common.NormalizeText(in.CostCenter),
			WorkMode:    mode,
			CreatedAt:   now,
			UpdatedAt:   now,
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

// UpdateCompany は会社情報を更新します。
func (s *Service) UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*Company, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var updated *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			existing.Name = *in.Name
		}
		if in.Description != nil {
			existing.Description = common.NormalizeText(in.Description)
		}
		if in.CostCenter != nil {
			existing.CostCenter = common.NormalizeText(in.CostCenter)
		}
		if in.WorkMode != nil {
			if !in.WorkMode.IsValid() {
				return ErrInvalidWorkMode
			}
			existing.WorkMode = *in.WorkMode
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

// DeleteCompany は会社を削除します。
func (s *Service) DeleteCompany(ctx context.Context, in DeleteCompanyInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetCompany は ID で会社を取得します。
func (s *Service) GetCompany(ctx context.Context, in GetCompanyInput) (*Company, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var company *Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		company = result
		return nil
	}); err != nil {
		return nil, err
	}

	return company, nil
}

// ListCompanies は会社の一覧を名前順で取得します。
func (s *Service) ListCompanies(ctx context.Context, in ListCompaniesInput) (*ListCompaniesResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	if in.WorkMode != nil && !in.WorkMode.IsValid() {
		return nil, ErrInvalidWorkMode
	}

	var result ListCompaniesResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		companies, token, err := s.repo.List(txCtx, ListCompaniesFilter{
			Limit:    limit,
			Offset:   offset,
			WorkMode: in.WorkMode,
		})
		if err != nil {
			return err
		}
		result = ListCompaniesResult{Companies: companies, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
