package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Interactor はサービスに関するユースケースをまとめます。
type Interactor struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// UseCase はサービスユースケースの公開インターフェースです。
type UseCase interface {
	CreateService(ctx context.Context, in CreateServiceInput) (*Service, error)
	GetService(ctx context.Context, in GetServiceInput) (*Service, error)
	ListServices(ctx context.Context, in ListServicesInput) (*ListServicesResult, error)
	UpdateService(ctx context.Context, in UpdateServiceInput) (*Service, error)
	DeleteService(ctx context.Context, in DeleteServiceInput) error
}

// NewInteractor は Interactor を生成します。
func NewInteractor(repo Repository, clock common.Clock, tx common.TransactionManager) *Interactor {
	clock, tx = common.Defaults(clock, tx)
	return &Interactor{repo: repo, clock: clock, tx: tx}
}

// CreateServiceInput はサービス作成時の入力です。
type CreateServiceInput struct {
	Name        string  `field:"name" validate:"min=3,max=255"`
	Description *string `field:"description"`
	CompanyID   string  `field:"company_id" validate:"required"`
	Status      *Status `field:"status"`
	ManagerID   *string `field:"manager_id"`
}

// UpdateServiceInput はサービス更新時の入力です。
type UpdateServiceInput struct {
	ID          string
	Name        *string `field:"name" validate:"omitempty,min=3,max=255"`
	Description *string `field:"description"`
	CompanyID   *string `field:"company_id"`
	Status      *Status `field:"status"`
	ManagerID   *string `field:"manager_id"`
}

// DeleteServiceInput はサービス削除時の入力です。
type DeleteServiceInput struct {
	ID string
}

// GetServiceInput はサービス取得時の入力です。
type GetServiceInput struct {
	ID string
}

// ListServicesInput は一覧取得時の入力です。
type ListServicesInput struct {
	PageSize  int
	PageToken string
	CompanyID *string
	Status    *Status
}

// ListServicesResult は一覧取得結果を表します。
type ListServicesResult struct {
	Services      []*Service
	NextPageToken string
}

// CreateService は新しいサービスを作成します。状態の既定値は activo です。
func (i *Interactor) CreateService(ctx context.Context, in CreateServiceInput) (*Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	companyID, ok := common.NormalizeID(in.CompanyID)
	if !ok {
		return nil, fmt.Errorf("company_id: %w", ErrInvalidCompanyID)
	}
	managerID, ok := common.NormalizeOptionalID(in.ManagerID)
	if !ok {
		return nil, fmt.Errorf("manager_id: %w", ErrInvalidManagerID)
	}

	status := StatusActivo
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	var created *Service
	if err := i.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := i.clock.Now()
		result, err := i.repo.Create(txCtx, &Service{
			Name:        in.Name,
			Description: common.NormalizeText(in.Description),
			CompanyID:   companyID,
			Status:      status,
			ManagerID:   managerID,
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

// UpdateService はサービス情報を更新します。
func (i *Interactor) UpdateService(ctx context.Context, in UpdateServiceInput) (*Service, error) {
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
	if in.Status != nil && !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var companyID string
	if in.CompanyID != nil {
		normalized, ok := common.NormalizeID(*in.CompanyID)
		if !ok {
			return nil, fmt.Errorf("company_id: %w", ErrInvalidCompanyID)
		}
		companyID = normalized
	}

	var managerID *string
	if in.ManagerID != nil {
		normalized, ok := common.NormalizeOptionalID(in.ManagerID)
		if !ok {
			return nil, fmt.Errorf("manager_id: %w", ErrInvalidManagerID)
		}
		managerID = normalized
	}

	var updated *Service
	if err := i.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := i.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			existing.Name = *in.Name
		}
		if in.Description != nil {
			existing.Description = common.NormalizeText(in.Description)
		}
		if in.CompanyID != nil {
			existing.CompanyID = companyID
		}
		if in.Status != nil {
			existing.Status = *in.Status
		}
		if in.ManagerID != nil {
			existing.ManagerID = managerID
		}

		existing.UpdatedAt = i.clock.Now()

		result, err := i.repo.Update(txCtx, existing)
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

// DeleteService はサービスを削除します。
func (i *Interactor) DeleteService(ctx context.Context, in DeleteServiceInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return i.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return i.repo.Delete(txCtx, id)
	})
}

// GetService は ID でサービスを取得します。
func (i *Interactor) GetService(ctx context.Context, in GetServiceInput) (*Service, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Service
	if err := i.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := i.repo.FindByID(txCtx, id)
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

// ListServices はサービスの一覧を取得します。
func (i *Interactor) ListServices(ctx context.Context, in ListServicesInput) (*ListServicesResult, error) {
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

	companyID, ok := common.NormalizeOptionalID(in.CompanyID)
	if !ok {
		return nil, fmt.Errorf("company_id: %w", ErrInvalidCompanyID)
	}

	var result ListServicesResult
	if err := i.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		services, token, err := i.repo.List(txCtx, ListServicesFilter{
			Limit:     limit,
			Offset:    offset,
			CompanyID: companyID,
			Status:    in.Status,
		})
		if err != nil {
			return err
		}
		result = ListServicesResult{Services: services, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
