package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Service は作業員に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// UseCase は作業員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateWorker(ctx context.Context, in CreateWorkerInput) (*Worker, error)
	GetWorker(ctx context.Context, in GetWorkerInput) (*Worker, error)
	ListWorkers(ctx context.Context, in ListWorkersInput) (*ListWorkersResult, error)
	UpdateWorker(ctx context.Context, in UpdateWorkerInput) (*Worker, error)
	DeleteWorker(ctx context.Context, in DeleteWorkerInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, clock: clock, tx: tx}
}

// HomologationInput は認証情報の入力です。指定時は認証情報全体を置き換えます。
type HomologationInput struct {
	IsHomologated     bool
	Type              *HomologationType
	Status            *lifecycle.HomologationStatus
	Date              *time.Time
	Expiry            *time.Time
	Entity            *string
	CertificateNumber *string
	Notes             *string
}

// CreateWorkerInput は作業員作成時の入力です。
type CreateWorkerInput struct {
	DNI          string             `field:"dni" validate:"min=8,max=20"`
	FullName     string             `field:"full_name" validate:"min=3,max=255"`
	Status       *Status            `field:"status"`
	CompanyID    *string            `field:"company_id"`
	Profile      Profile            `field:"profile"`
	Homologation *HomologationInput `field:"homologation"`
}

// UpdateWorkerInput は作業員更新時の入力です。
type UpdateWorkerInput struct {
	ID           string
	DNI          *string            `field:"dni" validate:"omitempty,min=8,max=20"`
	FullName     *string            `field:"full_name" validate:"omitempty,min=3,max=255"`
	Status       *Status            `field:"status"`
	CompanyID    *string            `field:"company_id"`
	Profile      *Profile           `field:"profile"`
	Homologation *HomologationInput `field:"homologation"`
}

// DeleteWorkerInput は作業員削除時の入力です。
type DeleteWorkerInput struct {
	ID string
}

// GetWorkerInput は作業員取得時の入力です。
type GetWorkerInput struct {
	ID string
}

// ListWorkersInput は一覧取得時の入力です。
type ListWorkersInput struct {
	PageSize  int
	PageToken string
	CompanyID *string
	Status    *Status
	Search    *string
}

// ListWorkersResult は一覧取得結果を表します。
type ListWorkersResult struct {
	Workers       []*Worker
	NextPageToken string
}

// CreateWorker は新しい作業員を登録します。
func (s *Service) CreateWorker(ctx context.Context, in CreateWorkerInput) (*Worker, error) {
	in.DNI = strings.TrimSpace(in.DNI)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Profile = normalizeProfile(in.Profile)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	status := StatusHabilitado
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	companyID, ok := common.NormalizeOptionalID(in.CompanyID)
	if !ok {
		return nil, fmt.Errorf("company_id: %w", ErrInvalidCompanyID)
	}

	homologation, err := buildHomologation(in.Homologation)
	if err != nil {
		return nil, err
	}

	var created *Worker
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Worker{
			DNI:          in.DNI,
			FullName:     in.FullName,
			Status:       status,
			CompanyID:    companyID,
			Profile:      in.Profile,
			Homologation: homologation,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return s.withEffectiveStatus(created), nil
}

// UpdateWorker は作業員情報を更新します。
func (s *Service) UpdateWorker(ctx context.Context, in UpdateWorkerInput) (*Worker, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if in.DNI != nil {
		trimmed := strings.TrimSpace(*in.DNI)
		in.DNI = &trimmed
	}
	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		in.FullName = &trimmed
	}
	if in.Profile != nil {
		p := normalizeProfile(*in.Profile)
		in.Profile = &p
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Status != nil && !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var homologation *Homologation
	if in.Homologation != nil {
		h, err := buildHomologation(in.Homologation)
		if err != nil {
			return nil, err
		}
		homologation = &h
	}

	var updated *Worker
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if in.DNI != nil {
			existing.DNI = *in.DNI
		}
		if in.FullName != nil {
			existing.FullName = *in.FullName
		}
		if in.Status != nil {
			existing.Status = *in.Status
		}
		if in.CompanyID != nil {
			companyID, ok := common.NormalizeOptionalID(in.CompanyID)
			if !ok {
				return fmt.Errorf("company_id: %w", ErrInvalidCompanyID)
			}
			existing.CompanyID = companyID
		}
		if in.Profile != nil {
			existing.Profile = *in.Profile
		}
		if homologation != nil {
			existing.Homologation = *homologation
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

	return s.withEffectiveStatus(updated), nil
}

// DeleteWorker は作業員を削除します。
func (s *Service) DeleteWorker(ctx context.Context, in DeleteWorkerInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetWorker は ID で作業員を取得します。
func (s *Service) GetWorker(ctx context.Context, in GetWorkerInput) (*Worker, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Worker
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

	return s.withEffectiveStatus(found), nil
}

// ListWorkers は作業員の一覧を取得します。
func (s *Service) ListWorkers(ctx context.Context, in ListWorkersInput) (*ListWorkersResult, error) {
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

	var result ListWorkersResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		workers, token, err := s.repo.List(txCtx, ListWorkersFilter{
			Limit:     limit,
			Offset:    offset,
			CompanyID: companyID,
			Status:    in.Status,
			Search:    common.NormalizeText(in.Search),
		})
		if err != nil {
			return err
		}
		result = ListWorkersResult{Workers: workers, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, w := range result.Workers {
		s.withEffectiveStatus(w)
	}
	return &result, nil
}

func (s *Service) withEffectiveStatus(w *Worker) *Worker {
	if w == nil {
		return nil
	}
	w.Homologation.Status = w.EffectiveHomologationStatus(s.clock.Now())
	return w
}

// buildHomologation は入力から認証情報を組み立てます。未認証の場合は種類を消去し pendiente とします。
func buildHomologation(in *HomologationInput) (Homologation, error) {
	if in == nil || !in.IsHomologated {
		h := Homologation{Status: lifecycle.HomologationPendiente}
		if in != nil {
			h.Entity = common.NormalizeText(in.Entity)
			h.CertificateNumber = common.NormalizeText(in.CertificateNumber)
			h.Notes = common.NormalizeText(in.Notes)
		}
		return h, nil
	}

	if in.Type != nil && !in.Type.IsValid() {
		return Homologation{}, ErrInvalidHomologationType
	}

	status := lifecycle.HomologationPendiente
	if in.Status != nil {
		if !in.Status.IsValid() {
			return Homologation{}, ErrInvalidHomologationStatus
		}
		status = *in.Status
	}

	date := common.TruncateDatePtr(in.Date)
	expiry := common.TruncateDatePtr(in.Expiry)
	if date != nil && expiry != nil && expiry.Before(*date) {
		return Homologation{}, ErrInvalidHomologationPeriod
	}

	return Homologation{
		IsHomologated:     true,
		Type:              in.Type,
		Status:            status,
		Date:              date,
		Expiry:            expiry,
		Entity:            common.NormalizeText(in.Entity),
		CertificateNumber: common.NormalizeText(in.CertificateNumber),
		Notes:             common.NormalizeText(in.Notes),
	}, nil
}

func normalizeProfile(p Profile) Profile {
	return Profile{
		Phone:             common.NormalizeText(p.Phone),
		Email:             common.NormalizeText(p.Email),
		Position:          common.NormalizeText(p.Position),
		PhotoURL:          common.NormalizeText(p.PhotoURL),
		Country:           common.NormalizeText(p.Country),
		Gender:            common.NormalizeText(p.Gender),
		MaritalStatus:     common.NormalizeText(p.MaritalStatus),
		BirthDate:         common.TruncateDatePtr(p.BirthDate),
		PersonalEmail:     common.NormalizeText(p.PersonalEmail),
		Address:           common.NormalizeText(p.Address),
		Landline:          common.NormalizeText(p.Landline),
		Career:            common.NormalizeText(p.Career),
		StartDate:         common.TruncateDatePtr(p.StartDate),
		EndDate:           common.TruncateDatePtr(p.EndDate),
		Site:              common.NormalizeText(p.Site),
		Area:              common.NormalizeText(p.Area),
		Local:             common.NormalizeText(p.Local),
		WorkingConditions: common.NormalizeText(p.WorkingConditions),
	}
}
