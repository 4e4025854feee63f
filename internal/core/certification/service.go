package certification

import (
	"context"
	"fmt"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

const maxWithinDays = 3650

// Service は認定に関するユースケースをまとめます。
type Service struct {
	repo          Repository
	clock         common.Clock
	tx            common.TransactionManager
	thresholds    lifecycle.Thresholds
	notifier      ExpiryNotifier
	homologations HomologationExpirer
}

// UseCase は認定ユースケースの公開インターフェースです。
type UseCase interface {
	CreateCertification(ctx context.Context, in CreateCertificationInput) (*Certification, error)
	GetCertification(ctx context.Context, in GetCertificationInput) (*Certification, error)
	ListCertifications(ctx context.Context, in ListCertificationsInput) (*ListCertificationsResult, error)
	UpdateCertification(ctx context.Context, in UpdateCertificationInput) (*Certification, error)
	DeleteCertification(ctx context.Context, in DeleteCertificationInput) error
	ListExpiring(ctx context.Context, in ListExpiringInput) ([]Expiring, error)
	RefreshStatuses(ctx context.Context) (*RefreshResult, error)
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithThresholds は緊急度区分に使う閾値を指定します。状態導出は閾値に依存しません。
func WithThresholds(t lifecycle.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithExpiryNotifier は失効時の通知先を指定します。
func WithExpiryNotifier(n ExpiryNotifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithHomologationExpirer は状態再計算時に作業員認証の失効も反映させます。
func WithHomologationExpirer(h HomologationExpirer) Option {
	return func(s *Service) {
		s.homologations = h
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager, opts ...Option) *Service {
	clock, tx = common.Defaults(clock, tx)
	s := &Service{repo: repo, clock: clock, tx: tx, thresholds: lifecycle.DefaultThresholds}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCertificationInput は認定作成時の入力です。日付は UTC の日付に丸められます。
type CreateCertificationInput struct {
	WorkerID    string    `field:"worker_id" validate:"required,uuid"`
	CourseID    string    `field:"course_id" validate:"required,uuid"`
	IssueDate   time.Time `field:"issue_date" validate:"required"`
	ExpiryDate  time.Time `field:"expiry_date" validate:"required,gtfield=IssueDate"`
	DocumentURL *string   `field:"document_url" validate:"omitempty,url"`
}

// UpdateCertificationInput は認定更新時の入力です。
type UpdateCertificationInput struct {
	ID          string
	IssueDate   *time.Time
	ExpiryDate  *time.Time
	DocumentURL *string `field:"document_url" validate:"omitempty,url"`
}

// DeleteCertificationInput は認定削除時の入力です。
type DeleteCertificationInput struct {
	ID string
}

// GetCertificationInput は認定取得時の入力です。
type GetCertificationInput struct {
	ID string
}

// ListCertificationsInput は一覧取得時の入力です。Status は導出された状態で絞り込みます。
type ListCertificationsInput struct {
	PageSize  int
	PageToken string
	WorkerID  *string
	CourseID  *string
	Status    *lifecycle.CertificationStatus
}

// ListCertificationsResult は一覧取得結果を表します。
type ListCertificationsResult struct {
	Certifications []*Certification
	NextPageToken  string
}

// ListExpiringInput は期限間近の認定取得時の入力です。
// WithinDays が 0 の場合は Info 閾値を使います。
type ListExpiringInput struct {
	WithinDays     int
	IncludeExpired bool
}

// CreateCertification は新しい認定を登録します。状態は有効期限から導出されます。
func (s *Service) CreateCertification(ctx context.Context, in CreateCertificationInput) (*Certification, error) {
	in.IssueDate = common.TruncateDate(in.IssueDate)
	in.ExpiryDate = common.TruncateDate(in.ExpiryDate)
	in.DocumentURL = common.NormalizeText(in.DocumentURL)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	workerID, _ := common.NormalizeID(in.WorkerID)
	courseID, _ := common.NormalizeID(in.CourseID)

	var created *Certification
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Certification{
			WorkerID:    workerID,
			CourseID:    courseID,
			IssueDate:   in.IssueDate,
			ExpiryDate:  in.ExpiryDate,
			DocumentURL: in.DocumentURL,
			Status:      lifecycle.CertificationStatusAt(in.ExpiryDate, now),
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

// UpdateCertification は認定を更新します。有効期限の変更で失効した場合は通知を発行します。
func (s *Service) UpdateCertification(ctx context.Context, in UpdateCertificationInput) (*Certification, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if in.DocumentURL != nil {
		trimmed := ""
		if normalized := common.NormalizeText(in.DocumentURL); normalized != nil {
			trimmed = *normalized
		}
		in.DocumentURL = &trimmed
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var updated *Certification
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		previous := existing.Status

		if in.IssueDate != nil {
			existing.IssueDate = common.TruncateDate(*in.IssueDate)
		}
		if in.ExpiryDate != nil {
			existing.ExpiryDate = common.TruncateDate(*in.ExpiryDate)
		}
		if !existing.ExpiryDate.After(existing.IssueDate) {
			return ErrInvalidPeriod
		}
		if in.DocumentURL != nil {
			existing.DocumentURL = common.NormalizeText(in.DocumentURL)
		}

		now := s.clock.Now()
		existing.Status = lifecycle.CertificationStatusAt(existing.ExpiryDate, now)
		existing.UpdatedAt = now

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		if lifecycle.IsExpiryTransition(previous, result.Status) && s.notifier != nil {
			if _, err := s.notifier.CertificationExpired(txCtx, result); err != nil {
				return fmt.Errorf("notify expiry: %w", err)
			}
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteCertification は認定を削除します。
func (s *Service) DeleteCertification(ctx context.Context, in DeleteCertificationInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetCertification は ID で認定を取得します。状態は読み出し時点で再計算されます。
func (s *Service) GetCertification(ctx context.Context, in GetCertificationInput) (*Certification, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Certification
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

	s.derive(found, s.clock.Now())
	return found, nil
}

// ListCertifications は認定の一覧を有効期限の昇順で取得します。
func (s *Service) ListCertifications(ctx context.Context, in ListCertificationsInput) (*ListCertificationsResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	workerID, ok := common.NormalizeOptionalID(in.WorkerID)
	if !ok {
		return nil, fmt.Errorf("worker_id: %w", ErrInvalidID)
	}
	courseID, ok := common.NormalizeOptionalID(in.CourseID)
	if !ok {
		return nil, fmt.Errorf("course_id: %w", ErrInvalidID)
	}

	now := s.clock.Now()
	filter := ListCertificationsFilter{
		Limit:    limit,
		Offset:   offset,
		WorkerID: workerID,
		CourseID: courseID,
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		filter.ExpiresFrom, filter.ExpiresUntil = s.statusRange(*in.Status, now)
	}

	var result ListCertificationsResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		certs, token, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		result = ListCertificationsResult{Certifications: certs, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, c := range result.Certifications {
		s.derive(c, now)
	}
	return &result, nil
}

// ListExpiring は WithinDays 日以内に期限を迎える認定を期限の昇順で返します。
func (s *Service) ListExpiring(ctx context.Context, in ListExpiringInput) ([]Expiring, error) {
	within := in.WithinDays
	if within == 0 {
		within = s.thresholds.Info
	}
	if within < 0 || within > maxWithinDays {
		return nil, ErrInvalidWithinDays
	}

	now := s.clock.Now()
	today := common.TruncateDate(now)
	until := today.AddDate(0, 0, within)
	filter := ListCertificationsFilter{
		Limit:        common.MaxListPageSize,
		ExpiresUntil: &until,
	}
	if !in.IncludeExpired {
		filter.ExpiresFrom = &today
	}

	var expiring []Expiring
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		for {
			certs, token, err := s.repo.List(txCtx, filter)
			if err != nil {
				return err
			}
			for _, c := range certs {
				s.derive(c, now)
				expiring = append(expiring, Expiring{
					Certification: c,
					DaysUntil:     lifecycle.DaysUntil(c.ExpiryDate, now),
					Window:        s.thresholds.Classify(&c.ExpiryDate, now),
				})
			}
			if token == "" {
				return nil
			}
			next, err := common.ParsePageToken(token)
			if err != nil {
				return err
			}
			filter.Offset = next
		}
	}); err != nil {
		return nil, err
	}

	return expiring, nil
}

// RefreshStatuses は保存済みの状態を現在日付で再計算して永続化します。
// vencido への遷移ごとに通知を発行し、設定されていれば作業員認証の失効も反映します。
func (s *Service) RefreshStatuses(ctx context.Context) (*RefreshResult, error) {
	var result RefreshResult
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()

		certs, err := s.repo.ListUnexpired(txCtx)
		if err != nil {
			return err
		}
		result.Scanned = len(certs)

		for _, c := range certs {
			next := lifecycle.CertificationStatusAt(c.ExpiryDate, now)
			if next == c.Status {
				continue
			}

			previous := c.Status
			if err := s.repo.UpdateStatus(txCtx, c.ID, next, now); err != nil {
				return fmt.Errorf("update status %s: %w", c.ID, err)
			}
			c.Status = next
			c.UpdatedAt = now
			result.Updated++

			if !lifecycle.IsExpiryTransition(previous, next) {
				continue
			}
			result.Expired++

			if s.notifier != nil {
				n, err := s.notifier.CertificationExpired(txCtx, c)
				if err != nil {
					return fmt.Errorf("notify expiry %s: %w", c.ID, err)
				}
				result.Notified += n
			}
		}

		if s.homologations != nil {
			n, err := s.homologations.ExpireHomologations(txCtx, common.TruncateDate(now))
			if err != nil {
				return fmt.Errorf("expire homologations: %w", err)
			}
			result.HomologationsExpired = n
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) derive(c *Certification, now time.Time) {
	if c == nil {
		return
	}
	c.Status = lifecycle.CertificationStatusAt(c.ExpiryDate, now)
}

// statusRange は導出状態に対応する有効期限の範囲を返します。
func (s *Service) statusRange(status lifecycle.CertificationStatus, now time.Time) (*time.Time, *time.Time) {
	today := common.TruncateDate(now)
	switch status {
	case lifecycle.CertificationVencido:
		until := today.AddDate(0, 0, -1)
		return nil, &until
	case lifecycle.CertificationPorVencer:
		until := today.AddDate(0, 0, lifecycle.PorVencerDays)
		return &today, &until
	default:
		from := today.AddDate(0, 0, lifecycle.PorVencerDays+1)
		return &from, nil
	}
}
