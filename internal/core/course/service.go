package course

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/validation"
)

// Service はコースに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock common.Clock
	tx    common.TransactionManager
}

// UseCase はコースユースケースの公開インターフェースです。
type UseCase interface {
	CreateCourse(ctx context.Context, in CreateCourseInput) (*Course, error)
	GetCourse(ctx context.Context, in GetCourseInput) (*Course, error)
	ListCourses(ctx context.Context, in ListCoursesInput) (*ListCoursesResult, error)
	UpdateCourse(ctx context.Context, in UpdateCourseInput) (*Course, error)
	DeleteCourse(ctx context.Context, in DeleteCourseInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock common.Clock, tx common.TransactionManager) *Service {
	clock, tx = common.Defaults(clock, tx)
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateCourseInput はコース作成時の入力です。
type CreateCourseInput struct {
	Name          string  `field:"name" validate:"min=3,max=255"`
	Description   *string `field:"description"`
	DurationHours int     `field:"duration_hours" validate:"min=1,max=1000"`
}

// UpdateCourseInput はコース更新時の入力です。
type UpdateCourseInput struct {
	ID            string
	Name          *string `field:"name" validate:"omitempty,min=3,max=255"`
	Description   *string `field:"description"`
	DurationHours *int    `field:"duration_hours" validate:"omitempty,min=1,max=1000"`
}

// DeleteCourseInput はコース削除時の入力です。
type DeleteCourseInput struct {
	ID string
}

// GetCourseInput はコース取得時の入力です。
type GetCourseInput struct {
	ID string
}

// ListCoursesInput は一覧取得時の入力です。
type ListCoursesInput struct {
	PageSize  int
	PageToken string
}

// ListCoursesResult は一覧取得結果を表します。
type ListCoursesResult struct {
	Courses       []*Course
	NextPageToken string
}

// CreateCourse は新しいコースを作成します。
func (s *Service) CreateCourse(ctx context.Context, in CreateCourseInput) (*Course, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var created *Course
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Course{
			Name:          in.Name,
			Description:   common.NormalizeText(in.Description),
			DurationHours: in.DurationHours,
			CreatedAt:     now,
			UpdatedAt:     now,
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

// UpdateCourse はコース情報を更新します。
func (s *Service) UpdateCourse(ctx context.Context, in UpdateCourseInput) (*Course, error) {
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

	var updated *Course
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
		if in.DurationHours != nil {
			existing.DurationHours = *in.DurationHours
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

// DeleteCourse はコースを削除します。
func (s *Service) DeleteCourse(ctx context.Context, in DeleteCourseInput) error {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetCourse は ID でコースを取得します。
func (s *Service) GetCourse(ctx context.Context, in GetCourseInput) (*Course, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Course
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

// ListCourses はコースの一覧を名前順で取得します。
func (s *Service) ListCourses(ctx context.Context, in ListCoursesInput) (*ListCoursesResult, error) {
	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var result ListCoursesResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		courses, token, err := s.repo.List(txCtx, ListCoursesFilter{Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		result = ListCoursesResult{Courses: courses, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}
