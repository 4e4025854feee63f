package cached

import (
	"context"
	"fmt"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/course"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/cache"
	"go.uber.org/zap"
)

const coursesEntity = "courses"

// CourseUseCase は course.UseCase の読み取り結果をキャッシュします。
type CourseUseCase struct {
	next   course.UseCase
	cache  *cache.QueryCache
	logger *zap.Logger
}

var _ course.UseCase = (*CourseUseCase)(nil)

// NewCourseUseCase は CourseUseCase を生成します。
func NewCourseUseCase(next course.UseCase, c *cache.QueryCache, logger *zap.Logger) *CourseUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseUseCase{next: next, cache: c, logger: logger}
}

func (u *CourseUseCase) CreateCourse(ctx context.Context, in course.CreateCourseInput) (*course.Course, error) {
	created, err := u.next.CreateCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return created, nil
}

func (u *CourseUseCase) GetCourse(ctx context.Context, in course.GetCourseInput) (*course.Course, error) {
	return cache.Fetch(ctx, u.cache, coursesEntity, "get:"+in.ID, func(ctx context.Context) (*course.Course, error) {
		return u.next.GetCourse(ctx, in)
	})
}

func (u *CourseUseCase) ListCourses(ctx context.Context, in course.ListCoursesInput) (*course.ListCoursesResult, error) {
	key := fmt.Sprintf("list:%d:%s", in.PageSize, in.PageToken)
	return cache.Fetch(ctx, u.cache, coursesEntity, key, func(ctx context.Context) (*course.ListCoursesResult, error) {
		return u.next.ListCourses(ctx, in)
	})
}

func (u *CourseUseCase) UpdateCourse(ctx context.Context, in course.UpdateCourseInput) (*course.Course, error) {
	updated, err := u.next.UpdateCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return updated, nil
}

func (u *CourseUseCase) DeleteCourse(ctx context.Context, in course.DeleteCourseInput) error {
	if err := u.next.DeleteCourse(ctx, in); err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}

func (u *CourseUseCase) invalidate(ctx context.Context) {
	if err := u.cache.Invalidate(ctx, coursesEntity); err != nil {
		u.logger.Error("failed to invalidate course cache", zap.Error(err))
	}
}
