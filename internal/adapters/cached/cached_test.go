package cached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/company"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/course"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCompanyUseCase struct {
	gets    int
	lists   int
	updates int
	name    string
}

func (c *countingCompanyUseCase) CreateCompany(ctx context.Context, in company.CreateCompanyInput) (*company.Company, error) {
	return &company.Company{ID: "company-2", Name: in.Name}, nil
}

func (c *countingCompanyUseCase) GetCompany(ctx context.Context, in company.GetCompanyInput) (*company.Company, error) {
	c.gets++
	return &company.Company{ID: in.ID, Name: c.name, WorkMode: company.WorkModePresencial}, nil
}

func (c *countingCompanyUseCase) ListCompanies(ctx context.Context, in company.ListCompaniesInput) (*company.ListCompaniesResult, error) {
	c.lists++
	return &company.ListCompaniesResult{Companies: []*company.Company{{ID: "company-1", Name: c.name}}}, nil
}

func (c *countingCompanyUseCase) UpdateCompany(ctx context.Context, in company.UpdateCompanyInput) (*company.Company, error) {
	c.updates++
	c.name = *in.Name
	return &company.Company{ID: in.ID, Name: c.name}, nil
}

func (c *countingCompanyUseCase) DeleteCompany(ctx context.Context, in company.DeleteCompanyInput) error {
	return nil
}

type countingCourseUseCase struct {
	lists int
}

func (c *countingCourseUseCase) CreateCourse(ctx context.Context, in course.CreateCourseInput) (*course.Course, error) {
	return &course.Course{ID: "course-1", Name: in.Name, DurationHours: in.DurationHours}, nil
}

func (c *countingCourseUseCase) GetCourse(ctx context.Context, in course.GetCourseInput) (*course.Course, error) {
	return &course.Course{ID: in.ID}, nil
}

func (c *countingCourseUseCase) ListCourses(ctx context.Context, in course.ListCoursesInput) (*course.ListCoursesResult, error) {
	c.lists++
	return &course.ListCoursesResult{Courses: []*course.Course{{ID: "course-1", Name: "Trabajos en altura", DurationHours: 8}}}, nil
}

func (c *countingCourseUseCase) UpdateCourse(ctx context.Context, in course.UpdateCourseInput) (*course.Course, error) {
	return &course.Course{ID: in.ID}, nil
}

func (c *countingCourseUseCase) DeleteCourse(ctx context.Context, in course.DeleteCourseInput) error {
	return nil
}

func newQueryCache(t *testing.T) *cache.QueryCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client, "test", time.Minute, zap.NewNop())
}

func TestCompanyUseCase_UpdateInvalidatesReads(t *testing.T) {
	ctx := context.Background()
	next := &countingCompanyUseCase{name: "Minera Andina"}
	uc := NewCompanyUseCase(next, newQueryCache(t), zap.NewNop())

	got, err := uc.GetCompany(ctx, company.GetCompanyInput{ID: "company-1"})
	require.NoError(t, err)
	assert.Equal(t, "Minera Andina", got.Name)

	_, err = uc.GetCompany(ctx, company.GetCompanyInput{ID: "company-1"})
	require.NoError(t, err)
	_, err = uc.ListCompanies(ctx, company.ListCompaniesInput{})
	require.NoError(t, err)
	_, err = uc.ListCompanies(ctx, company.ListCompaniesInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, next.gets)
	assert.Equal(t, 1, next.lists)

	newName := "Minera del Sur"
	_, err = uc.UpdateCompany(ctx, company.UpdateCompanyInput{ID: "company-1", Name: &newName})
	require.NoError(t, err)

	got, err = uc.GetCompany(ctx, company.GetCompanyInput{ID: "company-1"})
	require.NoError(t, err)
	assert.Equal(t, "Minera del Sur", got.Name)
	assert.Equal(t, 2, next.gets)

	list, err := uc.ListCompanies(ctx, company.ListCompaniesInput{})
	require.NoError(t, err)
	require.Len(t, list.Companies, 1)
	assert.Equal(t, "Minera del Sur", list.Companies[0].Name)
	assert.Equal(t, 2, next.lists)
}

func TestCompanyUseCase_ListKeyIncludesFilter(t *testing.T) {
	ctx := context.Background()
	next := &countingCompanyUseCase{name: "Minera Andina"}
	uc := NewCompanyUseCase(next, newQueryCache(t), zap.NewNop())

	remote := company.WorkModeRemoto
	_, err := uc.ListCompanies(ctx, company.ListCompaniesInput{})
	require.NoError(t, err)
	_, err = uc.ListCompanies(ctx, company.ListCompaniesInput{WorkMode: &remote})
	require.NoError(t, err)

	assert.Equal(t, 2, next.lists)
}

func TestCourseUseCase_CreateInvalidatesList(t *testing.T) {
	ctx := context.Background()
	next := &countingCourseUseCase{}
	uc := NewCourseUseCase(next, newQueryCache(t), zap.NewNop())

	_, err := uc.ListCourses(ctx, course.ListCoursesInput{PageSize: 10})
	require.NoError(t, err)
	_, err = uc.ListCourses(ctx, course.ListCoursesInput{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, next.lists)

	_, err = uc.CreateCourse(ctx, course.CreateCourseInput{Name: "Espacios confinados", DurationHours: 16})
	require.NoError(t, err)

	_, err = uc.ListCourses(ctx, course.ListCoursesInput{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, next.lists)
}

func TestCourseUseCase_WithoutCache(t *testing.T) {
	t.Parallel()

	next := &countingCourseUseCase{}
	uc := NewCourseUseCase(next, nil, nil)

	for i := 0; i < 2; i++ {
		_, err := uc.ListCourses(context.Background(), course.ListCoursesInput{})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, next.lists)
}
