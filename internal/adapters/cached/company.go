package cached

import (
	"context"
	"fmt"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/company"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/cache"
	"go.uber.org/zap"
)

const companiesEntity = "companies"

// CompanyUseCase は company.UseCase の読み取り結果をキャッシュします。
// 書き込みが成功した後に会社エンティティのキャッシュ全体を無効化します。
type CompanyUseCase struct {
	next   company.UseCase
	cache  *cache.QueryCache
	logger *zap.Logger
}

var _ company.UseCase = (*CompanyUseCase)(nil)

// NewCompanyUseCase は CompanyUseCase を生成します。
func NewCompanyUseCase(next company.UseCase, c *cache.QueryCache, logger *zap.Logger) *CompanyUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyUseCase{next: next, cache: c, logger: logger}
}

func (u *CompanyUseCase) CreateCompany(ctx context.Context, in company.CreateCompanyInput) (*company.Company, error) {
	created, err := u.next.CreateCompany(ctx, in)
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return created, nil
}

func (u *CompanyUseCase) GetCompany(ctx context.Context, in company.GetCompanyInput) (*company.Company, error) {
	return cache.Fetch(ctx, u.cache, companiesEntity, "get:"+in.ID, func(ctx context.Context) (*company.Company, error) {
		return u.next.GetCompany(ctx, in)
	})
}

func (u *CompanyUseCase) ListCompanies(ctx context.Context, in company.ListCompaniesInput) (*company.ListCompaniesResult, error) {
	workMode := ""
	if in.WorkMode != nil {
		workMode = string(*in.WorkMode)
	}
	key := fmt.Sprintf("list:%d:%s:%s", in.PageSize, in.PageToken, workMode)
	return cache.Fetch(ctx, u.cache, companiesEntity, key, func(ctx context.Context) (*company.ListCompaniesResult, error) {
		return u.next.ListCompanies(ctx, in)
	})
}

func (u *CompanyUseCase) UpdateCompany(ctx context.Context, in company.UpdateCompanyInput) (*company.Company, error) {
	updated, err := u.next.UpdateCompany(ctx, in)
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return updated, nil
}

func (u *CompanyUseCase) DeleteCompany(ctx context.Context, in company.DeleteCompanyInput) error {
	if err := u.next.DeleteCompany(ctx, in); err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}

func (u *CompanyUseCase) invalidate(ctx context.Context) {
	if err := u.cache.Invalidate(ctx, companiesEntity); err != nil {
		u.logger.Error("failed to invalidate company cache", zap.Error(err))
	}
}
