package service

import "context"

// Repository はサービスエンティティの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, service *Service) (*Service, error)
	Update(ctx context.Context, service *Service) (*Service, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter ListServicesFilter) ([]*Service, string, error)
}

// ListServicesFilter は一覧取得時の検索条件を表します。
type ListServicesFilter struct {
	Limit     int
	Offset    int
	CompanyID *string
	Status    *Status
}
