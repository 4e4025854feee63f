package course

import "context"

// Repository はコースエンティティの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, course *Course) (*Course, error)
	Update(ctx context.Context, course *Course) (*Course, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context, filter ListCoursesFilter) ([]*Course, string, error)
}

// ListCoursesFilter は一覧取得時の検索条件を表します。
type ListCoursesFilter struct {
	Limit  int
	Offset int
}
