package homologation

import "context"

// Repository は会社別コース要件の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, h *Homologation) (*Homologation, error)
	Update(ctx context.Context, h *Homologation) (*Homologation, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Homologation, error)
	List(ctx context.Context, filter ListHomologationsFilter) ([]*Homologation, string, error)
}

// ListHomologationsFilter は一覧取得時の検索条件を表します。
type ListHomologationsFilter struct {
	Limit     int
	Offset    int
	CompanyID *string
	CourseID  *string
}
