package document

import "context"

// Repository は文書の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, d *Document) (*Document, error)
	Update(ctx context.Context, d *Document) (*Document, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Document, error)
	// List は登録日時の新しい順で一覧を返します。
	List(ctx context.Context, filter ListDocumentsFilter) ([]*Document, string, error)
}

// ListDocumentsFilter は一覧取得時の検索条件を表します。
type ListDocumentsFilter struct {
	Limit     int
	Offset    int
	RelatedTo *RelatedTo
	RelatedID *string
	Type      *Type
}
