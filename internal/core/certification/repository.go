package certification

import (
	"context"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// Repository は認定エンティティの永続化を行うインターフェースです。
// 読み出し結果には作業員名とコース名が含まれます。
type Repository interface {
	Create(ctx context.Context, cert *Certification) (*Certification, error)
	Update(ctx context.Context, cert *Certification) (*Certification, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Certification, error)
	// List は有効期限の昇順で一覧を返します。
	List(ctx context.Context, filter ListCertificationsFilter) ([]*Certification, string, error)
	// ListUnexpired は保存状態が vencido 以外の認定をすべて返します。
	ListUnexpired(ctx context.Context) ([]*Certification, error)
	UpdateStatus(ctx context.Context, id string, status lifecycle.CertificationStatus, updatedAt time.Time) error
}

// ListCertificationsFilter は一覧取得時の検索条件を表します。期限の範囲は両端を含みます。
type ListCertificationsFilter struct {
	Limit        int
	Offset       int
	WorkerID     *string
	CourseID     *string
	ExpiresFrom  *time.Time
	ExpiresUntil *time.Time
}

// ExpiryNotifier は認定の失効を通知します。作成した通知件数を返します。
type ExpiryNotifier interface {
	CertificationExpired(ctx context.Context, cert *Certification) (int, error)
}

// HomologationExpirer は期限切れの作業員認証を vencida に更新します。
type HomologationExpirer interface {
	ExpireHomologations(ctx context.Context, asOf time.Time) (int64, error)
}
