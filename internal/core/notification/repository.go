package notification

import (
	"context"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/user"
)

// Repository は通知の永続化を行うインターフェースです。
// 利用者向けの操作はすべて userID で所有者を限定します。
type Repository interface {
	// CreateIfAbsent は (user_id, event_key) が未登録の場合のみ通知を作成し、作成したかどうかを返します。
	CreateIfAbsent(ctx context.Context, n *Notification) (bool, error)
	// ListForUser は作成日時の新しい順で一覧を返します。
	ListForUser(ctx context.Context, filter ListNotificationsFilter) ([]*Notification, string, error)
	SetRead(ctx context.Context, id, userID string, read bool) (*Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// ListNotificationsFilter は一覧取得時の検索条件を表します。
type ListNotificationsFilter struct {
	Limit      int
	Offset     int
	UserID     string
	UnreadOnly bool
}

// RecipientResolver は役割から通知先ユーザーを解決します。
type RecipientResolver interface {
	ListIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error)
}
