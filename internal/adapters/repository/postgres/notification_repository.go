package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/notification"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// NotificationRepository は PostgreSQL を利用した通知永続化の実装です。
// (user_id, event_key) の一意インデックスにより同一イベントの通知は一件に限られます。
type NotificationRepository struct {
	pool pgdb.Queryer
}

var _ notification.Repository = (*NotificationRepository)(nil)

// NewNotificationRepository は NotificationRepository を生成します。
func NewNotificationRepository(pool pgdb.Queryer) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// CreateIfAbsent は未登録の場合のみ通知を作成します。作成した場合は n.ID を設定します。
func (r *NotificationRepository) CreateIfAbsent(ctx context.Context, n *notification.Notification) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO notifications (user_id, type, message, read, event_key, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id, event_key) DO NOTHING
        RETURNING id
    `, n.UserID, n.Type, n.Message, n.Read, n.EventKey, n.CreatedAt)

	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, translateNotificationPgError(err)
	}
	n.ID = id
	return true, nil
}

// ListForUser は通知一覧を作成日時の新しい順で取得します。
func (r *NotificationRepository) ListForUser(ctx context.Context, filter notification.ListNotificationsFilter) ([]*notification.Notification, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	b.add("user_id = ?", filter.UserID)
	if filter.UnreadOnly {
		b.add("read = ?", false)
	}

	query := `
        SELECT id, user_id, type, message, read, event_key, created_at
          FROM notifications` + b.where() + `
         ORDER BY created_at DESC, id DESC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateNotificationPgError(err)
	}
	defer rows.Close()

	var items []*notification.Notification
	for rows.Next() {
		found, err := scanNotification(rows)
		if err != nil {
			return nil, "", translateNotificationPgError(err)
		}
		items = append(items, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateNotificationPgError(err)
	}

	items, nextToken := trimPage(items, filter.Limit, filter.Offset)
	return items, nextToken, nil
}

// SetRead は既読状態を更新します。
func (r *NotificationRepository) SetRead(ctx context.Context, id, userID string, read bool) (*notification.Notification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE notifications
           SET read = $1
         WHERE id = $2
           AND user_id = $3
        RETURNING id, user_id, type, message, read, event_key, created_at
    `, read, id, userID)

	updated, err := scanNotification(row)
	if err != nil {
		return nil, translateNotificationPgError(err)
	}
	return updated, nil
}

// MarkAllRead はユーザーの未読通知をすべて既読にし、更新件数を返します。
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE notifications
           SET read = TRUE
         WHERE user_id = $1
           AND NOT read
    `, userID)
	if err != nil {
		return 0, translateNotificationPgError(err)
	}
	return tag.RowsAffected(), nil
}

// Delete は userID が所有する通知を削除します。
func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateNotificationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// UnreadCount は未読通知の件数を返します。
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var count int
	if err := exec.QueryRow(ctx, `
        SELECT COUNT(*)
          FROM notifications
         WHERE user_id = $1
           AND NOT read
    `, userID).Scan(&count); err != nil {
		return 0, translateNotificationPgError(err)
	}
	return count, nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		id, userID, nType, message string
		read                       bool
		eventKey                   string
		createdAt                  time.Time
	)

	if err := row.Scan(&id, &userID, &nType, &message, &read, &eventKey, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, err
	}

	return &notification.Notification{
		ID:        id,
		UserID:    userID,
		Type:      notification.Type(nType),
		Message:   message,
		Read:      read,
		EventKey:  eventKey,
		CreatedAt: createdAt,
	}, nil
}

func translateNotificationPgError(err error) error {
	if code, _ := pgErrorCode(err); code == foreignKeyViolationCode {
		return notification.ErrRecipientNotFound
	}
	return err
}
