package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

// Service は利用者向けの通知操作をまとめます。
type Service struct {
	repo    Repository
	trigger *Trigger
	tx      common.TransactionManager
}

// UseCase は通知ユースケースの公開インターフェースです。
type UseCase interface {
	SendNotification(ctx context.Context, in SendNotificationInput) (int, error)
	ListNotifications(ctx context.Context, in ListNotificationsInput) (*ListNotificationsResult, error)
	MarkRead(ctx context.Context, in MarkInput) (*Notification, error)
	MarkUnread(ctx context.Context, in MarkInput) (*Notification, error)
	MarkAllRead(ctx context.Context, in UserInput) (int64, error)
	DeleteNotification(ctx context.Context, in MarkInput) error
	UnreadCount(ctx context.Context, in UserInput) (int, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, trigger *Trigger, tx common.TransactionManager) *Service {
	_, tx = common.Defaults(nil, tx)
	return &Service{repo: repo, trigger: trigger, tx: tx}
}

// SendNotificationInput は任意通知 (otro) 送信時の入力です。
type SendNotificationInput struct {
	UserIDs []string
	Message string
}

// ListNotificationsInput は一覧取得時の入力です。
type ListNotificationsInput struct {
	UserID     string
	UnreadOnly bool
	PageSize   int
	PageToken  string
}

// ListNotificationsResult は一覧取得結果を表します。
type ListNotificationsResult struct {
	Notifications []*Notification
	NextPageToken string
}

// MarkInput は単一通知に対する操作の入力です。
type MarkInput struct {
	ID     string
	UserID string
}

// UserInput はユーザー単位の操作の入力です。
type UserInput struct {
	UserID string
}

// SendNotification は指定ユーザーへ otro 通知を送信します。
func (s *Service) SendNotification(ctx context.Context, in SendNotificationInput) (int, error) {
	recipients := make([]string, 0, len(in.UserIDs))
	for _, raw := range in.UserIDs {
		id, ok := common.NormalizeID(raw)
		if !ok {
			return 0, fmt.Errorf("user_id: %w", ErrInvalidUserID)
		}
		recipients = append(recipients, id)
	}

	var created int
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		n, err := s.trigger.Raise(txCtx, RaiseInput{
			Type:       TypeOtro,
			Message:    in.Message,
			EventKey:   "manual:" + uuid.NewString(),
			Recipients: recipients,
		})
		if err != nil {
			return err
		}
		created = n
		return nil
	}); err != nil {
		return 0, err
	}
	return created, nil
}

// ListNotifications はユーザーの通知を新しい順で取得します。
func (s *Service) ListNotifications(ctx context.Context, in ListNotificationsInput) (*ListNotificationsResult, error) {
	userID, ok := common.NormalizeID(in.UserID)
	if !ok {
		return nil, fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}

	limit, err := common.NormalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := common.ParsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var result ListNotificationsResult
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		items, token, err := s.repo.ListForUser(txCtx, ListNotificationsFilter{
			Limit:      limit,
			Offset:     offset,
			UserID:     userID,
			UnreadOnly: in.UnreadOnly,
		})
		if err != nil {
			return common.QueryFailure("list notifications", err)
		}
		result = ListNotificationsResult{Notifications: items, NextPageToken: token}
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
}

// MarkRead は通知を既読にします。
func (s *Service) MarkRead(ctx context.Context, in MarkInput) (*Notification, error) {
	return s.setRead(ctx, in, true)
}

// MarkUnread は通知を未読に戻します。
func (s *Service) MarkUnread(ctx context.Context, in MarkInput) (*Notification, error) {
	return s.setRead(ctx, in, false)
}

func (s *Service) setRead(ctx context.Context, in MarkInput, read bool) (*Notification, error) {
	id, userID, err := normalizeMark(in)
	if err != nil {
		return nil, err
	}

	var updated *Notification
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.SetRead(txCtx, id, userID, read)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkAllRead はユーザーの未読通知をすべて既読にし、更新件数を返します。
func (s *Service) MarkAllRead(ctx context.Context, in UserInput) (int64, error) {
	userID, ok := common.NormalizeID(in.UserID)
	if !ok {
		return 0, fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}

	var n int64
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		count, err := s.repo.MarkAllRead(txCtx, userID)
		if err != nil {
			return err
		}
		n = count
		return nil
	}); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteNotification は通知を削除します。
func (s *Service) DeleteNotification(ctx context.Context, in MarkInput) error {
	id, userID, err := normalizeMark(in)
	if err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id, userID)
	})
}

// UnreadCount はユーザーの未読通知件数を返します。
func (s *Service) UnreadCount(ctx context.Context, in UserInput) (int, error) {
	userID, ok := common.NormalizeID(in.UserID)
	if !ok {
		return 0, fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}

	var n int
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		count, err := s.repo.UnreadCount(txCtx, userID)
		if err != nil {
			return common.QueryFailure("count unread notifications", err)
		}
		n = count
		return nil
	}); err != nil {
		return 0, err
	}
	return n, nil
}

func normalizeMark(in MarkInput) (string, string, error) {
	id, ok := common.NormalizeID(in.ID)
	if !ok {
		return "", "", fmt.Errorf("id: %w", ErrInvalidID)
	}
	userID, ok := common.NormalizeID(in.UserID)
	if !ok {
		return "", "", fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}
	return id, userID, nil
}
