package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/notification"
)

// NotificationGrpcHandler は NotificationService の gRPC 実装です。
// 利用者の識別は認証基盤の責務であり、ここでは user_id をそのまま受け取ります。
type NotificationGrpcHandler struct {
	svc notification.UseCase
}

var _ apiv1.NotificationServiceServer = (*NotificationGrpcHandler)(nil)

// NewNotificationGrpcHandler は NotificationGrpcHandler を生成します。
func NewNotificationGrpcHandler(svc notification.UseCase) *NotificationGrpcHandler {
	return &NotificationGrpcHandler{svc: svc}
}

func (h *NotificationGrpcHandler) SendNotification(ctx context.Context, req *apiv1.SendNotificationRequest) (*apiv1.SendNotificationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.SendNotification(ctx, notification.SendNotificationInput{
		UserIDs: req.UserIDs,
		Message: req.Message,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.SendNotificationResponse{Created: int32(created)}, nil
}

func (h *NotificationGrpcHandler) ListNotifications(ctx context.Context, req *apiv1.ListNotificationsRequest) (*apiv1.ListNotificationsResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListNotifications(ctx, notification.ListNotificationsInput{
		UserID:     req.UserID,
		UnreadOnly: req.UnreadOnly,
		PageSize:   int(req.PageSize),
		PageToken:  req.PageToken,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	items := make([]*apiv1.Notification, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		items = append(items, toAPINotification(n))
	}

	return &apiv1.ListNotificationsResponse{Notifications: items, NextPageToken: result.NextPageToken}, nil
}

func (h *NotificationGrpcHandler) MarkRead(ctx context.Context, req *apiv1.NotificationRequest) (*apiv1.NotificationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	n, err := h.svc.MarkRead(ctx, notification.MarkInput{ID: req.ID, UserID: req.UserID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.NotificationResponse{Notification: toAPINotification(n)}, nil
}

func (h *NotificationGrpcHandler) MarkUnread(ctx context.Context, req *apiv1.NotificationRequest) (*apiv1.NotificationResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	n, err := h.svc.MarkUnread(ctx, notification.MarkInput{ID: req.ID, UserID: req.UserID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.NotificationResponse{Notification: toAPINotification(n)}, nil
}

func (h *NotificationGrpcHandler) MarkAllRead(ctx context.Context, req *apiv1.UserNotificationsRequest) (*apiv1.MarkAllReadResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.MarkAllRead(ctx, notification.UserInput{UserID: req.UserID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.MarkAllReadResponse{Updated: updated}, nil
}

func (h *NotificationGrpcHandler) DeleteNotification(ctx context.Context, req *apiv1.NotificationRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteNotification(ctx, notification.MarkInput{ID: req.ID, UserID: req.UserID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func (h *NotificationGrpcHandler) UnreadCount(ctx context.Context, req *apiv1.UserNotificationsRequest) (*apiv1.UnreadCountResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	count, err := h.svc.UnreadCount(ctx, notification.UserInput{UserID: req.UserID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.UnreadCountResponse{Count: int32(count)}, nil
}

func toAPINotification(n *notification.Notification) *apiv1.Notification {
	if n == nil {
		return nil
	}
	return &apiv1.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
