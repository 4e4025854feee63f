package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// NotificationServiceName は NotificationService の完全修飾名です。
const NotificationServiceName = packageName + ".NotificationService"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type SendNotificationRequest struct {
	UserIDs []string `json:"user_ids"`
	Message string   `json:"message"`
}

type SendNotificationResponse struct {
	Created int32 `json:"created"`
}

type ListNotificationsRequest struct {
	UserID     string `json:"user_id"`
	UnreadOnly bool   `json:"unread_only,omitempty"`
	PageSize   int32  `json:"page_size,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// NotificationRequest は利用者本人の通知を 1 件指定するリクエストです。
type NotificationRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type NotificationResponse struct {
	Notification *Notification `json:"notification"`
}

type UserNotificationsRequest struct {
	UserID string `json:"user_id"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Count int32 `json:"count"`
}

// NotificationServiceServer は NotificationService のサーバー実装です。
type NotificationServiceServer interface {
	SendNotification(context.Context, *SendNotificationRequest) (*SendNotificationResponse, error)
	ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	MarkRead(context.Context, *NotificationRequest) (*NotificationResponse, error)
	MarkUnread(context.Context, *NotificationRequest) (*NotificationResponse, error)
	MarkAllRead(context.Context, *UserNotificationsRequest) (*MarkAllReadResponse, error)
	DeleteNotification(context.Context, *NotificationRequest) (*Empty, error)
	UnreadCount(context.Context, *UserNotificationsRequest) (*UnreadCountResponse, error)
}

var NotificationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(NotificationServiceName, "SendNotification", NotificationServiceServer.SendNotification),
		unary(NotificationServiceName, "ListNotifications", NotificationServiceServer.ListNotifications),
		unary(NotificationServiceName, "MarkRead", NotificationServiceServer.MarkRead),
		unary(NotificationServiceName, "MarkUnread", NotificationServiceServer.MarkUnread),
		unary(NotificationServiceName, "MarkAllRead", NotificationServiceServer.MarkAllRead),
		unary(NotificationServiceName, "DeleteNotification", NotificationServiceServer.DeleteNotification),
		unary(NotificationServiceName, "UnreadCount", NotificationServiceServer.UnreadCount),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&NotificationService_ServiceDesc, srv)
}
