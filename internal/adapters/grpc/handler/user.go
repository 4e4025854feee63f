package handler

import (
	"context"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/user"
)

// UserGrpcHandler は UserService の gRPC 実装です。
type UserGrpcHandler struct {
	svc user.UseCase
}

var _ apiv1.UserServiceServer = (*UserGrpcHandler)(nil)

// NewUserGrpcHandler は UserGrpcHandler を生成します。
func NewUserGrpcHandler(svc user.UseCase) *UserGrpcHandler {
	return &UserGrpcHandler{svc: svc}
}

// CreateUser はユーザーを作成します。
func (h *UserGrpcHandler) CreateUser(ctx context.Context, req *apiv1.CreateUserRequest) (*apiv1.UserResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	created, err := h.svc.CreateUser(ctx, user.CreateUserInput{
		ID:       req.ID,
		Email:    req.Email,
		Role:     enumPtr[user.Role](req.Role),
		FullName: req.FullName,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.UserResponse{User: toAPIUser(created)}, nil
}

// GetUser はユーザーを取得します。
func (h *UserGrpcHandler) GetUser(ctx context.Context, req *apiv1.IDRequest) (*apiv1.UserResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	found, err := h.svc.GetUser(ctx, user.GetUserInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.UserResponse{User: toAPIUser(found)}, nil
}

// ListUsers はユーザー一覧を取得します。
func (h *UserGrpcHandler) ListUsers(ctx context.Context, req *apiv1.ListUsersRequest) (*apiv1.ListUsersResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	result, err := h.svc.ListUsers(ctx, user.ListUsersInput{
		PageSize:  int(req.PageSize),
		PageToken: req.PageToken,
		Role:      optionalEnum[user.Role](req.Role),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	users := make([]*apiv1.User, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, toAPIUser(u))
	}

	return &apiv1.ListUsersResponse{Users: users, NextPageToken: result.NextPageToken}, nil
}

// UpdateUser はユーザーの役割と氏名を更新します。
func (h *UserGrpcHandler) UpdateUser(ctx context.Context, req *apiv1.UpdateUserRequest) (*apiv1.UserResponse, error) {
	if req == nil {
		return nil, requestRequired()
	}

	updated, err := h.svc.UpdateUser(ctx, user.UpdateUserInput{
		ID:       req.ID,
		Role:     enumPtr[user.Role](req.Role),
		FullName: req.FullName,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.UserResponse{User: toAPIUser(updated)}, nil
}

// DeleteUser はユーザーを削除します。
func (h *UserGrpcHandler) DeleteUser(ctx context.Context, req *apiv1.IDRequest) (*apiv1.Empty, error) {
	if req == nil {
		return nil, requestRequired()
	}

	if err := h.svc.DeleteUser(ctx, user.DeleteUserInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}

	return &apiv1.Empty{}, nil
}

func toAPIUser(u *user.User) *apiv1.User {
	if u == nil {
		return nil
	}
	return &apiv1.User{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
