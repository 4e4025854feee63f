package apiv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// UserServiceName は UserService の完全修飾名です。
const UserServiceName = packageName + ".UserService"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  *string   `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Role     *string `json:"role,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

type UpdateUserRequest struct {
	ID       string  `json:"id"`
	Role     *string `json:"role,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

type ListUsersRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
	Role      string `json:"role,omitempty"`
}

type ListUsersResponse struct {
	Users         []*User `json:"users"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

type UserResponse struct {
	User *User `json:"user"`
}

// UserServiceServer は UserService のサーバー実装です。
type UserServiceServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*UserResponse, error)
	GetUser(context.Context, *IDRequest) (*UserResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error)
	DeleteUser(context.Context, *IDRequest) (*Empty, error)
}

var UserService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: UserServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(UserServiceName, "CreateUser", UserServiceServer.CreateUser),
		unary(UserServiceName, "GetUser", UserServiceServer.GetUser),
		unary(UserServiceName, "ListUsers", UserServiceServer.ListUsers),
		unary(UserServiceName, "UpdateUser", UserServiceServer.UpdateUser),
		unary(UserServiceName, "DeleteUser", UserServiceServer.DeleteUser),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserService_ServiceDesc, srv)
}
