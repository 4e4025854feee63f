package user

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrUserNotFound はユーザーが存在しない場合に返却されます。
	ErrUserNotFound = common.NotFound("user: not found")
	// ErrEmailAlreadyExists はメールアドレス重複時に返却されます。
	ErrEmailAlreadyExists = common.Duplicate("user: email already exists")
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = common.InvalidInput("user: invalid email")
	// ErrInvalidRole は役割が不正な場合に返却されます。
	ErrInvalidRole = common.InvalidInput("user: invalid role")
	// ErrInvalidID はIDが不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("user: invalid id")
)
