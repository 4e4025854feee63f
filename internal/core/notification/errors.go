package notification

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrNotificationNotFound は通知が存在しない、または他ユーザーの通知である場合に返却されます。
	ErrNotificationNotFound = common.NotFound("notification: not found")
	// ErrRecipientNotFound は宛先ユーザーが存在しない場合に返却されます。
	ErrRecipientNotFound = common.ConstraintViolation("notification: recipient does not exist")
	// ErrInvalidMessage は本文が空の場合に返却されます。
	ErrInvalidMessage = common.InvalidInput("notification: message is required")
	// ErrInvalidType は種類が不正な場合に返却されます。
	ErrInvalidType = common.InvalidInput("notification: invalid type")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("notification: invalid id")
	// ErrInvalidUserID はユーザー ID が不正な場合に返却されます。
	ErrInvalidUserID = common.InvalidInput("notification: invalid user id")
)
