package service

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrServiceNotFound はサービスが存在しない場合に返却されます。
	ErrServiceNotFound = common.NotFound("service: not found")
	// ErrReferenceNotFound は会社または管理者が存在しない場合に返却されます。
	ErrReferenceNotFound = common.ConstraintViolation("service: company or manager does not exist")
	// ErrServiceInUse は配属が残るサービスを削除しようとした場合に返却されます。
	ErrServiceInUse = common.ConstraintViolation("service: still referenced by assignments")
	// ErrInvalidStatus は状態が不正な場合に返却されます。
	ErrInvalidStatus = common.InvalidInput("service: invalid status")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("service: invalid id")
	// ErrInvalidCompanyID は会社 ID が不正な場合に返却されます。
	ErrInvalidCompanyID = common.InvalidInput("service: invalid company id")
	// ErrInvalidManagerID は管理者 ID が不正な場合に返却されます。
	ErrInvalidManagerID = common.InvalidInput("service: invalid manager id")
)
