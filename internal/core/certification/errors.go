package certification

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrCertificationNotFound は認定が存在しない場合に返却されます。
	ErrCertificationNotFound = common.NotFound("certification: not found")
	// ErrReferenceNotFound は作業員またはコースが存在しない場合に返却されます。
	ErrReferenceNotFound = common.ConstraintViolation("certification: worker or course does not exist")
	// ErrInvalidPeriod は有効期限が発行日以前の場合に返却されます。
	ErrInvalidPeriod = common.InvalidInput("certification: expiry date must be after issue date")
	// ErrInvalidStatus は状態が不正な場合に返却されます。
	ErrInvalidStatus = common.InvalidInput("certification: invalid status")
	// ErrInvalidWithinDays は日数指定が範囲外の場合に返却されます。
	ErrInvalidWithinDays = common.InvalidInput("certification: within_days must be between 0 and 3650")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("certification: invalid id")
)
