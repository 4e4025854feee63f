package company

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrCompanyNotFound は会社が存在しない場合に返却されます。
	ErrCompanyNotFound = common.NotFound("company: not found")
	// ErrCompanyInUse は作業員やサービスが紐づく会社を削除しようとした場合に返却されます。
	ErrCompanyInUse = common.ConstraintViolation("company: still referenced by workers or services")
	// ErrInvalidWorkMode は勤務形態が不正な場合に返却されます。
	ErrInvalidWorkMode = common.InvalidInput("company: invalid work mode")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("company: invalid id")
)
