package course

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrCourseNotFound はコースが存在しない場合に返却されます。
	ErrCourseNotFound = common.NotFound("course: not found")
	// ErrCourseInUse は認定や必須設定が残るコースを削除しようとした場合に返却されます。
	ErrCourseInUse = common.ConstraintViolation("course: still referenced")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("course: invalid id")
)
