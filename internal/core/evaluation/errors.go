package evaluation

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrEvaluationNotFound は評価が存在しない場合に返却されます。
	ErrEvaluationNotFound = common.NotFound("evaluation: not found")
	// ErrReferenceNotFound は作業員または評価者が存在しない場合に返却されます。
	ErrReferenceNotFound = common.ConstraintViolation("evaluation: worker or evaluator does not exist")
	// ErrInvalidType は種類が不正な場合に返却されます。
	ErrInvalidType = common.InvalidInput("evaluation: invalid type")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("evaluation: invalid id")
)
