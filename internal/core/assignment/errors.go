package assignment

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrAssignmentNotFound は配属が存在しない場合に返却されます。
	ErrAssignmentNotFound = common.NotFound("assignment: not found")
	// ErrAlreadyAssigned は同じ作業員とサービスに有効な配属が既にある場合に返却されます。
	ErrAlreadyAssigned = common.Duplicate("assignment: worker already actively assigned to service")
	// ErrWorkerNotEligible は作業員が配属条件を満たさない場合に返却されます。
	ErrWorkerNotEligible = common.ConstraintViolation("assignment: worker is not eligible for service")
	// ErrServiceInactive は停止中のサービスへ配属しようとした場合に返却されます。
	ErrServiceInactive = common.ConstraintViolation("assignment: service is inactive")
	// ErrAlreadyFinished は終了済みの配属を終了しようとした場合に返却されます。
	ErrAlreadyFinished = common.ConstraintViolation("assignment: already finished")
	// ErrReferenceNotFound は作業員またはサービスが存在しない場合に返却されます。
	ErrReferenceNotFound = common.ConstraintViolation("assignment: worker or service does not exist")
	// ErrInvalidPeriod は終了日が開始日より前の場合に返却されます。
	ErrInvalidPeriod = common.InvalidInput("assignment: end date before start date")
	// ErrInvalidStatus は状態が不正な場合に返却されます。
	ErrInvalidStatus = common.InvalidInput("assignment: invalid status")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("assignment: invalid id")
)
