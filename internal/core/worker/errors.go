package worker

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrWorkerNotFound は作業員が存在しない場合に返却されます。
	ErrWorkerNotFound = common.NotFound("worker: not found")
	// ErrDNIAlreadyExists は DNI が重複した場合に返却されます。
	ErrDNIAlreadyExists = common.Duplicate("worker: dni already exists")
	// ErrCompanyNotFound は所属会社が存在しない場合に返却されます。
	ErrCompanyNotFound = common.ConstraintViolation("worker: company does not exist")
	// ErrWorkerInUse は配属や認定が残る作業員を削除しようとした場合に返却されます。
	ErrWorkerInUse = common.ConstraintViolation("worker: still referenced")
	// ErrInvalidStatus は状態が不正な場合に返却されます。
	ErrInvalidStatus = common.InvalidInput("worker: invalid status")
	// ErrInvalidHomologationType は認証種類が不正な場合に返却されます。
	ErrInvalidHomologationType = common.InvalidInput("worker: invalid homologation type")
	// ErrInvalidHomologationStatus は認証状態が不正な場合に返却されます。
	ErrInvalidHomologationStatus = common.InvalidInput("worker: invalid homologation status")
	// ErrInvalidHomologationPeriod は認証期限が認証日より前の場合に返却されます。
	ErrInvalidHomologationPeriod = common.InvalidInput("worker: homologation expiry before homologation date")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("worker: invalid id")
	// ErrInvalidCompanyID は会社 ID が不正な場合に返却されます。
	ErrInvalidCompanyID = common.InvalidInput("worker: invalid company id")
)
