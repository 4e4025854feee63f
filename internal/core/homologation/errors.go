package homologation

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrHomologationNotFound は設定が存在しない場合に返却されます。
	ErrHomologationNotFound = common.NotFound("homologation: not found")
	// ErrHomologationAlreadyExists は同じ会社とコースの組み合わせが既に存在する場合に返却されます。
	ErrHomologationAlreadyExists = common.Duplicate("homologation: company and course already linked")
	// ErrReferenceNotFound は会社またはコースが存在しない場合に返却されます。
	ErrReferenceNotFound = common.ConstraintViolation("homologation: company or course does not exist")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("homologation: invalid id")
)
