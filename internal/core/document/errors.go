package document

import "github.com/ogurasousui/mining-personnel-grpc/internal/core/common"

var (
	// ErrDocumentNotFound は文書が存在しない場合に返却されます。
	ErrDocumentNotFound = common.NotFound("document: not found")
	// ErrCreatorNotFound は登録者が存在しない場合に返却されます。
	ErrCreatorNotFound = common.ConstraintViolation("document: creator does not exist")
	// ErrInvalidType は種類が不正な場合に返却されます。
	ErrInvalidType = common.InvalidInput("document: invalid type")
	// ErrInvalidRelatedTo は関連先の種類が不正な場合に返却されます。
	ErrInvalidRelatedTo = common.InvalidInput("document: invalid related_to")
	// ErrRelatedIDRequired は関連先 ID が必要な場合に返却されます。
	ErrRelatedIDRequired = common.InvalidInput("document: related_id is required unless related_to is other")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = common.InvalidInput("document: invalid id")
)
