package document

import "time"

// Type は文書の種類です。
type Type string

const (
	TypeCertificado   Type = "certificado"
	TypeContrato      Type = "contrato"
	TypeOrdenServicio Type = "orden_servicio"
	TypeOtro          Type = "otro"
)

// IsValid は定義済みの種類かどうかを返します。
func (t Type) IsValid() bool {
	switch t {
	case TypeCertificado, TypeContrato, TypeOrdenServicio, TypeOtro:
		return true
	default:
		return false
	}
}

// RelatedTo は文書の関連先の種類です。
type RelatedTo string

const (
	RelatedWorker  RelatedTo = "worker"
	RelatedService RelatedTo = "service"
	RelatedCompany RelatedTo = "company"
	RelatedOther   RelatedTo = "other"
)

// IsValid は定義済みの関連先かどうかを返します。
func (r RelatedTo) IsValid() bool {
	switch r {
	case RelatedWorker, RelatedService, RelatedCompany, RelatedOther:
		return true
	default:
		return false
	}
}

// Document は外部ストレージ上の文書への参照です。
type Document struct {
	ID        string
	Name      string
	Type      Type
	URL       string
	RelatedTo RelatedTo
	RelatedID *string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
