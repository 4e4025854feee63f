package evaluation

import "time"

// Type は評価の種類です。
type Type string

const (
	TypeAdmin  Type = "admin"
	TypeMedico Type = "medico"
	TypeRRHH   Type = "rrhh"
)

// IsValid は定義済みの種類かどうかを返します。
func (t Type) IsValid() bool {
	switch t {
	case TypeAdmin, TypeMedico, TypeRRHH:
		return true
	default:
		return false
	}
}

// Evaluation は作業員に対する評価です。
type Evaluation struct {
	ID          string
	WorkerID    string
	EvaluatorID string
	Type        Type
	Score       *int
	Date        time.Time
	Comments    *string
	// WorkerName は参照先から読み込まれる表示用の値です。
	WorkerName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
