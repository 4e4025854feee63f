package notification

import "time"

// Type は通知の種類です。
type Type string

const (
	TypeCertificacionVencida Type = "certificacion_vencida"
	TypeNuevaEvaluacion      Type = "nueva_evaluacion"
	TypeOtro                 Type = "otro"
)

// IsValid は定義済みの種類かどうかを返します。
func (t Type) IsValid() bool {
	switch t {
	case TypeCertificacionVencida, TypeNuevaEvaluacion, TypeOtro:
		return true
	default:
		return false
	}
}

// Notification はユーザー宛てのアプリ内通知です。
// EventKey は発生源のイベントを識別し、同一ユーザーに同じイベントの通知は一件しか作成されません。
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Message   string
	Read      bool
	EventKey  string
	CreatedAt time.Time
}
