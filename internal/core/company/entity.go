package company

import "time"

// WorkMode は会社の勤務形態を表します。
type WorkMode string

const (
	WorkModePresencial WorkMode = "presencial"
	WorkModeRemoto     WorkMode = "remoto"
	WorkModeHibrido    WorkMode = "hibrido"
)

// IsValid は定義済みの勤務形態かどうかを返します。
func (m WorkMode) IsValid() bool {
	switch m {
	case WorkModePresencial, WorkModeRemoto, WorkModeHibrido:
		return true
	default:
		return false
	}
}

// Company は会社エンティティです。
type Company struct {
	ID          string
	Name        string
	Description *string
	CostCenter  *string
	WorkMode    WorkMode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
