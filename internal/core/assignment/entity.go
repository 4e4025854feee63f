package assignment

import "time"

// Status は配属の状態です。
type Status string

const (
	StatusActivo     Status = "activo"
	StatusFinalizado Status = "finalizado"
)

// IsValid は定義済みの状態かどうかを返します。
func (s Status) IsValid() bool {
	return s == StatusActivo || s == StatusFinalizado
}

// Assignment は作業員のサービスへの配属 (WorkerService) です。
type Assignment struct {
	ID        string
	WorkerID  string
	ServiceID string
	StartDate time.Time
	EndDate   *time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
