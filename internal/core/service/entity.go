package service

import "time"

// Status はサービスの稼働状態です。
type Status string

const (
	StatusActivo   Status = "activo"
	StatusInactivo Status = "inactivo"
)

// IsValid は定義済みの状態かどうかを返します。
func (s Status) IsValid() bool {
	return s == StatusActivo || s == StatusInactivo
}

// Service は会社が提供する現場サービス (作業員の配属先) です。
type Service struct {
	ID          string
	Name        string
	Description *string
	CompanyID   string
	Status      Status
	ManagerID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
