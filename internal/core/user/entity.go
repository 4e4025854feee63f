package user

import "time"

// Role はユーザーの役割を表します。
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleRRHH       Role = "rrhh"
	RoleMedico     Role = "medico"
	RoleSupervisor Role = "supervisor"
	RoleUsuario    Role = "usuario"
)

// IsValid は定義済みの役割かどうかを返します。
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRRHH, RoleMedico, RoleSupervisor, RoleUsuario:
		return true
	default:
		return false
	}
}

// User はユーザーエンティティです。ID は認証基盤が払い出します。
type User struct {
	ID        string
	Email     string
	Role      Role
	FullName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
