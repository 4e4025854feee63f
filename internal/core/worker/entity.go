package worker

import (
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// Status は作業員の就労可否です。
type Status string

const (
	StatusHabilitado   Status = "habilitado"
	StatusInhabilitado Status = "inhabilitado"
)

// IsValid は定義済みの状態かどうかを返します。
func (s Status) IsValid() bool {
	return s == StatusHabilitado || s == StatusInhabilitado
}

// HomologationType は認証の種類です。
type HomologationType string

const (
	HomologationMedica      HomologationType = "medica"
	HomologationOcupacional HomologationType = "ocupacional"
	HomologationSeguridad   HomologationType = "seguridad"
	HomologationTecnica     HomologationType = "tecnica"
	HomologationEspecial    HomologationType = "especial"
)

// IsValid は定義済みの種類かどうかを返します。
func (t HomologationType) IsValid() bool {
	switch t {
	case HomologationMedica, HomologationOcupacional, HomologationSeguridad, HomologationTecnica, HomologationEspecial:
		return true
	default:
		return false
	}
}

// Profile は作業員の付帯情報です。JSONB として保存されます。
type Profile struct {
	Phone             *string    `json:"phone,omitempty"`
	Email             *string    `json:"email,omitempty" field:"email" validate:"omitempty,email"`
	Position          *string    `json:"position,omitempty"`
	PhotoURL          *string    `json:"photo_url,omitempty" field:"photo_url" validate:"omitempty,url"`
	Country           *string    `json:"country,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	MaritalStatus     *string    `json:"marital_status,omitempty"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	PersonalEmail     *string    `json:"personal_email,omitempty" field:"personal_email" validate:"omitempty,email"`
	Address           *string    `json:"address,omitempty"`
	Landline          *string    `json:"landline,omitempty"`
	Career            *string    `json:"career,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	Site              *string    `json:"site,omitempty"`
	Area              *string    `json:"area,omitempty"`
	Local             *string    `json:"local,omitempty"`
	WorkingConditions *string    `json:"working_conditions,omitempty"`
}

// Homologation は作業員の認証情報です。
type Homologation struct {
	IsHomologated     bool
	Type              *HomologationType
	Status            lifecycle.HomologationStatus
	Date              *time.Time
	Expiry            *time.Time
	Entity            *string
	CertificateNumber *string
	Notes             *string
}

// Worker は作業員エンティティです。
type Worker struct {
	ID           string
	DNI          string
	FullName     string
	Status       Status
	CompanyID    *string
	Profile      Profile
	Homologation Homologation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveHomologationStatus は now 時点での実効的な認証状態を返します。
func (w *Worker) EffectiveHomologationStatus(now time.Time) lifecycle.HomologationStatus {
	if !w.Homologation.IsHomologated {
		return lifecycle.HomologationPendiente
	}
	return lifecycle.EffectiveHomologationStatus(w.Homologation.Status, w.Homologation.Expiry, now)
}

// IsAssignable は now 時点でサービスへの配属候補となれるかを返します。
func (w *Worker) IsAssignable(companyID string, now time.Time) bool {
	if w.CompanyID == nil || *w.CompanyID != companyID {
		return false
	}
	if w.Status != StatusHabilitado || !w.Homologation.IsHomologated {
		return false
	}
	return w.EffectiveHomologationStatus(now) == lifecycle.HomologationVigente
}
