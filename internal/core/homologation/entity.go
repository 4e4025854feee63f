package homologation

import "time"

// Homologation は会社がコースの修了を要求するかどうかの設定です。
type Homologation struct {
	ID         string
	CompanyID  string
	CourseID   string
	IsRequired bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
