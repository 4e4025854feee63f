package course

import "time"

// Course は研修コースです。
type Course struct {
	ID            string
	Name          string
	Description   *string
	DurationHours int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
