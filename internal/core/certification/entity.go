package certification

import (
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// Certification は作業員がコースを修了したことを示す認定です。
type Certification struct {
	ID          string
	WorkerID    string
	CourseID    string
	IssueDate   time.Time
	ExpiryDate  time.Time
	DocumentURL *string
	Status      lifecycle.CertificationStatus
	// WorkerName と CourseName は参照先から読み込まれる表示用の値で、保存はされません。
	WorkerName string
	CourseName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expiring は期限が近い認定と、その残日数・緊急度区分です。
type Expiring struct {
	Certification *Certification
	DaysUntil     int
	Window        lifecycle.Window
}

// RefreshResult は状態再計算の結果です。
type RefreshResult struct {
	Scanned              int
	Updated              int
	Expired              int
	Notified             int
	HomologationsExpired int64
}
