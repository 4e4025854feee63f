package postgres

import (
	"context"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/dashboard"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/service"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// DashboardRepository は集計値を単一の問い合わせで取得します。
type DashboardRepository struct {
	pool pgdb.Queryer
}

// NewDashboardRepository は DashboardRepository を生成します。
func NewDashboardRepository(pool pgdb.Queryer) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Stats は集計値を返します。認定の状態は保存値ではなく有効期限から数えます。
func (r *DashboardRepository) Stats(ctx context.Context, today, porVencerUntil time.Time) (*dashboard.Stats, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT (SELECT COUNT(*) FROM workers),
               (SELECT COUNT(*) FROM workers WHERE status = $1),
               (SELECT COUNT(*) FROM workers WHERE status = $2),
               (SELECT COUNT(*) FROM companies),
               (SELECT COUNT(*) FROM services),
               (SELECT COUNT(*) FROM services WHERE status = $3),
               (SELECT COUNT(*) FROM courses),
               (SELECT COUNT(*) FROM evaluations),
               (SELECT COUNT(*) FROM documents),
               (SELECT COUNT(*) FROM certifications WHERE expiry_date > $5),
               (SELECT COUNT(*) FROM certifications WHERE expiry_date >= $4 AND expiry_date <= $5),
               (SELECT COUNT(*) FROM certifications WHERE expiry_date < $4)
    `, worker.StatusHabilitado, worker.StatusInhabilitado, service.StatusActivo, today, porVencerUntil)

	var s dashboard.Stats
	if err := row.Scan(
		&s.Workers, &s.WorkersHabilitados, &s.WorkersInhabilitados,
		&s.Companies, &s.Services, &s.ServicesActivos,
		&s.Courses, &s.Evaluations, &s.Documents,
		&s.CertificationsVigente, &s.CertificationsPorVencer, &s.CertificationsVencido,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
