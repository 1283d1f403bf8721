package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danindra/workforce-scheduling/internal/analytics"
)

// Repository runs the reporting queries directly over sqlx. The aggregates
// never feed back into writes, so they bypass the ORM layer.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const employeeStatsQuery = `
SELECT
    u.id AS user_id,
    u.name AS name,
    COUNT(s.id) AS shift_count,
    COALESCE(SUM(EXTRACT(EPOCH FROM (s.end_time - s.start_time)) / 3600), 0) AS hours_scheduled,
    COALESCE((
        SELECT SUM(DATE_PART('day', t.end_date - t.start_date) + 1)
        FROM time_off_requests t
        WHERE t.user_id = u.id
          AND t.status = 'approved'
          AND t.start_date < $3 AND t.end_date >= $2
    ), 0) AS time_off_days,
    (
        SELECT COUNT(*)
        FROM time_off_requests t
        WHERE t.user_id = u.id AND t.status = 'pending'
    ) AS pending_requests
FROM users u
LEFT JOIN shifts s
    ON s.user_id = u.id
   AND s.status = 'active'
   AND s.start_time >= $2 AND s.start_time < $3
WHERE u.company_id = $1 AND u.is_active = TRUE
GROUP BY u.id, u.name
ORDER BY u.name ASC`

func (r *Repository) EmployeeStats(ctx context.Context, companyID int64, from, to time.Time) ([]analytics.EmployeeStats, error) {
	stats := []analytics.EmployeeStats{}
	err := r.db.SelectContext(ctx, &stats, employeeStatsQuery, companyID, from, to)
	return stats, err
}

const companyStatsQuery = `
SELECT
    (SELECT COUNT(*) FROM users WHERE company_id = $1 AND is_active = TRUE) AS active_employees,
    (SELECT COUNT(*) FROM shifts WHERE company_id = $1 AND status = 'active'
        AND start_time >= $2 AND start_time < $3) AS total_shifts,
    COALESCE((SELECT SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 3600)
        FROM shifts WHERE company_id = $1 AND status = 'active'
        AND start_time >= $2 AND start_time < $3), 0) AS total_hours,
    (SELECT COUNT(*) FROM time_off_requests WHERE company_id = $1 AND status = 'pending') AS pending_time_off,
    (SELECT COUNT(*) FROM shift_swap_requests WHERE company_id = $1 AND status = 'pending') AS pending_swaps,
    (SELECT COUNT(*) FROM time_off_requests WHERE company_id = $1 AND status = 'approved'
        AND start_date < $3 AND end_date >= $2) AS approved_time_off,
    (SELECT COUNT(*) FROM departments WHERE company_id = $1) AS department_count`

func (r *Repository) CompanyStats(ctx context.Context, companyID int64, from, to time.Time) (*analytics.CompanyStats, error) {
	var stats analytics.CompanyStats
	err := r.db.GetContext(ctx, &stats, companyStatsQuery, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
