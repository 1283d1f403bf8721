package analytics

import "time"

// EmployeeStats summarizes one employee's workload within a window.
type EmployeeStats struct {
	UserID          int64   `db:"user_id" json:"user_id"`
	Name            string  `db:"name" json:"name"`
	ShiftCount      int64   `db:"shift_count" json:"shift_count"`
	HoursScheduled  float64 `db:"hours_scheduled" json:"hours_scheduled"`
	TimeOffDays     int64   `db:"time_off_days" json:"time_off_days"`
	PendingRequests int64   `db:"pending_requests" json:"pending_requests"`
}

// CompanyStats is the roll-up across the whole company.
type CompanyStats struct {
	ActiveEmployees int64   `db:"active_employees" json:"active_employees"`
	TotalShifts     int64   `db:"total_shifts" json:"total_shifts"`
	TotalHours      float64 `db:"total_hours" json:"total_hours"`
	PendingTimeOff  int64   `db:"pending_time_off" json:"pending_time_off"`
	PendingSwaps    int64   `db:"pending_swaps" json:"pending_swaps"`
	ApprovedTimeOff int64   `db:"approved_time_off" json:"approved_time_off"`
	DepartmentCount int64   `db:"department_count" json:"department_count"`
}

type Window struct {
	From time.Time
	To   time.Time
}

// DefaultWindow is the trailing 30 days ending now.
func DefaultWindow() Window {
	now := time.Now()
	return Window{From: now.AddDate(0, 0, -30), To: now}
}
