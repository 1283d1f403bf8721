package schedule

import (
	"strconv"
	"strings"
	"time"

	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"

	RecurDaily  = "daily"
	RecurWeekly = "weekly"
)

type Shift struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	ManagerID    int64       `json:"manager_id"`
	CompanyID    int64       `json:"company_id"`
	DepartmentID *int64      `json:"department_id,omitempty"`
	Title        string      `json:"title"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes,omitempty"`
	Recurrence   *Recurrence `json:"recurrence,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Recurrence describes a repeating shift pattern. Days holds weekday numbers
// (0 Sunday through 6 Saturday) and only applies to weekly patterns.
type Recurrence struct {
	Type    string     `json:"type"`
	Every   int        `json:"every"`
	Days    []int      `json:"days,omitempty"`
	EndDate *time.Time `json:"end_date,omitempty"`
}

// Occurrence is one concrete instance of a shift within a calendar window,
// either the stored shift itself or a projection of its recurrence.
type Occurrence struct {
	ShiftID   int64     `json:"shift_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Projected bool      `json:"projected"`
}

func FromDataModel(m *scheduleDatamodel.Shift) *Shift {
	s := &Shift{
		ID:           m.ID,
		UserID:       m.UserID,
		ManagerID:    m.ManagerID,
		CompanyID:    m.CompanyID,
		DepartmentID: m.DepartmentID,
		Title:        m.Title,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Status:       m.Status,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.IsRecurring && m.RecurType != nil {
		every := 1
		if m.RecurEvery != nil && *m.RecurEvery > 0 {
			every = *m.RecurEvery
		}
		s.Recurrence = &Recurrence{
			Type:    *m.RecurType,
			Every:   every,
			Days:    parseRecurDays(m.RecurDays),
			EndDate: m.RecurEndDate,
		}
	}
	return s
}

// Occurrences projects the shift into the [from, to) window. A non-recurring
// shift yields at most one entry; recurring shifts yield one per matching day
// up to the recurrence end date.
func (s *Shift) Occurrences(from, to time.Time) []Occurrence {
	if s.Recurrence == nil {
		if s.StartTime.Before(to) && s.EndTime.After(from) {
			return []Occurrence{s.occurrenceAt(s.StartTime, false)}
		}
		return nil
	}

	end := to
	if s.Recurrence.EndDate != nil && s.Recurrence.EndDate.Before(end) {
		end = s.Recurrence.EndDate.Add(24 * time.Hour)
	}

	duration := s.EndTime.Sub(s.StartTime)
	var out []Occurrence
	for day := 0; ; day++ {
		start := s.StartTime.AddDate(0, 0, day)
		if !start.Before(end) {
			break
		}
		if !s.recursOn(start, day) {
			continue
		}
		if start.Add(duration).After(from) && start.Before(to) {
			out = append(out, s.occurrenceAt(start, day > 0))
		}
	}
	return out
}

func (s *Shift) recursOn(start time.Time, daysSinceFirst int) bool {
	switch s.Recurrence.Type {
	case RecurDaily:
		return daysSinceFirst%s.Recurrence.Every == 0
	case RecurWeekly:
		week := daysSinceFirst / 7
		if week%s.Recurrence.Every != 0 {
			return false
		}
		if len(s.Recurrence.Days) == 0 {
			return start.Weekday() == s.StartTime.Weekday()
		}
		for _, d := range s.Recurrence.Days {
			if int(start.Weekday()) == d {
				return true
			}
		}
		return false
	default:
		return daysSinceFirst == 0
	}
}

func (s *Shift) occurrenceAt(start time.Time, projected bool) Occurrence {
	return Occurrence{
		ShiftID:   s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		StartTime: start,
		EndTime:   start.Add(s.EndTime.Sub(s.StartTime)),
		Status:    s.Status,
		Projected: projected,
	}
}

func parseRecurDays(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		if d, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && d >= 0 && d <= 6 {
			days = append(days, d)
		}
	}
	return days
}

func formatRecurDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
