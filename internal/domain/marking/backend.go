package marking

import (
	"context"
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
)

// FetchPhase marks which half of the progressive-loading protocol a fetch
// belongs to.
type FetchPhase string

const (
	FetchInitial   FetchPhase = "initial"
	FetchRemaining FetchPhase = "remaining"
)

// EligibleEmployeesResult is the engine's view of one eligible-employees
// fetch, including the progressive-loading hint when the backend sends one.
type EligibleEmployeesResult struct {
	Employees          []employee.Employee
	DayName            string
	TotalCount         int
	HasExcelAttendance bool
	HasMore            bool
	RemainingCount     int
	RecommendedDelay   time.Duration
}

// SaveRecord is one row of the save payload pushed to the backend.
type SaveRecord struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	OTHours     float64 `json:"ot_hours"`
	LateMinutes int     `json:"late_minutes"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
}

// Backend is the upstream HRMS collaborator contract the engine consumes.
// Implementations apply short timeouts and surface transport failures as
// errors; degradation policy (fall back, never crash) lives in the services.
type Backend interface {
	// FetchEligibleEmployees lists employees eligible for marking on a date.
	// Phase initial requests a bounded first page; phase remaining requests
	// everything past offset.
	FetchEligibleEmployees(ctx context.Context, date string, phase FetchPhase, offset, limit int) (EligibleEmployeesResult, error)

	// CheckHoliday returns holiday info for the date, nil when none declared.
	CheckHoliday(ctx context.Context, date string) (*HolidayInfo, error)

	// CheckExcelAttendance reports whether an externally uploaded attendance
	// source covers the month (YYYY-MM), which locks every date in it.
	CheckExcelAttendance(ctx context.Context, month string) (bool, error)

	// FetchWeeklyAttendance returns per-employee weekly context for the week
	// containing the date, keyed by employee ID.
	FetchWeeklyAttendance(ctx context.Context, date string) (map[string]WeeklyContext, error)

	// RevertPenaltyDay toggles the penalty-ignored flag for one employee-day
	// and returns the new ignored value.
	RevertPenaltyDay(ctx context.Context, employeeID, date string, day entry.Weekday) (bool, error)

	// SaveAttendance persists the marked entries.
	SaveAttendance(ctx context.Context, records []SaveRecord) error

	// FetchWeeklyPenaltyConfig returns the configured weekly absent threshold.
	FetchWeeklyPenaltyConfig(ctx context.Context) (int, error)
}
