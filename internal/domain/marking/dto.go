package marking

import (
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/validator"
)

// ========================================
// MARKING SESSION DTOs
// ========================================

type CreateSessionRequest struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Department string `json:"department,omitempty"`
	Search     string `json:"search,omitempty"`
}

func (r *CreateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{"unmarked", "present", "absent", "off"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: unmarked, present, absent, off",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetClockRequest struct {
	ClockIn  string `json:"clock_in,omitempty"`  // HH:MM
	ClockOut string `json:"clock_out,omitempty"` // HH:MM
}

func (r *SetClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn == "" && r.ClockOut == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "at least one of clock_in, clock_out is required",
		})
	}
	if r.ClockIn != "" && !validator.IsValidClockTime(r.ClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be in HH:MM format",
		})
	}
	if r.ClockOut != "" && !validator.IsValidClockTime(r.ClockOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAllRequest struct {
	Status string `json:"status"` // present | absent
}

func (r *MarkAllRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{"present", "absent"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RevertPenaltyRequest struct {
	Day string `json:"day"` // weekday code: M, Tu, W, Th, F, Sa, Su
}

func (r *RevertPenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := entry.ParseWeekday(r.Day); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be one of: M, Tu, W, Th, F, Sa, Su",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type EntryResponse struct {
	EmployeeID         string            `json:"employee_id"`
	EmployeeName       string            `json:"employee_name"`
	Department         string            `json:"department,omitempty"`
	Status             string            `json:"status"`
	ClockIn            string            `json:"clock_in"`
	ClockOut           string            `json:"clock_out"`
	OTHours            float64           `json:"ot_hours"`
	LateMinutes        int               `json:"late_minutes"`
	HasOffDay          bool              `json:"has_off_day"`
	Locked             bool              `json:"locked"`
	WeeklyAttendance   map[string]string `json:"weekly_attendance"`
	AutoMarkedReasons  map[string]string `json:"auto_marked_reasons,omitempty"`
	PenaltyIgnoredDays map[string]bool   `json:"penalty_ignored_days,omitempty"`
	WeeklyPenaltyDays  int               `json:"weekly_penalty_days"`
}

// NewEntryResponse maps an entry copy to its wire shape. Reverted penalty
// days are presented as if the auto-mark never happened while the raw map
// value stays absent underneath.
func NewEntryResponse(e entry.Entry) EntryResponse {
	weekly := make(map[string]string, len(e.WeeklyAttendance))
	for day, mark := range e.WeeklyAttendance {
		if mark == entry.DayAbsent && e.PenaltyIgnoredDays[day] && e.AutoMarkedReasons[day] != "" {
			weekly[string(day)] = string(entry.DayUnknown)
			continue
		}
		weekly[string(day)] = string(mark)
	}
	reasons := make(map[string]string, len(e.AutoMarkedReasons))
	for day, reason := range e.AutoMarkedReasons {
		reasons[string(day)] = reason
	}
	ignored := make(map[string]bool, len(e.PenaltyIgnoredDays))
	for day, ig := range e.PenaltyIgnoredDays {
		ignored[string(day)] = ig
	}
	return EntryResponse{
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		Department:         e.Department,
		Status:             string(e.Status),
		ClockIn:            e.ClockIn,
		ClockOut:           e.ClockOut,
		OTHours:            e.OTHours,
		LateMinutes:        e.LateMinutes,
		HasOffDay:          e.HasOffDay,
		Locked:             e.Locked,
		WeeklyAttendance:   weekly,
		AutoMarkedReasons:  reasons,
		PenaltyIgnoredDays: ignored,
		WeeklyPenaltyDays:  e.WeeklyPenaltyDays,
	}
}

type SessionSummary struct {
	Present  int `json:"present"`
	Absent   int `json:"absent"`
	Off      int `json:"off"`
	Unmarked int `json:"unmarked"`
}

type SessionResponse struct {
	SessionID         string          `json:"session_id"`
	Date              string          `json:"date"`
	DayName           string          `json:"day_name"`
	Department        string          `json:"department,omitempty"`
	Search            string          `json:"search,omitempty"`
	LoadState         string          `json:"load_state"`
	TotalCount        int             `json:"total_count"`
	LoadedCount       int             `json:"loaded_count"`
	Departments       []string        `json:"departments"`
	IsHoliday         bool            `json:"is_holiday"`
	HolidayName       string          `json:"holiday_name,omitempty"`
	ExcelLocked       bool            `json:"excel_locked"`
	Editable          bool            `json:"editable"`
	PenaltyRuleActive bool            `json:"penalty_rule_active"`
	AbsentThreshold   int             `json:"absent_threshold,omitempty"`
	Summary           SessionSummary  `json:"summary"`
	Entries           []EntryResponse `json:"entries"`
}

type MarkAllResponse struct {
	Applied         int  `json:"applied"`
	Skipped         int  `json:"skipped"`
	LoadingComplete bool `json:"loading_complete"`
}

type RevertPenaltyResponse struct {
	EmployeeID string `json:"employee_id"`
	Day        string `json:"day"`
	Ignored    bool   `json:"ignored"`
}

type SaveResponse struct {
	SavedCount int `json:"saved_count"`
}
