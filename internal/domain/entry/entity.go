package entry

import (
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
)

// Status is the marking state of an attendance entry.
type Status string

const (
	StatusUnmarked Status = "unmarked"
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusOff      Status = "off"
)

// Valid reports whether s is one of the four marking states.
func (s Status) Valid() bool {
	switch s {
	case StatusUnmarked, StatusPresent, StatusAbsent, StatusOff:
		return true
	}
	return false
}

// ParseSavedStatus maps a backend status string to a Status. Only
// present/absent/off are recognized; anything else is not adopted.
func ParseSavedStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPresent, StatusAbsent, StatusOff:
		return Status(raw), true
	}
	return StatusUnmarked, false
}

// Weekday is the short weekday code used in weekly attendance maps.
type Weekday string

const (
	Monday    Weekday = "M"
	Tuesday   Weekday = "Tu"
	Wednesday Weekday = "W"
	Thursday  Weekday = "Th"
	Friday    Weekday = "F"
	Saturday  Weekday = "Sa"
	Sunday    Weekday = "Su"
)

// WeekOrder is the fixed Monday-first ordering used for penalty-day priority.
var WeekOrder = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Workdays are the days counted toward the weekly absence threshold.
var Workdays = [6]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ParseWeekday maps a weekday code string to a Weekday.
func ParseWeekday(raw string) (Weekday, bool) {
	switch Weekday(raw) {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return Weekday(raw), true
	}
	return "", false
}

// WeekdayFromTime converts a calendar weekday to its code.
func WeekdayFromTime(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// DayMark is the per-day value in a weekly attendance map.
type DayMark string

const (
	DayPresent DayMark = "present"
	DayAbsent  DayMark = "absent"
	DayUnknown DayMark = "unknown"
)

// Entry is the mutable unit of work: one per employee per selected date.
// All mutation goes through its methods so a single edit is atomic.
type Entry struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Date         time.Time

	Status      Status
	ClockIn     string
	ClockOut    string
	OTHours     float64
	LateMinutes int

	// HasOffDay records whether the selected date falls on a configured off
	// day for the employee. It may be overridden once weekly context is known.
	HasOffDay bool

	// Locked makes the entry read-only (declared holiday or externally
	// uploaded attendance source). Writes are silently ignored.
	Locked bool

	WeeklyAttendance   map[Weekday]DayMark
	AutoMarkedReasons  map[Weekday]string
	PenaltyIgnoredDays map[Weekday]bool
	WeeklyPenaltyDays  int

	shiftStart string
	shiftEnd   string

	prevClockIn  string
	prevClockOut string
	prevOTHours  float64
	prevLate     int
	hasPrev      bool
}

// New materializes an entry for one employee on the selected date, applying
// the initial-status derivation priority.
func New(emp employee.Employee, date time.Time) *Entry {
	e := &Entry{
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		Department:         emp.Department,
		Date:               date,
		ClockIn:            emp.ShiftStart,
		ClockOut:           emp.ShiftEnd,
		HasOffDay:          emp.OffDays.On(date.Weekday()),
		WeeklyAttendance:   make(map[Weekday]DayMark),
		AutoMarkedReasons:  make(map[Weekday]string),
		PenaltyIgnoredDays: make(map[Weekday]bool),
		shiftStart:         emp.ShiftStart,
		shiftEnd:           emp.ShiftEnd,
	}
	for _, day := range WeekOrder {
		e.WeeklyAttendance[day] = DayUnknown
	}

	d := ResolveInitialStatus(emp, date)
	e.Status = d.Status
	if d.Source == SourceSaved && d.Snapshot != nil {
		// Previously persisted truth: adopt verbatim, never recompute.
		e.OTHours = d.Snapshot.OTHours
		e.LateMinutes = d.Snapshot.LateMinutes
		if d.Snapshot.ClockIn != "" {
			e.ClockIn = d.Snapshot.ClockIn
		}
		if d.Snapshot.ClockOut != "" {
			e.ClockOut = d.Snapshot.ClockOut
		}
	}
	return e
}

// SetStatus applies the marking state machine. Locked entries and invalid
// targets are silent no-ops. Off-day employees cannot be absent or unmarked;
// those targets upgrade to off.
func (e *Entry) SetStatus(target Status) {
	if e.Locked || !target.Valid() {
		return
	}
	if e.HasOffDay && (target == StatusAbsent || target == StatusUnmarked) {
		target = StatusOff
	}
	if target == e.Status {
		return
	}

	if target == StatusPresent {
		if e.hasPrev {
			e.ClockIn = e.prevClockIn
			e.ClockOut = e.prevClockOut
			e.OTHours = e.prevOTHours
			e.LateMinutes = e.prevLate
		}
	} else {
		if e.Status == StatusPresent {
			e.prevClockIn = e.ClockIn
			e.prevClockOut = e.ClockOut
			e.prevOTHours = e.OTHours
			e.prevLate = e.LateMinutes
			e.hasPrev = true
		}
		e.OTHours = 0
		e.LateMinutes = 0
		// Cosmetic reset to the shift boundaries.
		e.ClockIn = e.shiftStart
		e.ClockOut = e.shiftEnd
	}
	e.Status = target
}

// SetClockTimes edits the clock fields and recomputes OT/late synchronously.
// Only meaningful while present; locked entries ignore the write. Empty
// arguments leave the corresponding field untouched.
func (e *Entry) SetClockTimes(clockIn, clockOut string) {
	if e.Locked || e.Status != StatusPresent {
		return
	}
	if clockIn != "" {
		e.ClockIn = clockIn
	}
	if clockOut != "" {
		e.ClockOut = clockOut
	}
	e.OTHours, e.LateMinutes = ComputeOvertimeLate(e.ClockIn, e.ClockOut, e.shiftStart, e.shiftEnd)
}

// ApplyWeeklyContext overlays the weekly attendance maps fetched for the
// containing week.
func (e *Entry) ApplyWeeklyContext(week map[Weekday]DayMark, reasons map[Weekday]string, ignored map[Weekday]bool) {
	for day, mark := range week {
		e.WeeklyAttendance[day] = mark
	}
	for day, reason := range reasons {
		e.AutoMarkedReasons[day] = reason
	}
	for day, ig := range ignored {
		e.PenaltyIgnoredDays[day] = ig
	}
}

// WeeklyCounts returns the week's present/absent day totals for the save
// payload. A penalty day the user explicitly reverted is treated as not
// absent, while the raw map value is preserved for audit.
func (e *Entry) WeeklyCounts() (present, absent int) {
	for _, day := range WeekOrder {
		switch e.WeeklyAttendance[day] {
		case DayPresent:
			present++
		case DayAbsent:
			if e.PenaltyIgnoredDays[day] && e.AutoMarkedReasons[day] != "" {
				continue
			}
			absent++
		}
	}
	return present, absent
}

// ShiftStart returns the employee's configured shift start.
func (e *Entry) ShiftStart() string { return e.shiftStart }

// ShiftEnd returns the employee's configured shift end.
func (e *Entry) ShiftEnd() string { return e.shiftEnd }

// Clone returns a copy safe to hand to presentation code while the original
// keeps being mutated.
func (e *Entry) Clone() Entry {
	c := *e
	c.WeeklyAttendance = make(map[Weekday]DayMark, len(e.WeeklyAttendance))
	for k, v := range e.WeeklyAttendance {
		c.WeeklyAttendance[k] = v
	}
	c.AutoMarkedReasons = make(map[Weekday]string, len(e.AutoMarkedReasons))
	for k, v := range e.AutoMarkedReasons {
		c.AutoMarkedReasons[k] = v
	}
	c.PenaltyIgnoredDays = make(map[Weekday]bool, len(e.PenaltyIgnoredDays))
	for k, v := range e.PenaltyIgnoredDays {
		c.PenaltyIgnoredDays[k] = v
	}
	return c
}
