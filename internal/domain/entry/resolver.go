package entry

import (
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
)

// Source identifies which rule in the derivation priority produced the
// initial status.
type Source string

const (
	// SourceSaved: adopted from previously persisted attendance.
	SourceSaved Source = "saved"
	// SourceDefault: adopted from the backend's default_status hint.
	SourceDefault Source = "default"
	// SourceOffDay: the selected date is a configured off day.
	SourceOffDay Source = "off_day"
	// SourceNone: no rule matched; the entry starts unmarked.
	SourceNone Source = "none"
)

// Derivation is the resolved initial state for an entry.
type Derivation struct {
	Status   Status
	Source   Source
	Snapshot *employee.AttendanceSnapshot
}

// ResolveInitialStatus applies the status derivation priority:
// saved attendance, then default_status hint, then off-day, then unmarked.
func ResolveInitialStatus(emp employee.Employee, date time.Time) Derivation {
	if emp.Current != nil {
		if status, ok := ParseSavedStatus(emp.Current.Status); ok {
			return Derivation{Status: status, Source: SourceSaved, Snapshot: emp.Current}
		}
	}
	if status, ok := ParseSavedStatus(emp.DefaultStatus); ok {
		return Derivation{Status: status, Source: SourceDefault}
	}
	if emp.OffDays.On(date.Weekday()) {
		return Derivation{Status: StatusOff, Source: SourceOffDay}
	}
	return Derivation{Status: StatusUnmarked, Source: SourceNone}
}
