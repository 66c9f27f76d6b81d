package employee

import "time"

// Employee is one eligible employee for a selected marking date, as returned
// by the upstream HRMS. It is immutable for the duration of a screen session.
type Employee struct {
	ID            string
	Name          string
	Department    string
	ShiftStart    string // HH:MM
	ShiftEnd      string // HH:MM
	OffDays       OffDays
	DefaultStatus string
	Current       *AttendanceSnapshot
}

// OffDays holds the seven per-weekday off flags, Monday first.
type OffDays [7]bool

// On reports whether the employee is off on the given calendar weekday.
func (o OffDays) On(d time.Weekday) bool {
	return o[mondayFirstIndex(d)]
}

// Any reports whether the employee has at least one configured off day.
func (o OffDays) Any() bool {
	for _, off := range o {
		if off {
			return true
		}
	}
	return false
}

// First returns the Monday-first index of the first configured off day.
func (o OffDays) First() (int, bool) {
	for i, off := range o {
		if off {
			return i, true
		}
	}
	return 0, false
}

func mondayFirstIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// AttendanceSnapshot is previously persisted attendance state for the
// selected date. When present, its values are adopted verbatim and never
// recomputed.
type AttendanceSnapshot struct {
	Status      string
	ClockIn     string
	ClockOut    string
	OTHours     float64
	LateMinutes int
}
