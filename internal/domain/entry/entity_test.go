package entry

import (
	"testing"
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC) // a Wednesday

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:         "emp-001",
		Name:       "Asha Rao",
		Department: "Operations",
		ShiftStart: "09:00",
		ShiftEnd:   "18:00",
	}
}

func TestResolveInitialStatus_Priority(t *testing.T) {
	emp := testEmployee()

	// Saved attendance wins over everything.
	emp.Current = &employee.AttendanceSnapshot{Status: "absent"}
	emp.DefaultStatus = "present"
	d := ResolveInitialStatus(emp, testDate)
	assert.Equal(t, StatusAbsent, d.Status)
	assert.Equal(t, SourceSaved, d.Source)

	// Unrecognized saved status falls through to the default hint.
	emp.Current = &employee.AttendanceSnapshot{Status: "pending"}
	d = ResolveInitialStatus(emp, testDate)
	assert.Equal(t, StatusPresent, d.Status)
	assert.Equal(t, SourceDefault, d.Source)

	// No saved/default, off day on the selected date.
	emp.Current = nil
	emp.DefaultStatus = ""
	emp.OffDays[2] = true // Wednesday, Monday-first
	d = ResolveInitialStatus(emp, testDate)
	assert.Equal(t, StatusOff, d.Status)
	assert.Equal(t, SourceOffDay, d.Source)

	// Nothing matches.
	emp.OffDays[2] = false
	d = ResolveInitialStatus(emp, testDate)
	assert.Equal(t, StatusUnmarked, d.Status)
	assert.Equal(t, SourceNone, d.Source)
}

func TestNew_AdoptsSavedValuesVerbatim(t *testing.T) {
	emp := testEmployee()
	emp.Current = &employee.AttendanceSnapshot{
		Status:      "present",
		ClockIn:     "09:30",
		ClockOut:    "19:00",
		OTHours:     1.0,
		LateMinutes: 30,
	}

	e := New(emp, testDate)
	assert.Equal(t, StatusPresent, e.Status)
	assert.Equal(t, "09:30", e.ClockIn)
	assert.Equal(t, "19:00", e.ClockOut)
	assert.Equal(t, 1.0, e.OTHours)
	assert.Equal(t, 30, e.LateMinutes)
}

func TestNew_DefaultsToShiftTimes(t *testing.T) {
	e := New(testEmployee(), testDate)
	assert.Equal(t, StatusUnmarked, e.Status)
	assert.Equal(t, "09:00", e.ClockIn)
	assert.Equal(t, "18:00", e.ClockOut)
	for _, day := range WeekOrder {
		assert.Equal(t, DayUnknown, e.WeeklyAttendance[day])
	}
}

func TestSetStatus_RoundTripRestoresPresentState(t *testing.T) {
	e := New(testEmployee(), testDate)
	e.SetStatus(StatusPresent)
	e.SetClockTimes("09:15", "19:30")
	require.Equal(t, 15, e.LateMinutes)
	require.Equal(t, 1.5, e.OTHours)

	e.SetStatus(StatusAbsent)
	assert.Equal(t, StatusAbsent, e.Status)
	assert.Zero(t, e.OTHours)
	assert.Zero(t, e.LateMinutes)
	assert.Equal(t, "09:00", e.ClockIn)
	assert.Equal(t, "18:00", e.ClockOut)

	e.SetStatus(StatusPresent)
	assert.Equal(t, "09:15", e.ClockIn)
	assert.Equal(t, "19:30", e.ClockOut)
	assert.Equal(t, 1.5, e.OTHours)
	assert.Equal(t, 15, e.LateMinutes)
}

func TestSetStatus_OffDayUpgradesAbsentAndUnmarked(t *testing.T) {
	emp := testEmployee()
	emp.OffDays[2] = true
	e := New(emp, testDate)
	require.Equal(t, StatusOff, e.Status)

	e.SetStatus(StatusAbsent)
	assert.Equal(t, StatusOff, e.Status)

	e.SetStatus(StatusUnmarked)
	assert.Equal(t, StatusOff, e.Status)

	// Present is allowed on an off day (bonus/extra-pay case).
	e.SetStatus(StatusPresent)
	assert.Equal(t, StatusPresent, e.Status)
}

func TestSetStatus_OffZeroesComputedFields(t *testing.T) {
	e := New(testEmployee(), testDate)
	e.SetStatus(StatusPresent)
	e.SetClockTimes("10:00", "20:00")
	require.NotZero(t, e.LateMinutes)

	e.SetStatus(StatusOff)
	assert.Zero(t, e.OTHours)
	assert.Zero(t, e.LateMinutes)
}

func TestLockedEntryIgnoresWrites(t *testing.T) {
	e := New(testEmployee(), testDate)
	e.SetStatus(StatusPresent)
	e.Locked = true

	e.SetStatus(StatusAbsent)
	assert.Equal(t, StatusPresent, e.Status)

	e.SetClockTimes("10:00", "20:00")
	assert.Equal(t, "09:00", e.ClockIn)
	assert.Zero(t, e.LateMinutes)
}

func TestSetClockTimes_OnlyWhilePresent(t *testing.T) {
	e := New(testEmployee(), testDate)
	e.SetClockTimes("10:00", "20:00")
	assert.Equal(t, "09:00", e.ClockIn)

	e.SetStatus(StatusPresent)
	e.SetClockTimes("10:00", "")
	assert.Equal(t, "10:00", e.ClockIn)
	assert.Equal(t, "18:00", e.ClockOut)
	assert.Equal(t, 60, e.LateMinutes)
}

func TestWeeklyCounts_IgnoredPenaltyDayNotAbsent(t *testing.T) {
	e := New(testEmployee(), testDate)
	e.ApplyWeeklyContext(
		map[Weekday]DayMark{Monday: DayPresent, Tuesday: DayAbsent, Sunday: DayAbsent},
		map[Weekday]string{Sunday: "Penalty day - Absent more than threshold"},
		nil,
	)

	present, absent := e.WeeklyCounts()
	assert.Equal(t, 1, present)
	assert.Equal(t, 2, absent)

	// Reverting the auto-marked day removes it from the absent total while
	// the underlying map still records it.
	e.PenaltyIgnoredDays[Sunday] = true
	present, absent = e.WeeklyCounts()
	assert.Equal(t, 1, present)
	assert.Equal(t, 1, absent)
	assert.Equal(t, DayAbsent, e.WeeklyAttendance[Sunday])
}

func TestClone_IsIndependent(t *testing.T) {
	e := New(testEmployee(), testDate)
	e.WeeklyAttendance[Monday] = DayPresent

	c := e.Clone()
	c.WeeklyAttendance[Monday] = DayAbsent
	c.Status = StatusPresent

	assert.Equal(t, DayPresent, e.WeeklyAttendance[Monday])
	assert.Equal(t, StatusUnmarked, e.Status)
}
