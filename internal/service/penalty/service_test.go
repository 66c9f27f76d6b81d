package penalty

import (
	"testing"
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/penalty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekWithAbsences(days ...entry.Weekday) map[entry.Weekday]entry.DayMark {
	week := make(map[entry.Weekday]entry.DayMark)
	for _, day := range entry.WeekOrder {
		week[day] = entry.DayUnknown
	}
	for _, day := range days {
		week[day] = entry.DayAbsent
	}
	return week
}

func sundayOff() employee.OffDays {
	var off employee.OffDays
	off[6] = true
	return off
}

func TestEvaluate_ThresholdMet(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 3})
	week := weekWithAbsences(entry.Tuesday, entry.Thursday, entry.Friday)

	ev := eng.Evaluate(week, sundayOff())
	assert.Equal(t, 3, ev.AbsentCount)
	assert.Equal(t, 1, ev.PenaltyDays)
	assert.Equal(t, entry.Sunday, ev.Day)
}

func TestEvaluate_BelowThreshold(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 3})
	week := weekWithAbsences(entry.Tuesday, entry.Thursday)

	ev := eng.Evaluate(week, sundayOff())
	assert.Equal(t, 2, ev.AbsentCount)
	assert.Zero(t, ev.PenaltyDays)
}

func TestEvaluate_NoOffDayNoPenalty(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 3})
	week := weekWithAbsences(entry.Tuesday, entry.Thursday, entry.Friday)

	ev := eng.Evaluate(week, employee.OffDays{})
	assert.Equal(t, 3, ev.AbsentCount)
	assert.Zero(t, ev.PenaltyDays)
}

func TestEvaluate_SundayAbsenceNotCounted(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 2})
	week := weekWithAbsences(entry.Sunday, entry.Monday)

	ev := eng.Evaluate(week, sundayOff())
	assert.Equal(t, 1, ev.AbsentCount)
	assert.Zero(t, ev.PenaltyDays)
}

func TestEvaluate_OffDayBonusNotOverwritten(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 3})
	week := weekWithAbsences(entry.Tuesday, entry.Thursday, entry.Friday)
	week[entry.Sunday] = entry.DayPresent // worked the off day for extra pay

	ev := eng.Evaluate(week, sundayOff())
	assert.Zero(t, ev.PenaltyDays)
	assert.Equal(t, entry.DayPresent, week[entry.Sunday])
}

func TestEvaluate_FirstOffDayInFixedOrder(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 2})
	week := weekWithAbsences(entry.Monday, entry.Tuesday)

	var off employee.OffDays
	off[2] = true // Wednesday
	off[6] = true // Sunday

	ev := eng.Evaluate(week, off)
	assert.Equal(t, 1, ev.PenaltyDays)
	assert.Equal(t, entry.Wednesday, ev.Day)
}

func TestEvaluate_DisabledConfig(t *testing.T) {
	for _, threshold := range []int{0, 1, 8, -3} {
		eng := NewEngine(penalty.Sanitize(threshold))
		week := weekWithAbsences(entry.Monday, entry.Tuesday, entry.Wednesday,
			entry.Thursday, entry.Friday, entry.Saturday)

		ev := eng.Evaluate(week, sundayOff())
		assert.Zerof(t, ev.PenaltyDays, "threshold %d should disable the rule", threshold)
	}
}

func TestAnnotate_MarksPenaltyDay(t *testing.T) {
	eng := NewEngine(penalty.Config{AbsentThreshold: 3})

	emp := employee.Employee{
		ID: "emp-007", Name: "Dev Kumar",
		ShiftStart: "09:00", ShiftEnd: "18:00",
		OffDays: sundayOff(),
	}
	date := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	ent := entry.New(emp, date)
	ent.ApplyWeeklyContext(weekWithAbsences(entry.Tuesday, entry.Thursday, entry.Friday), nil, nil)

	eng.Annotate(ent, emp.OffDays)
	require.Equal(t, 1, ent.WeeklyPenaltyDays)
	assert.Equal(t, entry.DayAbsent, ent.WeeklyAttendance[entry.Sunday])
	assert.Equal(t, penalty.ReasonPenaltyDay, ent.AutoMarkedReasons[entry.Sunday])
}

func TestSanitize(t *testing.T) {
	assert.True(t, penalty.Sanitize(2).Enabled())
	assert.True(t, penalty.Sanitize(7).Enabled())
	assert.False(t, penalty.Sanitize(1).Enabled())
	assert.False(t, penalty.Sanitize(8).Enabled())
	assert.False(t, penalty.Sanitize(0).Enabled())
}
