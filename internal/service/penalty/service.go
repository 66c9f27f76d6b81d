package penalty

import (
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/penalty"
)

// Engine decides weekly absence penalties. It is stateless apart from the
// session config, so one engine is shared across all employees of a session.
type Engine struct {
	cfg penalty.Config
}

func NewEngine(cfg penalty.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the session's penalty rule.
func (e *Engine) Config() penalty.Config {
	return e.cfg
}

// Evaluation is the outcome of applying the penalty rule to one week.
type Evaluation struct {
	AbsentCount int
	PenaltyDays int
	Day         entry.Weekday
}

// Evaluate applies the weekly penalty rule: count absent workdays (Mon-Sat);
// at or over the threshold, the employee's first configured off day in the
// fixed M..Su order becomes the penalty day. At most one penalty day per week.
// An employee with no configured off day never receives one, and a day the
// employee was manually marked present on (off-day bonus) is never
// overwritten.
func (e *Engine) Evaluate(week map[entry.Weekday]entry.DayMark, offDays employee.OffDays) Evaluation {
	var ev Evaluation
	for _, day := range entry.Workdays {
		if week[day] == entry.DayAbsent {
			ev.AbsentCount++
		}
	}
	if !e.cfg.Enabled() || ev.AbsentCount < e.cfg.AbsentThreshold {
		return ev
	}

	idx, ok := offDays.First()
	if !ok {
		return ev
	}
	day := entry.WeekOrder[idx]
	if week[day] == entry.DayPresent {
		return ev
	}

	ev.PenaltyDays = 1
	ev.Day = day
	return ev
}

// Annotate runs Evaluate against an entry's weekly map and records the
// auto-mark on the entry. The penalty overrides whatever the day held before.
func (e *Engine) Annotate(ent *entry.Entry, offDays employee.OffDays) {
	ev := e.Evaluate(ent.WeeklyAttendance, offDays)
	ent.WeeklyPenaltyDays = ev.PenaltyDays
	if ev.PenaltyDays == 0 {
		return
	}
	ent.WeeklyAttendance[ev.Day] = entry.DayAbsent
	ent.AutoMarkedReasons[ev.Day] = penalty.ReasonPenaltyDay
}
