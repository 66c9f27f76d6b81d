package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
	penaltysvc "github.com/Sniperthink-v1/hrms-attendance-go/internal/service/penalty"
	"golang.org/x/sync/singleflight"
)

// Loader runs the two-phase progressive load: a bounded first page so the
// screen is usable after one round-trip, then the remainder in the
// background, merged without touching entries the user may already be
// editing.
type Loader struct {
	backend         marking.Backend
	initialPageSize int
	defaultDelay    time.Duration

	// Collapses concurrent remainder fetches for the same (date, filter).
	group singleflight.Group
}

func New(backend marking.Backend, initialPageSize int, defaultDelay time.Duration) *Loader {
	if initialPageSize <= 0 {
		initialPageSize = 500
	}
	if defaultDelay <= 0 {
		defaultDelay = 100 * time.Millisecond
	}
	return &Loader{
		backend:         backend,
		initialPageSize: initialPageSize,
		defaultDelay:    defaultDelay,
	}
}

// LoadInitial fetches and materializes the first page. The session is
// interactive once this returns; the remainder, if any, is scheduled in the
// background. Returns the phase-1 result so the caller can read its
// date-level metadata.
func (l *Loader) LoadInitial(ctx context.Context, sess *marking.Session, eng *penaltysvc.Engine) (marking.EligibleEmployeesResult, error) {
	date := sess.Date.Format("2006-01-02")

	res, err := l.backend.FetchEligibleEmployees(ctx, date, marking.FetchInitial, 0, l.initialPageSize)
	if err != nil {
		return marking.EligibleEmployeesResult{}, fmt.Errorf("%w: %v", marking.ErrInitialLoadFailed, err)
	}
	sess.SetMeta(res.DayName, res.TotalCount)

	// Weekly context is fetched once per date and cached on the session; the
	// background merge reuses it. Losing it degrades to "no weekly context".
	weekly, err := l.backend.FetchWeeklyAttendance(ctx, date)
	if err != nil {
		slog.Warn("weekly attendance fetch failed, continuing without weekly context",
			"date", date, "error", err)
	} else {
		sess.SetWeekly(weekly)
	}

	l.materialize(sess, eng, res.Employees)

	if res.HasMore {
		sess.SetLoadState(marking.LoadStatePartial)
		l.scheduleRemainder(sess, eng, res.RecommendedDelay)
	} else {
		sess.SetLoadState(marking.LoadStateComplete)
	}
	return res, nil
}

// materialize derives entries for a batch and merges them into the session.
// Employees already present are skipped by the session, so re-derivation can
// never clobber an edited phase-1 entry.
func (l *Loader) materialize(sess *marking.Session, eng *penaltysvc.Engine, emps []employee.Employee) int {
	ents := make([]*entry.Entry, 0, len(emps))
	offDays := make(map[string]employee.OffDays, len(emps))
	for _, emp := range emps {
		e := entry.New(emp, sess.Date)
		if wc, ok := sess.Weekly(emp.ID); ok {
			e.ApplyWeeklyContext(wc.Attendance, wc.AutoMarkedReasons, wc.PenaltyIgnoredDays)
		}
		eng.Annotate(e, emp.OffDays)
		ents = append(ents, e)
		offDays[emp.ID] = emp.OffDays
	}
	return sess.AppendEntries(ents, offDays)
}

// scheduleRemainder arms the background continuation as an explicit task with
// a cancellation token tied to the session, not a bare timer.
func (l *Loader) scheduleRemainder(sess *marking.Session, eng *penaltysvc.Engine, delay time.Duration) {
	if delay <= 0 {
		delay = l.defaultDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	sess.SetPhase2Cancel(cancel)

	go func() {
		defer cancel()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		l.LoadRemainder(ctx, sess, eng)
	}()
}

// LoadRemainder fetches everything past the loaded count and appends it. A
// failed or superseded fetch never leaves the session stuck in "loading
// more": partial data is adopted as final.
func (l *Loader) LoadRemainder(ctx context.Context, sess *marking.Session, eng *penaltysvc.Engine) {
	date := sess.Date.Format("2006-01-02")
	_, _, offset := sess.Meta()

	v, err, _ := l.group.Do(sess.Key(), func() (any, error) {
		return l.backend.FetchEligibleEmployees(ctx, date, marking.FetchRemaining, offset, 0)
	})
	if sess.Closed() || ctx.Err() != nil {
		// A newer selection owns the screen now; drop the stale result.
		return
	}
	if err != nil {
		slog.Warn("background employee fetch failed, treating partial data as final",
			"date", date, "offset", offset, "error", err)
		sess.SetLoadState(marking.LoadStateComplete)
		return
	}

	res := v.(marking.EligibleEmployeesResult)
	appended := l.materialize(sess, eng, res.Employees)
	sess.SetLoadState(marking.LoadStateComplete)
	slog.Info("background load complete", "date", date, "appended", appended)
}
