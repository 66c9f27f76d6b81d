package marking

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/penalty"
)

// LoadState tracks progressive loading for a session.
type LoadState string

const (
	// LoadStateLoading: initial fetch not finished, nothing to show yet.
	LoadStateLoading LoadState = "loading"
	// LoadStatePartial: first page materialized, remainder pending.
	LoadStatePartial LoadState = "partial"
	// LoadStateComplete: all records loaded, or partial data adopted as final.
	LoadStateComplete LoadState = "complete"
)

// HolidayInfo describes a declared holiday locking the selected date.
type HolidayInfo struct {
	Name        string
	Description string
	Type        string
}

// WeeklyContext is one employee's slice of the weekly attendance fetch.
type WeeklyContext struct {
	Attendance         map[entry.Weekday]entry.DayMark
	AutoMarkedReasons  map[entry.Weekday]string
	PenaltyIgnoredDays map[entry.Weekday]bool
}

// Session is the owned, mutable entry store for one marking screen: one
// selected date plus filter. All access goes through its methods under a
// single mutex, so each edit is atomic with respect to a single entry and
// readers never observe partial updates.
type Session struct {
	ID         string
	Date       time.Time
	Department string
	Search     string

	mu          sync.Mutex
	dayName     string
	entries     map[string]*entry.Entry
	order       []string
	offDays     map[string]employee.OffDays
	weekly      map[string]WeeklyContext
	departments map[string]struct{}
	totalCount  int
	loadState   LoadState
	holiday     *HolidayInfo
	excelLocked bool
	penaltyCfg  penalty.Config

	phase2Cancel context.CancelFunc
	closed       bool
}

func NewSession(id string, date time.Time, department, search string, cfg penalty.Config) *Session {
	return &Session{
		ID:          id,
		Date:        date,
		Department:  department,
		Search:      search,
		entries:     make(map[string]*entry.Entry),
		offDays:     make(map[string]employee.OffDays),
		weekly:      make(map[string]WeeklyContext),
		departments: make(map[string]struct{}),
		loadState:   LoadStateLoading,
		penaltyCfg:  cfg,
	}
}

// Key identifies the (date, filter) combination a session serves.
func (s *Session) Key() string {
	return s.Date.Format("2006-01-02") + "|" + s.Department + "|" + s.Search
}

// SessionKey builds the same key from raw parts, for store lookups.
func SessionKey(date time.Time, department, search string) string {
	return date.Format("2006-01-02") + "|" + department + "|" + search
}

// SetLocks records the date-level locks. Already materialized entries are
// re-flagged so the whole screen becomes read-only consistently.
func (s *Session) SetLocks(holiday *HolidayInfo, excelLocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holiday = holiday
	s.excelLocked = excelLocked
	locked := holiday != nil || excelLocked
	for _, e := range s.entries {
		e.Locked = locked
	}
}

// Locks returns the holiday info (nil when none) and the excel lock flag.
func (s *Session) Locks() (*HolidayInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holiday, s.excelLocked
}

// Locked reports whether the whole date is read-only.
func (s *Session) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holiday != nil || s.excelLocked
}

// PenaltyConfig returns the session's immutable penalty rule.
func (s *Session) PenaltyConfig() penalty.Config {
	return s.penaltyCfg
}

// SetWeekly stores the weekly attendance context fetched once per date. The
// phase-2 merge reuses it instead of refetching.
func (s *Session) SetWeekly(weekly map[string]WeeklyContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, wc := range weekly {
		s.weekly[id] = wc
	}
}

// Weekly returns the cached weekly context for one employee.
func (s *Session) Weekly(employeeID string) (WeeklyContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wc, ok := s.weekly[employeeID]
	return wc, ok
}

// AppendEntries merges a batch into the session, appending only employees not
// seen before. Existing entries are left untouched so in-flight user edits
// survive the merge. Returns the number actually appended.
func (s *Session) AppendEntries(ents []*entry.Entry, offDays map[string]employee.OffDays) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	locked := s.holiday != nil || s.excelLocked
	appended := 0
	for _, e := range ents {
		if _, exists := s.entries[e.EmployeeID]; exists {
			continue
		}
		e.Locked = locked
		s.entries[e.EmployeeID] = e
		s.order = append(s.order, e.EmployeeID)
		if e.Department != "" {
			s.departments[e.Department] = struct{}{}
		}
		appended++
	}
	for id, off := range offDays {
		s.offDays[id] = off
	}
	return appended
}

// OffDays returns the cached off-day configuration for one employee.
func (s *Session) OffDays(employeeID string) employee.OffDays {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offDays[employeeID]
}

// SetMeta records phase-1 metadata from the eligible-employees response.
func (s *Session) SetMeta(dayName string, totalCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayName = dayName
	s.totalCount = totalCount
}

// Meta returns the day name, declared total and loaded count.
func (s *Session) Meta() (dayName string, totalCount, loadedCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dayName, s.totalCount, len(s.order)
}

// Departments lists the departments seen across all loaded entries, sorted.
func (s *Session) Departments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.departments))
	for d := range s.departments {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// SetLoadState transitions the progressive-loading state.
func (s *Session) SetLoadState(state LoadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadState = state
}

// LoadState returns the current progressive-loading state.
func (s *Session) LoadState() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadState
}

// Complete reports whether loading has finished.
func (s *Session) Complete() bool {
	return s.LoadState() == LoadStateComplete
}

// Update runs fn against the live entry under the session lock. Returns false
// when the employee is not loaded.
func (s *Session) Update(employeeID string, fn func(*entry.Entry)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[employeeID]
	if !ok {
		return false
	}
	fn(e)
	return true
}

// Entry returns a copy of one entry.
func (s *Session) Entry(employeeID string) (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[employeeID]
	if !ok {
		return entry.Entry{}, false
	}
	return e.Clone(), true
}

// Entries returns copies of all loaded entries in load order.
func (s *Session) Entries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].Clone())
	}
	return out
}

// FilteredEntries returns copies of the entries matching the session's
// department filter and search, in load order.
func (s *Session) FilteredEntries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, 0, len(s.order))
	for _, id := range s.order {
		if e := s.entries[id]; s.matches(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// ForEachFiltered runs fn against the live entries matching the session's
// department filter and search, under the lock.
func (s *Session) ForEachFiltered(fn func(*entry.Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		e := s.entries[id]
		if s.matches(e) {
			fn(e)
		}
	}
}

func (s *Session) matches(e *entry.Entry) bool {
	if s.Department != "" && e.Department != s.Department {
		return false
	}
	if s.Search != "" && !strings.Contains(strings.ToLower(e.EmployeeName), strings.ToLower(s.Search)) {
		return false
	}
	return true
}

// SetPhase2Cancel stores the cancellation hook for the scheduled background
// fetch so superseding or closing the session drops interest in its result.
func (s *Session) SetPhase2Cancel(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		cancel()
		return
	}
	s.phase2Cancel = cancel
}

// Close cancels any in-flight background work and marks the session dead.
// Stale phase-2 results arriving afterwards are dropped, not merged.
func (s *Session) Close() {
	s.mu.Lock()
	cancel := s.phase2Cancel
	s.phase2Cancel = nil
	s.closed = true
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Closed reports whether the session has been superseded or deleted.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
