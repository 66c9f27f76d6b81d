package marking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/penalty"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/validator"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/service/loader"
	penaltysvc "github.com/Sniperthink-v1/hrms-attendance-go/internal/service/penalty"
	"github.com/google/uuid"
)

type MarkingServiceImpl struct {
	backend           marking.Backend
	loader            *loader.Loader
	fallbackThreshold int

	mu       sync.RWMutex
	sessions map[string]*marking.Session // by session ID
	byKey    map[string]string           // (date, filter) key -> session ID
}

func NewMarkingService(backend marking.Backend, l *loader.Loader, fallbackThreshold int) marking.MarkingService {
	return &MarkingServiceImpl{
		backend:           backend,
		loader:            l,
		fallbackThreshold: fallbackThreshold,
		sessions:          make(map[string]*marking.Session),
		byKey:             make(map[string]string),
	}
}

// CreateSession implements marking.MarkingService.
func (m *MarkingServiceImpl) CreateSession(ctx context.Context, req marking.CreateSessionRequest) (marking.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return marking.SessionResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	cfg := m.loadPenaltyConfig(ctx)
	sess := marking.NewSession(uuid.NewString(), date, req.Department, req.Search, cfg)
	m.adopt(sess)

	eng := penaltysvc.NewEngine(cfg)
	res, err := m.loader.LoadInitial(ctx, sess, eng)
	if err != nil {
		m.drop(sess.ID)
		return marking.SessionResponse{}, err
	}

	holiday, excelLocked := m.checkDateLocks(ctx, req.Date, res.HasExcelAttendance)
	sess.SetLocks(holiday, excelLocked)

	return m.sessionResponse(sess), nil
}

// adopt registers a session, superseding (and cancelling) any previous
// session for the same (date, filter) combination.
func (m *MarkingServiceImpl) adopt(sess *marking.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if oldID, ok := m.byKey[sess.Key()]; ok {
		if old := m.sessions[oldID]; old != nil {
			old.Close()
		}
		delete(m.sessions, oldID)
	}
	m.sessions[sess.ID] = sess
	m.byKey[sess.Key()] = sess.ID
}

func (m *MarkingServiceImpl) drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	sess.Close()
	delete(m.sessions, sessionID)
	if m.byKey[sess.Key()] == sessionID {
		delete(m.byKey, sess.Key())
	}
}

func (m *MarkingServiceImpl) session(sessionID string) (*marking.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, marking.ErrSessionNotFound
	}
	return sess, nil
}

// loadPenaltyConfig reads the weekly threshold from the configuration
// collaborator, falling back to the locally configured value, then to
// "rule disabled". Never fails the session.
func (m *MarkingServiceImpl) loadPenaltyConfig(ctx context.Context) penalty.Config {
	threshold, err := m.backend.FetchWeeklyPenaltyConfig(ctx)
	if err != nil {
		slog.Warn("weekly penalty config fetch failed, using fallback threshold",
			"fallback", m.fallbackThreshold, "error", err)
		threshold = m.fallbackThreshold
	}
	cfg := penalty.Sanitize(threshold)
	if !cfg.Enabled() {
		slog.Info("weekly penalty rule disabled", "threshold", threshold)
	}
	return cfg
}

// checkDateLocks resolves the date-level read-only locks: holiday check
// first, then the excel-attendance check as the secondary signal, defaulting
// to editable when both collaborators are unreachable.
func (m *MarkingServiceImpl) checkDateLocks(ctx context.Context, date string, hasExcelHint bool) (*marking.HolidayInfo, bool) {
	holiday, err := m.backend.CheckHoliday(ctx, date)
	if err != nil {
		slog.Warn("holiday check failed, relying on excel attendance check",
			"date", date, "error", err)
		holiday = nil
	}

	excelLocked := hasExcelHint
	if !excelLocked {
		month := date[:len("2006-01")]
		hasExcel, err := m.backend.CheckExcelAttendance(ctx, month)
		if err != nil {
			slog.Warn("excel attendance check failed, treating date as editable",
				"month", month, "error", err)
		} else {
			excelLocked = hasExcel
		}
	}
	return holiday, excelLocked
}

// GetSession implements marking.MarkingService.
func (m *MarkingServiceImpl) GetSession(ctx context.Context, sessionID string) (marking.SessionResponse, error) {
	sess, err := m.session(sessionID)
	if err != nil {
		return marking.SessionResponse{}, err
	}
	return m.sessionResponse(sess), nil
}

// SetStatus implements marking.MarkingService.
func (m *MarkingServiceImpl) SetStatus(ctx context.Context, sessionID, employeeID string, req marking.SetStatusRequest) (marking.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return marking.EntryResponse{}, err
	}
	sess, err := m.session(sessionID)
	if err != nil {
		return marking.EntryResponse{}, err
	}

	if ok := sess.Update(employeeID, func(e *entry.Entry) {
		e.SetStatus(entry.Status(req.Status))
	}); !ok {
		return marking.EntryResponse{}, marking.ErrEntryNotFound
	}

	e, _ := sess.Entry(employeeID)
	return marking.NewEntryResponse(e), nil
}

// SetClockTimes implements marking.MarkingService.
func (m *MarkingServiceImpl) SetClockTimes(ctx context.Context, sessionID, employeeID string, req marking.SetClockRequest) (marking.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return marking.EntryResponse{}, err
	}
	sess, err := m.session(sessionID)
	if err != nil {
		return marking.EntryResponse{}, err
	}

	if ok := sess.Update(employeeID, func(e *entry.Entry) {
		e.SetClockTimes(req.ClockIn, req.ClockOut)
	}); !ok {
		return marking.EntryResponse{}, marking.ErrEntryNotFound
	}

	e, _ := sess.Entry(employeeID)
	return marking.NewEntryResponse(e), nil
}

// MarkAll implements marking.MarkingService. Bulk actions are a no-op until
// background loading finishes, so a partial dataset is never bulk-marked and
// then silently extended with unmarked employees.
func (m *MarkingServiceImpl) MarkAll(ctx context.Context, sessionID string, req marking.MarkAllRequest) (marking.MarkAllResponse, error) {
	if err := req.Validate(); err != nil {
		return marking.MarkAllResponse{}, err
	}
	sess, err := m.session(sessionID)
	if err != nil {
		return marking.MarkAllResponse{}, err
	}

	resp := marking.MarkAllResponse{LoadingComplete: sess.Complete()}
	if !resp.LoadingComplete || sess.Locked() {
		return resp, nil
	}

	target := entry.Status(req.Status)
	sess.ForEachFiltered(func(e *entry.Entry) {
		if e.HasOffDay && e.Status == entry.StatusOff {
			resp.Skipped++
			return
		}
		before := e.Status
		e.SetStatus(target)
		if e.Status != before {
			resp.Applied++
		} else {
			resp.Skipped++
		}
	})
	return resp, nil
}

// RevertPenalty implements marking.MarkingService.
func (m *MarkingServiceImpl) RevertPenalty(ctx context.Context, sessionID, employeeID string, req marking.RevertPenaltyRequest) (marking.RevertPenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return marking.RevertPenaltyResponse{}, err
	}
	sess, err := m.session(sessionID)
	if err != nil {
		return marking.RevertPenaltyResponse{}, err
	}
	day, ok := entry.ParseWeekday(req.Day)
	if !ok {
		return marking.RevertPenaltyResponse{}, marking.ErrInvalidDay
	}

	e, found := sess.Entry(employeeID)
	if !found {
		return marking.RevertPenaltyResponse{}, marking.ErrEntryNotFound
	}
	if e.AutoMarkedReasons[day] == "" {
		return marking.RevertPenaltyResponse{}, marking.ErrNoPenaltyDay
	}

	ignored, err := m.backend.RevertPenaltyDay(ctx, employeeID, sess.Date.Format("2006-01-02"), day)
	if err != nil {
		return marking.RevertPenaltyResponse{}, fmt.Errorf("failed to revert penalty day: %w", err)
	}

	sess.Update(employeeID, func(e *entry.Entry) {
		e.PenaltyIgnoredDays[day] = ignored
	})

	return marking.RevertPenaltyResponse{
		EmployeeID: employeeID,
		Day:        string(day),
		Ignored:    ignored,
	}, nil
}

// Save implements marking.MarkingService. Validation runs locally before the
// backend call: every entry must be marked unless the date is the employee's
// off day.
func (m *MarkingServiceImpl) Save(ctx context.Context, sessionID string) (marking.SaveResponse, error) {
	sess, err := m.session(sessionID)
	if err != nil {
		return marking.SaveResponse{}, err
	}

	date := sess.Date.Format("2006-01-02")
	entries := sess.Entries()

	var unmarked []string
	records := make([]marking.SaveRecord, 0, len(entries))
	for _, e := range entries {
		if e.Status == entry.StatusUnmarked {
			if !sess.OffDays(e.EmployeeID).On(sess.Date.Weekday()) {
				unmarked = append(unmarked, e.EmployeeName)
			}
			continue
		}
		present, absent := e.WeeklyCounts()
		records = append(records, marking.SaveRecord{
			EmployeeID:  e.EmployeeID,
			Date:        date,
			Status:      string(e.Status),
			OTHours:     e.OTHours,
			LateMinutes: e.LateMinutes,
			PresentDays: present,
			AbsentDays:  absent,
		})
	}
	if len(unmarked) > 0 {
		return marking.SaveResponse{}, &marking.UnmarkedEntriesError{Names: unmarked}
	}

	if err := m.backend.SaveAttendance(ctx, records); err != nil {
		return marking.SaveResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return marking.SaveResponse{SavedCount: len(records)}, nil
}

// CloseSession implements marking.MarkingService.
func (m *MarkingServiceImpl) CloseSession(ctx context.Context, sessionID string) error {
	if _, err := m.session(sessionID); err != nil {
		return err
	}
	m.drop(sessionID)
	return nil
}

func (m *MarkingServiceImpl) sessionResponse(sess *marking.Session) marking.SessionResponse {
	dayName, totalCount, loadedCount := sess.Meta()
	holiday, excelLocked := sess.Locks()
	cfg := sess.PenaltyConfig()

	entries := sess.FilteredEntries()
	responses := make([]marking.EntryResponse, 0, len(entries))
	var summary marking.SessionSummary
	for _, e := range entries {
		switch e.Status {
		case entry.StatusPresent:
			summary.Present++
		case entry.StatusAbsent:
			summary.Absent++
		case entry.StatusOff:
			summary.Off++
		default:
			summary.Unmarked++
		}
		responses = append(responses, marking.NewEntryResponse(e))
	}

	resp := marking.SessionResponse{
		SessionID:         sess.ID,
		Date:              sess.Date.Format("2006-01-02"),
		DayName:           dayName,
		Department:        sess.Department,
		Search:            sess.Search,
		LoadState:         string(sess.LoadState()),
		TotalCount:        totalCount,
		LoadedCount:       loadedCount,
		Departments:       sess.Departments(),
		IsHoliday:         holiday != nil,
		ExcelLocked:       excelLocked,
		Editable:          holiday == nil && !excelLocked,
		PenaltyRuleActive: cfg.Enabled(),
		Summary:           summary,
		Entries:           responses,
	}
	if holiday != nil {
		resp.HolidayName = holiday.Name
	}
	if cfg.Enabled() {
		resp.AbsentThreshold = cfg.AbsentThreshold
	}
	return resp
}
