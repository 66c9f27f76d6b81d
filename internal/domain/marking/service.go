package marking

import (
	"context"
)

// MarkingService defines the attendance marking screen's operations.
type MarkingService interface {
	// CreateSession loads the first page for a date+filter, schedules the
	// background remainder and returns an interactive session.
	CreateSession(ctx context.Context, req CreateSessionRequest) (SessionResponse, error)

	// GetSession returns the session's current entries and loading state.
	GetSession(ctx context.Context, sessionID string) (SessionResponse, error)

	// SetStatus applies a status transition to one entry.
	SetStatus(ctx context.Context, sessionID, employeeID string, req SetStatusRequest) (EntryResponse, error)

	// SetClockTimes edits clock fields and recomputes OT/late synchronously.
	SetClockTimes(ctx context.Context, sessionID, employeeID string, req SetClockRequest) (EntryResponse, error)

	// MarkAll bulk-marks the filtered, loaded set present or absent.
	MarkAll(ctx context.Context, sessionID string, req MarkAllRequest) (MarkAllResponse, error)

	// RevertPenalty toggles the penalty-ignored flag for one employee-day.
	RevertPenalty(ctx context.Context, sessionID, employeeID string, req RevertPenaltyRequest) (RevertPenaltyResponse, error)

	// Save validates and pushes the marked entries to the backend.
	Save(ctx context.Context, sessionID string) (SaveResponse, error)

	// CloseSession drops a session and cancels its background work.
	CloseSession(ctx context.Context, sessionID string) error
}
