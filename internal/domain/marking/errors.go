package marking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSessionNotFound = errors.New("marking session not found")
	ErrEntryNotFound   = errors.New("attendance entry not found in this session")
	ErrInvalidDay      = errors.New("invalid weekday code")

	// ErrInitialLoadFailed is the one transient failure surfaced to the user:
	// without a first page there is nothing to show.
	ErrInitialLoadFailed = errors.New("failed to load employees for the selected date")

	// ErrNoPenaltyDay: revert requested for a day that was not auto-marked.
	ErrNoPenaltyDay = errors.New("no auto-marked penalty on that day")
)

// UnmarkedEntriesError rejects a save while employees that are not on an off
// day remain unmarked. It names the offending employees so the UI can show
// an actionable message.
type UnmarkedEntriesError struct {
	Names []string
}

func (e *UnmarkedEntriesError) Error() string {
	return fmt.Sprintf("attendance not marked for: %s", strings.Join(e.Names, ", "))
}
