package response

import (
	"errors"
	"net/http"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Save rejected while entries remain unmarked
	var unmarked *marking.UnmarkedEntriesError
	if errors.As(err, &unmarked) {
		Conflict(w, unmarked.Error())
		return
	}

	switch {
	case errors.Is(err, marking.ErrSessionNotFound):
		NotFound(w, "Marking session not found")
	case errors.Is(err, marking.ErrEntryNotFound):
		NotFound(w, "Attendance entry not found in this session")
	case errors.Is(err, marking.ErrInvalidDay):
		BadRequest(w, "Invalid weekday code", nil)
	case errors.Is(err, marking.ErrNoPenaltyDay):
		Conflict(w, "No auto-marked penalty day to revert")
	case errors.Is(err, marking.ErrInitialLoadFailed):
		BadGateway(w, "Failed to load employees for the selected date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
