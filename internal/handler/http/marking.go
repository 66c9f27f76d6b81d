package http

import (
	"encoding/json"
	"net/http"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MarkingHandler interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	SetClockTimes(w http.ResponseWriter, r *http.Request)
	MarkAll(w http.ResponseWriter, r *http.Request)
	RevertPenalty(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	CloseSession(w http.ResponseWriter, r *http.Request)
}

type markingHandlerImpl struct {
	markingService marking.MarkingService
}

func NewMarkingHandler(markingService marking.MarkingService) MarkingHandler {
	return &markingHandlerImpl{
		markingService: markingService,
	}
}

// CreateSession implements MarkingHandler.
func (h *markingHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req marking.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.markingService.CreateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Marking session created", result)
}

// GetSession implements MarkingHandler.
func (h *markingHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.markingService.GetSession(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetStatus implements MarkingHandler.
func (h *markingHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	employeeID := chi.URLParam(r, "employeeID")

	var req marking.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.markingService.SetStatus(r.Context(), sessionID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetClockTimes implements MarkingHandler.
func (h *markingHandlerImpl) SetClockTimes(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	employeeID := chi.URLParam(r, "employeeID")

	var req marking.SetClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.markingService.SetClockTimes(r.Context(), sessionID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkAll implements MarkingHandler.
func (h *markingHandlerImpl) MarkAll(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req marking.MarkAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.markingService.MarkAll(r.Context(), sessionID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RevertPenalty implements MarkingHandler.
func (h *markingHandlerImpl) RevertPenalty(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	employeeID := chi.URLParam(r, "employeeID")

	var req marking.RevertPenaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.markingService.RevertPenalty(r.Context(), sessionID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalty day reverted", result)
}

// Save implements MarkingHandler.
func (h *markingHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.markingService.Save(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved successfully", result)
}

// CloseSession implements MarkingHandler.
func (h *markingHandlerImpl) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.markingService.CloseSession(r.Context(), sessionID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Marking session closed", nil)
}
