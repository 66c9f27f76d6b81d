package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/config"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/handler/http/response"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/jwt"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeMarkingService struct {
	session    marking.SessionResponse
	sessionErr error
	entry      marking.EntryResponse
	entryErr   error
	saveErr    error
	closedID   string
}

func (f *fakeMarkingService) CreateSession(ctx context.Context, req marking.CreateSessionRequest) (marking.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return marking.SessionResponse{}, err
	}
	return f.session, f.sessionErr
}

func (f *fakeMarkingService) GetSession(ctx context.Context, sessionID string) (marking.SessionResponse, error) {
	return f.session, f.sessionErr
}

func (f *fakeMarkingService) SetStatus(ctx context.Context, sessionID, employeeID string, req marking.SetStatusRequest) (marking.EntryResponse, error) {
	return f.entry, f.entryErr
}

func (f *fakeMarkingService) SetClockTimes(ctx context.Context, sessionID, employeeID string, req marking.SetClockRequest) (marking.EntryResponse, error) {
	return f.entry, f.entryErr
}

func (f *fakeMarkingService) MarkAll(ctx context.Context, sessionID string, req marking.MarkAllRequest) (marking.MarkAllResponse, error) {
	return marking.MarkAllResponse{Applied: 3, LoadingComplete: true}, nil
}

func (f *fakeMarkingService) RevertPenalty(ctx context.Context, sessionID, employeeID string, req marking.RevertPenaltyRequest) (marking.RevertPenaltyResponse, error) {
	return marking.RevertPenaltyResponse{EmployeeID: employeeID, Day: req.Day, Ignored: true}, nil
}

func (f *fakeMarkingService) Save(ctx context.Context, sessionID string) (marking.SaveResponse, error) {
	if f.saveErr != nil {
		return marking.SaveResponse{}, f.saveErr
	}
	return marking.SaveResponse{SavedCount: 5}, nil
}

func (f *fakeMarkingService) CloseSession(ctx context.Context, sessionID string) error {
	f.closedID = sessionID
	return f.sessionErr
}

func newTestRouter(svc marking.MarkingService) (http.Handler, string) {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.AllowedOrigins = []string{"http://localhost:3000"}

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	token, _, err := jwtSvc.GenerateAccessToken("user-1", "admin@example.com")
	if err != nil {
		panic(err)
	}
	return NewRouter(cfg, jwtSvc, NewMarkingHandler(svc)), token
}

func doRequest(t *testing.T, router http.Handler, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMarkingRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(&fakeMarkingService{})

	rec := doRequest(t, router, "", http.MethodPost, "/api/v1/marking/sessions", marking.CreateSessionRequest{Date: "2026-01-12"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSessionHandler(t *testing.T) {
	svc := &fakeMarkingService{
		session: marking.SessionResponse{SessionID: "sess-1", Date: "2026-01-12"},
	}
	router, token := newTestRouter(svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/marking/sessions", marking.CreateSessionRequest{Date: "2026-01-12"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                    `json:"success"`
		Data    marking.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "sess-1", resp.Data.SessionID)
}

func TestCreateSessionHandlerValidation(t *testing.T) {
	router, token := newTestRouter(&fakeMarkingService{})

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/marking/sessions", marking.CreateSessionRequest{Date: "not-a-date"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "date")
}

func TestGetSessionHandlerNotFound(t *testing.T) {
	svc := &fakeMarkingService{sessionErr: marking.ErrSessionNotFound}
	router, token := newTestRouter(svc)

	rec := doRequest(t, router, token, http.MethodGet, "/api/v1/marking/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveHandlerUnmarkedConflict(t *testing.T) {
	svc := &fakeMarkingService{
		saveErr: &marking.UnmarkedEntriesError{Names: []string{"Alice Tan", "Bob Lee"}},
	}
	router, token := newTestRouter(svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/marking/sessions/sess-1/save", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice Tan")
}

func TestEntryRoutes(t *testing.T) {
	svc := &fakeMarkingService{
		entry: marking.EntryResponse{EmployeeID: "emp-1", Status: "present"},
	}
	router, token := newTestRouter(svc)

	rec := doRequest(t, router, token, http.MethodPatch, "/api/v1/marking/sessions/sess-1/entries/emp-1/status",
		marking.SetStatusRequest{Status: "present"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, token, http.MethodPatch, "/api/v1/marking/sessions/sess-1/entries/emp-1/clock",
		marking.SetClockRequest{ClockIn: "09:15"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, token, http.MethodPost, "/api/v1/marking/sessions/sess-1/entries/emp-1/penalty-revert",
		marking.RevertPenaltyRequest{Day: "Su"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Penalty day reverted")
}

func TestCloseSessionHandler(t *testing.T) {
	svc := &fakeMarkingService{}
	router, token := newTestRouter(svc)

	rec := doRequest(t, router, token, http.MethodDelete, "/api/v1/marking/sessions/sess-9", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-9", svc.closedID)
}

// Validation errors travel as the slice type, so errors.As in HandleError
// must match the non-pointer form.
func TestHandleErrorValidationShape(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, validator.ValidationErrors{{Field: "date", Message: "required"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
