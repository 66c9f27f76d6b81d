package hrmsapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/entry"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
)

type weeklyAttendanceResponse struct {
	Employees map[string]wireWeeklyContext `json:"employees"`
}

type wireWeeklyContext struct {
	WeeklyAttendance   map[string]string `json:"weeklyAttendance"`
	AutoMarkedReasons  map[string]string `json:"autoMarkedReasons"`
	PenaltyIgnoredDays map[string]bool   `json:"penaltyIgnoredDays"`
}

func (w wireWeeklyContext) toDomain() marking.WeeklyContext {
	wc := marking.WeeklyContext{
		Attendance:         make(map[entry.Weekday]entry.DayMark, len(w.WeeklyAttendance)),
		AutoMarkedReasons:  make(map[entry.Weekday]string, len(w.AutoMarkedReasons)),
		PenaltyIgnoredDays: make(map[entry.Weekday]bool, len(w.PenaltyIgnoredDays)),
	}
	for raw, mark := range w.WeeklyAttendance {
		day, ok := entry.ParseWeekday(raw)
		if !ok {
			continue
		}
		switch entry.DayMark(mark) {
		case entry.DayPresent, entry.DayAbsent, entry.DayUnknown:
			wc.Attendance[day] = entry.DayMark(mark)
		default:
			wc.Attendance[day] = entry.DayUnknown
		}
	}
	for raw, reason := range w.AutoMarkedReasons {
		if day, ok := entry.ParseWeekday(raw); ok {
			wc.AutoMarkedReasons[day] = reason
		}
	}
	for raw, ignored := range w.PenaltyIgnoredDays {
		if day, ok := entry.ParseWeekday(raw); ok {
			wc.PenaltyIgnoredDays[day] = ignored
		}
	}
	return wc
}

// FetchWeeklyAttendance implements marking.Backend.
func (c *Client) FetchWeeklyAttendance(ctx context.Context, date string) (map[string]marking.WeeklyContext, error) {
	var resp weeklyAttendanceResponse
	if err := c.get(ctx, "/attendance/weekly", url.Values{"date": {date}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch weekly attendance: %w", err)
	}
	out := make(map[string]marking.WeeklyContext, len(resp.Employees))
	for employeeID, wc := range resp.Employees {
		out[employeeID] = wc.toDomain()
	}
	return out, nil
}

type revertPenaltyRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Day        string `json:"day"`
}

type revertPenaltyResponse struct {
	Ignored bool `json:"ignored"`
}

// RevertPenaltyDay implements marking.Backend.
func (c *Client) RevertPenaltyDay(ctx context.Context, employeeID, date string, day entry.Weekday) (bool, error) {
	req := revertPenaltyRequest{EmployeeID: employeeID, Date: date, Day: string(day)}
	var resp revertPenaltyResponse
	if err := c.post(ctx, "/attendance/penalty-revert", req, &resp); err != nil {
		return false, fmt.Errorf("failed to revert penalty day: %w", err)
	}
	return resp.Ignored, nil
}

type weeklyPenaltyConfigResponse struct {
	WeeklyAbsentThreshold int `json:"weekly_absent_threshold"`
}

// FetchWeeklyPenaltyConfig implements marking.Backend.
func (c *Client) FetchWeeklyPenaltyConfig(ctx context.Context) (int, error) {
	var resp weeklyPenaltyConfigResponse
	if err := c.get(ctx, "/settings/weekly-penalty", nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch weekly penalty config: %w", err)
	}
	return resp.WeeklyAbsentThreshold, nil
}
