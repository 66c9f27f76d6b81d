package hrmsapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/employee"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
)

type eligibleEmployeesResponse struct {
	EligibleEmployees  []wireEmployee `json:"eligible_employees"`
	DayName            string         `json:"day_name"`
	TotalCount         int            `json:"total_count"`
	HasExcelAttendance bool           `json:"has_excel_attendance"`
	ProgressiveLoading *struct {
		HasMore            bool `json:"has_more"`
		RemainingEmployees int  `json:"remaining_employees"`
		RecommendedDelayMS int  `json:"recommended_delay_ms"`
	} `json:"progressive_loading,omitempty"`
}

type wireEmployee struct {
	EmployeeID    string          `json:"employee_id"`
	Name          string          `json:"name"`
	Department    string          `json:"department"`
	ShiftStart    string          `json:"shift_start"`
	ShiftEnd      string          `json:"shift_end"`
	OffDays       map[string]bool `json:"off_days"`
	DefaultStatus string          `json:"default_status"`
	Current       *struct {
		Status      string  `json:"status"`
		CheckIn     string  `json:"check_in"`
		CheckOut    string  `json:"check_out"`
		OTHours     float64 `json:"ot_hours"`
		LateMinutes int     `json:"late_minutes"`
	} `json:"current_attendance,omitempty"`
}

var offDayKeys = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (w wireEmployee) toDomain() employee.Employee {
	emp := employee.Employee{
		ID:            w.EmployeeID,
		Name:          w.Name,
		Department:    w.Department,
		ShiftStart:    w.ShiftStart,
		ShiftEnd:      w.ShiftEnd,
		DefaultStatus: w.DefaultStatus,
	}
	for i, key := range offDayKeys {
		emp.OffDays[i] = w.OffDays[key]
	}
	if w.Current != nil {
		emp.Current = &employee.AttendanceSnapshot{
			Status:      w.Current.Status,
			ClockIn:     w.Current.CheckIn,
			ClockOut:    w.Current.CheckOut,
			OTHours:     w.Current.OTHours,
			LateMinutes: w.Current.LateMinutes,
		}
	}
	return emp
}

// FetchEligibleEmployees implements marking.Backend.
func (c *Client) FetchEligibleEmployees(ctx context.Context, date string, phase marking.FetchPhase, offset, limit int) (marking.EligibleEmployeesResult, error) {
	query := url.Values{"date": {date}}
	switch phase {
	case marking.FetchInitial:
		query.Set("initial", "true")
		if limit > 0 {
			query.Set("limit", strconv.Itoa(limit))
		}
	case marking.FetchRemaining:
		query.Set("remaining", "true")
		query.Set("offset", strconv.Itoa(offset))
	}

	var resp eligibleEmployeesResponse
	if err := c.get(ctx, "/eligible-employees", query, &resp); err != nil {
		return marking.EligibleEmployeesResult{}, fmt.Errorf("failed to fetch eligible employees: %w", err)
	}

	result := marking.EligibleEmployeesResult{
		DayName:            resp.DayName,
		TotalCount:         resp.TotalCount,
		HasExcelAttendance: resp.HasExcelAttendance,
		Employees:          make([]employee.Employee, 0, len(resp.EligibleEmployees)),
	}
	for _, w := range resp.EligibleEmployees {
		result.Employees = append(result.Employees, w.toDomain())
	}
	if resp.ProgressiveLoading != nil {
		result.HasMore = resp.ProgressiveLoading.HasMore
		result.RemainingCount = resp.ProgressiveLoading.RemainingEmployees
		result.RecommendedDelay = time.Duration(resp.ProgressiveLoading.RecommendedDelayMS) * time.Millisecond
	}
	return result, nil
}
