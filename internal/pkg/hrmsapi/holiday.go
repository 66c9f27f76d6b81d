package hrmsapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
)

type holidayResponse struct {
	IsHoliday   bool `json:"is_holiday"`
	HolidayInfo *struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Type        string `json:"type"`
	} `json:"holiday_info,omitempty"`
}

// CheckHoliday implements marking.Backend.
func (c *Client) CheckHoliday(ctx context.Context, date string) (*marking.HolidayInfo, error) {
	var resp holidayResponse
	if err := c.get(ctx, "/holidays/check", url.Values{"date": {date}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to check holiday: %w", err)
	}
	if !resp.IsHoliday {
		return nil, nil
	}
	info := &marking.HolidayInfo{}
	if resp.HolidayInfo != nil {
		info.Name = resp.HolidayInfo.Name
		info.Description = resp.HolidayInfo.Description
		info.Type = resp.HolidayInfo.Type
	}
	return info, nil
}

type excelAttendanceResponse struct {
	HasExcel bool `json:"has_excel"`
}

// CheckExcelAttendance implements marking.Backend.
func (c *Client) CheckExcelAttendance(ctx context.Context, month string) (bool, error) {
	var resp excelAttendanceResponse
	if err := c.get(ctx, "/attendance/excel-check", url.Values{"month": {month}}, &resp); err != nil {
		return false, fmt.Errorf("failed to check excel attendance: %w", err)
	}
	return resp.HasExcel, nil
}
