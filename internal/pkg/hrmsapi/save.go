package hrmsapi

import (
	"context"
	"fmt"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/domain/marking"
)

type saveAttendanceRequest struct {
	Records []marking.SaveRecord `json:"records"`
}

// SaveAttendance implements marking.Backend.
func (c *Client) SaveAttendance(ctx context.Context, records []marking.SaveRecord) error {
	if err := c.post(ctx, "/attendance/save", saveAttendanceRequest{Records: records}, nil); err != nil {
		return fmt.Errorf("failed to save attendance: %w", err)
	}
	return nil
}
