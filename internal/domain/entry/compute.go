package entry

import (
	"math"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/timeutil"
)

// ComputeOvertimeLate derives overtime hours and late minutes from clock
// times against the shift boundaries. Late minutes combine late arrival and
// early leave; overtime is time worked past shift end, rounded to one decimal
// hour. Both results are always non-negative. Malformed clock values count as
// 00:00, a documented leniency for partial upstream data.
func ComputeOvertimeLate(clockIn, clockOut, shiftStart, shiftEnd string) (otHours float64, lateMinutes int) {
	in := timeutil.MinutesOrZero(clockIn)
	out := timeutil.MinutesOrZero(clockOut)
	start := timeutil.MinutesOrZero(shiftStart)
	end := timeutil.MinutesOrZero(shiftEnd)

	lateArrival := max(in-start, 0)
	earlyLeave := max(end-out, 0)
	lateMinutes = lateArrival + earlyLeave

	otMinutes := max(out-end, 0)
	otHours = math.Round(float64(otMinutes)/60*10) / 10
	return otHours, lateMinutes
}
