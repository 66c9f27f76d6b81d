package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClockTime reports whether s is a well-formed "HH:MM" clock value.
func IsValidClockTime(s string) bool {
	return clockRegex.MatchString(s)
}

// ToMinutes converts an "HH:MM" clock value to minutes since midnight.
func ToMinutes(clock string) (int, error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q: missing separator", clock)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}

	return hours*60 + minutes, nil
}

// MinutesOrZero converts an "HH:MM" clock value to minutes, defaulting to 0 on
// malformed input. The engine tolerates partial clock data from upstream, so
// callers use this instead of failing the whole record.
func MinutesOrZero(clock string) int {
	minutes, err := ToMinutes(clock)
	if err != nil {
		return 0
	}
	return minutes
}

// FormatMinutes renders a minute offset as "HH:MM". Values past midnight are
// not wrapped; callers clamp negatives to 0 before formatting.
func FormatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// AddMinutes shifts an "HH:MM" clock value by delta minutes.
func AddMinutes(clock string, delta int) string {
	return FormatMinutes(MinutesOrZero(clock) + delta)
}
