package timeutil

import (
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:15", 555, false},
		{"18:00", 1080, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ToMinutes(%q) expected error, got %d", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToMinutes(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestMinutesOrZero(t *testing.T) {
	if got := MinutesOrZero("10:30"); got != 630 {
		t.Errorf("MinutesOrZero(10:30) = %d, want 630", got)
	}
	if got := MinutesOrZero("garbage"); got != 0 {
		t.Errorf("MinutesOrZero(garbage) = %d, want 0", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{1439, "23:59"},
		{1500, "25:00"}, // no 24h wrap
	}
	for _, c := range cases {
		if got := FormatMinutes(c.input); got != c.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	if got := AddMinutes("09:00", 90); got != "10:30" {
		t.Errorf("AddMinutes(09:00, 90) = %q, want 10:30", got)
	}
	if got := AddMinutes("23:30", 45); got != "24:15" {
		t.Errorf("AddMinutes(23:30, 45) = %q, want 24:15", got)
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:15", "23:59"}
	invalid := []string{"24:00", "9:15", "09:5", "09-15", ""}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}
