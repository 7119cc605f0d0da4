package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestWeekdayIndex(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"lowercase", "sunday", 0, true},
		{"uppercase", "MONDAY", 1, true},
		{"mixed case", "WedNesDay", 3, true},
		{"surrounding spaces", " friday ", 5, true},
		{"saturday", "saturday", 6, true},
		{"unknown", "funday", 0, false},
		{"empty", "", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := WeekdayIndex(c.input)
			if c.ok {
				if err != nil {
					t.Fatalf("WeekdayIndex(%q) returned error: %v", c.input, err)
				}
				if got != c.want {
					t.Errorf("WeekdayIndex(%q) = %d, want %d", c.input, got, c.want)
				}
				return
			}
			if !errors.Is(err, ErrInvalidWeekday) {
				t.Errorf("WeekdayIndex(%q) error = %v, want ErrInvalidWeekday", c.input, err)
			}
		})
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(time.Sunday); got != "sunday" {
		t.Errorf("WeekdayName(Sunday) = %q", got)
	}
	if got := WeekdayName(time.Saturday); got != "saturday" {
		t.Errorf("WeekdayName(Saturday) = %q", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:00", 0, false},
		{"09:005", 0, false},
		{"0900", 0, false},
		{"ab:cd", 0, false},
		{"noon", 0, false},
	}

	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.ok != (err == nil) {
			t.Errorf("ParseClock(%q) error = %v, want ok=%v", c.input, err, c.ok)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestTo24Hour(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"6:00 PM", "18:00", true},
		{"9:15 AM", "09:15", true},
		{"12:00 AM", "00:00", true},
		{"12:30 PM", "12:30", true},
		{"18:00", "18:00", true},
		{"13:00 PM", "", false},
		{"half past six", "", false},
	}

	for _, c := range cases {
		got, err := To24Hour(c.input)
		if c.ok != (err == nil) {
			t.Errorf("To24Hour(%q) error = %v, want ok=%v", c.input, err, c.ok)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("To24Hour(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestTo12Hour(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"18:00", "6:00 PM"},
		{"00:05", "12:05 AM"},
		{"12:00", "12:00 PM"},
		{"09:45", "9:45 AM"},
	}

	for _, c := range cases {
		got, err := To12Hour(c.input)
		if err != nil {
			t.Fatalf("To12Hour(%q) returned error: %v", c.input, err)
		}
		if got != c.want {
			t.Errorf("To12Hour(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-01-08"); err != nil {
		t.Errorf("ParseDate rejected a plain date: %v", err)
	}
	if got, err := ParseDate("2024-01-08T18:00:00Z"); err != nil || FormatDate(got) != "2024-01-08" {
		t.Errorf("ParseDate(RFC3339) = %v, %v", got, err)
	}
	if _, err := ParseDate("08/01/2024"); err == nil {
		t.Error("ParseDate accepted an unknown format")
	}
}
