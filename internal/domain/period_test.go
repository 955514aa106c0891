package domain

import (
	"testing"
	"time"
)

func TestWeekLabel(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		// 2024-01-01 is a Monday; the first Sunday is 2024-01-07.
		{"2024-01-01", "2024-W00"},
		{"2024-01-06", "2024-W00"},
		{"2024-01-07", "2024-W01"},
		{"2024-01-13", "2024-W01"},
		{"2024-01-14", "2024-W02"},
		{"2024-12-31", "2024-W52"},
		// 2023-01-01 is a Sunday, so there are no week 00 days.
		{"2023-01-01", "2023-W01"},
		{"2023-12-31", "2023-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatalf("parse %s: %v", tt.date, err)
			}
			if got := WeekLabel(d); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestMonthLabel(t *testing.T) {
	d := time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)
	if got := MonthLabel(d); got != "2024-02" {
		t.Errorf("expected 2024-02, got %s", got)
	}
}

func TestLabels_UseRecordedOffset(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 2024-03-01 01:00 at UTC+3 is February in UTC but March where it was recorded.
	d := time.Date(2024, 3, 1, 1, 0, 0, 0, loc)
	if got := MonthLabel(d); got != "2024-03" {
		t.Errorf("expected 2024-03, got %s", got)
	}
	// Saturday 2024-01-06 22:00 at UTC-5 is Sunday in UTC.
	west := time.Date(2024, 1, 6, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	if got := WeekLabel(west); got != "2024-W00" {
		t.Errorf("expected 2024-W00, got %s", got)
	}
}

func TestLabels_SortChronologically(t *testing.T) {
	early := WeekLabel(time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC))
	late := WeekLabel(time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC))
	if !(early < late) {
		t.Errorf("expected %s < %s", early, late)
	}
	prevYear := WeekLabel(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	if !(prevYear < early) {
		t.Errorf("expected %s < %s", prevYear, early)
	}
}

func TestParseGranularity(t *testing.T) {
	for _, in := range []string{"week", "weekly", "w"} {
		g, err := ParseGranularity(in)
		if err != nil || g != Weekly {
			t.Errorf("ParseGranularity(%q) = %v, %v", in, g, err)
		}
	}
	for _, in := range []string{"month", "monthly", "m"} {
		g, err := ParseGranularity(in)
		if err != nil || g != Monthly {
			t.Errorf("ParseGranularity(%q) = %v, %v", in, g, err)
		}
	}
	if _, err := ParseGranularity("day"); err == nil {
		t.Error("expected error for unknown period")
	}
}
