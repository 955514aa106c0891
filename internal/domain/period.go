package domain

import (
	"fmt"
	"time"
)

// Granularity selects the period used to bucket sessions.
type Granularity string

const (
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// ParseGranularity accepts "week"/"weekly" and "month"/"monthly".
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "week", "weekly", "w":
		return Weekly, nil
	case "month", "monthly", "m":
		return Monthly, nil
	}
	return "", fmt.Errorf("unknown period %q (want week or month)", s)
}

// MonthLabel formats t as YYYY-MM on the wall clock of t's own offset.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// WeekLabel formats t as YYYY-Www on the wall clock of t's own offset, where weeks
// start on Sunday and the days before the first Sunday of the year fall in week 00.
// This is not ISO-8601.
func WeekLabel(t time.Time) string {
	return fmt.Sprintf("%04d-W%02d", t.Year(), SundayWeek(t))
}

// SundayWeek returns the zero-based week of the year counting from the first Sunday.
func SundayWeek(t time.Time) int {
	yday := t.YearDay() - 1
	wday := int(t.Weekday())
	return (yday + 7 - wday) / 7
}

// PeriodLabel returns the label of t for the given granularity.
func PeriodLabel(t time.Time, g Granularity) string {
	if g == Monthly {
		return MonthLabel(t)
	}
	return WeekLabel(t)
}
