package ports

import (
	"context"
	"time"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

// SessionSource supplies the raw sessions a report is computed from.
type SessionSource interface {
	// FetchSessions returns at most window.Limit sessions created on or after window.Start.
	FetchSessions(ctx context.Context, window FetchWindow) ([]domain.RawSession, error)
}

// FetchWindow bounds one fetch.
type FetchWindow struct {
	Start time.Time
	End   time.Time
	Limit int
}

// NewFetchWindow builds the window ending at now and reaching back days.
func NewFetchWindow(now time.Time, days, limit int) FetchWindow {
	now = now.UTC()
	return FetchWindow{
		Start: now.AddDate(0, 0, -days),
		End:   now,
		Limit: limit,
	}
}

// Domain converts the fetch window to the window recorded on a report.
func (w FetchWindow) Domain() domain.Window {
	return domain.Window{Start: w.Start, End: w.End, Limit: w.Limit}
}
