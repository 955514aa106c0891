package ports

import (
	"context"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

// ReportGenerator produces a fresh report on every call.
type ReportGenerator interface {
	Generate(ctx context.Context) (*domain.Report, error)
}
