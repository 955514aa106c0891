package util

// Grades are good, medium or low and drive the colors of the dashboard and TUI.

// AcceptanceGrade grades an acceptance rate for display.
func AcceptanceGrade(rate float64) string {
	switch {
	case rate >= 40:
		return "good"
	case rate >= 25:
		return "medium"
	default:
		return "low"
	}
}

// CancellationGrade grades a cancellation rate; higher is worse.
func CancellationGrade(rate float64) string {
	switch {
	case rate >= 60:
		return "low"
	case rate >= 40:
		return "medium"
	default:
		return "good"
	}
}

// ReactivationGrade grades a reactivation rate for display.
func ReactivationGrade(rate float64) string {
	switch {
	case rate >= 15:
		return "good"
	case rate >= 8:
		return "medium"
	default:
		return "low"
	}
}

// NetGrade colors net revenue: negative is low.
func NetGrade(v float64) string {
	if v < 0 {
		return "low"
	}
	return "good"
}
