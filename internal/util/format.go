package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatNumber formats an int with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatNumber(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatMoney formats dollars with a thousands separator and two decimals.
// Examples: 20 -> "$20.00", -1234.5 -> "-$1,234.50"
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(cents/100), cents%100)
}

// FormatPercent formats a 0-100 rate with one decimal.
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatDateISO formats t as 2006-01-02 in UTC. The zero time renders as "-".
func FormatDateISO(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}

// FormatDateTime formats t as 2006-01-02 15:04 UTC. The zero time renders as "-".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}
