package economy

import (
	"fmt"
	"time"
)

// FormatCash abbreviates at K/M/B with one decimal: $1.5K, $2.3M, $1.0B.
func FormatCash(amount int64) string {
	sign := ""
	v := amount
	if v < 0 {
		sign, v = "-", -v
	}
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, float64(v)/1e9)
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, float64(v)/1e6)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, float64(v)/1e3)
	default:
		return fmt.Sprintf("%s$%d", sign, v)
	}
}

func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "Full"
	}
	total := int64(d.Round(time.Second) / time.Second)
	if total == 0 {
		total = 1
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
