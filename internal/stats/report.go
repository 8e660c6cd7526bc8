// Package stats renders plain-text analytics reports.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pomotui/internal/analytics"
)

const sparkChars = " .:-=+*#%@"

// historyDays is how far back the daily sparkline reaches.
const historyDays = 30

// DailyCounts buckets records into per-day completion counts for the
// days-long window ending today. Index 0 is the oldest day.
func DailyCounts(records []analytics.Record, days int, today time.Time) []float64 {
	if days <= 0 {
		return nil
	}
	start := dateOf(today).AddDate(0, 0, -(days - 1))
	counts := make([]float64, days)
	for _, r := range records {
		idx := daysBetween(start, dateOf(r.Timestamp))
		if idx >= 0 && idx < days {
			counts[idx]++
		}
	}
	return counts
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderReport prints summary counts, the mode distribution, and a daily
// completion sparkline. width caps the sparkline length; pass 0 for the
// full history window.
func RenderReport(w io.Writer, a *analytics.Analytics, width int) error {
	rows := []struct {
		label string
		value int
	}{
		{"Total pomodoros", a.TotalCount()},
		{"Today", a.TodayCount()},
		{"This week", a.WeekCount()},
		{"Current streak (days)", a.CurrentStreak()},
		{"Short (25/5)", a.ShortModeCount()},
		{"Long (50/10)", a.LongModeCount()},
	}
	labelWidth := 0
	for _, r := range rows {
		if lw := runewidth.StringWidth(r.label); lw > labelWidth {
			labelWidth = lw
		}
	}

	if _, err := fmt.Fprintln(w, "Pomodoro analytics"); err != nil {
		return err
	}
	for _, r := range rows {
		padding := strings.Repeat(" ", labelWidth-runewidth.StringWidth(r.label))
		if _, err := fmt.Fprintf(w, "%s%s  %d\n", r.label, padding, r.value); err != nil {
			return err
		}
	}

	days := historyDays
	if width > 0 && width < days {
		days = width
	}
	counts := DailyCounts(a.Records(), days, time.Now())
	if _, err := fmt.Fprintf(w, "Last %d days: [%s]\n", days, Sparkline(counts)); err != nil {
		return err
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// daysBetween counts calendar days from a to b. The comparison runs in UTC
// so DST transitions cannot shorten a day.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
