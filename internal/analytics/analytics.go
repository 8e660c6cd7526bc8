package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/pomotui/internal/timer"
)

// Record is one completed work phase. Records are immutable once appended.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Mode      string    `json:"mode"`
}

// Analytics is the durable aggregate of completed pomodoros. It is loaded
// once at startup and written back after every mutation. Persistence is
// best-effort: load and save failures degrade to an empty set or a no-op,
// never an error, so the in-memory state stays usable for the rest of the
// process.
type Analytics struct {
	records []Record
	store   Store
	now     func() time.Time
}

// Load builds an Analytics backed by store, reading any existing records.
// A missing or corrupt file yields an empty aggregate.
func Load(store Store) *Analytics {
	return LoadWithClock(store, time.Now)
}

// LoadWithClock is Load with an injected clock for deterministic date
// calculations in tests.
func LoadWithClock(store Store, now func() time.Time) *Analytics {
	a := &Analytics{store: store, now: now}
	if store != nil {
		if records, err := store.Load(); err == nil {
			a.records = records
		}
	}
	return a
}

// RecordPomodoro appends a record stamped with the current local time and
// the mode's display label, then persists.
func (a *Analytics) RecordPomodoro(mode timer.Mode) {
	a.records = append(a.records, Record{
		Timestamp: a.now(),
		Mode:      mode.String(),
	})
	a.save()
}

// Clear removes all records and persists the empty state.
func (a *Analytics) Clear() {
	a.records = nil
	a.save()
}

func (a *Analytics) save() {
	if a.store == nil {
		return
	}
	// Best-effort write; analytics is a convenience, not a system of record.
	_ = a.store.Save(a.records)
}

// Records returns a snapshot of the record sequence, oldest first.
func (a *Analytics) Records() []Record {
	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out
}

// TotalCount returns the number of recorded pomodoros.
func (a *Analytics) TotalCount() int {
	return len(a.records)
}

// TodayCount returns the number of records on the current local date.
func (a *Analytics) TodayCount() int {
	today := dateOf(a.now())
	count := 0
	for _, r := range a.records {
		if dateOf(r.Timestamp) == today {
			count++
		}
	}
	return count
}

// WeekCount returns the number of records between the most recent Monday
// and today, inclusive. Weeks start on Monday.
func (a *Analytics) WeekCount() int {
	today := dateOf(a.now())
	weekStart := today.AddDate(0, 0, -daysFromMonday(today.Weekday()))
	count := 0
	for _, r := range a.records {
		d := dateOf(r.Timestamp)
		if !d.Before(weekStart) && !d.After(today) {
			count++
		}
	}
	return count
}

// CurrentStreak returns the length of the unbroken run of consecutive
// calendar days with at least one record, ending today or yesterday. A run
// whose most recent day is older than yesterday counts as broken.
func (a *Analytics) CurrentStreak() int {
	if len(a.records) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(a.records))
	dates := make([]time.Time, 0, len(a.records))
	for _, r := range a.records {
		d := dateOf(r.Timestamp)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	today := dateOf(a.now())
	yesterday := today.AddDate(0, 0, -1)

	latest := dates[len(dates)-1]
	if latest != today && latest != yesterday {
		return 0
	}

	anchor := yesterday
	if _, ok := seen[today]; ok {
		anchor = today
	}

	streak := 0
	for i := len(dates) - 1; i >= 0; i-- {
		switch {
		case dates[i] == anchor:
			streak++
			anchor = anchor.AddDate(0, 0, -1)
		case dates[i].Before(anchor):
			return streak
		}
	}
	return streak
}

// ShortModeCount returns the number of records stamped with the short mode
// label.
func (a *Analytics) ShortModeCount() int {
	return a.countModeLabel(timer.ModeShort)
}

// LongModeCount returns the number of records stamped with the long mode
// label.
func (a *Analytics) LongModeCount() int {
	return a.countModeLabel(timer.ModeLong)
}

func (a *Analytics) countModeLabel(mode timer.Mode) int {
	keyword := modeKeyword(mode)
	count := 0
	for _, r := range a.records {
		if strings.Contains(r.Mode, keyword) {
			count++
		}
	}
	return count
}

// appendAt inserts a record with an explicit timestamp without persisting.
// Used by tests to build date scenarios.
func (a *Analytics) appendAt(ts time.Time, mode timer.Mode) {
	a.records = append(a.records, Record{Timestamp: ts, Mode: mode.String()})
}

// dateOf truncates a timestamp to its local calendar date.
func dateOf(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// daysFromMonday maps a weekday to its offset from Monday (Mon=0 .. Sun=6).
func daysFromMonday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func modeKeyword(mode timer.Mode) string {
	if mode == timer.ModeLong {
		return "Long"
	}
	return "Short"
}
