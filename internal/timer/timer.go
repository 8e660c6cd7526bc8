// Package timer implements the pomodoro countdown state machine.
package timer

import (
	"fmt"
	"time"
)

// Mode selects the work/break duration preset for a session.
type Mode int

const (
	// ModeShort is 25 minutes of work followed by a 5 minute break.
	ModeShort Mode = iota
	// ModeLong is 50 minutes of work followed by a 10 minute break.
	ModeLong
)

// WorkDuration returns the work interval length for the mode.
func (m Mode) WorkDuration() time.Duration {
	if m == ModeLong {
		return 50 * time.Minute
	}
	return 25 * time.Minute
}

// BreakDuration returns the break interval length for the mode.
func (m Mode) BreakDuration() time.Duration {
	if m == ModeLong {
		return 10 * time.Minute
	}
	return 5 * time.Minute
}

// String returns the display label used in menus and analytics records.
func (m Mode) String() string {
	if m == ModeLong {
		return "Long (50/10)"
	}
	return "Short (25/5)"
}

// Phase is the sub-interval of a session the timer is counting down.
type Phase int

const (
	// PhaseWork counts down the work interval.
	PhaseWork Phase = iota
	// PhaseBreak counts down the break interval.
	PhaseBreak
)

// String returns the display label for the phase.
func (p Phase) String() string {
	if p == PhaseBreak {
		return "Break"
	}
	return "Work"
}

// Timer tracks one session's countdown. It cycles Work -> Break -> Work
// until discarded; there is no terminal state. Not safe for concurrent
// use; the controller drives it from a single event loop.
type Timer struct {
	mode      Mode
	phase     Phase
	remaining time.Duration
	paused    bool
	lastTick  time.Time
	now       func() time.Time
}

// New creates a timer in the Work phase with the mode's full work duration.
func New(mode Mode) *Timer {
	return NewWithClock(mode, time.Now)
}

// NewWithClock creates a timer using the supplied clock. Tests pass a fake
// clock to simulate elapsed time without sleeping.
func NewWithClock(mode Mode, now func() time.Time) *Timer {
	return &Timer{
		mode:      mode,
		phase:     PhaseWork,
		remaining: mode.WorkDuration(),
		now:       now,
		lastTick:  now(),
	}
}

// Mode returns the session's duration preset.
func (t *Timer) Mode() Mode { return t.mode }

// Phase returns the current phase.
func (t *Timer) Phase() Phase { return t.phase }

// Remaining returns the time left in the current phase.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Paused reports whether the countdown is paused.
func (t *Timer) Paused() bool { return t.paused }

// PhaseDuration returns the full configured duration of the current phase.
func (t *Timer) PhaseDuration() time.Duration {
	if t.phase == PhaseBreak {
		return t.mode.BreakDuration()
	}
	return t.mode.WorkDuration()
}

// Tick advances the countdown by the wall-clock time elapsed since the
// previous observation and reports whether the phase completed. While
// paused it only refreshes the reference point, so paused time is never
// charged. Elapsed time comes from time.Time's monotonic reading; a
// regressed clock floors to zero rather than underflowing remaining.
func (t *Timer) Tick() bool {
	if t.paused {
		t.lastTick = t.now()
		return false
	}

	now := t.now()
	elapsed := now.Sub(t.lastTick)
	t.lastTick = now
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed >= t.remaining {
		t.remaining = 0
		return true
	}
	t.remaining -= elapsed
	return false
}

// TogglePause flips the paused state. Resuming resets the reference point
// so the pause interval is not charged on the next tick.
func (t *Timer) TogglePause() {
	t.paused = !t.paused
	if !t.paused {
		t.lastTick = t.now()
	}
}

// Pause stops the countdown without affecting remaining time.
func (t *Timer) Pause() {
	t.paused = true
}

// Reset restores the current phase to its full duration and resumes.
func (t *Timer) Reset() {
	t.remaining = t.PhaseDuration()
	t.paused = false
	t.lastTick = t.now()
}

// StartBreak switches to the break phase at its full duration, unpaused.
func (t *Timer) StartBreak() {
	t.phase = PhaseBreak
	t.remaining = t.mode.BreakDuration()
	t.paused = false
	t.lastTick = t.now()
}

// StartWork switches to the work phase at its full duration, unpaused.
func (t *Timer) StartWork() {
	t.phase = PhaseWork
	t.remaining = t.mode.WorkDuration()
	t.paused = false
	t.lastTick = t.now()
}

// SkipPhase ends the current phase immediately and starts the other one.
// It reports whether the skipped phase was Work, which is the signal that
// a pomodoro should be recorded.
func (t *Timer) SkipPhase() bool {
	wasWork := t.phase == PhaseWork
	if wasWork {
		t.StartBreak()
	} else {
		t.StartWork()
	}
	return wasWork
}

// Progress returns the completed fraction of the current phase in [0, 1]:
// 0 at full remaining, exactly 1 at zero remaining.
func (t *Timer) Progress() float64 {
	total := t.PhaseDuration()
	return 1.0 - t.remaining.Seconds()/total.Seconds()
}

// FormatRemaining renders the remaining time as zero-padded MM:SS. Minutes
// may exceed 59; the longest preset is 50 minutes so hours never roll over.
func (t *Timer) FormatRemaining() string {
	secs := int(t.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
