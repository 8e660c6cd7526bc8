// Package app holds the session controller: screens, command routing, and
// the tick-driven phase transitions. It owns no rendering and no I/O beyond
// delegating completed pomodoros to analytics.
package app

import (
	"time"

	"github.com/verte-zerg/pomotui/internal/analytics"
	"github.com/verte-zerg/pomotui/internal/timer"
)

// Screen identifies which view the renderer should draw.
type Screen int

const (
	// ScreenModeSelection is the mode picker shown before a session starts.
	ScreenModeSelection Screen = iota
	// ScreenTimer is the running countdown.
	ScreenTimer
	// ScreenAnalytics is the statistics view.
	ScreenAnalytics
)

// Command is a discrete user action, decoupled from key bindings.
type Command int

const (
	CmdNavigateUp Command = iota
	CmdNavigateDown
	CmdConfirm
	CmdQuit
	CmdTogglePause
	CmdReset
	CmdSkip
	CmdOpenAnalytics
	CmdBack
	CmdClearAnalytics
	CmdAcknowledgeTransition
	CmdRequestAbandon
	CmdConfirmAbandon
	CmdCancelAbandon
)

// AdvancePolicy controls what happens when a phase completes.
type AdvancePolicy int

const (
	// AdvanceAwaitAck pauses between phases until the user acknowledges.
	AdvanceAwaitAck AdvancePolicy = iota
	// AdvanceAuto chains straight into the next phase.
	AdvanceAuto
)

// Config wires the controller's collaborators and policy.
type Config struct {
	Advance AdvancePolicy
	Now     func() time.Time
}

// modeCount is the number of selectable presets on the mode screen.
const modeCount = 2

// App composes the optional timer and the analytics aggregate and routes
// tick and command events into state transitions. All state the renderer
// needs is exported; the renderer never mutates it.
type App struct {
	Screen       Screen
	Running      bool
	SelectedMode int
	Timer        *timer.Timer
	Analytics    *analytics.Analytics

	ShowCompletionMessage bool
	ShowExitConfirm       bool
	WaitingForNextPhase   bool

	cfg Config
}

// New builds a controller around the given analytics aggregate.
func New(a *analytics.Analytics, cfg Config) *App {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &App{
		Screen:    ScreenModeSelection,
		Running:   true,
		Analytics: a,
		cfg:       cfg,
	}
}

// SelectedModeValue maps the menu cursor to a timer mode.
func (a *App) SelectedModeValue() timer.Mode {
	if a.SelectedMode == 1 {
		return timer.ModeLong
	}
	return timer.ModeShort
}

// Handle routes a command according to the active screen and dialog state.
func (a *App) Handle(cmd Command) {
	switch a.Screen {
	case ScreenModeSelection:
		a.handleModeSelection(cmd)
	case ScreenTimer:
		a.handleTimer(cmd)
	case ScreenAnalytics:
		a.handleAnalytics(cmd)
	}
}

func (a *App) handleModeSelection(cmd Command) {
	switch cmd {
	case CmdQuit:
		a.Running = false
	case CmdNavigateDown:
		a.SelectedMode = (a.SelectedMode + 1) % modeCount
	case CmdNavigateUp:
		a.SelectedMode = (a.SelectedMode + modeCount - 1) % modeCount
	case CmdConfirm:
		a.Timer = timer.NewWithClock(a.SelectedModeValue(), a.cfg.Now)
		a.Screen = ScreenTimer
	case CmdOpenAnalytics:
		a.Screen = ScreenAnalytics
	}
}

func (a *App) handleTimer(cmd Command) {
	// The abandon dialog swallows everything except its own answers.
	if a.ShowExitConfirm {
		switch cmd {
		case CmdConfirmAbandon, CmdConfirm:
			a.ShowExitConfirm = false
			a.Timer = nil
			a.Screen = ScreenModeSelection
		case CmdCancelAbandon, CmdBack:
			a.ShowExitConfirm = false
		}
		return
	}

	if a.WaitingForNextPhase {
		switch cmd {
		case CmdAcknowledgeTransition, CmdConfirm:
			if a.Timer != nil {
				if a.Timer.Phase() == timer.PhaseWork {
					a.Timer.StartBreak()
				} else {
					a.Timer.StartWork()
				}
			}
			a.WaitingForNextPhase = false
			a.ShowCompletionMessage = false
		case CmdQuit:
			a.Running = false
		case CmdRequestAbandon:
			a.WaitingForNextPhase = false
			a.ShowExitConfirm = true
		}
		return
	}

	switch cmd {
	case CmdQuit:
		a.Running = false
	case CmdTogglePause:
		if a.Timer != nil {
			a.Timer.TogglePause()
		}
	case CmdReset:
		if a.Timer != nil {
			a.Timer.Reset()
		}
	case CmdSkip:
		if a.Timer != nil {
			if a.Timer.SkipPhase() {
				a.Analytics.RecordPomodoro(a.Timer.Mode())
				a.ShowCompletionMessage = true
			}
		}
	case CmdRequestAbandon:
		if a.Timer != nil {
			a.Timer.Pause()
		}
		a.ShowExitConfirm = true
	}
}

func (a *App) handleAnalytics(cmd Command) {
	switch cmd {
	case CmdQuit:
		a.Running = false
	case CmdBack:
		a.Screen = ScreenModeSelection
	case CmdClearAnalytics:
		a.Analytics.Clear()
	}
}

// Tick forwards the periodic tick to the timer and handles phase
// completion. While awaiting acknowledgment nothing happens; time spent
// reading the completion banner is not charged to the next phase.
func (a *App) Tick() {
	if a.WaitingForNextPhase {
		return
	}

	a.ShowCompletionMessage = false

	if a.Timer == nil {
		return
	}
	if !a.Timer.Tick() {
		return
	}

	wasWork := a.Timer.Phase() == timer.PhaseWork
	if wasWork {
		a.Analytics.RecordPomodoro(a.Timer.Mode())
		a.ShowCompletionMessage = true
	}

	if a.cfg.Advance == AdvanceAuto {
		if wasWork {
			a.Timer.StartBreak()
		} else {
			a.Timer.StartWork()
		}
		return
	}

	a.Timer.Pause()
	a.WaitingForNextPhase = true
}
