package app

import (
	"testing"
	"time"

	"github.com/verte-zerg/pomotui/internal/analytics"
	"github.com/verte-zerg/pomotui/internal/timer"
)

type clock struct {
	current time.Time
}

func (c *clock) now() time.Time          { return c.current }
func (c *clock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newClock() *clock {
	return &clock{current: time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)}
}

func newTestApp(cfg Config, c *clock) *App {
	cfg.Now = c.now
	a := analytics.LoadWithClock(nil, c.now)
	return New(a, cfg)
}

func startSession(t *testing.T, app *App, mode timer.Mode) {
	t.Helper()
	app.SelectedMode = 0
	if mode == timer.ModeLong {
		app.SelectedMode = 1
	}
	app.Handle(CmdConfirm)
	if app.Screen != ScreenTimer || app.Timer == nil {
		t.Fatalf("failed to start session")
	}
}

func TestInitialState(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	if app.Screen != ScreenModeSelection {
		t.Fatalf("expected mode selection screen")
	}
	if !app.Running {
		t.Fatalf("expected running app")
	}
	if app.Timer != nil {
		t.Fatalf("expected no timer before a session starts")
	}
}

func TestModeSelectionNavigationWraps(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	app.Handle(CmdNavigateDown)
	if app.SelectedMode != 1 {
		t.Fatalf("expected cursor 1, got %d", app.SelectedMode)
	}
	app.Handle(CmdNavigateDown)
	if app.SelectedMode != 0 {
		t.Fatalf("expected cursor to wrap to 0, got %d", app.SelectedMode)
	}
	app.Handle(CmdNavigateUp)
	if app.SelectedMode != 1 {
		t.Fatalf("expected cursor to wrap to 1, got %d", app.SelectedMode)
	}
}

func TestConfirmStartsSelectedMode(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	startSession(t, app, timer.ModeLong)
	if app.Timer.Mode() != timer.ModeLong {
		t.Fatalf("expected long mode, got %s", app.Timer.Mode())
	}
	if app.Timer.Remaining() != timer.ModeLong.WorkDuration() {
		t.Fatalf("expected full work duration, got %s", app.Timer.Remaining())
	}
}

func TestOpenAnalyticsAndBack(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	app.Handle(CmdOpenAnalytics)
	if app.Screen != ScreenAnalytics {
		t.Fatalf("expected analytics screen")
	}
	app.Handle(CmdBack)
	if app.Screen != ScreenModeSelection {
		t.Fatalf("expected mode selection screen")
	}
}

func TestQuitFromEachScreen(t *testing.T) {
	for _, screen := range []Screen{ScreenModeSelection, ScreenTimer, ScreenAnalytics} {
		app := newTestApp(Config{}, newClock())
		app.Screen = screen
		app.Handle(CmdQuit)
		if app.Running {
			t.Fatalf("expected quit from screen %d", screen)
		}
	}
}

func TestWorkCompletionRecordsAndWaits(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAwaitAck}, c)
	startSession(t, app, timer.ModeShort)

	c.advance(timer.ModeShort.WorkDuration() + time.Second)
	app.Tick()

	if app.Analytics.TotalCount() != 1 {
		t.Fatalf("expected 1 recorded pomodoro, got %d", app.Analytics.TotalCount())
	}
	if !app.ShowCompletionMessage {
		t.Fatalf("expected completion banner")
	}
	if !app.WaitingForNextPhase {
		t.Fatalf("expected controller to await acknowledgment")
	}
	if !app.Timer.Paused() {
		t.Fatalf("expected timer paused while awaiting acknowledgment")
	}
	if app.Timer.Phase() != timer.PhaseWork {
		t.Fatalf("phase should not change before acknowledgment")
	}
}

func TestTickIgnoredWhileWaiting(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAwaitAck}, c)
	startSession(t, app, timer.ModeShort)
	c.advance(timer.ModeShort.WorkDuration())
	app.Tick()

	c.advance(time.Hour)
	app.Tick()

	if !app.ShowCompletionMessage {
		t.Fatalf("banner should survive ticks while waiting")
	}
	if app.Analytics.TotalCount() != 1 {
		t.Fatalf("waiting ticks must not record again, got %d", app.Analytics.TotalCount())
	}
}

func TestAcknowledgeStartsBreak(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAwaitAck}, c)
	startSession(t, app, timer.ModeShort)
	c.advance(timer.ModeShort.WorkDuration())
	app.Tick()

	app.Handle(CmdAcknowledgeTransition)

	if app.WaitingForNextPhase || app.ShowCompletionMessage {
		t.Fatalf("acknowledgment should clear transition flags")
	}
	if app.Timer.Phase() != timer.PhaseBreak {
		t.Fatalf("expected break phase, got %s", app.Timer.Phase())
	}
	if app.Timer.Remaining() != timer.ModeShort.BreakDuration() {
		t.Fatalf("expected full break duration, got %s", app.Timer.Remaining())
	}
	if app.Timer.Paused() {
		t.Fatalf("expected break to start running")
	}
}

func TestBreakCompletionDoesNotRecord(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAwaitAck}, c)
	startSession(t, app, timer.ModeShort)
	app.Timer.StartBreak()

	c.advance(timer.ModeShort.BreakDuration())
	app.Tick()

	if app.Analytics.TotalCount() != 0 {
		t.Fatalf("break completion must not record a pomodoro")
	}
	if app.ShowCompletionMessage {
		t.Fatalf("break completion must not raise the banner")
	}
	if !app.WaitingForNextPhase {
		t.Fatalf("break completion still awaits acknowledgment")
	}
}

func TestAutoAdvanceChainsPhases(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAuto}, c)
	startSession(t, app, timer.ModeShort)

	c.advance(timer.ModeShort.WorkDuration())
	app.Tick()

	if app.WaitingForNextPhase {
		t.Fatalf("auto-advance must not wait")
	}
	if app.Timer.Phase() != timer.PhaseBreak {
		t.Fatalf("expected immediate break, got %s", app.Timer.Phase())
	}
	if app.Timer.Paused() {
		t.Fatalf("expected break running")
	}
	if app.Analytics.TotalCount() != 1 {
		t.Fatalf("expected 1 recorded pomodoro, got %d", app.Analytics.TotalCount())
	}

	c.advance(timer.ModeShort.BreakDuration())
	app.Tick()
	if app.Timer.Phase() != timer.PhaseWork {
		t.Fatalf("expected chained work phase, got %s", app.Timer.Phase())
	}
	if app.Analytics.TotalCount() != 1 {
		t.Fatalf("break completion must not record, got %d", app.Analytics.TotalCount())
	}
}

func TestBannerClearsOnNextRunningTick(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAuto}, c)
	startSession(t, app, timer.ModeShort)
	c.advance(timer.ModeShort.WorkDuration())
	app.Tick()
	if !app.ShowCompletionMessage {
		t.Fatalf("expected banner after completion")
	}
	c.advance(time.Second)
	app.Tick()
	if app.ShowCompletionMessage {
		t.Fatalf("banner should clear on the next tick")
	}
}

func TestSkipWorkRecordsPomodoro(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{}, c)
	startSession(t, app, timer.ModeShort)

	app.Handle(CmdSkip)

	if app.Timer.Phase() != timer.PhaseBreak {
		t.Fatalf("expected break after skipping work")
	}
	if app.Analytics.TotalCount() != 1 {
		t.Fatalf("expected recorded pomodoro, got %d", app.Analytics.TotalCount())
	}
	if !app.ShowCompletionMessage {
		t.Fatalf("expected completion banner after skipping work")
	}
}

func TestSkipBreakDoesNotRecord(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{}, c)
	startSession(t, app, timer.ModeShort)
	app.Timer.StartBreak()

	app.Handle(CmdSkip)

	if app.Timer.Phase() != timer.PhaseWork {
		t.Fatalf("expected work after skipping break")
	}
	if app.Analytics.TotalCount() != 0 {
		t.Fatalf("skipping a break must not record")
	}
	if app.ShowCompletionMessage {
		t.Fatalf("skipping a break must not raise the banner")
	}
}

func TestPauseCommandTogglesTimer(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	startSession(t, app, timer.ModeShort)
	app.Handle(CmdTogglePause)
	if !app.Timer.Paused() {
		t.Fatalf("expected paused timer")
	}
	app.Handle(CmdTogglePause)
	if app.Timer.Paused() {
		t.Fatalf("expected resumed timer")
	}
}

func TestResetCommandRestoresDuration(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{}, c)
	startSession(t, app, timer.ModeShort)
	c.advance(10 * time.Minute)
	app.Tick()
	app.Handle(CmdReset)
	if app.Timer.Remaining() != timer.ModeShort.WorkDuration() {
		t.Fatalf("expected full duration after reset, got %s", app.Timer.Remaining())
	}
}

func TestRequestAbandonPausesAndShowsDialog(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	startSession(t, app, timer.ModeShort)

	app.Handle(CmdRequestAbandon)

	if !app.ShowExitConfirm {
		t.Fatalf("expected abandon dialog")
	}
	if !app.Timer.Paused() {
		t.Fatalf("expected paused timer under the dialog")
	}
	if app.Screen != ScreenTimer {
		t.Fatalf("dialog should keep the timer screen")
	}
}

func TestConfirmAbandonDiscardsTimer(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{}, c)
	startSession(t, app, timer.ModeShort)
	c.advance(20 * time.Minute)
	app.Tick()
	app.Handle(CmdRequestAbandon)

	app.Handle(CmdConfirmAbandon)

	if app.Timer != nil {
		t.Fatalf("abandon should discard the timer")
	}
	if app.Screen != ScreenModeSelection {
		t.Fatalf("abandon should return to mode selection")
	}
	if app.Analytics.TotalCount() != 0 {
		t.Fatalf("abandon must not record progress")
	}
}

func TestCancelAbandonKeepsSession(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	startSession(t, app, timer.ModeShort)
	app.Handle(CmdRequestAbandon)

	app.Handle(CmdCancelAbandon)

	if app.ShowExitConfirm {
		t.Fatalf("expected dialog dismissed")
	}
	if app.Timer == nil || app.Screen != ScreenTimer {
		t.Fatalf("cancel should keep the session")
	}
}

func TestAbandonDialogSwallowsTimerCommands(t *testing.T) {
	app := newTestApp(Config{}, newClock())
	startSession(t, app, timer.ModeShort)
	app.Handle(CmdRequestAbandon)

	app.Handle(CmdSkip)

	if app.Timer.Phase() != timer.PhaseWork {
		t.Fatalf("skip must be ignored while the dialog is open")
	}
	if app.Analytics.TotalCount() != 0 {
		t.Fatalf("no recording through the dialog")
	}
}

func TestRequestAbandonWhileWaitingForNextPhase(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{Advance: AdvanceAwaitAck}, c)
	startSession(t, app, timer.ModeShort)
	c.advance(timer.ModeShort.WorkDuration())
	app.Tick()

	app.Handle(CmdRequestAbandon)

	if !app.ShowExitConfirm {
		t.Fatalf("expected abandon dialog from the waiting state")
	}
	if app.WaitingForNextPhase {
		t.Fatalf("waiting flag should clear when the dialog opens")
	}
}

func TestClearAnalyticsCommand(t *testing.T) {
	c := newClock()
	app := newTestApp(Config{}, c)
	startSession(t, app, timer.ModeShort)
	app.Handle(CmdSkip)
	app.Screen = ScreenAnalytics

	app.Handle(CmdClearAnalytics)

	if app.Analytics.TotalCount() != 0 {
		t.Fatalf("expected cleared analytics, got %d", app.Analytics.TotalCount())
	}
}
