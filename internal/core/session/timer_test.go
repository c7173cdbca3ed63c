package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"studytimer/internal/core/model"
)

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []Alert
}

func (alerter *recordingAlerter) Play(alert Alert) {
	alerter.mu.Lock()
	defer alerter.mu.Unlock()
	alerter.alerts = append(alerter.alerts, alert)
}

func (alerter *recordingAlerter) count(alert Alert) int {
	alerter.mu.Lock()
	defer alerter.mu.Unlock()
	total := 0
	for _, played := range alerter.alerts {
		if played == alert {
			total++
		}
	}
	return total
}

func newManualTimer(t *testing.T, study, brk int, repeat bool) (*Timer, *recordingAlerter) {
	t.Helper()
	timer := New(Config{Manual: true})
	alerter := &recordingAlerter{}
	timer.SetAlerter(alerter)
	timer.SetRepeat(repeat)
	if err := timer.Configure(study, brk); err != nil {
		t.Fatalf("configure: %v", err)
	}
	t.Cleanup(timer.Close)
	return timer, alerter
}

func tickN(timer *Timer, n int) {
	for i := 0; i < n; i++ {
		timer.Tick()
	}
}

func TestStartRequiresConfiguration(t *testing.T) {
	timer := New(Config{Manual: true})
	if err := timer.Start(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if state := timer.Snapshot().State; state != StateIdle {
		t.Fatalf("expected idle, got %s", state)
	}
}

func TestStartRejectsEmptySession(t *testing.T) {
	timer, _ := newManualTimer(t, 0, 0, true)
	if err := timer.Start(); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("expected ErrEmptySession, got %v", err)
	}
}

func TestConfigureRejectsNegative(t *testing.T) {
	timer := New(Config{Manual: true})
	if err := timer.Configure(-1, 5); !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
	if timer.Snapshot().Configured {
		t.Fatalf("negative durations must not configure the timer")
	}
}

func TestStartWhileRunningIsInvalid(t *testing.T) {
	timer, _ := newManualTimer(t, 10, 5, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := timer.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	timer.PauseOrResume()
	if err := timer.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition while paused, got %v", err)
	}
}

func TestStudyTicksEnterBreak(t *testing.T) {
	cases := []struct{ study, brk int }{
		{1, 1}, {2, 3}, {5, 1}, {60, 30}, {0, 4},
	}
	for _, tc := range cases {
		timer, alerter := newManualTimer(t, tc.study, tc.brk, true)
		if err := timer.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}
		tickN(timer, tc.study)
		snapshot := timer.Snapshot()
		if snapshot.State != StateOnBreak || snapshot.Remaining != tc.brk {
			t.Fatalf("study=%d break=%d: got %s/%d", tc.study, tc.brk, snapshot.State, snapshot.Remaining)
		}
		if got := alerter.count(AlertDingDong); got != 1 {
			t.Fatalf("study=%d break=%d: expected one ding-dong, got %d", tc.study, tc.brk, got)
		}
	}
}

func TestBreakTicksLoopBackToStudy(t *testing.T) {
	for _, tc := range []struct{ study, brk int }{{1, 1}, {3, 2}, {7, 11}} {
		timer, alerter := newManualTimer(t, tc.study, tc.brk, true)
		if err := timer.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}
		tickN(timer, tc.study+tc.brk)
		snapshot := timer.Snapshot()
		if snapshot.State != StateStudying || snapshot.Remaining != tc.study {
			t.Fatalf("study=%d break=%d: got %s/%d", tc.study, tc.brk, snapshot.State, snapshot.Remaining)
		}
		if got := alerter.count(AlertTripleBeep); got != 1 {
			t.Fatalf("expected one triple beep, got %d", got)
		}
	}
}

func TestSingleCycleCompletes(t *testing.T) {
	timer, alerter := newManualTimer(t, 3, 2, false)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 5)
	snapshot := timer.Snapshot()
	if snapshot.State != StateComplete || snapshot.Remaining != 0 {
		t.Fatalf("expected complete/0, got %s/%d", snapshot.State, snapshot.Remaining)
	}
	if got := alerter.count(AlertTripleBeep); got != 1 {
		t.Fatalf("expected one triple beep, got %d", got)
	}

	tickN(timer, 3)
	if snapshot := timer.Snapshot(); snapshot.State != StateComplete {
		t.Fatalf("ticks after completion must be ignored, got %s", snapshot.State)
	}
	if err := timer.Start(); err != nil {
		t.Fatalf("restart from complete: %v", err)
	}
	if snapshot := timer.Snapshot(); snapshot.State != StateStudying || snapshot.Remaining != 3 {
		t.Fatalf("expected fresh study phase, got %s/%d", snapshot.State, snapshot.Remaining)
	}
}

func TestEndToEndStudyTwoBreakOne(t *testing.T) {
	timer, alerter := newManualTimer(t, 2, 1, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 2)
	snapshot := timer.Snapshot()
	if snapshot.State != StateOnBreak || snapshot.Remaining != 1 {
		t.Fatalf("expected on_break/1, got %s/%d", snapshot.State, snapshot.Remaining)
	}
	if alerter.count(AlertDingDong) != 1 || alerter.count(AlertTripleBeep) != 0 {
		t.Fatalf("unexpected alerts after study: %v", alerter.alerts)
	}

	timer.Tick()
	snapshot = timer.Snapshot()
	if snapshot.State != StateStudying || snapshot.Remaining != 2 {
		t.Fatalf("expected studying/2, got %s/%d", snapshot.State, snapshot.Remaining)
	}
	if alerter.count(AlertDingDong) != 1 || alerter.count(AlertTripleBeep) != 1 {
		t.Fatalf("unexpected alerts after break: %v", alerter.alerts)
	}
}

func TestPauseResumePreservesRemaining(t *testing.T) {
	timer, _ := newManualTimer(t, 10, 5, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 3)

	timer.PauseOrResume()
	snapshot := timer.Snapshot()
	if snapshot.State != StatePaused || snapshot.Remaining != 7 || snapshot.Resumes != StateStudying {
		t.Fatalf("expected paused/7 resuming studying, got %+v", snapshot)
	}

	tickN(timer, 4)
	if remaining := timer.Snapshot().Remaining; remaining != 7 {
		t.Fatalf("paused ticks must not count, remaining=%d", remaining)
	}

	timer.PauseOrResume()
	snapshot = timer.Snapshot()
	if snapshot.State != StateStudying || snapshot.Remaining != 7 {
		t.Fatalf("expected studying/7, got %s/%d", snapshot.State, snapshot.Remaining)
	}
	tickN(timer, 7)
	if state := timer.Snapshot().State; state != StateOnBreak {
		t.Fatalf("expected break after remaining ticks, got %s", state)
	}
}

func TestPauseDuringBreakResumesBreak(t *testing.T) {
	timer, _ := newManualTimer(t, 1, 4, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 2)
	timer.PauseOrResume()
	timer.PauseOrResume()
	snapshot := timer.Snapshot()
	if snapshot.State != StateOnBreak || snapshot.Remaining != 3 {
		t.Fatalf("expected on_break/3, got %s/%d", snapshot.State, snapshot.Remaining)
	}
}

func TestPauseOrResumeIgnoredWhenIdle(t *testing.T) {
	timer, _ := newManualTimer(t, 1, 1, true)
	timer.PauseOrResume()
	if state := timer.Snapshot().State; state != StateIdle {
		t.Fatalf("expected idle, got %s", state)
	}
}

func TestStopFromAnyState(t *testing.T) {
	timer, alerter := newManualTimer(t, 2, 2, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	timer.Tick()
	timer.Stop()
	snapshot := timer.Snapshot()
	if snapshot.State != StateIdle || snapshot.Remaining != 0 {
		t.Fatalf("expected idle/0, got %s/%d", snapshot.State, snapshot.Remaining)
	}

	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	timer.PauseOrResume()
	timer.Stop()
	if state := timer.Snapshot().State; state != StateIdle {
		t.Fatalf("expected idle after stopping a paused session, got %s", state)
	}
	if len(alerter.alerts) != 0 {
		t.Fatalf("stop must not alert, got %v", alerter.alerts)
	}
}

func TestZeroBreakPassesThrough(t *testing.T) {
	timer, alerter := newManualTimer(t, 2, 0, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 2)
	snapshot := timer.Snapshot()
	if snapshot.State != StateStudying || snapshot.Remaining != 2 {
		t.Fatalf("expected studying/2, got %s/%d", snapshot.State, snapshot.Remaining)
	}
	if alerter.count(AlertDingDong) != 1 || alerter.count(AlertTripleBeep) != 1 {
		t.Fatalf("expected both alerts once, got %v", alerter.alerts)
	}
}

func TestConfigureDuringSessionAppliesToNextStart(t *testing.T) {
	timer, _ := newManualTimer(t, 2, 2, true)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := timer.Configure(9, 9); err != nil {
		t.Fatalf("configure: %v", err)
	}
	tickN(timer, 2)
	if remaining := timer.Snapshot().Remaining; remaining != 2 {
		t.Fatalf("running session must keep its break length, remaining=%d", remaining)
	}
	timer.Stop()
	if snapshot := timer.Snapshot(); snapshot.StudySeconds != 9 {
		t.Fatalf("expected new durations once idle, got %+v", snapshot)
	}
}

func TestEventsDescribeTransitions(t *testing.T) {
	timer, _ := newManualTimer(t, 1, 1, false)
	events := timer.Subscribe(32)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 2)
	timer.Close()

	var got []string
	for event := range events {
		got = append(got, string(event.Type)+":"+string(event.State))
	}
	want := []string{
		"state_change:studying",
		"tick:studying",
		"state_change:on_break",
		"alert:on_break",
		"tick:on_break",
		"state_change:complete",
		"alert:complete",
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	timer := New(Config{Manual: true})
	timer.Close()
	if _, ok := <-timer.Subscribe(1); ok {
		t.Fatalf("expected closed channel")
	}
}

type fakeIdle struct {
	idle time.Duration
	err  error
}

func (idle *fakeIdle) IdleDuration() (time.Duration, error) {
	return idle.idle, idle.err
}

func TestIdlePausesStudy(t *testing.T) {
	timer, _ := newManualTimer(t, 10, 5, true)
	checker := &fakeIdle{}
	timer.SetIdleChecker(checker, model.IdlePauseConfig{Enabled: true, After: time.Minute, CheckInterval: time.Nanosecond})
	events := timer.Subscribe(32)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	timer.Tick()
	checker.idle = 2 * time.Minute
	time.Sleep(time.Millisecond)
	timer.Tick()

	snapshot := timer.Snapshot()
	if snapshot.State != StatePaused || snapshot.Remaining != 9 {
		t.Fatalf("expected paused/9, got %s/%d", snapshot.State, snapshot.Remaining)
	}
	timer.Close()
	found := false
	for event := range events {
		if event.Type == EventIdlePause {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected idle pause event")
	}
}

func TestIdleUnsupportedDisablesChecks(t *testing.T) {
	timer, _ := newManualTimer(t, 3, 1, true)
	timer.SetIdleChecker(&fakeIdle{err: ErrIdleUnsupported}, model.IdlePauseConfig{Enabled: true, After: time.Second, CheckInterval: time.Nanosecond})
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(timer, 3)
	if state := timer.Snapshot().State; state != StateOnBreak {
		t.Fatalf("expected countdown to continue, got %s", state)
	}
}

func TestTickerDrivesCountdown(t *testing.T) {
	timer := New(Config{TickInterval: 5 * time.Millisecond})
	t.Cleanup(timer.Close)
	timer.SetRepeat(false)
	if err := timer.Configure(2, 1); err != nil {
		t.Fatalf("configure: %v", err)
	}
	events := timer.Subscribe(16)
	if err := timer.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventStateChange && event.State == StateComplete {
				return
			}
		case <-deadline:
			t.Fatalf("session did not complete, state=%s", timer.Snapshot().State)
		}
	}
}
