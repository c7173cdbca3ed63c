package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"studytimer/internal/core/model"
)

var (
	// ErrNotConfigured is returned by Start before any durations were set.
	ErrNotConfigured = errors.New("session durations not configured")
	// ErrEmptySession is returned by Start when both phases are zero length.
	ErrEmptySession = errors.New("study and break durations are both zero")
	// ErrNegativeDuration is returned by Configure for negative input.
	ErrNegativeDuration = errors.New("duration must not be negative")
	// ErrInvalidTransition is returned by Start while a session is running.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrIdleUnsupported indicates idle detection is not available on this system.
	ErrIdleUnsupported = errors.New("idle detection unsupported")
)

// Alerter plays audible cues. Play must return without waiting for playback.
type Alerter interface {
	Play(alert Alert)
}

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	// Manual disables the internal ticker; the owner drives the timer with Tick.
	Manual bool
}

// Timer is the study/break state machine.
type Timer struct {
	mu            sync.Mutex
	options       Config
	config        model.SessionConfig
	session       model.SessionConfig
	configured    bool
	state         State
	previousState State
	remaining     int
	alerter       Alerter
	idleChecker   IdleChecker
	idle          model.IdlePauseConfig
	lastIdleCheck time.Time
	events        []chan Event
	stopCh        chan struct{}
	closed        bool
}

// New creates an idle Timer that loops study and break by default.
func New(options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Timer{
		options:       options,
		config:        model.SessionConfig{Repeat: true},
		state:         StateIdle,
		previousState: StateIdle,
	}
}

// SetAlerter injects the audible cue player.
func (timer *Timer) SetAlerter(alerter Alerter) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.alerter = alerter
}

// SetIdleChecker injects an idle checker used for automatic pausing.
func (timer *Timer) SetIdleChecker(checker IdleChecker, config model.IdlePauseConfig) {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.idleChecker = checker
	timer.idle = config
	timer.lastIdleCheck = time.Time{}
}

// Configure stores the durations for the session about to begin.
// A running session keeps the durations it was started with.
func (timer *Timer) Configure(studySeconds, breakSeconds int) error {
	if studySeconds < 0 || breakSeconds < 0 {
		return fmt.Errorf("configure %d/%d: %w", studySeconds, breakSeconds, ErrNegativeDuration)
	}
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.config.StudySeconds = studySeconds
	timer.config.BreakSeconds = breakSeconds
	timer.configured = true
	return nil
}

// SetRepeat selects the end-of-cycle policy. It applies immediately,
// including to a session that is already running.
func (timer *Timer) SetRepeat(repeat bool) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.config.Repeat = repeat
	timer.session.Repeat = repeat
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.closed {
		close(ch)
		return ch
	}
	timer.events = append(timer.events, ch)
	return ch
}

// Snapshot returns a copy of the current timer state.
func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	durations := timer.config
	if timer.state != StateIdle && timer.state != StateComplete {
		durations = timer.session
	}
	snapshot := Snapshot{
		State:        timer.state,
		Remaining:    timer.remaining,
		StudySeconds: durations.StudySeconds,
		BreakSeconds: durations.BreakSeconds,
		Repeat:       durations.Repeat,
		Configured:   timer.configured,
	}
	if timer.state == StatePaused {
		snapshot.Resumes = timer.previousState
	}
	return snapshot
}

// Start begins a new session with the configured durations.
func (timer *Timer) Start() error {
	timer.mu.Lock()
	if timer.state != StateIdle && timer.state != StateComplete {
		state := timer.state
		timer.mu.Unlock()
		return fmt.Errorf("start from %s: %w", state, ErrInvalidTransition)
	}
	if !timer.configured {
		timer.mu.Unlock()
		return ErrNotConfigured
	}
	if timer.config.StudySeconds == 0 && timer.config.BreakSeconds == 0 {
		timer.mu.Unlock()
		return ErrEmptySession
	}

	now := time.Now()
	timer.session = timer.config
	timer.state = StateStudying
	timer.previousState = StateStudying
	timer.remaining = timer.session.StudySeconds
	timer.lastIdleCheck = time.Time{}
	timer.emitLocked(Event{Type: EventStateChange, State: StateStudying, Remaining: timer.remaining, At: now})

	var alerts []Alert
	if timer.remaining == 0 {
		alerts = timer.switchPhaseLocked(now)
	}
	if timer.state.Active() {
		timer.startLoopLocked()
	}
	alerter := timer.alerter
	timer.mu.Unlock()

	playAlerts(alerter, alerts)
	return nil
}

// PauseOrResume toggles between an active phase and Paused.
// Remaining time is preserved across the pair.
func (timer *Timer) PauseOrResume() {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	switch {
	case timer.state.Active():
		timer.pauseLocked(time.Now())
	case timer.state == StatePaused:
		timer.state = timer.previousState
		timer.lastIdleCheck = time.Time{}
		timer.startLoopLocked()
		timer.emitLocked(Event{Type: EventStateChange, State: timer.state, Remaining: timer.remaining, At: time.Now()})
	}
}

// Stop forces the timer back to Idle from any state.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.stopLoopLocked()
	if timer.state == StateIdle {
		return
	}
	timer.state = StateIdle
	timer.previousState = StateIdle
	timer.remaining = 0
	timer.emitLocked(Event{Type: EventStateChange, State: StateIdle, At: time.Now()})
}

// Close stops ticking and closes every observer channel.
func (timer *Timer) Close() {
	timer.mu.Lock()
	timer.stopLoopLocked()
	timer.closed = true
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Tick advances the countdown by one second.
func (timer *Timer) Tick() {
	timer.mu.Lock()
	alerts := timer.tickLocked(time.Now())
	alerter := timer.alerter
	timer.mu.Unlock()

	playAlerts(alerter, alerts)
}

func (timer *Timer) run(stopCh chan struct{}) {
	ticker := time.NewTicker(timer.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			timer.mu.Lock()
			// A stale loop can still win the select once after a pause.
			if timer.stopCh != stopCh {
				timer.mu.Unlock()
				return
			}
			alerts := timer.tickLocked(tickTime)
			alerter := timer.alerter
			timer.mu.Unlock()

			playAlerts(alerter, alerts)
		}
	}
}

func (timer *Timer) tickLocked(now time.Time) []Alert {
	if !timer.state.Active() {
		return nil
	}
	if timer.state == StateStudying && timer.handleIdleCheckLocked(now) {
		return nil
	}

	timer.remaining--
	if timer.remaining < 0 {
		timer.remaining = 0
	}
	timer.emitLocked(Event{Type: EventTick, State: timer.state, Remaining: timer.remaining, At: now})
	if timer.remaining > 0 {
		return nil
	}
	return timer.switchPhaseLocked(now)
}

// switchPhaseLocked leaves the current phase. Zero-length phases are passed
// through, so the loop ends on a phase with time left or on Complete.
func (timer *Timer) switchPhaseLocked(now time.Time) []Alert {
	var alerts []Alert
	for {
		var alert Alert
		switch timer.state {
		case StateStudying:
			timer.state = StateOnBreak
			timer.remaining = timer.session.BreakSeconds
			alert = AlertDingDong
		case StateOnBreak:
			alert = AlertTripleBeep
			if timer.session.Repeat {
				timer.state = StateStudying
				timer.remaining = timer.session.StudySeconds
			} else {
				timer.state = StateComplete
				timer.remaining = 0
				timer.stopLoopLocked()
			}
		default:
			return alerts
		}
		timer.previousState = timer.state

		timer.emitLocked(Event{Type: EventStateChange, State: timer.state, Remaining: timer.remaining, At: now})
		timer.emitLocked(Event{Type: EventAlert, State: timer.state, Remaining: timer.remaining, Alert: alert, At: now})
		alerts = append(alerts, alert)

		if timer.state == StateComplete || timer.remaining > 0 {
			return alerts
		}
	}
}

func (timer *Timer) pauseLocked(now time.Time) {
	timer.stopLoopLocked()
	timer.previousState = timer.state
	timer.state = StatePaused
	timer.emitLocked(Event{Type: EventStateChange, State: StatePaused, Remaining: timer.remaining, At: now})
}

// handleIdleCheckLocked reports whether the tick was consumed by an idle pause.
func (timer *Timer) handleIdleCheckLocked(now time.Time) bool {
	if !timer.idle.Enabled || timer.idleChecker == nil {
		return false
	}
	if !timer.lastIdleCheck.IsZero() && now.Sub(timer.lastIdleCheck) < timer.idle.CheckInterval {
		return false
	}
	timer.lastIdleCheck = now

	idleDuration, err := timer.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			timer.idle.Enabled = false
		}
		timer.emitLocked(Event{
			Type:    EventIdleError,
			State:   timer.state,
			Message: err.Error(),
			At:      now,
		})
		return false
	}
	if idleDuration < timer.idle.After {
		return false
	}

	timer.pauseLocked(now)
	timer.emitLocked(Event{
		Type:      EventIdlePause,
		State:     StatePaused,
		Remaining: timer.remaining,
		Message:   fmt.Sprintf("idle for %s", idleDuration.Truncate(time.Second)),
		At:        now,
	})
	return true
}

func (timer *Timer) startLoopLocked() {
	if timer.options.Manual || timer.closed || timer.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	timer.stopCh = stopCh
	go timer.run(stopCh)
}

func (timer *Timer) stopLoopLocked() {
	if timer.stopCh == nil {
		return
	}
	close(timer.stopCh)
	timer.stopCh = nil
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func playAlerts(alerter Alerter, alerts []Alert) {
	if alerter == nil {
		return
	}
	for _, alert := range alerts {
		alerter.Play(alert)
	}
}
