package session

import "time"

// State represents the current session mode.
type State string

const (
	StateIdle     State = "idle"
	StateStudying State = "studying"
	StateOnBreak  State = "on_break"
	StatePaused   State = "paused"
	StateComplete State = "complete"
)

// Active reports whether the state counts down on every tick.
func (state State) Active() bool {
	return state == StateStudying || state == StateOnBreak
}

// Alert identifies an audible cue fired at a phase boundary.
type Alert string

const (
	AlertNone Alert = ""
	// AlertDingDong marks the end of a study phase.
	AlertDingDong Alert = "ding_dong"
	// AlertTripleBeep marks the end of a break.
	AlertTripleBeep Alert = "triple_beep"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventAlert       EventType = "alert"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a session update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining int
	Alert     Alert
	Message   string
	At        time.Time
}

// Snapshot is a point-in-time copy of the timer state.
type Snapshot struct {
	State        State
	Resumes      State
	Remaining    int
	StudySeconds int
	BreakSeconds int
	Repeat       bool
	Configured   bool
}
