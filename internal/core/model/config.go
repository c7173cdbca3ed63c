package model

import "time"

// SessionConfig defines the study/break pair captured when a session starts.
type SessionConfig struct {
	StudySeconds int
	BreakSeconds int

	// Repeat loops back to studying after each break instead of completing.
	Repeat bool
}

// IdlePauseConfig controls automatic pausing while the user is away.
type IdlePauseConfig struct {
	Enabled       bool
	After         time.Duration
	CheckInterval time.Duration
}
