// Package audio synthesizes and plays the session alert cues.
package audio

import (
	"math"
	"time"

	"studytimer/internal/core/session"
)

// SampleRate is the synthesis rate for all cues, in samples per second.
const SampleRate = 8000

const amplitude = 127 * 0.8

// Tone is a single sine segment. A zero Frequency is silence.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// Pattern is a sequence of tones played back to back.
type Pattern []Tone

// DingDong is the study-to-break cue: a low tone, a short gap, then a higher tone.
var DingDong = Pattern{
	{Frequency: 600, Duration: 300 * time.Millisecond},
	{Duration: 100 * time.Millisecond},
	{Frequency: 800, Duration: 500 * time.Millisecond},
}

// TripleBeep is the end-of-break cue.
var TripleBeep = Pattern{
	{Frequency: 1000, Duration: 200 * time.Millisecond},
	{Duration: 100 * time.Millisecond},
	{Frequency: 1000, Duration: 200 * time.Millisecond},
	{Duration: 100 * time.Millisecond},
	{Frequency: 1000, Duration: 200 * time.Millisecond},
	{Duration: 100 * time.Millisecond},
}

// PatternFor maps a session alert to its tone pattern.
func PatternFor(alert session.Alert) (Pattern, bool) {
	switch alert {
	case session.AlertDingDong:
		return DingDong, true
	case session.AlertTripleBeep:
		return TripleBeep, true
	default:
		return nil, false
	}
}

// Duration returns the total playback length of the pattern.
func (pattern Pattern) Duration() time.Duration {
	var total time.Duration
	for _, tone := range pattern {
		total += tone.Duration
	}
	return total
}

// Synthesize renders a tone as 8-bit signed mono samples.
func Synthesize(tone Tone) []int8 {
	count := int(tone.Duration.Milliseconds()) * SampleRate / 1000
	samples := make([]int8, count)
	if tone.Frequency <= 0 {
		return samples
	}
	period := SampleRate / tone.Frequency
	for i := range samples {
		angle := float64(i) / period * 2 * math.Pi
		samples[i] = int8(math.Sin(angle) * amplitude)
	}
	return samples
}

// Render concatenates every tone of the pattern.
func Render(pattern Pattern) []int8 {
	var samples []int8
	for _, tone := range pattern {
		samples = append(samples, Synthesize(tone)...)
	}
	return samples
}
