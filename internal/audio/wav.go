package audio

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"studytimer/internal/core/session"
)

// Format is the on-disk format of exported cues: 8000 Hz, mono, 8-bit.
var Format = beep.Format{
	SampleRate:  beep.SampleRate(SampleRate),
	NumChannels: 1,
	Precision:   1,
}

// WriteWAV encodes the cue for alert as a WAV stream.
func WriteWAV(w io.WriteSeeker, alert session.Alert) error {
	pattern, ok := PatternFor(alert)
	if !ok {
		return fmt.Errorf("write wav: unknown alert %q", alert)
	}
	if err := wav.Encode(w, newPCMStreamer(Render(pattern)), Format); err != nil {
		return fmt.Errorf("write wav %s: %w", alert, err)
	}
	return nil
}
