package audio

import "github.com/faiface/beep"

// pcmStreamer feeds 8-bit signed mono samples to beep as stereo frames.
type pcmStreamer struct {
	samples []int8
	pos     int
}

var _ beep.Streamer = (*pcmStreamer)(nil)

func newPCMStreamer(samples []int8) *pcmStreamer {
	return &pcmStreamer{samples: samples}
}

func (streamer *pcmStreamer) Stream(frames [][2]float64) (int, bool) {
	if streamer.pos >= len(streamer.samples) {
		return 0, false
	}
	n := 0
	for n < len(frames) && streamer.pos < len(streamer.samples) {
		value := float64(streamer.samples[streamer.pos]) / 128
		frames[n][0] = value
		frames[n][1] = value
		n++
		streamer.pos++
	}
	return n, true
}

func (streamer *pcmStreamer) Err() error {
	return nil
}

func (streamer *pcmStreamer) Len() int {
	return len(streamer.samples)
}

func (streamer *pcmStreamer) Position() int {
	return streamer.pos
}

func (streamer *pcmStreamer) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if p > len(streamer.samples) {
		p = len(streamer.samples)
	}
	streamer.pos = p
	return nil
}
