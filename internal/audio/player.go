package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"studytimer/internal/core/session"
)

// Player plays session alerts through the system speaker.
// Playback is mixed asynchronously, so Play never blocks the caller.
type Player struct {
	mu     sync.Mutex
	ready  bool
	muted  bool
	volume float64
	cache  map[session.Alert][]int8
	play   func(beep.Streamer)
}

var _ session.Alerter = (*Player)(nil)

// NewPlayer initializes the speaker. When no audio device is available the
// error is logged and the player stays silent.
func NewPlayer() *Player {
	return newPlayer(initSpeaker, func(streamer beep.Streamer) {
		speaker.Play(streamer)
	})
}

func newPlayer(init func() error, play func(beep.Streamer)) *Player {
	player := &Player{
		cache: make(map[session.Alert][]int8),
		play:  play,
	}
	if err := init(); err != nil {
		log.Printf("audio: %v", err)
		return player
	}
	player.ready = true
	return player
}

func initSpeaker() error {
	sampleRate := beep.SampleRate(SampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// Ready reports whether an audio device was opened.
func (player *Player) Ready() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.ready
}

// SetMuted silences all alerts without closing the device.
func (player *Player) SetMuted(muted bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.muted = muted
}

// SetVolume sets the gain on a base-2 scale; 0 is unchanged, -1 is half.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = volume
}

// Play queues the alert for playback and returns immediately.
func (player *Player) Play(alert session.Alert) {
	player.mu.Lock()
	if !player.ready || player.muted {
		player.mu.Unlock()
		return
	}
	samples, ok := player.cache[alert]
	if !ok {
		pattern, known := PatternFor(alert)
		if !known {
			player.mu.Unlock()
			return
		}
		samples = Render(pattern)
		player.cache[alert] = samples
	}
	volume := player.volume
	player.mu.Unlock()

	player.play(&effects.Volume{
		Streamer: newPCMStreamer(samples),
		Base:     2,
		Volume:   volume,
		Silent:   false,
	})
}
