package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player mixes cues onto the speaker, every method is a no-op until Initialize succeeds
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	lastPlayed  [cueCount]time.Time

	// sink receives cue streamers, replaced in tests
	sink func(beep.Streamer)
	now  func() time.Time
}

// NewPlayer creates a player, nil cfg uses DefaultConfig
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker, a disabled config initializes nothing
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)

	p.sink = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.initialized = true
	return nil
}

// Play queues a cue and reports whether it was accepted
func (p *Player) Play(cue Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || cue < 0 || cue >= cueCount {
		return false
	}

	now := p.now()
	if last := p.lastPlayed[cue]; !last.IsZero() && now.Sub(last) < minCueGap {
		return false
	}
	p.lastPlayed[cue] = now

	p.sink(CueStreamer(cue, p.cfg))
	return true
}

// Volume returns the master volume
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.MasterVolume
}

// SetVolume changes the master volume for cues queued afterwards
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	p.cfg.MasterVolume = min(max(volume, 0), 1)
	p.mu.Unlock()
}

// Cleanup silences queued cues and closes the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	p.initialized = false
	p.sink = nil
}
