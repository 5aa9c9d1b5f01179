package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-length oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain, math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// --- Cue generators ---

// createFoundSound is a rising two-note chime
func createFoundSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// First note (E5)
	n1 := NewOscillator(659.25, foundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, foundNote1Duration, foundAttack, foundNote1Release, rate)

	// Second note (A5)
	n2 := NewOscillator(880.0, foundNote2Duration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, foundNote2Duration, foundAttack, foundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.CueVolumes[CueFound]*cfg.MasterVolume)
}

// createUnreachableSound is a low saw buzz with a sub-octave
func createUnreachableSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	buzz := NewOscillator(110.0, unreachableDuration, WaveSaw, rate)
	buzzShaped := NewEnvelope(buzz, unreachableDuration, unreachableAttack, unreachableRelease, rate)

	sub := NewOscillator(55.0, unreachableDuration, WaveSine, rate)
	subShaped := NewEnvelope(sub, unreachableDuration, unreachableAttack, unreachableRelease, rate)

	mixed := beep.Mix(
		newVolume(buzzShaped, 0.7),
		newVolume(subShaped, 0.3),
	)
	return newVolume(mixed, cfg.CueVolumes[CueUnreachable]*cfg.MasterVolume)
}

// createMazeSound is a noise swell
func createMazeSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, mazeDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, mazeDuration, mazeAttack, mazeRelease, rate)
	return newVolume(shaped, cfg.CueVolumes[CueMaze]*cfg.MasterVolume)
}

// createToggleSound is a short click, silent if the tone cannot be built
func createToggleSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	sine, err := generators.SineTone(rate, 1800)
	if err != nil {
		return generators.Silence(rate.N(toggleDuration))
	}
	click := beep.Take(rate.N(toggleDuration), sine)
	shaped := NewEnvelope(click, toggleDuration, toggleAttack, toggleRelease, rate)
	return newVolume(shaped, cfg.CueVolumes[CueToggle]*cfg.MasterVolume)
}

// CueStreamer returns a fresh streamer for the cue, nil for an unknown cue
func CueStreamer(cue Cue, cfg *Config) beep.Streamer {
	switch cue {
	case CueFound:
		return createFoundSound(cfg)
	case CueUnreachable:
		return createUnreachableSound(cfg)
	case CueMaze:
		return createMazeSound(cfg)
	case CueToggle:
		return createToggleSound(cfg)
	default:
		return nil
	}
}
