package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Stream never finished")
	return 0, 0
}

func TestOscillator_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		n, peak := drain(t, osc)
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(100*time.Millisecond), n)
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("Wave %d: peak %f outside (0, 1]", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("Wave %d: expected no error, got %v", wave, osc.Err())
		}
	}
}

func TestEnvelope_FadesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // Constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("Expected full sustain, got %f", buf[500][0])
	}
	if buf[999][0] > 0.02 {
		t.Errorf("Expected faded tail, got %f", buf[999][0])
	}
}

func TestCueStreamer_AllCues(t *testing.T) {
	cfg := DefaultConfig()
	for cue := CueFound; cue < cueCount; cue++ {
		s := CueStreamer(cue, cfg)
		if s == nil {
			t.Fatalf("Cue %s: expected streamer", cue)
		}
		n, peak := drain(t, s)
		if n == 0 || peak == 0 {
			t.Errorf("Cue %s: expected audible samples, got n=%d peak=%f", cue, n, peak)
		}
	}
	if CueStreamer(cueCount, cfg) != nil {
		t.Error("Expected nil streamer for unknown cue")
	}
}

func TestCueStreamer_ZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0
	_, peak := drain(t, CueStreamer(CueFound, cfg))
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

func TestCue_String(t *testing.T) {
	if CueUnreachable.String() != "unreachable" || Cue(42).String() != "unknown" {
		t.Errorf("Unexpected cue names %q %q", CueUnreachable, Cue(42))
	}
}

// TestPlayerGracefulDegradation verifies playback is a no-op without a speaker
func TestPlayerGracefulDegradation(t *testing.T) {
	p := NewPlayer(nil)
	if p.Play(CueFound) {
		t.Error("Expected Play to refuse before Initialize")
	}
	p.SetVolume(2)
	if p.Volume() != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", p.Volume())
	}
	p.SetVolume(-0.5)
	if p.Volume() != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", p.Volume())
	}
	p.Cleanup()
}

func TestPlayerDisabledSkipsSpeaker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	p := NewPlayer(cfg)
	if err := p.Initialize(); err != nil {
		t.Fatalf("Expected disabled Initialize to succeed, got %v", err)
	}
	if p.Play(CueFound) {
		t.Error("Expected disabled player to drop cues")
	}
}

func TestPlayerThrottlesRepeats(t *testing.T) {
	p := NewPlayer(nil)
	var queued []beep.Streamer
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }
	p.sink = func(s beep.Streamer) { queued = append(queued, s) }
	p.initialized = true

	if !p.Play(CueToggle) {
		t.Fatal("Expected first cue to play")
	}
	clock = clock.Add(10 * time.Millisecond)
	if p.Play(CueToggle) {
		t.Error("Expected repeat within gap to be dropped")
	}
	if !p.Play(CueFound) {
		t.Error("Expected a different cue to play")
	}
	clock = clock.Add(minCueGap)
	if !p.Play(CueToggle) {
		t.Error("Expected repeat after gap to play")
	}
	if len(queued) != 3 {
		t.Errorf("Expected 3 queued streamers, got %d", len(queued))
	}
}
