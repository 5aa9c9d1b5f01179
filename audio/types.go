package audio

import "time"

// Cue is a short sound tied to an engine event
type Cue int

const (
	CueFound       Cue = iota // Path resolved
	CueUnreachable            // Frontier exhausted
	CueMaze                   // Maze regenerated
	CueToggle                 // Obstacle painted or erased
	cueCount
)

var cueNames = [cueCount]string{"found", "unreachable", "maze", "toggle"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Cue timing
const (
	foundNote1Duration = 90 * time.Millisecond
	foundNote2Duration = 260 * time.Millisecond
	foundAttack        = 5 * time.Millisecond
	foundNote1Release  = 40 * time.Millisecond
	foundNote2Release  = 200 * time.Millisecond

	unreachableDuration = 220 * time.Millisecond
	unreachableAttack   = 5 * time.Millisecond
	unreachableRelease  = 60 * time.Millisecond

	mazeDuration = 300 * time.Millisecond
	mazeAttack   = 150 * time.Millisecond
	mazeRelease  = 150 * time.Millisecond

	toggleDuration = 25 * time.Millisecond
	toggleAttack   = 2 * time.Millisecond
	toggleRelease  = 15 * time.Millisecond

	// minCueGap drops repeats of the same cue closer than this
	minCueGap = 50 * time.Millisecond
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns audio enabled at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		CueVolumes:   [cueCount]float64{0.8, 0.6, 0.4, 0.2},
	}
}
