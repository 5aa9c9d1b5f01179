package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ungerik/go3d/vec2"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
)

// Summary describes the geometry and effort of one search
type Summary struct {
	Found       bool
	Steps       int
	Orthogonals int
	Diagonals   int
	Turns       int     // Direction changes between consecutive steps
	Turning     float64 // Total absolute heading change in degrees
	Cost        float64
	Straight    float32 // Euclidean start-to-goal distance
	Travelled   float32 // Euclidean length of the path
	Expanded    int
	Duration    time.Duration
}

// Detour returns travelled over straight-line length, 1 for a degenerate search
func (s Summary) Detour() float32 {
	if !s.Found || s.Straight == 0 {
		return 1
	}
	return s.Travelled / s.Straight
}

func toVec(p core.Point) vec2.T {
	return vec2.T{float32(p.X), float32(p.Y)}
}

// Summarize measures the resolved path of a search result
func Summarize(res navigation.Result) Summary {
	start, end := toVec(res.Start), toVec(res.End)
	span := vec2.Sub(&end, &start)
	s := Summary{
		Found:    res.Found(),
		Cost:     res.Cost,
		Straight: span.Length(),
		Expanded: res.Expanded,
		Duration: res.Duration,
	}
	if !s.Found {
		s.Steps = -1
		return s
	}

	path := res.Path()
	s.Steps = len(path) - 1

	var prev vec2.T
	for i := 1; i < len(path); i++ {
		from, to := toVec(path[i-1]), toVec(path[i])
		step := vec2.Sub(&to, &from)
		s.Travelled += step.Length()
		if step[0] != 0 && step[1] != 0 {
			s.Diagonals++
		} else {
			s.Orthogonals++
		}

		if i > 1 && step != prev {
			s.Turns++
			s.Turning += heading(&prev, &step)
		}
		prev = step
	}
	return s
}

// heading returns the angle between two non-zero step vectors in degrees
func heading(a, b *vec2.T) float64 {
	cos := float64(vec2.Dot(a, b)) / float64(a.Length()*b.Length())
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

func (s Summary) String() string {
	var b strings.Builder
	if !s.Found {
		fmt.Fprintf(&b, "unreachable after %d expansions (%v)", s.Expanded, s.Duration)
		return b.String()
	}
	fmt.Fprintf(&b, "steps %d (%d orthogonal, %d diagonal), cost %.1f, turns %d (%.0f°)",
		s.Steps, s.Orthogonals, s.Diagonals, s.Cost, s.Turns, s.Turning)
	fmt.Fprintf(&b, ", length %.2f vs straight %.2f (x%.2f)", s.Travelled, s.Straight, s.Detour())
	fmt.Fprintf(&b, ", %d expansions (%v)", s.Expanded, s.Duration)
	return b.String()
}
