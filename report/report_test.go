package report

import (
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
)

func scan(t *testing.T, w, h int, start, end core.Point, obstacles ...core.Point) navigation.Result {
	t.Helper()
	e, err := navigation.NewEngine(w, h, start, end)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	e.ReplaceObstacles(obstacles)
	res, err := e.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return res
}

func TestSummarize_StraightDiagonal(t *testing.T) {
	s := Summarize(scan(t, 10, 10, core.Pt(5, 5), core.Pt(0, 0)))

	if !s.Found || s.Steps != 5 || s.Diagonals != 5 || s.Orthogonals != 0 {
		t.Fatalf("Unexpected summary %+v", s)
	}
	if s.Turns != 0 || s.Turning != 0 {
		t.Errorf("Expected no turns, got %d (%f)", s.Turns, s.Turning)
	}
	if math.Abs(float64(s.Travelled-s.Straight)) > 1e-4 {
		t.Errorf("Expected travelled == straight, got %f vs %f", s.Travelled, s.Straight)
	}
	if math.Abs(float64(s.Detour())-1) > 1e-4 {
		t.Errorf("Expected detour 1, got %f", s.Detour())
	}
	if math.Abs(s.Cost-7.0) > 1e-9 {
		t.Errorf("Expected cost 7.0, got %f", s.Cost)
	}
}

func TestSummarize_CountsTurns(t *testing.T) {
	// 3x3 with a single corner blocker: straight right then down is forced around (1,1)
	res := scan(t, 3, 3, core.Pt(0, 0), core.Pt(2, 2), core.Pt(1, 1), core.Pt(1, 2))
	s := Summarize(res)
	if !s.Found {
		t.Fatal("Expected path")
	}
	if s.Steps != len(res.Path())-1 {
		t.Errorf("Expected steps %d, got %d", len(res.Path())-1, s.Steps)
	}
	if s.Orthogonals+s.Diagonals != s.Steps {
		t.Errorf("Step classes do not add up: %+v", s)
	}
	if s.Turns == 0 || s.Turning <= 0 {
		t.Errorf("Expected at least one turn, got %+v", s)
	}
	if s.Travelled <= s.Straight {
		t.Errorf("Expected detour, got travelled %f straight %f", s.Travelled, s.Straight)
	}
}

func TestSummarize_Unreachable(t *testing.T) {
	res := scan(t, 5, 5, core.Pt(0, 0), core.Pt(4, 4),
		core.Pt(3, 3), core.Pt(4, 3), core.Pt(3, 4))
	s := Summarize(res)
	if s.Found || s.Steps != -1 {
		t.Errorf("Expected unreachable summary, got %+v", s)
	}
	if s.Detour() != 1 {
		t.Errorf("Expected detour 1, got %f", s.Detour())
	}
	if !strings.HasPrefix(s.String(), "unreachable") {
		t.Errorf("Unexpected text %q", s.String())
	}
}

func TestHeading(t *testing.T) {
	s := Summarize(navigation.Result{
		Status:   navigation.StatusFound,
		Start:    core.Pt(0, 0),
		End:      core.Pt(2, 1),
		Resolved: []core.Point{{X: 1, Y: 1}, {X: 1, Y: 0}},
	})
	// (0,0)->(1,0)->(1,1)->(2,1): right, down, right
	if s.Turns != 2 || math.Abs(s.Turning-180) > 1e-3 {
		t.Errorf("Expected 2 turns totalling 180°, got %d (%f)", s.Turns, s.Turning)
	}
}
