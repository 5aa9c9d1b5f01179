package layout

import (
	"testing"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
)

func TestGenerateMaze_Deterministic(t *testing.T) {
	cfg := MazeConfig{Width: 21, Height: 15, Braiding: 0.3, Seed: 99}
	a := GenerateMaze(cfg).Obstacles()
	b := GenerateMaze(cfg).Obstacles()

	if len(a) != len(b) {
		t.Fatalf("Expected identical mazes, got %d and %d walls", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Wall %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGenerateMaze_PerfectMazeConnectsAllRooms(t *testing.T) {
	m := GenerateMaze(MazeConfig{Width: 21, Height: 15, Seed: 5})

	// Every room of the odd lattice is a passage and the tree spans them all
	rooms := 0
	for y := 1; y < 14; y += 2 {
		for x := 1; x < 20; x += 2 {
			if m.Wall(core.Pt(x, y)) {
				t.Fatalf("Expected room at (%d,%d)", x, y)
			}
			rooms++
		}
	}

	passages := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.Wall(core.Pt(x, y)) {
				passages++
			}
		}
	}
	// A spanning tree over n rooms opens exactly n-1 connectors
	if passages != 2*rooms-1 {
		t.Errorf("Expected %d passages, got %d", 2*rooms-1, passages)
	}
}

func TestGenerateMaze_EvenSizeKeepsBorderWalls(t *testing.T) {
	m := GenerateMaze(MazeConfig{Width: 12, Height: 8, Seed: 3})
	if m.Width != 12 || m.Height != 8 {
		t.Fatalf("Expected 12x8, got %dx%d", m.Width, m.Height)
	}
	for y := 0; y < m.Height; y++ {
		if !m.Wall(core.Pt(11, y)) || !m.Wall(core.Pt(10, y)) {
			t.Errorf("Expected wall column outside the lattice at row %d", y)
		}
	}
	if m.End != core.Pt(9, 5) {
		t.Errorf("Expected end (9,5), got %v", m.End)
	}
}

func TestGenerateMaze_NoPlazas(t *testing.T) {
	m := GenerateMaze(MazeConfig{Width: 31, Height: 21, Braiding: 1, Seed: 17})
	for y := 0; y < m.Height-1; y++ {
		for x := 0; x < m.Width-1; x++ {
			if !m.Wall(core.Pt(x, y)) && !m.Wall(core.Pt(x+1, y)) &&
				!m.Wall(core.Pt(x, y+1)) && !m.Wall(core.Pt(x+1, y+1)) {
				t.Fatalf("Plaza at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateMaze_SnapsEndpointsToRooms(t *testing.T) {
	start, end := core.Pt(0, 4), core.Pt(40, 40)
	m := GenerateMaze(MazeConfig{Width: 15, Height: 11, Start: &start, End: &end, Seed: 8})
	if m.Start != core.Pt(1, 3) {
		t.Errorf("Expected start (1,3), got %v", m.Start)
	}
	if m.End != core.Pt(13, 9) {
		t.Errorf("Expected end (13,9), got %v", m.End)
	}
	if len(m.Solution) == 0 || m.Solution[0] != m.Start || m.Solution[len(m.Solution)-1] != m.End {
		t.Errorf("Expected solution from start to end, got %v", m.Solution)
	}
}

func TestGenerateMaze_EngineBeatsOrthogonalSolution(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := GenerateMaze(MazeConfig{Width: 25, Height: 19, Braiding: 0.5, Seed: seed})

		e, err := navigation.NewEngine(m.Width, m.Height, m.Start, m.End)
		if err != nil {
			t.Fatalf("NewEngine failed: %v", err)
		}
		e.ReplaceObstacles(m.Obstacles())

		res, err := e.Scan()
		if err != nil {
			t.Fatalf("Seed %d: Scan failed: %v", seed, err)
		}
		if !res.Found() {
			t.Fatalf("Seed %d: expected maze to be solvable", seed)
		}
		// Corner cuts can only shorten the orthogonal route
		orthogonal := float64(len(m.Solution) - 1)
		if res.Cost > orthogonal+1e-9 {
			t.Errorf("Seed %d: expected cost <= %f, got %f", seed, orthogonal, res.Cost)
		}
	}
}
