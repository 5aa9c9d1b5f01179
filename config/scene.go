package config

import (
	"fmt"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/layout"
	"github.com/lixenwraith/astar-grid/navigation"
)

// Scene is the grid content a configuration resolves to
type Scene struct {
	Width, Height int
	Start, End    core.Point
	Obstacles     []core.Point
	Heuristic     navigation.Heuristic

	// Walls indexes the configured wall rectangles for later region erase
	Walls *layout.Walls

	// Maze is set when the maze generator produced the obstacles
	Maze *layout.Maze
}

// Scene rasterizes walls and, when enabled, generates the maze.
// Maze endpoints are snapped to rooms so the configured points may move.
func (c *Config) Scene() (*Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Width:     c.Grid.Width,
		Height:    c.Grid.Height,
		Start:     c.Start(),
		End:       c.End(),
		Heuristic: navigation.HeuristicByName(c.Search.Heuristic),
	}

	s.Walls = layout.NewWalls()
	for i, w := range c.Walls {
		if err := s.Walls.Add(core.Area{X: w.X, Y: w.Y, Width: w.W, Height: w.H}); err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
	}

	if c.Maze.Enabled {
		start, end := s.Start, s.End
		s.Maze = layout.GenerateMaze(layout.MazeConfig{
			Width:    s.Width,
			Height:   s.Height,
			Braiding: c.Maze.Braiding,
			Start:    &start,
			End:      &end,
			Seed:     c.Maze.Seed,
		})
		s.Start, s.End = s.Maze.Start, s.Maze.End
	}

	cells := navigation.NewObstacles(s.Width, s.Height)
	if s.Maze != nil {
		for _, p := range s.Maze.Obstacles() {
			cells.Add(p)
		}
	}
	for _, p := range s.Walls.Rasterize(s.Width, s.Height) {
		cells.Add(p)
	}
	s.Obstacles = cells.Points()
	return s, nil
}

// Engine builds a search engine loaded with the scene, opts apply after the scene heuristic
func (s *Scene) Engine(opts ...navigation.Option) (*navigation.Engine, error) {
	opts = append([]navigation.Option{navigation.WithHeuristic(s.Heuristic)}, opts...)
	e, err := navigation.NewEngine(s.Width, s.Height, s.Start, s.End, opts...)
	if err != nil {
		return nil, err
	}
	e.ReplaceObstacles(s.Obstacles)
	return e, nil
}
