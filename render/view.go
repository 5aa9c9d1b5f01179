package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/astar-grid/core"
)

// View is the read-only engine state a renderer draws, satisfied by *navigation.Engine
type View interface {
	GridSize() (width, height int)
	Start() core.Point
	End() core.Point
	Found() bool
	EachObstacle(fn func(p core.Point))
	ResolvedPath() []core.Point
	Expanded() []core.Point
}

// Palette
var (
	colorObstacle = tcell.NewHexColor(0x787878)
	colorVisited  = tcell.NewHexColor(0xa9b598)
	colorStart    = tcell.NewHexColor(0x32a852)
	colorEnd      = tcell.NewHexColor(0xd15a32)
	colorPath     = tcell.NewHexColor(0xed8cdb)
	colorFloor    = tcell.NewHexColor(0x1c1c1c)
)

// FullPath returns start, the resolved cells in walking order and the goal, nil until found
func FullPath(v View) []core.Point {
	if !v.Found() {
		return nil
	}
	resolved := v.ResolvedPath()
	path := make([]core.Point, 0, len(resolved)+2)
	path = append(path, v.Start())
	for i := len(resolved) - 1; i >= 0; i-- {
		path = append(path, resolved[i])
	}
	if v.End() != v.Start() {
		path = append(path, v.End())
	}
	return path
}
