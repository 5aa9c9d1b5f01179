package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dhconnelly/rtreego"

	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
)

// ErrEmptyWall is returned when a wall rectangle covers no cells
var ErrEmptyWall = errors.New("wall covers no cells")

// cellInset shrinks query rectangles so walls sharing an edge with a cell do not match it
const cellInset = 0.25

// wallEntry wraps a wall rectangle for R-tree storage
type wallEntry struct {
	area core.Area
	seq  int
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (w *wallEntry) Bounds() rtreego.Rect {
	return w.bbox
}

// Walls indexes rectangular obstacle regions for cell and region queries
type Walls struct {
	tree    *rtreego.Rtree
	entries []*wallEntry
	nextSeq int
}

// NewWalls creates an empty wall index
func NewWalls() *Walls {
	return &Walls{
		tree: rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
	}
}

// Add inserts a wall rectangle
func (w *Walls) Add(area core.Area) error {
	if area.Empty() {
		return fmt.Errorf("wall %+v: %w", area, ErrEmptyWall)
	}
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(area.X), float64(area.Y)},
		[]float64{float64(area.Width), float64(area.Height)},
	)
	if err != nil {
		return fmt.Errorf("wall %+v: %w", area, err)
	}

	entry := &wallEntry{area: area, seq: w.nextSeq, bbox: bbox}
	w.nextSeq++
	w.tree.Insert(entry)
	w.entries = append(w.entries, entry)
	return nil
}

// Len returns the number of wall rectangles
func (w *Walls) Len() int {
	return len(w.entries)
}

// Erase removes every wall overlapping region and returns the removed rectangles in insertion order
func (w *Walls) Erase(region core.Area) []core.Area {
	hits := w.search(region)
	if len(hits) == 0 {
		return nil
	}

	removed := make(map[*wallEntry]bool, len(hits))
	areas := make([]core.Area, len(hits))
	for i, e := range hits {
		w.tree.Delete(e)
		removed[e] = true
		areas[i] = e.area
	}
	kept := w.entries[:0]
	for _, e := range w.entries {
		if !removed[e] {
			kept = append(kept, e)
		}
	}
	clear(w.entries[len(kept):])
	w.entries = kept
	return areas
}

// Rasterize returns every in-bounds cell covered by a wall, in row-major order without duplicates
func (w *Walls) Rasterize(width, height int) []core.Point {
	cells := navigation.NewObstacles(width, height)
	for _, e := range w.search(core.Area{Width: width, Height: height}) {
		e.area.Clip(width, height).Each(func(p core.Point) {
			cells.Add(p)
		})
	}
	return cells.Points()
}

func (w *Walls) search(region core.Area) []*wallEntry {
	if region.Empty() || len(w.entries) == 0 {
		return nil
	}
	query, err := rtreego.NewRect(
		rtreego.Point{float64(region.X) + cellInset, float64(region.Y) + cellInset},
		[]float64{float64(region.Width) - 2*cellInset, float64(region.Height) - 2*cellInset},
	)
	if err != nil {
		return nil
	}

	results := w.tree.SearchIntersect(query)
	hits := make([]*wallEntry, 0, len(results))
	for _, item := range results {
		hits = append(hits, item.(*wallEntry))
	}
	// Tree order depends on node splits, callers expect insertion order
	slices.SortFunc(hits, func(a, b *wallEntry) int {
		return a.seq - b.seq
	})
	return hits
}
