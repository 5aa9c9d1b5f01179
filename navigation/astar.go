package navigation

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/astar-grid/core"
)

var (
	ErrInvalidGrid = errors.New("grid dimensions must be positive")
	ErrOutOfBounds = errors.New("point outside grid")
)

// State is the engine's search lifecycle position
type State uint8

const (
	StateIdle State = iota
	StateScanning
	StateFound
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Status distinguishes a found path from an exhausted frontier
type Status uint8

const (
	StatusUnreachable Status = iota
	StatusFound
)

func (s Status) String() string {
	if s == StatusFound {
		return "found"
	}
	return "unreachable"
}

// Result is the outcome of one Scan
type Result struct {
	Status     Status
	Start, End core.Point
	Resolved   []core.Point  // Goal-adjacent first, start excluded
	Cost       float64       // Step costs from start onto the goal
	Expanded   int           // Nodes popped and closed
	Duration   time.Duration // Wall time spent inside the expansion loop
}

// Found reports whether the goal was reached
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// Path returns start→goal order including both endpoints, nil if unreachable
func (r Result) Path() []core.Point {
	if r.Status != StatusFound {
		return nil
	}
	path := make([]core.Point, 0, len(r.Resolved)+2)
	path = append(path, r.Start)
	for i := len(r.Resolved) - 1; i >= 0; i-- {
		path = append(path, r.Resolved[i])
	}
	if r.End != r.Start {
		path = append(path, r.End)
	}
	return path
}

// Steps returns the number of moves on the path, -1 if unreachable
func (r Result) Steps() int {
	if r.Status != StatusFound {
		return -1
	}
	return len(r.Path()) - 1
}

// Options configures an Engine
type Options struct {
	Heuristic Heuristic
	Logger    *log.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// WithHeuristic replaces the default octile estimate
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger routes search diagnostics to logger
func WithLogger(logger *log.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// Neighbor offsets, orthogonal order: up, down, left, right
const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
)

var orthogonalOffsets = [4]core.Point{
	dirUp:    {X: 0, Y: -1},
	dirDown:  {X: 0, Y: 1},
	dirLeft:  {X: -1, Y: 0},
	dirRight: {X: 1, Y: 0},
}

// Diagonal order: up-right, up-left, down-right, down-left
// A diagonal is skipped only when both flanking orthogonal cells are blocked
var diagonalMoves = [4]struct {
	offset         core.Point
	flankA, flankB int
}{
	{offset: core.Point{X: 1, Y: -1}, flankA: dirUp, flankB: dirRight},
	{offset: core.Point{X: -1, Y: -1}, flankA: dirUp, flankB: dirLeft},
	{offset: core.Point{X: 1, Y: 1}, flankA: dirDown, flankB: dirRight},
	{offset: core.Point{X: -1, Y: 1}, flankA: dirDown, flankB: dirLeft},
}

// Engine is a single-threaded grid A* search
// Configuration is mutated between searches only; Scan runs to completion before returning
type Engine struct {
	width, height int
	start, end    core.Point
	obstacles     *Obstacles
	heuristic     Heuristic
	logger        *log.Logger

	// Search state, rebuilt by Reset
	nodes    nodeArena
	frontier *MinHeap[frontierEntry]
	open     map[int]int32 // Grid index -> node handle
	closed   []bool
	expanded []core.Point // Cells in pop order

	state    State
	primed   bool
	found    bool
	current  int32
	resolved []core.Point
	result   Result
}

// NewEngine creates an engine for a width×height grid with start and end points
func NewEngine(width, height int, start, end core.Point, options ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidGrid)
	}

	// --- Apply options ---
	engineOptions := Options{
		Heuristic: Octile,
		Logger:    log.Default(),
	}
	for _, option := range options {
		option(&engineOptions)
	}
	if engineOptions.Heuristic == nil {
		engineOptions.Heuristic = Octile
	}
	if engineOptions.Logger == nil {
		engineOptions.Logger = log.Default()
	}

	size := width * height
	return &Engine{
		width:     width,
		height:    height,
		start:     start,
		end:       end,
		obstacles: NewObstacles(width, height),
		heuristic: engineOptions.Heuristic,
		logger:    engineOptions.Logger,
		nodes:     make(nodeArena, 0, size/4+1),
		frontier:  NewMinHeap(entryKey, size/4+1),
		open:      make(map[int]int32),
		closed:    make([]bool, size),
		current:   NoParent,
	}, nil
}

// --- Configuration ---

// SetGridSize changes grid dimensions, obstacles outside the new bounds are dropped
func (e *Engine) SetGridSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidGrid)
	}
	e.width, e.height = width, height
	e.obstacles.Resize(width, height)
	size := width * height
	if cap(e.closed) < size {
		e.closed = make([]bool, size)
	} else {
		e.closed = e.closed[:size]
	}
	e.invalidate()
	return nil
}

// SetStart moves the start point
func (e *Engine) SetStart(p core.Point) {
	e.start = p
	e.invalidate()
}

// SetEnd moves the goal point
func (e *Engine) SetEnd(p core.Point) {
	e.end = p
	e.invalidate()
}

// SetHeuristic swaps the estimate used for subsequent searches
func (e *Engine) SetHeuristic(heuristic Heuristic) {
	if heuristic == nil {
		heuristic = Octile
	}
	e.heuristic = heuristic
	e.invalidate()
}

// AddObstacle blocks p, false if out of bounds or already blocked
func (e *Engine) AddObstacle(p core.Point) bool {
	e.invalidate()
	return e.obstacles.Add(p)
}

// RemoveObstacle unblocks p, false if p was free
func (e *Engine) RemoveObstacle(p core.Point) bool {
	e.invalidate()
	return e.obstacles.Remove(p)
}

// ToggleObstacle flips p and returns whether it is now blocked
func (e *Engine) ToggleObstacle(p core.Point) bool {
	e.invalidate()
	return e.obstacles.Toggle(p)
}

// ReplaceObstacles swaps the whole obstacle set
func (e *Engine) ReplaceObstacles(points []core.Point) {
	e.invalidate()
	e.obstacles.Replace(points)
}

// ClearObstacles removes every obstacle
func (e *Engine) ClearObstacles() {
	e.invalidate()
	e.obstacles.Clear()
}

// invalidate forces the next Scan to start from a fresh Reset and drops
// outputs that described the previous configuration
func (e *Engine) invalidate() {
	e.primed = false
	e.state = StateIdle
	e.found = false
	e.resolved = e.resolved[:0]
	e.expanded = e.expanded[:0]
	e.current = NoParent
}

// --- Accessors ---

func (e *Engine) GridSize() (width, height int) { return e.width, e.height }
func (e *Engine) Start() core.Point            { return e.start }
func (e *Engine) End() core.Point              { return e.end }
func (e *Engine) State() State                 { return e.state }
func (e *Engine) Found() bool                  { return e.found }

// IsObstacle reports whether p is blocked
func (e *Engine) IsObstacle(p core.Point) bool {
	return e.obstacles.Has(p)
}

// ObstacleCount returns the number of blocked cells
func (e *Engine) ObstacleCount() int {
	return e.obstacles.Len()
}

// EachObstacle visits blocked cells in index order
func (e *Engine) EachObstacle(fn func(p core.Point)) {
	e.obstacles.Each(fn)
}

// Obstacles returns a copy of the blocked cells
func (e *Engine) Obstacles() []core.Point {
	return e.obstacles.Points()
}

// ResolvedPath returns a copy of the last resolved path, goal-adjacent first
func (e *Engine) ResolvedPath() []core.Point {
	path := make([]core.Point, len(e.resolved))
	copy(path, e.resolved)
	return path
}

// Expanded returns cells in the order they were closed by the last search
func (e *Engine) Expanded() []core.Point {
	cells := make([]core.Point, len(e.expanded))
	copy(cells, e.expanded)
	return cells
}

// Current returns the last popped cell, false before any expansion
func (e *Engine) Current() (core.Point, bool) {
	if e.current == NoParent || int(e.current) >= len(e.nodes) {
		return core.Point{}, false
	}
	return e.nodes[e.current].Pos, true
}

// --- Search ---

// Reset discards the previous search and seeds the frontier with a parentless start node
func (e *Engine) Reset() {
	e.nodes = e.nodes[:0]
	e.frontier.Reset()
	clear(e.open)
	clear(e.closed)
	e.expanded = e.expanded[:0]
	e.resolved = e.resolved[:0]
	e.found = false
	e.current = NoParent
	e.result = Result{}

	handle := e.nodes.alloc(Node{Pos: e.start, Parent: NoParent})
	e.open[core.ToIndex(e.width, e.start)] = handle
	e.frontier.Push(frontierEntry{handle: handle, f: 0})

	e.state = StateIdle
	e.primed = true
}

// Scan runs the expansion loop until the goal is reached or the frontier is exhausted
// An unreachable goal is a normal Result; errors are reserved for invalid configuration
// and broken invariants. Scanning again after a finished search returns the same Result
func (e *Engine) Scan() (Result, error) {
	if e.primed && (e.state == StateFound || e.state == StateExhausted) {
		return e.snapshot(), nil
	}
	if err := e.validate(); err != nil {
		return Result{}, err
	}
	if !e.primed {
		e.Reset()
	}

	e.state = StateScanning
	began := time.Now()

	if e.start == e.end {
		e.current = 0
		return e.finish(0, began), nil
	}

	for {
		entry, ok := e.frontier.Pop()
		if !ok {
			return e.exhaust(began), nil
		}

		node := e.nodes[entry.handle]
		idx := core.ToIndex(e.width, node.Pos)

		// Stale entry left behind by relaxation
		if e.closed[idx] || entry.f != node.F {
			continue
		}

		delete(e.open, idx)
		e.closed[idx] = true
		e.current = entry.handle
		e.expanded = append(e.expanded, node.Pos)

		var blocked [4]bool
		for dir, offset := range orthogonalOffsets {
			candidate := node.Pos.Add(offset)
			if candidate == e.end {
				return e.finish(CostOrthogonal, began), nil
			}
			isBlocked, err := e.checkOffset(CostOrthogonal, candidate, entry.handle)
			if err != nil {
				return e.abort(err)
			}
			blocked[dir] = isBlocked
		}

		for _, move := range diagonalMoves {
			if blocked[move.flankA] && blocked[move.flankB] {
				continue
			}
			candidate := node.Pos.Add(move.offset)
			if candidate == e.end {
				return e.finish(CostDiagonal, began), nil
			}
			if _, err := e.checkOffset(CostDiagonal, candidate, entry.handle); err != nil {
				return e.abort(err)
			}
		}
	}
}

// checkOffset expands one neighbor of current and reports whether it is blocked
func (e *Engine) checkOffset(displacement float64, candidate core.Point, current int32) (bool, error) {
	if !candidate.In(e.width, e.height) {
		return true, nil
	}
	idx := core.ToIndex(e.width, candidate)
	if e.closed[idx] {
		return true, nil
	}
	if e.obstacles.Has(candidate) {
		return true, nil
	}

	if handle, ok := e.open[idx]; ok {
		if e.nodes[current].G+displacement < e.nodes[handle].G {
			e.nodes[handle].Parent = current
			if err := e.nodes.calculateCost(handle, displacement, e.end, e.heuristic); err != nil {
				return false, err
			}
			// Older entry for this handle goes stale and is skipped on pop
			e.frontier.Push(frontierEntry{handle: handle, f: e.nodes[handle].F})
		}
		return false, nil
	}

	handle := e.nodes.alloc(Node{Pos: candidate, Parent: current})
	if err := e.nodes.calculateCost(handle, displacement, e.end, e.heuristic); err != nil {
		return false, err
	}
	e.frontier.Push(frontierEntry{handle: handle, f: e.nodes[handle].F})
	e.open[idx] = handle
	return false, nil
}

// finish records the resolved path by walking parents from the goal-adjacent node
func (e *Engine) finish(lastStep float64, began time.Time) Result {
	e.found = true
	e.state = StateFound

	e.resolved = e.resolved[:0]
	for h := e.current; h != NoParent && e.nodes[h].Pos != e.start; h = e.nodes[h].Parent {
		e.resolved = append(e.resolved, e.nodes[h].Pos)
	}

	e.result = Result{
		Status:   StatusFound,
		Start:    e.start,
		End:      e.end,
		Cost:     e.nodes[e.current].G + lastStep,
		Expanded: len(e.expanded),
		Duration: time.Since(began),
	}
	return e.snapshot()
}

func (e *Engine) exhaust(began time.Time) Result {
	e.state = StateExhausted
	e.result = Result{
		Status:   StatusUnreachable,
		Start:    e.start,
		End:      e.end,
		Expanded: len(e.expanded),
		Duration: time.Since(began),
	}
	e.logger.Printf("navigation: target %v not found from %v, frontier exhausted after %d expansions",
		e.end, e.start, len(e.expanded))
	return e.snapshot()
}

// abort leaves the engine unprimed so the next Scan rebuilds from scratch
func (e *Engine) abort(err error) (Result, error) {
	e.invalidate()
	return Result{}, fmt.Errorf("scan aborted: %w", err)
}

func (e *Engine) snapshot() Result {
	r := e.result
	r.Resolved = e.ResolvedPath()
	return r
}

func (e *Engine) validate() error {
	if e.width <= 0 || e.height <= 0 {
		return fmt.Errorf("%dx%d: %w", e.width, e.height, ErrInvalidGrid)
	}
	if !e.start.In(e.width, e.height) {
		return fmt.Errorf("start %v on %dx%d grid: %w", e.start, e.width, e.height, ErrOutOfBounds)
	}
	if !e.end.In(e.width, e.height) {
		return fmt.Errorf("end %v on %dx%d grid: %w", e.end, e.width, e.height, ErrOutOfBounds)
	}
	return nil
}
