package engine

import (
	"math/rand"
	"time"
)

// Engine owns the full simulation state of one instance: grid, actor, goal,
// mode, phase, score and the input accumulator. It is built for
// single-threaded, single-owner use; the caller serializes Update, Render and
// the mutators per instance. No method blocks or performs I/O.
type Engine struct {
	grid  Grid
	actor *Actor
	goal  Cell
	mode  Mode
	phase Phase
	score int
	tick  uint64
	input inputTranslator
	rng   *rand.Rand
	cfg   *Config
}

// NewEngine creates a new simulation instance from the provided configuration
func NewEngine(config *Config) (*Engine, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mode := config.StartMode
	if mode == "" {
		mode = ModeManual
	}

	e := &Engine{
		grid:  Grid{Width: config.Width, Height: config.Height},
		mode:  mode,
		phase: PhaseRunning,
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   config,
	}
	e.actor = newActor(e.grid.Center())
	e.goal = e.actor.Head()
	e.placeGoal()

	return e, nil
}

// NewEngineWithDefaults creates a new simulation instance with the built-in
// default configuration
func NewEngineWithDefaults() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid
		panic(err)
	}
	return e
}

// Update advances the simulation by exactly one tick. Once the phase is
// ended the call is an idempotent no-op. Boundary hits, self-collisions and
// illegal reversals are game rules resolved here, never errors.
func (e *Engine) Update() {
	if e.phase == PhaseEnded {
		return
	}
	e.tick++

	var intent Direction
	if e.mode == ModeAutomatic {
		e.input.discard()
		intent = e.autopilotIntent()
	} else {
		intent = e.input.Reduce(e.actor.Facing(), e.actor.Len())
	}

	dir := intent
	if dir == DirNone {
		dir = e.actor.Facing()
	}
	if dir == DirNone {
		// Not yet started: no intent and no facing, the actor stays put
		return
	}

	next, ok := e.grid.Adjacent(e.actor.Head(), dir)
	grow := ok && next == e.goal
	if !ok || e.actor.collides(next, grow) {
		e.phase = PhaseEnded
		return
	}

	e.actor.advance(next, grow)
	e.actor.facing = dir
	if grow {
		e.score++
		e.placeGoal()
	}
}

// Render produces an immutable snapshot of the current state. It never
// mutates the instance; calling it twice without an intervening Update yields
// identical snapshots.
func (e *Engine) Render() Snapshot {
	return Snapshot{
		Width:  e.grid.Width,
		Height: e.grid.Height,
		Actor:  e.actor.Cells(),
		Goal:   e.goal,
		Score:  e.score,
		Phase:  e.phase,
		Mode:   e.mode,
		Tick:   e.tick,
	}
}

// Resize updates the grid bounds and rescales the actor and goal
// proportionally onto the new grid. Dimensions outside the valid range are
// clamped rather than rejected; resize itself never fails. A goal that lands
// on the actor after rescaling is re-placed.
func (e *Engine) Resize(width, height int) {
	width = clampDimension(width)
	height = clampDimension(height)
	if width == e.grid.Width && height == e.grid.Height {
		return
	}

	old := e.grid
	e.grid = Grid{Width: width, Height: height}
	e.actor.rescale(e.grid, old)
	e.goal = e.grid.Rescale(e.goal, old)
	if e.actor.Occupies(e.goal) {
		e.placeGoal()
	}
}

// SetDirection records a discrete directional command for the next Update.
// DirNone is accepted from the boundary but carries no command.
func (e *Engine) SetDirection(d Direction) {
	e.input.Command(d)
}

// SetMode switches the source of movement intent. Switching never resets the
// simulation.
func (e *Engine) SetMode(m Mode) {
	e.mode = m
}

// Touch feeds one pointer event into the input translator. Coordinates are
// in the surface space established by the most recent create/resize.
func (e *Engine) Touch(x, y float64, action TouchAction) {
	e.input.Pointer(x, y, action)
}

// Grid returns the current grid bounds
func (e *Engine) Grid() Grid {
	return e.grid
}

// Goal returns the current goal cell
func (e *Engine) Goal() Cell {
	return e.goal
}

// Score returns the current score
func (e *Engine) Score() int {
	return e.score
}

// Phase returns the current lifecycle phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Mode returns the current intent source
func (e *Engine) Mode() Mode {
	return e.mode
}

// Tick returns the number of Update calls processed while running
func (e *Engine) Tick() uint64 {
	return e.tick
}

// ActorCells returns a copy of the actor's occupied cells, head first
func (e *Engine) ActorCells() []Cell {
	return e.actor.Cells()
}

// Config returns the configuration the instance was created from
func (e *Engine) Config() *Config {
	return e.cfg
}

func clampDimension(v int) int {
	if v < MinGridSize {
		return MinGridSize
	}
	if v > MaxGridSize {
		return MaxGridSize
	}
	return v
}
