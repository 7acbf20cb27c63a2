package engine

// Actor is the controlled entity: an ordered, non-empty sequence of occupied
// cells (head first) plus the current facing direction. Consecutive cells are
// grid-adjacent except transiently after a resize, which rescales the body.
type Actor struct {
	cells  []Cell
	facing Direction
}

// newActor creates a length-1 actor at the given cell, facing nowhere
func newActor(head Cell) *Actor {
	return &Actor{
		cells:  []Cell{head},
		facing: DirNone,
	}
}

// Head returns the most recently added cell
func (a *Actor) Head() Cell {
	return a.cells[0]
}

// Tail returns the oldest cell
func (a *Actor) Tail() Cell {
	return a.cells[len(a.cells)-1]
}

// Len returns the number of occupied cells
func (a *Actor) Len() int {
	return len(a.cells)
}

// Facing returns the current facing direction
func (a *Actor) Facing() Direction {
	return a.facing
}

// Cells returns a copy of the occupied cells, head first
func (a *Actor) Cells() []Cell {
	out := make([]Cell, len(a.cells))
	copy(out, a.cells)
	return out
}

// Occupies reports whether the actor occupies the given cell
func (a *Actor) Occupies(c Cell) bool {
	for _, cell := range a.cells {
		if cell == c {
			return true
		}
	}
	return false
}

// collides reports whether stepping onto next would hit the actor's own body.
// When the actor is not growing this tick the tail cell is excluded, since it
// vacates on the same tick the head arrives.
func (a *Actor) collides(next Cell, grow bool) bool {
	last := len(a.cells)
	if !grow {
		last--
	}
	for i := 0; i < last; i++ {
		if a.cells[i] == next {
			return true
		}
	}
	return false
}

// advance pushes next as the new head. When grow is true the tail is kept and
// the actor gains a segment; otherwise the tail cell is dropped.
func (a *Actor) advance(next Cell, grow bool) {
	if grow {
		a.cells = append([]Cell{next}, a.cells...)
		return
	}
	copy(a.cells[1:], a.cells[:len(a.cells)-1])
	a.cells[0] = next
}

// rescale maps every body cell onto the new grid and collapses consecutive
// duplicates produced by downscaling, so the body never reports a false
// self-collision after a resize.
func (a *Actor) rescale(to, from Grid) {
	rescaled := make([]Cell, 0, len(a.cells))
	for _, c := range a.cells {
		mapped := to.Rescale(c, from)
		if n := len(rescaled); n > 0 && rescaled[n-1] == mapped {
			continue
		}
		rescaled = append(rescaled, mapped)
	}
	a.cells = rescaled
}
