package engine

// placeGoal moves the goal to a pseudo-random free cell, never overlapping
// the actor or the goal's previous position. With no free cell left the goal
// stays where it is: the actor covers the board and the run is effectively
// complete.
func (e *Engine) placeGoal() {
	free := e.freeCells()
	if len(free) == 0 {
		return
	}
	e.goal = free[e.rng.Intn(len(free))]
}

// freeCells returns every cell not occupied by the actor or the current goal
func (e *Engine) freeCells() []Cell {
	occupied := make(map[Cell]bool, e.actor.Len()+1)
	for _, c := range e.actor.Cells() {
		occupied[c] = true
	}
	occupied[e.goal] = true

	free := make([]Cell, 0, e.grid.CellCount()-len(occupied))
	for y := 0; y < e.grid.Height; y++ {
		for x := 0; x < e.grid.Width; x++ {
			c := Cell{X: x, Y: y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	return free
}
