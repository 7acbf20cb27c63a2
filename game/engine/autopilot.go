package engine

// autopilotPreference is the fixed tie-break order used when no
// distance-reducing step is legal
var autopilotPreference = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// autopilotIntent computes the movement intent for automatic mode. It
// greedily reduces Manhattan distance to the goal, trying the axis with the
// larger absolute delta first (ties favor horizontal), falls back to the
// other axis, then to the first legal direction in autopilotPreference.
// DirNone means no safe move exists; the core then steps into the unavoidable
// collision on the next tick. The result is a pure function of the current
// grid, actor and goal.
func (e *Engine) autopilotIntent() Direction {
	head := e.actor.Head()
	dx := e.goal.X - head.X
	dy := e.goal.Y - head.Y

	horizontal := DirNone
	if dx < 0 {
		horizontal = DirLeft
	} else if dx > 0 {
		horizontal = DirRight
	}
	vertical := DirNone
	if dy < 0 {
		vertical = DirUp
	} else if dy > 0 {
		vertical = DirDown
	}

	primary, secondary := horizontal, vertical
	if absInt(dy) > absInt(dx) {
		primary, secondary = vertical, horizontal
	}

	if primary != DirNone && e.legalStep(primary) {
		return primary
	}
	if secondary != DirNone && e.legalStep(secondary) {
		return secondary
	}
	for _, d := range autopilotPreference {
		if e.legalStep(d) {
			return d
		}
	}
	return DirNone
}

// legalStep reports whether stepping in the given direction keeps the actor
// on the grid, off its own body, and is not an illegal reversal
func (e *Engine) legalStep(d Direction) bool {
	if e.actor.Len() > 1 && d == e.actor.Facing().Opposite() {
		return false
	}
	next, ok := e.grid.Adjacent(e.actor.Head(), d)
	if !ok {
		return false
	}
	return !e.actor.collides(next, next == e.goal)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
