package engine

// inputTranslator accumulates raw pointer events and discrete direction
// commands between ticks and reduces them to at most one movement intent per
// tick. It is stateless across ticks except for the in-flight pointer-down
// origin, which survives until the matching up event arrives.
type inputTranslator struct {
	command    Direction
	hasCommand bool

	dragActive               bool
	dragOriginX, dragOriginY float64

	upSeen   bool
	upX, upY float64
}

// Command records a discrete direction command for the next tick. Later
// commands within the same tick replace earlier ones. DirNone is not a
// command and is ignored.
func (t *inputTranslator) Command(d Direction) {
	if d == DirNone {
		return
	}
	t.command = d
	t.hasCommand = true
}

// Pointer feeds one raw pointer event into the accumulator
func (t *inputTranslator) Pointer(x, y float64, action TouchAction) {
	switch action {
	case TouchDown:
		t.dragActive = true
		t.dragOriginX = x
		t.dragOriginY = y
	case TouchUp:
		if !t.dragActive {
			return
		}
		t.dragActive = false
		t.upSeen = true
		t.upX = x
		t.upY = y
	case TouchMove:
		// Only the net down-to-up displacement matters for classification
	}
}

// Reduce collapses everything accumulated since the last tick into a single
// intent, then clears the tick-scoped state. Precedence: a discrete command
// wins; otherwise a completed pointer gesture is classified into its dominant
// axis; otherwise there is no intent. An intent that exactly reverses the
// current facing while the actor is longer than one cell is discarded.
func (t *inputTranslator) Reduce(facing Direction, actorLen int) Direction {
	intent := DirNone
	switch {
	case t.hasCommand:
		intent = t.command
	case t.upSeen:
		intent = classifyDisplacement(t.upX-t.dragOriginX, t.upY-t.dragOriginY)
	}
	t.discard()

	if intent != DirNone && actorLen > 1 && intent == facing.Opposite() {
		return DirNone
	}
	return intent
}

// discard drops all tick-scoped accumulator state, keeping only an in-flight
// pointer-down origin
func (t *inputTranslator) discard() {
	t.command = DirNone
	t.hasCommand = false
	t.upSeen = false
}

// classifyDisplacement maps a pointer displacement vector to the direction of
// its dominant axis. Ties favor horizontal. A zero vector has no direction.
func classifyDisplacement(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirNone
	}
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return DirLeft
		}
		return DirRight
	}
	if dy < 0 {
		return DirUp
	}
	return DirDown
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
