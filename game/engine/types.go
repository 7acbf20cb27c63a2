package engine

// Direction represents a movement direction for the actor
type Direction string

const (
	DirNone  Direction = "none"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"

	// Validation constants
	MinGridSize  = 4
	MaxGridSize  = 256
	MaxBulkTicks = 600
)

// Mode selects the source of movement intent for an instance
type Mode string

const (
	ModeManual    Mode = "manual"
	ModeAutomatic Mode = "automatic"
)

// Phase tracks whether an instance still accepts progress
type Phase string

const (
	PhaseRunning Phase = "running"
	PhaseEnded   Phase = "ended"
)

// TouchAction identifies the kind of pointer event fed to the input translator
type TouchAction string

const (
	TouchDown TouchAction = "down"
	TouchUp   TouchAction = "up"
	TouchMove TouchAction = "move"
)

// Cell represents x,y coordinates on the grid
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snapshot is an immutable description of an instance's drawable state.
// Actor cells are ordered head first. Rendering the same state twice with no
// intervening update yields equal snapshots.
type Snapshot struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Actor  []Cell `json:"actor"`
	Goal   Cell   `json:"goal"`
	Score  int    `json:"score"`
	Phase  Phase  `json:"phase"`
	Mode   Mode   `json:"mode"`
	Tick   uint64 `json:"tick"`
}

// DirectionFromCode maps the external integer encoding to a Direction.
// Unknown codes map to DirNone.
func DirectionFromCode(code int) Direction {
	switch code {
	case 1:
		return DirUp
	case 2:
		return DirDown
	case 3:
		return DirLeft
	case 4:
		return DirRight
	default:
		return DirNone
	}
}

// Code returns the external integer encoding of a direction
func (d Direction) Code() int {
	switch d {
	case DirUp:
		return 1
	case DirDown:
		return 2
	case DirLeft:
		return 3
	case DirRight:
		return 4
	default:
		return 0
	}
}

// Delta returns the per-tick cell offset for a direction. Screen coordinates:
// y grows downward, so up is -y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the 180-degree reversal of a direction
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// ParseDirection validates a direction string from a transport boundary
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirNone, DirUp, DirDown, DirLeft, DirRight:
		return Direction(s), true
	default:
		return DirNone, false
	}
}

// ModeFromCode maps the external integer encoding to a Mode.
// Any code other than 1 is manual.
func ModeFromCode(code int) Mode {
	if code == 1 {
		return ModeAutomatic
	}
	return ModeManual
}

// ParseMode validates a mode string from a transport boundary
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeManual, ModeAutomatic:
		return Mode(s), true
	default:
		return ModeManual, false
	}
}

// TouchActionFromCode maps the external integer encoding to a TouchAction
func TouchActionFromCode(code int) (TouchAction, bool) {
	switch code {
	case 0:
		return TouchDown, true
	case 1:
		return TouchUp, true
	case 2:
		return TouchMove, true
	default:
		return TouchMove, false
	}
}

// ParseTouchAction validates a touch action string from a transport boundary
func ParseTouchAction(s string) (TouchAction, bool) {
	switch TouchAction(s) {
	case TouchDown, TouchUp, TouchMove:
		return TouchAction(s), true
	default:
		return TouchMove, false
	}
}
