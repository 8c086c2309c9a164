package maze

type Direction int

const (
	DirNone Direction = iota
	DirRight
	DirDown
	DirLeft
	DirUp
)

// Cardinals is the fixed enumeration order used for candidate moves and
// tie-breaking.
var Cardinals = [4]Direction{DirRight, DirDown, DirLeft, DirUp}

func DirDelta(d Direction) (dx, dy int) {
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

// Reverse returns the opposite direction. DirNone has no opposite.
func (d Direction) Reverse() Direction {
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

func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}
