package sandbox

// compass lists the eight integer directions in clockwise screen order
// (+Y points down), starting at north.
var compass = [8][2]int{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// direction snaps (x, y) onto one of the eight compass directions and
// reports its index together with the Chebyshev magnitude. The zero vector
// reports ok=false.
func direction(x, y int) (idx, magnitude int, ok bool) {
	sx, sy := sign(x), sign(y)
	if sx == 0 && sy == 0 {
		return 0, 0, false
	}
	for i, d := range compass {
		if d[0] == sx && d[1] == sy {
			idx = i
			break
		}
	}
	magnitude = max(abs(x), abs(y))
	return idx, magnitude, true
}

func turn(x, y, steps int, unit bool) (int, int) {
	idx, mag, ok := direction(x, y)
	if !ok {
		return 0, 0
	}
	if unit {
		mag = 1
	}
	d := compass[(idx+steps+len(compass))%len(compass)]
	return d[0] * mag, d[1] * mag
}

// Rotate45CW rotates a vector one compass step clockwise, keeping its
// Chebyshev magnitude.
func Rotate45CW(x, y int) (int, int) { return turn(x, y, 1, false) }

// Rotate45CCW rotates a vector one compass step counter-clockwise.
func Rotate45CCW(x, y int) (int, int) { return turn(x, y, -1, false) }

// Rotate90CW rotates a vector a quarter turn clockwise.
func Rotate90CW(x, y int) (int, int) { return turn(x, y, 2, false) }

// Rotate90CCW rotates a vector a quarter turn counter-clockwise.
func Rotate90CCW(x, y int) (int, int) { return turn(x, y, -2, false) }

// Rotate90CWUnit returns the unit direction a quarter turn clockwise.
func Rotate90CWUnit(x, y int) (int, int) { return turn(x, y, 2, true) }

// Rotate90CCWUnit returns the unit direction a quarter turn counter-clockwise.
func Rotate90CCWUnit(x, y int) (int, int) { return turn(x, y, -2, true) }

// Rotation selects one of the movement candidate rotations.
type Rotation uint8

const (
	RotateNone Rotation = iota
	Rotate45Clockwise
	Rotate45CounterClockwise
	Rotate90Clockwise
	Rotate90CounterClockwise
)

// Apply rotates (x, y). Quarter turns collapse to the unit direction so
// sideways flow advances a single cell.
func (r Rotation) Apply(x, y int) (int, int) {
	switch r {
	case RotateNone:
		return x, y
	case Rotate45Clockwise:
		return Rotate45CW(x, y)
	case Rotate45CounterClockwise:
		return Rotate45CCW(x, y)
	case Rotate90Clockwise:
		return Rotate90CWUnit(x, y)
	case Rotate90CounterClockwise:
		return Rotate90CCWUnit(x, y)
	default:
		panic("sandbox: unknown rotation")
	}
}

var (
	clockwiseFirst        = [5]Rotation{RotateNone, Rotate45Clockwise, Rotate45CounterClockwise, Rotate90Clockwise, Rotate90CounterClockwise}
	counterClockwiseFirst = [5]Rotation{RotateNone, Rotate45CounterClockwise, Rotate45Clockwise, Rotate90CounterClockwise, Rotate90Clockwise}
)
