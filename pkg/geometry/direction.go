package geometry

import "math"

// Direction is one of the eight compass directions of the routing lattice.
type Direction int

const (
	Right Direction = iota
	UpRight
	Up
	UpLeft
	Left
	DownLeft
	Down
	DownRight
)

// AllDirections returns the eight compass directions in a fixed order,
// the successor set used at the start node where no prior direction
// constrains expansion.
func AllDirections() []Direction {
	return []Direction{Right, UpRight, Up, UpLeft, Left, DownLeft, Down, DownRight}
}

// String renders the direction name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case UpRight:
		return "UpRight"
	case Up:
		return "Up"
	case UpLeft:
		return "UpLeft"
	case Left:
		return "Left"
	case DownLeft:
		return "DownLeft"
	case Down:
		return "Down"
	case DownRight:
		return "DownRight"
	default:
		return "Invalid"
	}
}

// DegreeAngle returns the direction's angle in degrees, 0 along +X,
// increasing counter-clockwise.
func (d Direction) DegreeAngle() float64 {
	return float64(d) * 45.0
}

// UnitVector returns the unit displacement of the direction.
func (d Direction) UnitVector() Point2D {
	angle := d.DegreeAngle() * math.Pi / 180.0
	return Point2D{X: math.Cos(angle), Y: math.Sin(angle)}
}

// IsDiagonal reports whether the direction moves along a 45-degree axis.
func (d Direction) IsDiagonal() bool {
	return d%2 == 1
}

// Opposite returns the direction rotated 180 degrees.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// Left45 returns the direction rotated 45 degrees counter-clockwise.
func (d Direction) Left45() Direction {
	return (d + 1) % 8
}

// Right45 returns the direction rotated 45 degrees clockwise.
func (d Direction) Right45() Direction {
	return (d + 7) % 8
}

// Left90 returns the direction rotated 90 degrees counter-clockwise.
func (d Direction) Left90() Direction {
	return (d + 2) % 8
}

// Right90 returns the direction rotated 90 degrees clockwise.
func (d Direction) Right90() Direction {
	return (d + 6) % 8
}

// NeighborDirections returns the three directions a path may continue in
// without doubling back: same direction, and the 45-degree turns either
// side. Used to prune the A* successor set once a direction is established.
func (d Direction) NeighborDirections() []Direction {
	return []Direction{d.Left45(), d, d.Right45()}
}

// FromPoints returns the compass direction from a to b when the segment
// a->b lies along one of the eight compass axes. ok is false when a and b
// coincide or when the segment is not aligned to any of the eight axes.
func FromPoints(a, b Point2D) (Direction, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return Right, false
	}
	if dx != 0 && dy != 0 && math.Abs(dx) != math.Abs(dy) {
		return Right, false
	}
	angle := math.Atan2(dy, dx) * 180.0 / math.Pi
	if angle < 0 {
		angle += 360
	}
	step := int(math.Round(angle/45.0)) % 8
	return Direction(step), true
}
