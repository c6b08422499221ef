package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ShapeKind distinguishes the primitive shape variants a pad, trace segment,
// or board obstacle can take.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
)

// PrimShape is a primitive collidable shape: a circle or an (optionally
// rotated) rectangle. Board obstacles, pads, and trace segments are all
// reduced to slices of PrimShape before collision testing.
type PrimShape struct {
	Kind ShapeKind

	Position Point2D

	// Circle fields.
	Diameter float64

	// Rectangle fields.
	Width, Height float64
	RotationDeg   float64
}

// NewCircle constructs a circle PrimShape.
func NewCircle(position Point2D, diameter float64) PrimShape {
	return PrimShape{Kind: ShapeCircle, Position: position, Diameter: diameter}
}

// NewRectangle constructs an (optionally rotated) rectangle PrimShape.
func NewRectangle(position Point2D, width, height, rotationDeg float64) PrimShape {
	return PrimShape{Kind: ShapeRectangle, Position: position, Width: width, Height: height, RotationDeg: rotationDeg}
}

// Radius returns half the circle's diameter.
func (s PrimShape) Radius() float64 {
	return s.Diameter / 2.0
}

// corners returns the four corner points of a rectangle shape in world
// space, accounting for its rotation.
func (s PrimShape) corners() [4]Point2D {
	hw := s.Width / 2.0
	hh := s.Height / 2.0
	local := [4]Point2D{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	angle := s.RotationDeg * math.Pi / 180.0
	cos, sin := math.Cos(angle), math.Sin(angle)
	var out [4]Point2D
	for i, p := range local {
		out[i] = Point2D{
			X: s.Position.X + p.X*cos - p.Y*sin,
			Y: s.Position.Y + p.X*sin + p.Y*cos,
		}
	}
	return out
}

// axes returns the two unique separating-axis candidates of a rectangle:
// its edge normals.
func (s PrimShape) axes() [2]Point2D {
	c := s.corners()
	edge1 := Point2D{X: c[1].X - c[0].X, Y: c[1].Y - c[0].Y}
	edge2 := Point2D{X: c[2].X - c[1].X, Y: c[2].Y - c[1].Y}
	return [2]Point2D{normalize(perp(edge1)), normalize(perp(edge2))}
}

func perp(p Point2D) Point2D {
	return Point2D{X: -p.Y, Y: p.X}
}

func normalize(p Point2D) Point2D {
	len := math.Sqrt(p.X*p.X + p.Y*p.Y)
	if len < 1e-12 {
		return p
	}
	return Point2D{X: p.X / len, Y: p.Y / len}
}

func dot(a, b Point2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

// projectRect returns the [min, max] projection of a rectangle's corners
// onto axis, via gonum/floats over the four corner projections.
func projectRect(s PrimShape, axis Point2D) (min, max float64) {
	c := s.corners()
	proj := make([]float64, len(c))
	for i, p := range c {
		proj[i] = dot(p, axis)
	}
	return floats.Min(proj), floats.Max(proj)
}

// projectCircle returns the [min, max] projection of a circle onto axis.
func projectCircle(s PrimShape, axis Point2D) (min, max float64) {
	center := dot(s.Position, axis)
	r := s.Radius()
	return center - r, center + r
}

// CollidesWith reports whether two shapes overlap, dispatching on the
// circle/rectangle combination. Rectangle-rectangle and rectangle-circle
// pairs are resolved via the Separating Axis Theorem; circle-circle via a
// direct squared-distance comparison. Strict overlap ("<") is what counts
// as collision; exact edge-touching is not a collision.
func (s PrimShape) CollidesWith(other PrimShape) bool {
	return s.CollidesWithMode(other, false)
}

// CollidesWithMode is CollidesWith with the edge-touching case made
// explicit: inclusive=false uses strict "<" (exactly-touching shapes do
// not collide); inclusive=true uses "<=" (touching counts as collision).
func (s PrimShape) CollidesWithMode(other PrimShape, inclusive bool) bool {
	if s.Kind == ShapeCircle && other.Kind == ShapeCircle {
		dx := s.Position.X - other.Position.X
		dy := s.Position.Y - other.Position.Y
		distSq := dx*dx + dy*dy
		r := s.Radius() + other.Radius()
		if inclusive {
			return distSq <= r*r
		}
		return distSq < r*r
	}
	return satOverlap(s, other, inclusive)
}

// satOverlap implements the Separating Axis Theorem for rectangle-rectangle
// and rectangle-circle pairs. A circle contributes one axis: the direction
// from its center to the nearest rectangle vertex.
func satOverlap(a, b PrimShape, inclusive bool) bool {
	var axes []Point2D
	if a.Kind == ShapeRectangle {
		ax := a.axes()
		axes = append(axes, ax[0], ax[1])
	}
	if b.Kind == ShapeRectangle {
		bx := b.axes()
		axes = append(axes, bx[0], bx[1])
	}
	if a.Kind == ShapeCircle && b.Kind == ShapeRectangle {
		axes = append(axes, nearestVertexAxis(b, a.Position))
	}
	if b.Kind == ShapeCircle && a.Kind == ShapeRectangle {
		axes = append(axes, nearestVertexAxis(a, b.Position))
	}

	for _, axis := range axes {
		aMin, aMax := projectShape(a, axis)
		bMin, bMax := projectShape(b, axis)
		if inclusive {
			if aMax < bMin || bMax < aMin {
				return false
			}
		} else {
			if aMax <= bMin || bMax <= aMin {
				return false // found a separating axis
			}
		}
	}
	return true
}

func projectShape(s PrimShape, axis Point2D) (float64, float64) {
	if s.Kind == ShapeCircle {
		return projectCircle(s, axis)
	}
	return projectRect(s, axis)
}

func nearestVertexAxis(rect PrimShape, circleCenter Point2D) Point2D {
	c := rect.corners()
	best := c[0]
	bestDistSq := math.MaxFloat64
	for _, v := range c {
		dx := v.X - circleCenter.X
		dy := v.Y - circleCenter.Y
		d := dx*dx + dy*dy
		if d < bestDistSq {
			bestDistSq = d
			best = v
		}
	}
	axis := Point2D{X: best.X - circleCenter.X, Y: best.Y - circleCenter.Y}
	return normalize(axis)
}

// Inflate returns a copy of the shape grown uniformly by margin, used to
// turn a trace or pad shape into its clearance halo.
func (s PrimShape) Inflate(margin float64) PrimShape {
	switch s.Kind {
	case ShapeCircle:
		return NewCircle(s.Position, s.Diameter+2*margin)
	default:
		return NewRectangle(s.Position, s.Width+2*margin, s.Height+2*margin, s.RotationDeg)
	}
}

// BoundingBox returns the shape's axis-aligned world-space extent, used by
// render observers that need a screen rectangle rather than exact geometry.
func (s PrimShape) BoundingBox() (min, max Point2D) {
	if s.Kind == ShapeCircle {
		r := s.Radius()
		return Point2D{X: s.Position.X - r, Y: s.Position.Y - r}, Point2D{X: s.Position.X + r, Y: s.Position.Y + r}
	}
	corners := s.corners()
	min, max = corners[0], corners[0]
	for _, c := range corners[1:] {
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.X > max.X {
			max.X = c.X
		}
		if c.Y > max.Y {
			max.Y = c.Y
		}
	}
	return min, max
}
