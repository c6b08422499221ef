package pcbmodel

import "pcbroute/pkg/geometry"

// PadShapeKind distinguishes a pad's footprint.
type PadShapeKind int

const (
	PadCircle PadShapeKind = iota
	PadSquare
	PadRectangle
)

// PadShape is a pad's footprint: a circle, square, or rectangle, matching
// the problem-input schema (§6 of the router's external interfaces).
type PadShape struct {
	Kind PadShapeKind

	Diameter   float64 // PadCircle
	Side       float64 // PadSquare
	Width      float64 // PadRectangle
	Height     float64 // PadRectangle
}

// Pad is the copper landing area a connection attaches to.
type Pad struct {
	Position    geometry.Point2D
	Shape       PadShape
	RotationDeg float64
	Clearance   float64
}

// ToShapes returns the pad's body as primitive shapes.
func (p Pad) ToShapes() []geometry.PrimShape {
	switch p.Shape.Kind {
	case PadCircle:
		return []geometry.PrimShape{geometry.NewCircle(p.Position, p.Shape.Diameter)}
	case PadSquare:
		return []geometry.PrimShape{geometry.NewRectangle(p.Position, p.Shape.Side, p.Shape.Side, p.RotationDeg)}
	case PadRectangle:
		return []geometry.PrimShape{geometry.NewRectangle(p.Position, p.Shape.Width, p.Shape.Height, p.RotationDeg)}
	default:
		panic("pcbmodel: unknown pad shape kind")
	}
}

// ToClearanceShapes returns the pad's body inflated by its clearance on
// all sides.
func (p Pad) ToClearanceShapes() []geometry.PrimShape {
	shapes := p.ToShapes()
	out := make([]geometry.PrimShape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Inflate(p.Clearance)
	}
	return out
}

// NewCirclePad constructs a circular pad.
func NewCirclePad(position geometry.Point2D, diameter, clearance float64) Pad {
	return Pad{Position: position, Shape: PadShape{Kind: PadCircle, Diameter: diameter}, Clearance: clearance}
}

// NewSquarePad constructs a square pad.
func NewSquarePad(position geometry.Point2D, side, rotationDeg, clearance float64) Pad {
	return Pad{Position: position, Shape: PadShape{Kind: PadSquare, Side: side}, RotationDeg: rotationDeg, Clearance: clearance}
}

// NewRectanglePad constructs a rectangular pad.
func NewRectanglePad(position geometry.Point2D, width, height, rotationDeg, clearance float64) Pad {
	return Pad{Position: position, Shape: PadShape{Kind: PadRectangle, Width: width, Height: height}, RotationDeg: rotationDeg, Clearance: clearance}
}
