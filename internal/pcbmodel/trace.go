package pcbmodel

import (
	"errors"
	"math"

	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
)

// ErrZeroLengthSegment is returned when a trace segment's start and end
// coincide.
var ErrZeroLengthSegment = errors.New("pcbmodel: trace segment has zero length")

// ErrDirectionUndefined is returned when a segment's endpoints are not
// aligned to one of the eight compass directions.
var ErrDirectionUndefined = errors.New("pcbmodel: segment direction undefined")

// TraceSegment is one eight-direction leg of a trace path.
type TraceSegment struct {
	Start, End fixedpoint.Vec2
	Direction  geometry.Direction
	Width      float64
	Clearance  float64
}

// NewTraceSegment builds a TraceSegment, deriving its direction from its
// endpoints. It fails if start == end or the endpoints are not
// eight-direction aligned.
func NewTraceSegment(start, end fixedpoint.Vec2, width, clearance float64) (TraceSegment, error) {
	if start == end {
		return TraceSegment{}, ErrZeroLengthSegment
	}
	sx, sy := start.ToFloat()
	ex, ey := end.ToFloat()
	dir, ok := geometry.FromPoints(geometry.Point2D{X: sx, Y: sy}, geometry.Point2D{X: ex, Y: ey})
	if !ok {
		return TraceSegment{}, ErrDirectionUndefined
	}
	return TraceSegment{Start: start, End: end, Direction: dir, Width: width, Clearance: clearance}, nil
}

// Length returns the Euclidean length of the segment.
func (s TraceSegment) Length() float64 {
	sx, sy := s.Start.ToFloat()
	ex, ey := s.End.ToFloat()
	dx, dy := ex-sx, ey-sy
	return math.Sqrt(dx*dx + dy*dy)
}

// ToShapes returns the segment's swept body: two endpoint circles of
// diameter Width plus a rotated rectangle spanning the segment.
func (s TraceSegment) ToShapes() []geometry.PrimShape {
	sx, sy := s.Start.ToFloat()
	ex, ey := s.End.ToFloat()
	start := geometry.Point2D{X: sx, Y: sy}
	end := geometry.Point2D{X: ex, Y: ey}
	mid := geometry.Point2D{X: (sx + ex) / 2, Y: (sy + ey) / 2}
	length := s.Length()
	return []geometry.PrimShape{
		geometry.NewCircle(start, s.Width),
		geometry.NewCircle(end, s.Width),
		geometry.NewRectangle(mid, length, s.Width, s.Direction.DegreeAngle()),
	}
}

// ToClearanceShapes returns the segment's swept body inflated by clearance
// on all sides.
func (s TraceSegment) ToClearanceShapes() []geometry.PrimShape {
	shapes := s.ToShapes()
	out := make([]geometry.PrimShape, len(shapes))
	for i, sh := range shapes {
		out[i] = sh.Inflate(s.Clearance)
	}
	return out
}

// CollidesWith reports whether two segments' bodies intersect each
// other's clearance sweep, under the strict (non-inclusive) touching rule.
func (s TraceSegment) CollidesWith(other TraceSegment) bool {
	return s.CollidesWithMode(other, false)
}

// CollidesWithMode is CollidesWith with the edge-touching case made
// explicit: inclusive=true treats two bodies that only touch at their
// boundary as colliding.
func (s TraceSegment) CollidesWithMode(other TraceSegment, inclusive bool) bool {
	selfShapes := s.ToShapes()
	otherClearance := other.ToClearanceShapes()
	for _, a := range selfShapes {
		for _, b := range otherClearance {
			if a.CollidesWithMode(b, inclusive) {
				return true
			}
		}
	}
	selfClearance := s.ToClearanceShapes()
	otherShapes := other.ToShapes()
	for _, a := range selfClearance {
		for _, b := range otherShapes {
			if a.CollidesWithMode(b, inclusive) {
				return true
			}
		}
	}
	return false
}

// TraceAnchors is the ordered list of turning points of a trace path,
// comparable for the "already generated" dedup check in the probabilistic
// model's candidate-generation loop.
type TraceAnchors []fixedpoint.Vec2

// Key renders the anchor list as a string usable as a map key, since a Go
// slice cannot itself be a map key.
func (a TraceAnchors) Key() string {
	buf := make([]byte, 0, len(a)*16)
	for _, v := range a {
		buf = appendInt32(buf, v.X.Bits())
		buf = append(buf, ',')
		buf = appendInt32(buf, v.Y.Bits())
		buf = append(buf, ';')
	}
	return string(buf)
}

func appendInt32(buf []byte, v int32) []byte {
	neg := v < 0
	if neg {
		buf = append(buf, '-')
		v = -v
	}
	if v == 0 {
		return append(buf, '0')
	}
	var digits [12]byte
	n := 0
	for v > 0 {
		digits[n] = byte('0' + v%10)
		v /= 10
		n++
	}
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, digits[i])
	}
	return buf
}

// TracePath is an ordered sequence of anchors plus their derived segments.
type TracePath struct {
	Anchors  TraceAnchors
	Segments []TraceSegment
	Length   float64
}

// NewTracePath builds a TracePath from an anchor list, deriving segments
// and cumulative length. Fails if any consecutive pair is not
// eight-direction aligned.
func NewTracePath(anchors TraceAnchors, width, clearance float64) (TracePath, error) {
	if len(anchors) < 2 {
		return TracePath{}, errors.New("pcbmodel: trace path needs at least two anchors")
	}
	segments := make([]TraceSegment, 0, len(anchors)-1)
	var total float64
	for i := 0; i < len(anchors)-1; i++ {
		seg, err := NewTraceSegment(anchors[i], anchors[i+1], width, clearance)
		if err != nil {
			return TracePath{}, err
		}
		segments = append(segments, seg)
		total += seg.Length()
	}
	return TracePath{Anchors: anchors, Segments: segments, Length: total}, nil
}

// CollidesWith reports whether any segment of this path collides with any
// segment of other, under the strict (non-inclusive) touching rule.
func (p TracePath) CollidesWith(other TracePath) bool {
	return p.CollidesWithMode(other, false)
}

// CollidesWithMode is CollidesWith with the edge-touching case made
// explicit, mirroring geometry.PrimShape.CollidesWithMode. Callers that have
// a Config in scope should pass !Config.CollisionStrict rather than relying
// on CollidesWith's strict default.
func (p TracePath) CollidesWithMode(other TracePath, inclusive bool) bool {
	for _, a := range p.Segments {
		for _, b := range other.Segments {
			if a.CollidesWithMode(b, inclusive) {
				return true
			}
		}
	}
	return false
}

// Score returns the probabilistic model's raw length-based score,
// exp(-ln2 * length / H), used before the score/opportunity-cost weighting.
func (p TracePath) Score(halfProbabilityScore float64) float64 {
	return math.Exp(-math.Ln2 * p.Length / halfProbabilityScore)
}
