// Package fixedpoint implements Q24.8 signed fixed-point arithmetic: a
// 32-bit integer with 8 fractional bits, used for lattice coordinates that
// must compare and hash exactly rather than drift the way float32 does.
package fixedpoint

import (
	"fmt"
	"math"
)

// Frac is the number of fractional bits in a Q value (Q24.8).
const Frac = 8

const one = 1 << Frac

// Q is a Q24.8 fixed-point number stored as a raw int32 of 1/256ths.
type Q int32

// FromInt lifts an integer into Q24.8.
func FromInt(n int) Q {
	return Q(n * one)
}

// FromFloat rounds a float64 to the nearest Q24.8 value.
func FromFloat(f float64) Q {
	return Q(math.Round(f * one))
}

// Bits returns the raw underlying int32, the representation parity tests
// operate on.
func (q Q) Bits() int32 {
	return int32(q)
}

// Float64 converts back to a float64.
func (q Q) Float64() float64 {
	return float64(q) / one
}

// Add returns q + o.
func (q Q) Add(o Q) Q { return q + o }

// Sub returns q - o.
func (q Q) Sub(o Q) Q { return q - o }

// Neg returns -q.
func (q Q) Neg() Q { return -q }

// Mul returns q * o, computed in 64 bits to avoid overflow before the
// fractional shift is applied.
func (q Q) Mul(o Q) Q {
	return Q((int64(q) * int64(o)) >> Frac)
}

// Div returns q / o, computed in 64 bits.
func (q Q) Div(o Q) Q {
	if o == 0 {
		panic("fixedpoint: division by zero")
	}
	return Q((int64(q) << Frac) / int64(o))
}

// Abs returns the absolute value.
func (q Q) Abs() Q {
	if q < 0 {
		return -q
	}
	return q
}

// IsOdd reports whether the raw integer representation is odd. Used by the
// lattice parity invariants (sum-even and odd-odd-forbidden rules).
func (q Q) IsOdd() bool {
	return q.Bits()&1 == 1
}

// Sqrt returns the square root computed with math.Sqrt on the float64
// value and rounded back to Q24.8; non-positive inputs give 0.
func (q Q) Sqrt() Q {
	if q <= 0 {
		return 0
	}
	f := q.Float64()
	return FromFloat(math.Sqrt(f))
}

// String renders the value as a decimal, matching how the teacher's Point2D
// formats coordinates.
func (q Q) String() string {
	return fmt.Sprintf("%.4f", q.Float64())
}

// Vec2 is a pair of Q24.8 coordinates, the lattice-exact counterpart of
// geometry.Point2D.
type Vec2 struct {
	X, Y Q
}

// NewVec2 constructs a Vec2 from raw Q components.
func NewVec2(x, y Q) Vec2 {
	return Vec2{X: x, Y: y}
}

// VecFromFloat lifts a float64 pair into Vec2.
func VecFromFloat(x, y float64) Vec2 {
	return Vec2{X: FromFloat(x), Y: FromFloat(y)}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X.Add(o.X), Y: v.Y.Add(o.Y)}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y)}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s Q) Vec2 {
	return Vec2{X: v.X.Mul(s), Y: v.Y.Mul(s)}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() Q {
	return v.X.Mul(v.X).Add(v.Y.Mul(v.Y)).Sqrt()
}

// ToFloat converts to a float64 pair.
func (v Vec2) ToFloat() (x, y float64) {
	return v.X.Float64(), v.Y.Float64()
}

// IsXOddYOdd reports whether both coordinates have odd raw bits, the
// forbidden lattice position unless it is a diagonal entry point.
func (v Vec2) IsXOddYOdd() bool {
	return v.X.IsOdd() && v.Y.IsOdd()
}

// IsSumEven reports whether the sum of raw bits is even, the lattice
// reachability invariant successor generation must preserve.
func (v Vec2) IsSumEven() bool {
	return (v.X.Bits()+v.Y.Bits())%2 == 0
}
