package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromIntRoundTrip(t *testing.T) {
	q := FromInt(5)
	assert.Equal(t, 5.0, q.Float64())
}

func TestFromFloatRounds(t *testing.T) {
	q := FromFloat(1.5)
	assert.InDelta(t, 1.5, q.Float64(), 1.0/256)
}

func TestMulDivInverse(t *testing.T) {
	a := FromFloat(3.25)
	b := FromFloat(2.0)
	assert.InDelta(t, 6.5, a.Mul(b).Float64(), 1.0/256)
	assert.InDelta(t, 1.625, a.Div(b).Float64(), 1.0/256)
}

func TestAbs(t *testing.T) {
	assert.Equal(t, FromInt(4), FromInt(-4).Abs())
}

func TestIsOddParity(t *testing.T) {
	odd := Q(1)
	even := Q(2)
	assert.True(t, odd.IsOdd())
	assert.False(t, even.IsOdd())
}

func TestVec2SumEvenAndOddOdd(t *testing.T) {
	v := Vec2{X: Q(1), Y: Q(1)}
	assert.True(t, v.IsXOddYOdd())
	assert.True(t, v.IsSumEven())

	w := Vec2{X: Q(1), Y: Q(2)}
	assert.False(t, w.IsXOddYOdd())
	assert.False(t, w.IsSumEven())
}

func TestVec2LengthPythagorean(t *testing.T) {
	v := Vec2{X: FromInt(3), Y: FromInt(4)}
	assert.InDelta(t, 5.0, v.Length().Float64(), 1.0/16)
}

func TestVec2AddSub(t *testing.T) {
	a := Vec2{X: FromInt(1), Y: FromInt(2)}
	b := Vec2{X: FromInt(3), Y: FromInt(4)}
	assert.Equal(t, Vec2{X: FromInt(4), Y: FromInt(6)}, a.Add(b))
	assert.Equal(t, Vec2{X: FromInt(-2), Y: FromInt(-2)}, a.Sub(b))
}
