package astar

import "pcbroute/pkg/fixedpoint"

// binaryCollisionApproach finds the largest length in [0, maxLen] (in
// raw Q24.8 units, i.e. multiples of Delta) such that collides(length) is
// false, bisecting until the search interval is one Delta wide. It then
// backs the result off by one Delta if parityOK rejects the resulting
// endpoint, matching the lattice's sum-even / odd-odd-forbidden
// invariants; the backed-off length is not checked against parityOK
// again. Returns (0, false) when the resulting length is zero.
func binaryCollisionApproach(maxLen fixedpoint.Q, collides func(fixedpoint.Q) bool, parityOK func(fixedpoint.Q) bool) (fixedpoint.Q, bool) {
	if maxLen <= 0 {
		return 0, false
	}
	lower := int32(0)
	upper := int32(maxLen)
	if !collides(fixedpoint.Q(upper)) {
		lower = upper
	} else {
		for upper-lower > 1 {
			mid := lower + (upper-lower)/2
			if collides(fixedpoint.Q(mid)) {
				upper = mid
			} else {
				lower = mid
			}
		}
	}
	length := fixedpoint.Q(lower)
	if length > 0 && !parityOK(length) {
		length--
	}
	if length <= 0 {
		return 0, false
	}
	return length, true
}
