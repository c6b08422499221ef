package solver

import (
	"pcbroute/internal/pcbmodel"
	"pcbroute/pkg/pqueue"
)

// node is one element of the backtracking stack: a partial solution
// (fixed traces so far) plus a max-heap of remaining probabilistic
// candidates, ordered by posterior.
type node struct {
	fixedTraces map[pcbmodel.ConnectionID]pcbmodel.FixedTrace
	heap        *pqueue.Queue[float64, *pcbmodel.ProbaTrace]
	upToDate    bool
}

func newNode(fixed map[pcbmodel.ConnectionID]pcbmodel.FixedTrace, candidates []*pcbmodel.ProbaTrace, normalisedPrior func(*pcbmodel.ProbaTrace) float64, upToDate bool) *node {
	h := pqueue.New[float64, *pcbmodel.ProbaTrace]()
	for _, c := range candidates {
		h.Push(-c.PosteriorWithFallback(normalisedPrior(c)), c)
	}
	return &node{fixedTraces: cloneFixed(fixed), heap: h, upToDate: upToDate}
}

func cloneFixed(fixed map[pcbmodel.ConnectionID]pcbmodel.FixedTrace) map[pcbmodel.ConnectionID]pcbmodel.FixedTrace {
	out := make(map[pcbmodel.ConnectionID]pcbmodel.FixedTrace, len(fixed))
	for k, v := range fixed {
		out[k] = v
	}
	return out
}

// isSolution reports whether fixedTraces covers every connection of the
// problem.
func (n *node) isSolution(problem *pcbmodel.PcbProblem) bool {
	for _, conn := range problem.AllConnections() {
		if _, ok := n.fixedTraces[conn.ConnectionID]; !ok {
			return false
		}
	}
	return true
}

// collidesWithFixed reports whether c's trace path collides with any
// already-fixed trace in the node, regardless of net. inclusive mirrors
// Config.CollisionStrict (inverted): true makes two traces that only touch
// at their boundary count as a collision.
func (n *node) collidesWithFixed(c *pcbmodel.ProbaTrace, inclusive bool) bool {
	for _, ft := range n.fixedTraces {
		if c.TracePath.CollidesWithMode(ft.TracePath, inclusive) {
			return true
		}
	}
	return false
}

// promote clones the node, fixes c's trace, and drops every remaining
// candidate belonging to the same connection from the cloned heap.
func (n *node) promote(c *pcbmodel.ProbaTrace) *node {
	fixed := cloneFixed(n.fixedTraces)
	fixed[c.ConnectionID] = pcbmodel.FixedTrace{NetID: c.NetID, ConnectionID: c.ConnectionID, TracePath: c.TracePath}

	newHeap := pqueue.New[float64, *pcbmodel.ProbaTrace]()
	for _, item := range n.heap.Items() {
		if item.Value.ConnectionID == c.ConnectionID {
			continue
		}
		newHeap.Push(item.Key, item.Value)
	}
	return &node{fixedTraces: fixed, heap: newHeap, upToDate: false}
}
