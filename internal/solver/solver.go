// Package solver implements the backtracking search that fixes one trace
// at a time from the probabilistic model, maintaining a stack of partial
// solutions and selectively re-solving the probabilistic model at
// intermediate stack levels when progress stalls.
package solver

import (
	"math/rand"

	"github.com/google/uuid"

	"pcbroute/internal/config"
	"pcbroute/internal/observer"
	"pcbroute/internal/pcbmodel"
	"pcbroute/internal/proba"
)

// Solver runs the backtracking search over a single problem.
type Solver struct {
	Problem  *pcbmodel.PcbProblem
	Config   config.Config
	RNG      *rand.Rand
	Observer observer.Observer

	stack []*node
}

// New constructs a Solver ready to Solve problem.
func New(problem *pcbmodel.PcbProblem, cfg config.Config, rng *rand.Rand, obs observer.Observer) *Solver {
	return &Solver{Problem: problem, Config: cfg, RNG: rng, Observer: obs}
}

// buildNodeFrom runs the probabilistic model from scratch against fixed,
// returning the resulting node (not yet pushed).
func (s *Solver) buildNodeFrom(fixed map[pcbmodel.ConnectionID]pcbmodel.FixedTrace, upToDate bool) (*node, error) {
	model := proba.New(s.Problem, s.Config, s.RNG, s.Observer, fixed)
	if err := model.Solve(); err != nil {
		return nil, err
	}
	candidates := model.Candidates()
	normalisedPrior := func(t *pcbmodel.ProbaTrace) float64 { return s.Config.NormalisedPrior(t.Iteration) }
	return newNode(fixed, candidates, normalisedPrior, upToDate), nil
}

// Solve runs the backtracking search to completion, returning the
// determined traces on success or ErrNoSolution once the stack empties.
func (s *Solver) Solve() (*pcbmodel.PcbSolution, error) {
	initial, err := s.buildNodeFrom(nil, true)
	if err != nil {
		return nil, err
	}
	s.stack = []*node{initial}

	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]

		if top.isSolution(s.Problem) {
			return &pcbmodel.PcbSolution{SolveID: uuid.New(), DeterminedTraces: top.fixedTraces}, nil
		}

		c, _, ok := top.heap.Pop()
		if !ok {
			if err := s.handleDiscard(); err != nil {
				return nil, err
			}
			continue
		}

		if top.collidesWithFixed(c, !s.Config.CollisionStrict) {
			if err := s.handleDiscard(); err != nil {
				return nil, err
			}
			continue
		}

		s.stack = append(s.stack, top.promote(c))
	}
	return nil, ErrNoSolution
}

// handleDiscard implements the re-solve-or-pop step that follows a
// discarded candidate: find the highest up-to-date node at or below the
// top, re-solve at the midpoint biased right, and either splice in the
// fresh node or pop the top entirely if the re-solve produced nothing.
func (s *Solver) handleDiscard() error {
	top := len(s.stack) - 1
	l := s.highestUpToDateAtOrBelow(top)
	m := (top + l + 1 + 1) / 2 // ceil((top+l+1)/2), bias right
	if m > top {
		// No stale ancestor exists below top: top is itself already
		// up to date, so there is nothing to usefully re-solve. If its
		// heap is exhausted there is no way forward from here.
		if s.stack[top].heap.Len() == 0 {
			s.stack = s.stack[:top]
		}
		return nil
	}

	fresh, err := s.buildNodeFrom(s.stack[m].fixedTraces, true)
	if err != nil {
		return err
	}
	if fresh.heap.Len() == 0 {
		s.stack = s.stack[:top]
		return nil
	}
	s.stack = append(s.stack[:m+1], fresh)
	return nil
}

func (s *Solver) highestUpToDateAtOrBelow(top int) int {
	for i := top; i >= 0; i-- {
		if s.stack[i].upToDate {
			return i
		}
	}
	return 0
}
