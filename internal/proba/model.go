// Package proba implements the probabilistic trace model: per-connection
// candidate pools sampled against stochastically chosen rival
// configurations, refined by synchronous posterior updates over a
// collision-adjacency graph.
package proba

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"pcbroute/internal/astar"
	"pcbroute/internal/config"
	"pcbroute/internal/observer"
	"pcbroute/internal/pcbmodel"
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
)

// Model holds the live candidate pools for every still-unrouted connection
// of a problem, plus the fixed traces already committed by the enclosing
// solver node.
type Model struct {
	Problem  *pcbmodel.PcbProblem
	Config   config.Config
	RNG      *rand.Rand
	Observer observer.Observer

	states    map[pcbmodel.ConnectionID]*pcbmodel.TraceState
	adjacency map[pcbmodel.ProbaTraceID]map[pcbmodel.ProbaTraceID]bool
	generated map[pcbmodel.ConnectionID]map[string]bool
	iteration int
	nextID    int
}

// New builds a model for problem, with fixed already holding any traces
// promoted by the backtracking solver before this node. Every other
// connection starts with an empty probabilistic bag.
func New(problem *pcbmodel.PcbProblem, cfg config.Config, rng *rand.Rand, obs observer.Observer, fixed map[pcbmodel.ConnectionID]pcbmodel.FixedTrace) *Model {
	m := &Model{
		Problem:   problem,
		Config:    cfg,
		RNG:       rng,
		Observer:  obs,
		states:    make(map[pcbmodel.ConnectionID]*pcbmodel.TraceState),
		adjacency: make(map[pcbmodel.ProbaTraceID]map[pcbmodel.ProbaTraceID]bool),
		generated: make(map[pcbmodel.ConnectionID]map[string]bool),
		iteration: 1,
	}
	for _, conn := range problem.AllConnections() {
		if ft, ok := fixed[conn.ConnectionID]; ok {
			state := pcbmodel.NewFixedTraceState(ft)
			m.states[conn.ConnectionID] = &state
		} else {
			state := pcbmodel.NewProbabilisticTraceState()
			m.states[conn.ConnectionID] = &state
			m.generated[conn.ConnectionID] = make(map[string]bool)
		}
	}
	return m
}

func (m *Model) takeID() pcbmodel.ProbaTraceID {
	m.nextID++
	return pcbmodel.ProbaTraceID(m.nextID)
}

// Candidates flattens every still-probabilistic trace across every
// connection, the pool the backtracking solver turns into its max-heap.
func (m *Model) Candidates() []*pcbmodel.ProbaTrace {
	var out []*pcbmodel.ProbaTrace
	for _, state := range m.states {
		if state.Kind != pcbmodel.TraceProbabilistic {
			continue
		}
		for _, t := range state.Probabilistic {
			out = append(out, t)
		}
	}
	return out
}

// Solve runs a full build: Config.MaxIteration sampling rounds, each
// followed by adjacency recomputation and ten posterior-update steps.
func (m *Model) Solve() error {
	for k := 1; k <= m.Config.MaxIteration; k++ {
		if err := m.SampleRound(k); err != nil {
			return err
		}
		m.RecomputeAdjacency()
		for i := 0; i < 10; i++ {
			m.PosteriorUpdateStep()
		}
	}
	return nil
}

// connectionNet returns the net a connection belongs to.
func (m *Model) connectionNet(id pcbmodel.ConnectionID) pcbmodel.NetID {
	for _, net := range m.Problem.Nets {
		if _, ok := net.Connections[id]; ok {
			return net.NetID
		}
	}
	panic("proba: connection not found in any net")
}

func (m *Model) connectionByID(id pcbmodel.ConnectionID) *pcbmodel.Connection {
	for _, net := range m.Problem.Nets {
		if c, ok := net.Connections[id]; ok {
			return c
		}
	}
	panic("proba: connection not found in any net")
}

// SampleRound produces up to Config.CandidateCount(k) candidates per
// still-probabilistic connection, net by net, following spec section 4.3.
func (m *Model) SampleRound(k int) error {
	thisRound := func(connID pcbmodel.ConnectionID) int {
		n := 0
		for _, t := range m.states[connID].Probabilistic {
			if t.Iteration == k {
				n++
			}
		}
		return n
	}
	for _, net := range m.Problem.Nets {
		target := m.Config.CandidateCount(k)
		attempts := 0
		for attempts < m.Config.MaxGenerationAttempts {
			progressed := false
			sampled, err := m.sampleRivals(net.NetID, k)
			if err != nil {
				return err
			}
			obstacleShapes, obstacleClearance := m.buildObstacleSet(net.NetID, sampled)

			for connID := range net.Connections {
				state := m.states[connID]
				if state.Kind != pcbmodel.TraceProbabilistic {
					continue
				}
				if thisRound(connID) >= target {
					continue
				}
				conn := m.connectionByID(connID)
				path, err := m.runAStar(conn, obstacleShapes, obstacleClearance)
				if err != nil {
					continue
				}
				key := path.Anchors.Key()
				if m.generated[connID][key] {
					continue
				}
				m.generated[connID][key] = true
				id := m.takeID()
				state.Probabilistic[id] = &pcbmodel.ProbaTrace{
					NetID:        net.NetID,
					ConnectionID: connID,
					ProbaTraceID: id,
					TracePath:    path,
					Iteration:    k,
				}
				progressed = true
			}
			if !progressed {
				attempts++
				continue
			}
			allFilled := true
			for connID := range net.Connections {
				state := m.states[connID]
				if state.Kind == pcbmodel.TraceProbabilistic && thisRound(connID) < target {
					allFilled = false
					break
				}
			}
			if allFilled {
				break
			}
			attempts++
		}
	}
	m.iteration = k + 1
	return nil
}

// sampledRival is one other-net connection's chosen candidate for this
// round's obstacle set, or nil if "no trace" was sampled.
type sampledRival struct {
	trace *pcbmodel.ProbaTrace
}

// sampleRivals independently samples, for every connection not in netID, a
// weighted choice among its existing candidates (or "no trace"), per
// spec section 4.3 step 1.
func (m *Model) sampleRivals(netID pcbmodel.NetID, k int) ([]sampledRival, error) {
	var out []sampledRival
	for _, net := range m.Problem.Nets {
		if net.NetID == netID {
			continue
		}
		for connID := range net.Connections {
			state := m.states[connID]
			if state.Kind == pcbmodel.TraceFixed {
				continue
			}
			candidates := make([]*pcbmodel.ProbaTrace, 0, len(state.Probabilistic))
			for _, t := range state.Probabilistic {
				candidates = append(candidates, t)
			}
			if len(candidates) == 0 {
				continue
			}
			weights := make([]float64, len(candidates)+1)
			for i, c := range candidates {
				weights[i] = c.PosteriorWithFallback(m.Config.NormalisedPrior(c.Iteration))
			}
			weights[len(candidates)] = m.Config.RemainingMass(k)
			dist := distuv.NewCategorical(weights, m.RNG)
			idx := int(dist.Rand())
			if idx < len(candidates) {
				out = append(out, sampledRival{trace: candidates[idx]})
			}
		}
	}
	return out, nil
}

// buildObstacleSet unions the sampled rival trace shapes with every pad of
// every net other than netID.
func (m *Model) buildObstacleSet(netID pcbmodel.NetID, sampled []sampledRival) (bodies, clearances []geometry.PrimShape) {
	for _, net := range m.Problem.Nets {
		if net.NetID == netID {
			continue
		}
		for _, conn := range net.Connections {
			bodies = append(bodies, conn.Source.ToShapes()...)
			bodies = append(bodies, conn.Sink.ToShapes()...)
			clearances = append(clearances, conn.Source.ToClearanceShapes()...)
			clearances = append(clearances, conn.Sink.ToClearanceShapes()...)
		}
		if fixedState, ok := m.stateForNet(net.NetID); ok {
			for _, ft := range fixedState {
				for _, seg := range ft.TracePath.Segments {
					bodies = append(bodies, seg.ToShapes()...)
					clearances = append(clearances, seg.ToClearanceShapes()...)
				}
			}
		}
	}
	for _, rival := range sampled {
		for _, seg := range rival.trace.TracePath.Segments {
			bodies = append(bodies, seg.ToShapes()...)
			clearances = append(clearances, seg.ToClearanceShapes()...)
		}
	}
	return bodies, clearances
}

// stateForNet returns the fixed traces of every connection in net that has
// already been promoted by the backtracking solver.
func (m *Model) stateForNet(netID pcbmodel.NetID) ([]pcbmodel.FixedTrace, bool) {
	net, ok := m.Problem.Nets[netID]
	if !ok {
		return nil, false
	}
	var out []pcbmodel.FixedTrace
	for connID := range net.Connections {
		state := m.states[connID]
		if state.Kind == pcbmodel.TraceFixed {
			out = append(out, state.Fixed)
		}
	}
	return out, len(out) > 0
}

// runAStar builds and runs an astar.Model for one connection's
// source-to-sink route against the given obstacle set, smoothing the
// result before returning it.
func (m *Model) runAStar(conn *pcbmodel.Connection, bodies, clearances []geometry.PrimShape) (pcbmodel.TracePath, error) {
	start := fixedpoint.VecFromFloat(conn.Source.Position.X, conn.Source.Position.Y)
	end := fixedpoint.VecFromFloat(conn.Sink.Position.X, conn.Sink.Position.Y)
	search := &astar.Model{
		Width:                   m.Problem.Width,
		Height:                  m.Problem.Height,
		ObstacleShapes:          bodies,
		ObstacleClearanceShapes: clearances,
		Start:                   start,
		End:                     end,
		TraceWidth:              conn.TraceWidth,
		TraceClearance:          conn.TraceClearance,
		Config:                  m.Config,
		Observer:                m.Observer,
	}
	path, err := search.Run()
	if err != nil {
		return pcbmodel.TracePath{}, err
	}
	return search.Smooth(path), nil
}

// RecomputeAdjacency rebuilds the collision adjacency graph: an edge
// between every pair of probabilistic traces from different nets whose
// trace paths collide.
func (m *Model) RecomputeAdjacency() {
	m.adjacency = make(map[pcbmodel.ProbaTraceID]map[pcbmodel.ProbaTraceID]bool)
	all := m.Candidates()
	for _, t := range all {
		m.adjacency[t.ProbaTraceID] = make(map[pcbmodel.ProbaTraceID]bool)
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.NetID == b.NetID {
				continue
			}
			if a.TracePath.CollidesWithMode(b.TracePath, !m.Config.CollisionStrict) {
				m.adjacency[a.ProbaTraceID][b.ProbaTraceID] = true
				m.adjacency[b.ProbaTraceID][a.ProbaTraceID] = true
			}
		}
	}
}

// PosteriorUpdateStep runs one synchronous posterior-update pass over
// every probabilistic trace, per spec section 4.3.
func (m *Model) PosteriorUpdateStep() {
	all := m.Candidates()
	byID := make(map[pcbmodel.ProbaTraceID]*pcbmodel.ProbaTrace, len(all))
	for _, t := range all {
		byID[t.ProbaTraceID] = t
	}

	for _, t := range all {
		normalisedPrior := m.Config.NormalisedPrior(t.Iteration)
		pi := t.PosteriorWithFallback(normalisedPrior)

		target := 1.0
		for neighbourID := range m.adjacency[t.ProbaTraceID] {
			neighbour := byID[neighbourID]
			neighbourPi := neighbour.PosteriorWithFallback(m.Config.NormalisedPrior(neighbour.Iteration))
			survives := 1 - neighbourPi
			if survives < 0 {
				survives = 0
			}
			target *= survives
		}

		opportunityCost := 0.0
		if pi > 0 {
			opportunityCost = target / pi
		}
		score := t.TracePath.Score(m.Config.HalfProbabilityScore)
		targetUnnormalised := pow(score, m.Config.ScoreWeight) * pow(opportunityCost, m.Config.OpportunityCostWeight)
		targetNormalised := normalisedPrior * targetUnnormalised

		diff := targetNormalised - pi
		nudge := m.Config.LinearLearningRate*diff + sign(diff)*m.Config.ConstantLearningRate
		temp := pi + nudge
		if diff >= 0 && temp > targetNormalised {
			temp = targetNormalised
		}
		if diff < 0 && temp < targetNormalised {
			temp = targetNormalised
		}
		if temp < 0 {
			temp = 0
		}
		if temp > 1 {
			temp = 1
		}
		tempCopy := temp
		t.TempPosterior = &tempCopy
	}

	for _, t := range all {
		if t.TempPosterior != nil {
			committed := *t.TempPosterior
			t.Posterior = &committed
			t.TempPosterior = nil
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func pow(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}
