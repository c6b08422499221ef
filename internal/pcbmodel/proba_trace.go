package pcbmodel

// ProbaTrace is one weighted candidate trace for a still-unrouted
// connection. Posterior and TempPosterior are nil until the first
// posterior-update step touches them, at which point PosteriorWithFallback
// falls back to the iteration's normalised prior.
type ProbaTrace struct {
	NetID         NetID
	ConnectionID  ConnectionID
	ProbaTraceID  ProbaTraceID
	TracePath     TracePath
	Iteration     int // 1-based, bounded by config.MaxIteration
	Posterior     *float64
	TempPosterior *float64
}

// PosteriorWithFallback returns the trace's current posterior, falling
// back to normalisedPrior (P_k / N_k for this trace's iteration) if no
// posterior-update step has run yet.
func (t *ProbaTrace) PosteriorWithFallback(normalisedPrior float64) float64 {
	if t.Posterior != nil {
		return *t.Posterior
	}
	return normalisedPrior
}

// FixedTrace is a trace promoted to immutable status by the backtracking
// solver.
type FixedTrace struct {
	NetID        NetID
	ConnectionID ConnectionID
	TracePath    TracePath
}

// TraceStateKind distinguishes whether a connection's trace state is
// fixed or still a bag of probabilistic candidates.
type TraceStateKind int

const (
	TraceFixed TraceStateKind = iota
	TraceProbabilistic
)

// TraceState is the solver-side tagged variant of a connection's trace:
// either a single FixedTrace or a bag of ProbaTrace candidates keyed by ID.
type TraceState struct {
	Kind         TraceStateKind
	Fixed        FixedTrace
	Probabilistic map[ProbaTraceID]*ProbaTrace
}

// NewFixedTraceState wraps a FixedTrace as a TraceState.
func NewFixedTraceState(ft FixedTrace) TraceState {
	return TraceState{Kind: TraceFixed, Fixed: ft}
}

// NewProbabilisticTraceState returns an empty probabilistic TraceState.
func NewProbabilisticTraceState() TraceState {
	return TraceState{Kind: TraceProbabilistic, Probabilistic: make(map[ProbaTraceID]*ProbaTrace)}
}
