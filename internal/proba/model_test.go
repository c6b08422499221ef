package proba

import (
	"math/rand"
	"testing"

	"pcbroute/internal/config"
	"pcbroute/internal/pcbmodel"
	"pcbroute/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleConnectionProblem() (*pcbmodel.PcbProblem, pcbmodel.ConnectionID) {
	problem := pcbmodel.NewPcbProblem(15, 10)
	netID := problem.AddNet(pcbmodel.Color{R: 255, G: 0, B: 0})
	source := pcbmodel.NewCirclePad(geometry.Point2D{X: 0, Y: 0}, 1.2, 0.1)
	sink := pcbmodel.NewCirclePad(geometry.Point2D{X: 0, Y: 5}, 1.0, 0.1)
	connID := problem.AddConnection(netID, source, sink, 0.5, 0.05)
	return problem, connID
}

func TestSampleRoundProducesCandidatesOnClearBoard(t *testing.T) {
	problem, connID := singleConnectionProblem()
	rng := rand.New(rand.NewSource(1))
	m := New(problem, config.Default(), rng, nil, nil)

	require.NoError(t, m.SampleRound(1))
	state := m.states[connID]
	require.Equal(t, pcbmodel.TraceProbabilistic, state.Kind)
	assert.GreaterOrEqual(t, len(state.Probabilistic), 1)
}

func TestNormalisedPriorExactForGeneratedCandidates(t *testing.T) {
	problem, connID := singleConnectionProblem()
	rng := rand.New(rand.NewSource(2))
	cfg := config.Default()
	m := New(problem, cfg, rng, nil, nil)

	require.NoError(t, m.SampleRound(1))
	for _, t2 := range m.states[connID].Probabilistic {
		assert.Equal(t, cfg.NormalisedPrior(1), t2.PosteriorWithFallback(cfg.NormalisedPrior(t2.Iteration)))
	}
}

func TestPosteriorUpdateStepKeepsValuesInUnitRange(t *testing.T) {
	problem, _ := singleConnectionProblem()
	rng := rand.New(rand.NewSource(3))
	m := New(problem, config.Default(), rng, nil, nil)

	require.NoError(t, m.SampleRound(1))
	m.RecomputeAdjacency()
	m.PosteriorUpdateStep()

	for _, c := range m.Candidates() {
		require.NotNil(t, c.Posterior)
		assert.GreaterOrEqual(t, *c.Posterior, 0.0)
		assert.LessOrEqual(t, *c.Posterior, 1.0)
	}
}

func TestSolveRunsFullIterationBudget(t *testing.T) {
	problem, _ := singleConnectionProblem()
	rng := rand.New(rand.NewSource(4))
	m := New(problem, config.Default(), rng, nil, nil)
	require.NoError(t, m.Solve())
	assert.NotEmpty(t, m.Candidates())
}
