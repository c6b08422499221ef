package problemio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbroute/internal/pcbmodel"
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
)

func sampleProblem() *pcbmodel.PcbProblem {
	problem := pcbmodel.NewPcbProblem(20, 20)
	netID := problem.AddNet(pcbmodel.Color{R: 255, G: 0, B: 0})
	source := pcbmodel.NewCirclePad(geometry.Point2D{X: 0, Y: 0}, 1.2, 0.1)
	sink := pcbmodel.NewRectanglePad(geometry.Point2D{X: 5, Y: 5}, 2, 1, 30, 0.1)
	problem.AddConnection(netID, source, sink, 0.5, 0.05)
	return problem
}

func TestSaveThenLoadRoundTripsProblem(t *testing.T) {
	original := sampleProblem()
	path := filepath.Join(t.TempDir(), "problem.json")

	require.NoError(t, Save(path, original))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.Width, loaded.Width)
	assert.Equal(t, original.Height, loaded.Height)
	require.Len(t, loaded.Nets, 1)

	var originalConn, loadedConn *pcbmodel.Connection
	for _, c := range original.AllConnections() {
		originalConn = c
	}
	for _, c := range loaded.AllConnections() {
		loadedConn = c
	}
	require.NotNil(t, loadedConn)
	assert.Equal(t, originalConn.Source.Position, loadedConn.Source.Position)
	assert.Equal(t, originalConn.Sink.Shape.Width, loadedConn.Sink.Shape.Width)
	assert.Equal(t, originalConn.TraceWidth, loadedConn.TraceWidth)
}

func TestSaveSolutionWritesDeterminedTraces(t *testing.T) {
	problem := sampleProblem()
	var connID pcbmodel.ConnectionID
	for _, c := range problem.AllConnections() {
		connID = c.ConnectionID
	}

	anchors := pcbmodel.TraceAnchors{
		fixedpoint.VecFromFloat(0, 0),
		fixedpoint.VecFromFloat(0, 5),
	}
	path, err := pcbmodel.NewTracePath(anchors, 0.5, 0.05)
	require.NoError(t, err)

	solution := &pcbmodel.PcbSolution{
		DeterminedTraces: map[pcbmodel.ConnectionID]pcbmodel.FixedTrace{
			connID: {NetID: 0, ConnectionID: connID, TracePath: path},
		},
	}

	outPath := filepath.Join(t.TempDir(), "solution.json")
	require.NoError(t, SaveSolution(outPath, solution))
}

func TestLoadRejectsNewerSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "future.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version":999,"width":1,"height":1,"nets":[]}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownPadKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":1,"height":1,"nets":[{"color":{"r":1,"g":1,"b":1},"connections":[{"source":{"kind":"hexagon"},"sink":{"kind":"circle"}}]}]}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
