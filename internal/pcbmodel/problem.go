package pcbmodel

import (
	"fmt"

	"github.com/google/uuid"
)

// PcbProblem is the full routing problem: board dimensions plus every net
// and its connections.
type PcbProblem struct {
	ID     uuid.UUID
	Width  float64
	Height float64
	Nets   map[NetID]*NetInfo

	netIDs        idGenerator
	connectionIDs idGenerator
}

// NewPcbProblem constructs an empty problem of the given board size,
// stamped with a fresh ID for log correlation.
func NewPcbProblem(width, height float64) *PcbProblem {
	return &PcbProblem{
		ID:     uuid.New(),
		Width:  width,
		Height: height,
		Nets:   make(map[NetID]*NetInfo),
	}
}

// AddNet registers a new net with the given color, panicking if the color
// is already used by another net (ported from pcb_problem.rs::add_net's
// duplicate-color assertion).
func (p *PcbProblem) AddNet(color Color) NetID {
	for _, net := range p.Nets {
		if net.Color == color {
			panic(fmt.Sprintf("pcbmodel: net with color %+v already exists", color))
		}
	}
	id := NetID(p.netIDs.take())
	p.Nets[id] = &NetInfo{NetID: id, Color: color, Connections: make(map[ConnectionID]*Connection)}
	return id
}

// AddConnection registers a new connection within netID, asserting that
// every connection within a net shares the same source pad (spec
// invariant, §3).
func (p *PcbProblem) AddConnection(netID NetID, source, sink Pad, traceWidth, traceClearance float64) ConnectionID {
	net, ok := p.Nets[netID]
	if !ok {
		panic(fmt.Sprintf("pcbmodel: net %v not found", netID))
	}
	for _, existing := range net.Connections {
		if existing.Source.Position != source.Position {
			panic(fmt.Sprintf("pcbmodel: net %v has connections with differing source pads", netID))
		}
	}
	id := ConnectionID(p.connectionIDs.take())
	net.Connections[id] = &Connection{
		NetID:          netID,
		ConnectionID:   id,
		Source:         source,
		Sink:           sink,
		TraceWidth:     traceWidth,
		TraceClearance: traceClearance,
	}
	return id
}

// AllConnections returns every connection across every net, along with the
// net ID each belongs to.
func (p *PcbProblem) AllConnections() []*Connection {
	var out []*Connection
	for _, net := range p.Nets {
		for _, conn := range net.Connections {
			out = append(out, conn)
		}
	}
	return out
}

// PcbSolution is the solver's successful result: one fixed trace per
// connection.
type PcbSolution struct {
	SolveID         uuid.UUID
	DeterminedTraces map[ConnectionID]FixedTrace
}
