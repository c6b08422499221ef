// Package problemio loads and saves PcbProblem definitions and PcbSolution
// results as JSON documents, the on-disk schema cmd/pcbroute reads and
// writes. It mirrors internal/config's Load/Save style: a plain DTO decoded
// with encoding/json, then converted to and from the live pcbmodel types.
package problemio

import (
	"encoding/json"
	"fmt"
	"os"

	"pcbroute/internal/pcbmodel"
	"pcbroute/internal/version"
	"pcbroute/pkg/geometry"
)

// padDoc is the JSON representation of a pcbmodel.Pad.
type padDoc struct {
	Position    geometry.Point2D `json:"position"`
	Kind        string           `json:"kind"` // "circle", "square", "rectangle"
	Diameter    float64          `json:"diameter,omitempty"`
	Side        float64          `json:"side,omitempty"`
	Width       float64          `json:"width,omitempty"`
	Height      float64          `json:"height,omitempty"`
	RotationDeg float64          `json:"rotation_deg,omitempty"`
	Clearance   float64          `json:"clearance"`
}

func (d padDoc) toPad() (pcbmodel.Pad, error) {
	switch d.Kind {
	case "circle":
		return pcbmodel.NewCirclePad(d.Position, d.Diameter, d.Clearance), nil
	case "square":
		return pcbmodel.NewSquarePad(d.Position, d.Side, d.RotationDeg, d.Clearance), nil
	case "rectangle":
		return pcbmodel.NewRectanglePad(d.Position, d.Width, d.Height, d.RotationDeg, d.Clearance), nil
	default:
		return pcbmodel.Pad{}, fmt.Errorf("problemio: unknown pad kind %q", d.Kind)
	}
}

func padToDoc(p pcbmodel.Pad) padDoc {
	d := padDoc{Position: p.Position, RotationDeg: p.RotationDeg, Clearance: p.Clearance}
	switch p.Shape.Kind {
	case pcbmodel.PadCircle:
		d.Kind = "circle"
		d.Diameter = p.Shape.Diameter
	case pcbmodel.PadSquare:
		d.Kind = "square"
		d.Side = p.Shape.Side
	case pcbmodel.PadRectangle:
		d.Kind = "rectangle"
		d.Width = p.Shape.Width
		d.Height = p.Shape.Height
	}
	return d
}

type connectionDoc struct {
	Source         padDoc  `json:"source"`
	Sink           padDoc  `json:"sink"`
	TraceWidth     float64 `json:"trace_width"`
	TraceClearance float64 `json:"trace_clearance"`
}

type netDoc struct {
	Color       pcbmodel.Color  `json:"color"`
	Connections []connectionDoc `json:"connections"`
}

type problemDoc struct {
	SchemaVersion int      `json:"schema_version"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	Nets          []netDoc `json:"nets"`
}

// Load reads a PcbProblem from a JSON file. A document with no
// schema_version is treated as schema 1 (fields predate the version stamp);
// a document from a newer, incompatible schema is rejected rather than
// silently misparsed.
func Load(path string) (*pcbmodel.PcbProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problemio: reading %s: %w", path, err)
	}
	var doc problemDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("problemio: parsing %s: %w", path, err)
	}
	if doc.SchemaVersion != 0 && doc.SchemaVersion > version.ProblemSchemaVersion {
		return nil, fmt.Errorf("problemio: %s uses schema version %d, newest supported is %d", path, doc.SchemaVersion, version.ProblemSchemaVersion)
	}

	problem := pcbmodel.NewPcbProblem(doc.Width, doc.Height)
	for _, nd := range doc.Nets {
		netID := problem.AddNet(nd.Color)
		for _, cd := range nd.Connections {
			source, err := cd.Source.toPad()
			if err != nil {
				return nil, err
			}
			sink, err := cd.Sink.toPad()
			if err != nil {
				return nil, err
			}
			problem.AddConnection(netID, source, sink, cd.TraceWidth, cd.TraceClearance)
		}
	}
	return problem, nil
}

// Save writes problem to path as indented JSON.
func Save(path string, problem *pcbmodel.PcbProblem) error {
	doc := problemDoc{SchemaVersion: version.ProblemSchemaVersion, Width: problem.Width, Height: problem.Height}
	for _, net := range problem.Nets {
		nd := netDoc{Color: net.Color}
		for _, conn := range net.Connections {
			nd.Connections = append(nd.Connections, connectionDoc{
				Source:         padToDoc(conn.Source),
				Sink:           padToDoc(conn.Sink),
				TraceWidth:     conn.TraceWidth,
				TraceClearance: conn.TraceClearance,
			})
		}
		doc.Nets = append(doc.Nets, nd)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("problemio: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("problemio: writing %s: %w", path, err)
	}
	return nil
}

// solutionDoc is the JSON representation of a PcbSolution: one fixed trace
// path per connection, keyed by connection ID.
type solutionDoc struct {
	SchemaVersion int                      `json:"schema_version"`
	SolveID       string                   `json:"solve_id"`
	Traces        map[string]fixedTraceDoc `json:"traces"`
}

type fixedTraceDoc struct {
	NetID     int                   `json:"net_id"`
	Anchors   pcbmodel.TraceAnchors `json:"anchors"`
	Width     float64               `json:"width"`
	Clearance float64               `json:"clearance"`
}

// SaveSolution writes solution to path as indented JSON.
func SaveSolution(path string, solution *pcbmodel.PcbSolution) error {
	doc := solutionDoc{
		SchemaVersion: version.ProblemSchemaVersion,
		SolveID:       solution.SolveID.String(),
		Traces:        make(map[string]fixedTraceDoc, len(solution.DeterminedTraces)),
	}
	for connID, ft := range solution.DeterminedTraces {
		doc.Traces[fmt.Sprint(int(connID))] = fixedTraceDoc{
			NetID:     int(ft.NetID),
			Anchors:   ft.TracePath.Anchors,
			Width:     ft.TracePath.Segments[0].Width,
			Clearance: ft.TracePath.Segments[0].Clearance,
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("problemio: marshaling solution: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("problemio: writing %s: %w", path, err)
	}
	return nil
}
