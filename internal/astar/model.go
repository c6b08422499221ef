// Package astar implements the geometric A* pathfinder that routes one
// connection across the eight-direction lattice, avoiding pad and trace
// obstacles by their swept clearance shapes.
package astar

import (
	"time"

	"pcbroute/internal/config"
	"pcbroute/internal/observer"
	"pcbroute/internal/pcbmodel"
	"pcbroute/pkg/colorutil"
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
	"pcbroute/pkg/pqueue"
)

// borderMargin is the thickness of the synthetic border rectangles placed
// just outside the board edges, keeping the search from wandering off the
// board entirely.
const borderMargin = 1000.0

// Model is one A* run: a board region, a start/end pair, obstacle shapes
// to avoid, and the tunables and visualization hook it runs under.
type Model struct {
	Width, Height           float64
	ObstacleShapes          []geometry.PrimShape
	ObstacleClearanceShapes []geometry.PrimShape
	Start, End              fixedpoint.Vec2
	TraceWidth, TraceClearance float64
	Config                  config.Config
	Observer                observer.Observer

	borderCache []geometry.PrimShape
}

func (m *Model) observer() observer.Observer {
	if m.Observer == nil {
		return observer.Null{}
	}
	return m.Observer
}

// borderShapes returns (and caches) four rectangles framing the board, one
// past each edge.
func (m *Model) borderShapes() []geometry.PrimShape {
	if m.borderCache != nil {
		return m.borderCache
	}
	halfW, halfH := m.Width/2, m.Height/2
	m.borderCache = []geometry.PrimShape{
		geometry.NewRectangle(geometry.Point2D{X: 0, Y: halfH + borderMargin/2}, m.Width+2*borderMargin, borderMargin, 0),
		geometry.NewRectangle(geometry.Point2D{X: 0, Y: -halfH - borderMargin/2}, m.Width+2*borderMargin, borderMargin, 0),
		geometry.NewRectangle(geometry.Point2D{X: -halfW - borderMargin/2, Y: 0}, borderMargin, m.Height+2*borderMargin, 0),
		geometry.NewRectangle(geometry.Point2D{X: halfW + borderMargin/2, Y: 0}, borderMargin, m.Height+2*borderMargin, 0),
	}
	return m.borderCache
}

func (m *Model) collidesWithBorder(shapes []geometry.PrimShape) bool {
	inclusive := !m.Config.CollisionStrict
	for _, border := range m.borderShapes() {
		for _, s := range shapes {
			if border.CollidesWithMode(s, inclusive) {
				return true
			}
		}
	}
	return false
}

// segmentCollides reports whether the straight segment from start to end
// (already known to lie along direction d) collides with the board
// border or any obstacle's clearance, or whether its own clearance
// collides with any obstacle body. The border is tested against the
// segment's rectangle only, not its round end caps, so a segment may end
// exactly on the board edge.
func (m *Model) segmentCollides(start, end fixedpoint.Vec2, d geometry.Direction) bool {
	seg := pcbmodel.TraceSegment{Start: start, End: end, Direction: d, Width: m.TraceWidth, Clearance: m.TraceClearance}
	shapes := seg.ToShapes()
	var bodyRects []geometry.PrimShape
	for _, s := range shapes {
		if s.Kind == geometry.ShapeRectangle {
			bodyRects = append(bodyRects, s)
		}
	}
	if m.collidesWithBorder(bodyRects) {
		return true
	}
	inclusive := !m.Config.CollisionStrict
	clearanceShapes := seg.ToClearanceShapes()
	for _, obstacle := range m.ObstacleShapes {
		for _, cs := range clearanceShapes {
			if obstacle.CollidesWithMode(cs, inclusive) {
				return true
			}
		}
	}
	for _, obstacleClearance := range m.ObstacleClearanceShapes {
		for _, s := range shapes {
			if obstacleClearance.CollidesWithMode(s, inclusive) {
				return true
			}
		}
	}
	return false
}

// buildNode extends parent with a proposed successor, computing its
// accumulated cost, estimated remaining cost, and optional turn penalty.
func (m *Model) buildNode(parent *node, c candidate) *node {
	segLen := segmentLength(parent.position, c.position)
	turnPenalty := 0.0
	if m.Config.UseTurnPenalty && parent.hasDir && parent.direction != c.direction {
		turnPenalty = m.Config.TurnPenalty
	}
	g := parent.g + segLen + turnPenalty
	h := octileDistance(c.position, m.End) * m.Config.EstimateCoefficient
	return &node{
		position:  c.position,
		direction: c.direction,
		hasDir:    true,
		g:         g,
		length:    parent.length + segLen,
		h:         h,
		f:         g + h,
		parent:    parent,
	}
}

// generateSuccessors runs the five successor-generation rules in order,
// deduplicating by resulting position.
func (m *Model) generateSuccessors(cur *node) []*node {
	allowed := directionsFor(cur)

	var candidates []candidate
	candidates = append(candidates, m.endAlignmentRule(cur)...)
	rule2 := m.gridNeighbourRule(cur, allowed)
	rule3 := m.radialHugRule(cur, allowed)
	candidates = append(candidates, rule2...)
	candidates = append(candidates, rule3...)

	injectionInput := make([]candidate, 0, len(rule2)+len(rule3))
	injectionInput = append(injectionInput, rule2...)
	injectionInput = append(injectionInput, rule3...)
	candidates = append(candidates, m.goalAlignmentInjection(cur, injectionInput)...)

	if len(candidates) == 0 {
		candidates = append(candidates, m.fallbackRule(cur)...)
	}

	seen := make(map[fixedpoint.Vec2]bool, len(candidates))
	nodes := make([]*node, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.position] {
			continue
		}
		seen[c.position] = true
		nodes = append(nodes, m.buildNode(cur, c))
	}
	return nodes
}

// Run searches for a collision-free trace path from Start to End, honoring
// the configured trial budget.
func (m *Model) Run() (pcbmodel.TracePath, error) {
	if m.Start == m.End {
		return pcbmodel.TracePath{}, ErrStartEqualsEnd
	}

	start := &node{position: m.Start, hasDir: false, g: 0, length: 0}
	start.h = octileDistance(m.Start, m.End) * m.Config.EstimateCoefficient
	start.f = start.h

	frontier := pqueue.New[float64, *node]()
	frontier.Push(start.f, start)
	visited := make(map[fixedpoint.Vec2]bool)

	budget := m.Config.AStarTrialBudget
	expansions := 0

	for frontier.Len() > 0 {
		cur, _, ok := frontier.Pop()
		if !ok {
			break
		}
		if visited[cur.position] {
			continue
		}
		if cur.position == m.End {
			return cur.toTracePath(m.TraceWidth, m.TraceClearance)
		}
		if expansions >= budget {
			return pcbmodel.TracePath{}, ErrTrialBudgetExceeded
		}
		visited[cur.position] = true
		expansions++

		for _, succ := range m.generateSuccessors(cur) {
			if visited[succ.position] {
				continue
			}
			frontier.Push(succ.f, succ)
		}

		if m.Config.DisplayAStar {
			m.publishFrontier(frontier)
		}
	}
	return pcbmodel.TracePath{}, ErrFrontierEmpty
}

// publishFrontier renders every queued frontier node as a small marker
// colored by its normalized f-score rank, then blocks on the observer's
// acknowledgement or sleeps for the configured display period.
func (m *Model) publishFrontier(frontier *pqueue.Queue[float64, *node]) {
	items := frontier.Items()
	if len(items) == 0 {
		return
	}
	minF, maxF := items[0].Key, items[0].Key
	for _, it := range items {
		if it.Key < minF {
			minF = it.Key
		}
		if it.Key > maxF {
			maxF = it.Key
		}
	}
	spread := maxF - minF

	batches := make([]observer.RenderableBatch, 0, len(items))
	for _, it := range items {
		rank := 1.0
		if spread > 0 {
			rank = 1 - (it.Key-minF)/spread
		}
		x, y := it.Value.position.ToFloat()
		col := colorutil.Lerp(rank)
		batches = append(batches, observer.RenderableBatch{
			FrontierRank: rank,
			Shapes: []observer.ShapeRenderable{{
				Shape: geometry.NewCircle(geometry.Point2D{X: x, Y: y}, m.TraceWidth/2),
				R:     col.R, G: col.G, B: col.B, A: col.A,
			}},
		})
	}

	obs := m.observer()
	obs.Publish(observer.Snapshot{
		Width:                 m.Width,
		Height:                m.Height,
		TraceShapeRenderables: batches,
	})

	if m.Config.BlockThread {
		if ack := obs.AwaitAck(); ack != nil {
			<-ack
		}
	} else if m.Config.DisplayPeriod > 0 {
		time.Sleep(m.Config.DisplayPeriod)
	}
}
