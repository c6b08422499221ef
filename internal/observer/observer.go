// Package observer defines the render-snapshot sink the routing core
// publishes to, and the two headless implementations (Null, Recording)
// used outside an interactive session. Concrete cosmetic realizations
// (Fyne canvas, tcell terminal) live in ui/fyneobserver and
// ui/tcellobserver and are never imported by the core.
package observer

import "pcbroute/pkg/geometry"

// ShapeRenderable pairs a primitive shape with an RGBA color.
type ShapeRenderable struct {
	Shape geometry.PrimShape
	R, G, B, A uint8
}

// RenderableBatch is a logically-grouped set of shape renderables, e.g.
// all shapes belonging to one A* frontier node or one trace segment.
type RenderableBatch struct {
	Shapes      []ShapeRenderable
	FrontierRank float64 // 0 = worst (red), 1 = best (green); only meaningful during A* search
}

// Snapshot is the renderable bundle published at each visualization hook:
// board dimensions, trace/obstacle shape batches, and pad shapes.
type Snapshot struct {
	Width, Height         float64
	TraceShapeRenderables []RenderableBatch
	PadShapeRenderables   []ShapeRenderable
}

// Observer is the injected sink for render snapshots. Publish never
// blocks; AwaitAck returns a channel that closes once the observer has
// acknowledged the snapshot (used only when Config.BlockThread is set), or
// nil when the observer never blocks the caller.
type Observer interface {
	Publish(Snapshot)
	AwaitAck() <-chan struct{}
}

// Null is a no-op Observer, the default with no visualization overhead.
type Null struct{}

// Publish discards the snapshot.
func (Null) Publish(Snapshot) {}

// AwaitAck returns nil: the caller never waits.
func (Null) AwaitAck() <-chan struct{} { return nil }

// Recording buffers every published snapshot, for test assertions that the
// visualization hook fires the expected number of times.
type Recording struct {
	Snapshots []Snapshot
}

// Publish appends snapshot to the buffer.
func (r *Recording) Publish(s Snapshot) {
	r.Snapshots = append(r.Snapshots, s)
}

// AwaitAck returns nil: Recording never blocks the caller.
func (r *Recording) AwaitAck() <-chan struct{} { return nil }
