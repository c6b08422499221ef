package pcbmodel

// Connection is an unordered pad pair within a net that must be joined by
// a trace.
type Connection struct {
	NetID          NetID
	ConnectionID   ConnectionID
	Source         Pad
	Sink           Pad
	TraceWidth     float64
	TraceClearance float64
}

// NetInfo is a net: a color identity plus its connections, all sharing the
// same source pad.
type NetInfo struct {
	NetID       NetID
	Color       Color
	Connections map[ConnectionID]*Connection
}
