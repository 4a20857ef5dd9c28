package alder

// --- Node ---

// Node is a positioned box on the canvas. A single flat struct is used for
// every node type; the Type string selects a renderer from the hook registry,
// not a Go type, so plugins can add kinds without touching the core.
type Node struct {
	// Identity
	ID   EntityID
	Type string // renderer registry key, e.g. "default"

	// Geometry (world units; X, Y is the top-left corner)
	X, Y          float64
	Width, Height float64

	// Ordering & state
	ZIndex int
	Hidden bool // excluded from visibility filtering and rendering
	Locked bool // ignored by drag/move producers; the core does not enforce it

	// Plugin-defined payload. The core never interprets it.
	Data map[string]any
}

// NewNode creates a node with the given id at the origin, using the "default"
// renderer type.
func NewNode(id EntityID) *Node {
	return &Node{ID: id, Type: "default"}
}

// Bounds returns the node's world-space bounding rect, without any padding.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Center returns the node's world-space center point.
func (n *Node) Center() (x, y float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}

// --- Edge ---

// Edge connects two nodes by id. Endpoint geometry is resolved through the
// Store at draw/visibility time; an edge whose endpoints are missing is
// treated as not visible rather than an error.
type Edge struct {
	// Identity
	ID   EntityID
	Type string // renderer registry key, e.g. "default"

	// Endpoints
	Source EntityID
	Target EntityID

	// Waypoints are optional bend points between the endpoints, in world
	// units. Empty means a straight segment.
	Waypoints []Vec2

	// Ordering & state
	ZIndex int
	Hidden bool

	// Plugin-defined payload. The core never interprets it.
	Data map[string]any
}

// NewEdge creates an edge between source and target using the "default"
// renderer type.
func NewEdge(id, source, target EntityID) *Edge {
	return &Edge{ID: id, Type: "default", Source: source, Target: target}
}
