package alder

import "math"

// Vec2 is a 2D vector used for positions, offsets, and edge waypoints
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in world units. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Expand returns the rectangle grown by amount on every side.
// A negative amount shrinks it.
func (r Rect) Expand(amount float64) Rect {
	return Rect{
		X:      r.X - amount,
		Y:      r.Y - amount,
		Width:  r.Width + 2*amount,
		Height: r.Height + 2*amount,
	}
}

// segmentRect returns the axis-aligned bounding rect of the segment from
// (x1, y1) to (x2, y2).
func segmentRect(x1, y1, x2, y2 float64) Rect {
	minX := math.Min(x1, x2)
	minY := math.Min(y1, y2)
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  math.Max(x1, x2) - minX,
		Height: math.Max(y1, y2) - minY,
	}
}

// EntityID uniquely identifies a node or edge on the canvas.
// The Store issues UUID strings; callers may supply their own keys as long as
// they stay unique within a kind.
type EntityID string

// EntityKind distinguishes the entity families tracked on the canvas.
type EntityKind uint8

const (
	KindNode EntityKind = iota // positioned box on the canvas
	KindEdge                   // connection between two nodes
)

// String returns the kind name for logs and debug output.
func (k EntityKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// UpdateOp describes what an Update does to its target entity.
type UpdateOp uint8

const (
	OpAdd    UpdateOp = iota // insert a new entity
	OpUpdate                 // replace an existing entity's payload
	OpRemove                 // delete the entity
)

// String returns the operation name for logs and debug output.
func (op UpdateOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Priority orders pending updates within a flush. High-priority updates are
// always included in the current frame regardless of the time budget.
type Priority uint8

const (
	PriorityNormal Priority = iota // zero value; most updates
	PriorityHigh                   // never deferred by the frame budget
	PriorityLow                    // first to be deferred when over budget
)

// rank maps priorities to their flush ordering: high before normal before low.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// String returns the priority name for logs and debug output.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

// Viewport is the world-space view rectangle plus the zoom factor it was
// captured at. Pan and zoom replace the whole value; it is never mutated in
// place.
type Viewport struct {
	X, Y, Width, Height float64
	Zoom                float64
}

// Rect returns the viewport's world-space rectangle without the zoom factor.
func (v Viewport) Rect() Rect {
	return Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
}
