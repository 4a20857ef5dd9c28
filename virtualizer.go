package alder

import "math"

const (
	defaultBaseBuffer      = 100.0 // world units around the viewport
	defaultBypassThreshold = 50    // entity count at or below which filtering is skipped
	viewportBufferRatio    = 0.25  // effective buffer is at least this share of viewport width
	minZoomBuffer          = 100.0 // zoom-scaled floor for the effective buffer
	entityPadding          = 8.0   // visual padding for selection chrome around entity bounds
)

// Virtualizer decides which entities are worth materializing by testing their
// padded bounds against a buffered viewport rectangle. It holds no reference
// to the store or camera; the shell pushes the viewport in and passes entity
// slices through.
type Virtualizer struct {
	viewport   Rect
	baseBuffer float64
	threshold  int

	nodeBuf []*Node // reused by FilterVisible
	edgeBuf []*Edge // reused by FilterVisibleEdges
}

// NewVirtualizer creates a virtualizer with the default buffer and bypass
// threshold and an empty viewport.
func NewVirtualizer() *Virtualizer {
	return &Virtualizer{
		baseBuffer: defaultBaseBuffer,
		threshold:  defaultBypassThreshold,
	}
}

// SetViewport replaces the world-space viewport rectangle used by all
// subsequent visibility tests.
func (v *Virtualizer) SetViewport(x, y, width, height float64) {
	v.viewport = Rect{X: x, Y: y, Width: width, Height: height}
}

// Viewport returns the current viewport rectangle.
func (v *Virtualizer) Viewport() Rect {
	return v.viewport
}

// SetBuffer replaces the configured base buffer, in world units.
func (v *Virtualizer) SetBuffer(px float64) {
	v.baseBuffer = px
}

// SetThreshold sets the entity count at or below which filtering is bypassed
// and every entity is reported visible. Culling a handful of entities saves
// nothing, and wrongly culling one is visibly broken.
func (v *Virtualizer) SetThreshold(n int) {
	v.threshold = n
}

// effectiveBuffer derives the margin added around the viewport for a test at
// the given zoom. The viewport-width share keeps fast pans on wide views
// ahead of pop-in; the zoom-scaled floor keeps the buffer from collapsing
// toward nothing at high zoom.
func (v *Virtualizer) effectiveBuffer(zoom float64) float64 {
	buf := v.baseBuffer
	if w := v.viewport.Width * viewportBufferRatio; w > buf {
		buf = w
	}
	if z := minZoomBuffer * zoom; z > buf {
		buf = z
	}
	return buf
}

// IsVisible reports whether the node's padded bounds intersect the viewport
// expanded by the effective buffer at the given zoom. The padding scales
// with zoom the way on-screen selection chrome does. Hidden nodes are never
// visible.
func (v *Virtualizer) IsVisible(n *Node, zoom float64) bool {
	if n == nil || n.Hidden {
		return false
	}
	padded := n.Bounds().Expand(entityPadding * zoom)
	return padded.Intersects(v.viewport.Expand(v.effectiveBuffer(zoom)))
}

// FilterVisible returns the subset of nodes visible at the given zoom. At or
// below the bypass threshold the input slice is returned unchanged,
// regardless of viewport. Above it, the returned slice is an internal buffer
// valid until the next call; it MUST NOT be mutated or retained.
func (v *Virtualizer) FilterVisible(nodes []*Node, zoom float64) []*Node {
	if len(nodes) <= v.threshold {
		return nodes
	}
	bounds := v.viewport.Expand(v.effectiveBuffer(zoom))
	pad := entityPadding * zoom
	v.nodeBuf = v.nodeBuf[:0]
	for _, n := range nodes {
		if n.Hidden {
			continue
		}
		if n.Bounds().Expand(pad).Intersects(bounds) {
			v.nodeBuf = append(v.nodeBuf, n)
		}
	}
	return v.nodeBuf
}

// EdgeVisible reports whether the edge between the two resolved endpoint
// nodes is visible at the given zoom: either endpoint is visible, or the
// bounding box of the edge's path (endpoint centers plus any waypoints)
// intersects the buffered viewport. The box test deliberately approximates
// exact segment clipping. Dangling edges (either endpoint nil) fall back to
// the surviving endpoint's visibility alone.
func (v *Virtualizer) EdgeVisible(e *Edge, source, target *Node, zoom float64) bool {
	if e == nil || e.Hidden {
		return false
	}
	if source != nil && v.IsVisible(source, zoom) {
		return true
	}
	if target != nil && v.IsVisible(target, zoom) {
		return true
	}
	if source == nil || target == nil {
		return false
	}
	x1, y1 := source.Center()
	x2, y2 := target.Center()
	box := segmentRect(x1, y1, x2, y2)
	for _, wp := range e.Waypoints {
		box = extendRect(box, wp.X, wp.Y)
	}
	return box.Intersects(v.viewport.Expand(v.effectiveBuffer(zoom)))
}

// FilterVisibleEdges returns the subset of edges visible at the given zoom,
// resolving endpoint ids through resolve (which returns nil for missing
// ids). The bypass threshold applies as in FilterVisible, and above it the
// returned slice is likewise an internal buffer valid until the next call.
func (v *Virtualizer) FilterVisibleEdges(edges []*Edge, resolve func(EntityID) *Node, zoom float64) []*Edge {
	if len(edges) <= v.threshold {
		return edges
	}
	v.edgeBuf = v.edgeBuf[:0]
	for _, e := range edges {
		if v.EdgeVisible(e, resolve(e.Source), resolve(e.Target), zoom) {
			v.edgeBuf = append(v.edgeBuf, e)
		}
	}
	return v.edgeBuf
}

// extendRect grows r just enough to include the point (x, y).
func extendRect(r Rect, x, y float64) Rect {
	minX := math.Min(r.X, x)
	minY := math.Min(r.Y, y)
	maxX := math.Max(r.X+r.Width, x)
	maxY := math.Max(r.Y+r.Height, y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
