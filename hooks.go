package alder

import "github.com/hajimehoshi/ebiten/v2"

// NodeRenderer draws one node. Registered in HookSet.NodeRenderers under the
// node's Type; nodes whose type has no renderer are skipped.
type NodeRenderer func(dst *ebiten.Image, n *Node, cam *Camera)

// EdgeRenderer draws one edge. source and target are the resolved endpoint
// nodes; either may be nil when the edge is dangling.
type EdgeRenderer func(dst *ebiten.Image, e *Edge, source, target *Node, cam *Camera)

// HookSet is the closed set of extension points plugins contribute to.
// Scalar hooks hold at most one handler: a later registration replaces the
// previous one outright, with no conflict warning. The renderer registries
// are unioned key by key instead, a later registration for the same key
// winning.
//
// The zero value is an empty hook set. Partial sets are the normal case:
// leave every field you do not contribute as nil.
type HookSet struct {
	// Interaction hooks, fired by the shell's input pipeline.
	OnNodeClick       func(n *Node)
	OnNodeDoubleClick func(n *Node)
	OnCanvasClick     func(x, y float64)
	OnNodeDragStart   func(n *Node)
	OnNodeDrag        func(n *Node, dx, dy float64)
	OnNodeDragEnd     func(n *Node)
	OnEdgeConnect     func(e *Edge)

	// State hooks, fired by the editor shell.
	OnSelectionChange func(ids []EntityID)
	OnViewportChange  func(v Viewport)
	OnFrameApplied    func(f *Frame)

	// Renderer registries keyed by entity Type.
	NodeRenderers map[string]NodeRenderer
	EdgeRenderers map[string]EdgeRenderer
}

// merge folds src into h following the composition rules above. src is not
// modified; its registry maps are copied, never aliased.
func (h *HookSet) merge(src *HookSet) {
	if src.OnNodeClick != nil {
		h.OnNodeClick = src.OnNodeClick
	}
	if src.OnNodeDoubleClick != nil {
		h.OnNodeDoubleClick = src.OnNodeDoubleClick
	}
	if src.OnCanvasClick != nil {
		h.OnCanvasClick = src.OnCanvasClick
	}
	if src.OnNodeDragStart != nil {
		h.OnNodeDragStart = src.OnNodeDragStart
	}
	if src.OnNodeDrag != nil {
		h.OnNodeDrag = src.OnNodeDrag
	}
	if src.OnNodeDragEnd != nil {
		h.OnNodeDragEnd = src.OnNodeDragEnd
	}
	if src.OnEdgeConnect != nil {
		h.OnEdgeConnect = src.OnEdgeConnect
	}
	if src.OnSelectionChange != nil {
		h.OnSelectionChange = src.OnSelectionChange
	}
	if src.OnViewportChange != nil {
		h.OnViewportChange = src.OnViewportChange
	}
	if src.OnFrameApplied != nil {
		h.OnFrameApplied = src.OnFrameApplied
	}
	if len(src.NodeRenderers) > 0 {
		if h.NodeRenderers == nil {
			h.NodeRenderers = make(map[string]NodeRenderer, len(src.NodeRenderers))
		}
		for key, r := range src.NodeRenderers {
			h.NodeRenderers[key] = r
		}
	}
	if len(src.EdgeRenderers) > 0 {
		if h.EdgeRenderers == nil {
			h.EdgeRenderers = make(map[string]EdgeRenderer, len(src.EdgeRenderers))
		}
		for key, r := range src.EdgeRenderers {
			h.EdgeRenderers[key] = r
		}
	}
}

// reset clears every hook so the set can be rebuilt from owned contributions.
func (h *HookSet) reset() {
	*h = HookSet{}
}
