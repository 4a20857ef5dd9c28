package alder

// EditorContext is the mutable record of accessor and mutator functions the
// shell installs on the runtime after construction. Plugins reach canvas
// state exclusively through it, so the runtime itself stays free of any store
// or camera dependency.
//
// Until the shell wires real accessors every field holds a safe no-op stub:
// getters report nothing, setters do nothing. Plugins must tolerate the stub
// during bootstrap.
type EditorContext struct {
	NodeByID func(id EntityID) (*Node, bool)
	Nodes    func() []*Node
	EdgeByID func(id EntityID) (*Edge, bool)
	Edges    func() []*Edge

	Viewport    func() Viewport
	SetViewport func(v Viewport)

	Selection    func() []EntityID
	SetSelection func(ids []EntityID)
}

// stubContext returns a context whose every accessor is a safe no-op.
func stubContext() EditorContext {
	return EditorContext{
		NodeByID:     func(EntityID) (*Node, bool) { return nil, false },
		Nodes:        func() []*Node { return nil },
		EdgeByID:     func(EntityID) (*Edge, bool) { return nil, false },
		Edges:        func() []*Edge { return nil },
		Viewport:     func() Viewport { return Viewport{Zoom: 1} },
		SetViewport:  func(Viewport) {},
		Selection:    func() []EntityID { return nil },
		SetSelection: func([]EntityID) {},
	}
}

// Context returns the current shared context. The returned value is a copy of
// the record; the function values inside it stay live.
func (r *Runtime) Context() EditorContext {
	return r.context
}

// UpdateContext overwrites the fields of the shared context that are non-nil
// in partial, leaving the rest untouched. The shell calls this once its store
// and camera exist; plugins installed earlier pick the real accessors up on
// their next Context call.
func (r *Runtime) UpdateContext(partial EditorContext) {
	if partial.NodeByID != nil {
		r.context.NodeByID = partial.NodeByID
	}
	if partial.Nodes != nil {
		r.context.Nodes = partial.Nodes
	}
	if partial.EdgeByID != nil {
		r.context.EdgeByID = partial.EdgeByID
	}
	if partial.Edges != nil {
		r.context.Edges = partial.Edges
	}
	if partial.Viewport != nil {
		r.context.Viewport = partial.Viewport
	}
	if partial.SetViewport != nil {
		r.context.SetViewport = partial.SetViewport
	}
	if partial.Selection != nil {
		r.context.Selection = partial.Selection
	}
	if partial.SetSelection != nil {
		r.context.SetSelection = partial.SetSelection
	}
}
