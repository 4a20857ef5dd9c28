package alder

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Editor is the top-level object that owns the plugin runtime, the update
// scheduler, the virtualizer, the canonical entity store, and the camera,
// and wires them together: it is the scheduler's single subscriber, the
// source of viewport changes, and the dispatcher for renderer hooks.
//
// The host drives it with Update and Draw from its own ebiten game, or
// hands it to Run for a ready-made loop. Hit-testing and drag geometry stay
// with the host's input layer, which reports resolved interactions through
// the ClickNode / DragNodeBy family.
type Editor struct {
	runtime     *Runtime
	scheduler   *Scheduler
	virtualizer *Virtualizer
	store       *Store
	camera      *Camera

	// ScreenshotDir is where queued Screenshot captures are written.
	ScreenshotDir string

	lastViewport    Viewport
	overlay         bool
	backlogWarned   bool
	replay          *Replay
	screenshotQueue []string

	// Reused per-frame buffers.
	nodeBuf   []*Node
	edgeBuf   []*Edge
	drawNodes []*Node
	drawEdges []*Edge
}

// NewEditor creates an editor with all subsystems wired: the scheduler
// delivers frames into the store, the runtime context reaches the store and
// camera, and the virtualizer tracks the camera's viewport.
func NewEditor(cfg Config) *Editor {
	cfg = cfg.withDefaults()
	e := &Editor{
		runtime:       NewRuntime(),
		scheduler:     NewScheduler(),
		virtualizer:   NewVirtualizer(),
		store:         NewStore(),
		camera:        NewCamera(Rect{Width: cfg.ScreenWidth, Height: cfg.ScreenHeight}),
		overlay:       cfg.DebugOverlay,
		ScreenshotDir: "screenshots",
	}
	e.scheduler.SetTargetRate(cfg.TargetRate)
	e.scheduler.SetFrameBudget(cfg.FrameBudget())
	e.scheduler.SetUpdateCallback(e.applyFrame)
	e.virtualizer.SetBuffer(cfg.BaseBuffer)
	e.virtualizer.SetThreshold(cfg.BypassThreshold)
	e.camera.MinZoom = cfg.MinZoom
	e.camera.MaxZoom = cfg.MaxZoom

	e.runtime.UpdateContext(EditorContext{
		NodeByID:     e.store.Node,
		Nodes:        e.store.Nodes,
		EdgeByID:     e.store.Edge,
		Edges:        e.store.Edges,
		Viewport:     e.camera.Viewport,
		SetViewport:  e.setViewport,
		Selection:    e.store.Selection,
		SetSelection: func(ids []EntityID) { e.Select(ids...) },
	})

	e.syncViewport()
	return e
}

// Runtime returns the editor's plugin runtime.
func (e *Editor) Runtime() *Runtime { return e.runtime }

// Scheduler returns the editor's update scheduler.
func (e *Editor) Scheduler() *Scheduler { return e.scheduler }

// Virtualizer returns the editor's virtualizer.
func (e *Editor) Virtualizer() *Virtualizer { return e.virtualizer }

// Store returns the editor's canonical entity store.
func (e *Editor) Store() *Store { return e.store }

// Camera returns the editor's camera.
func (e *Editor) Camera() *Camera { return e.camera }

// setViewport recenters the camera on the given viewport. Width and height
// follow from the screen rectangle and zoom, so only center and zoom are
// taken from v.
func (e *Editor) setViewport(v Viewport) {
	if v.Zoom > 0 {
		e.camera.SetZoom(v.Zoom)
	}
	e.camera.X = v.X + v.Width/2
	e.camera.Y = v.Y + v.Height/2
}

// Update advances the editor by one host tick: camera animations, viewport
// propagation, the attached replay script if any, and the scheduler tick.
// Call it from the ebiten Update of the host game.
func (e *Editor) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	e.camera.Update(dt)
	e.syncViewport()
	if e.replay != nil && !e.replay.Done() {
		e.replay.step(e)
	}
	e.scheduler.Tick()
	e.debugCheckBacklog()
}

// syncViewport pushes the camera's viewport into the virtualizer and fires
// the viewport hook and event when it changed since the last check.
func (e *Editor) syncViewport() {
	v := e.camera.Viewport()
	if v == e.lastViewport {
		return
	}
	e.lastViewport = v
	e.virtualizer.SetViewport(v.X, v.Y, v.Width, v.Height)
	if fn := e.runtime.hooks.OnViewportChange; fn != nil {
		callHook("OnViewportChange", func() { fn(v) })
	}
	e.runtime.Emit(EventViewportChanged, v)
}

// applyFrame is the scheduler subscriber: fold the delivered frame into the
// store, fire the frame hook, and emit EventFrameApplied.
func (e *Editor) applyFrame(f *Frame) {
	e.store.ApplyFrame(f)
	if fn := e.runtime.hooks.OnFrameApplied; fn != nil {
		callHook("OnFrameApplied", func() { fn(f) })
	}
	e.runtime.Emit(EventFrameApplied, f)
}

// callHook runs fn inside isolation so a panicking hook cannot break the
// host loop.
func callHook(name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("hook", name).Interface("panic", rec).
				Msg("hook panicked")
		}
	}()
	fn()
}

// --- Interaction entry points ---
//
// The host's input layer calls these once its own hit-testing has resolved
// an interaction. Each fires the corresponding hook inside isolation; the
// drag and connect entry points additionally act as built-in scheduler
// producers.

// ClickNode fires the node-click hook.
func (e *Editor) ClickNode(n *Node) {
	if fn := e.runtime.hooks.OnNodeClick; fn != nil {
		callHook("OnNodeClick", func() { fn(n) })
	}
}

// DoubleClickNode fires the node-double-click hook.
func (e *Editor) DoubleClickNode(n *Node) {
	if fn := e.runtime.hooks.OnNodeDoubleClick; fn != nil {
		callHook("OnNodeDoubleClick", func() { fn(n) })
	}
}

// ClickCanvas fires the canvas-click hook with a world position.
func (e *Editor) ClickCanvas(x, y float64) {
	if fn := e.runtime.hooks.OnCanvasClick; fn != nil {
		callHook("OnCanvasClick", func() { fn(x, y) })
	}
}

// StartNodeDrag fires the drag-start hook. Locked nodes are ignored.
func (e *Editor) StartNodeDrag(n *Node) {
	if n.Locked {
		return
	}
	if fn := e.runtime.hooks.OnNodeDragStart; fn != nil {
		callHook("OnNodeDragStart", func() { fn(n) })
	}
}

// DragNodeBy fires the drag hook and enqueues a high-priority position
// update moving the node by (dx, dy) world units. The payload is a copy of
// the node; the stored one changes only when the frame applies, so a burst
// of drag events coalesces into one visible move per display tick. Locked
// nodes are ignored.
func (e *Editor) DragNodeBy(n *Node, dx, dy float64) {
	if n.Locked {
		return
	}
	if fn := e.runtime.hooks.OnNodeDrag; fn != nil {
		callHook("OnNodeDrag", func() { fn(n, dx, dy) })
	}
	moved := *n
	moved.X += dx
	moved.Y += dy
	e.scheduler.Enqueue(Update{
		ID:       n.ID,
		Kind:     KindNode,
		Op:       OpUpdate,
		Payload:  &moved,
		Priority: PriorityHigh,
	})
}

// EndNodeDrag fires the drag-end hook. Locked nodes are ignored.
func (e *Editor) EndNodeDrag(n *Node) {
	if n.Locked {
		return
	}
	if fn := e.runtime.hooks.OnNodeDragEnd; fn != nil {
		callHook("OnNodeDragEnd", func() { fn(n) })
	}
}

// ConnectEdge fires the connect hook and enqueues the new edge.
func (e *Editor) ConnectEdge(ed *Edge) {
	if fn := e.runtime.hooks.OnEdgeConnect; fn != nil {
		callHook("OnEdgeConnect", func() { fn(ed) })
	}
	e.scheduler.Enqueue(Update{
		ID:      ed.ID,
		Kind:    KindEdge,
		Op:      OpAdd,
		Payload: ed,
	})
}

// Select replaces the selection, fires the selection hook, and emits
// EventSelectionChanged.
func (e *Editor) Select(ids ...EntityID) {
	e.store.SetSelection(ids)
	sel := e.store.Selection()
	if fn := e.runtime.hooks.OnSelectionChange; fn != nil {
		callHook("OnSelectionChange", func() { fn(sel) })
	}
	e.runtime.Emit(EventSelectionChanged, sel)
}

// --- Visibility ---

// resolveNode adapts the store lookup for the virtualizer's edge filter.
func (e *Editor) resolveNode(id EntityID) *Node {
	n, _ := e.store.Node(id)
	return n
}

// VisibleNodes returns the nodes the virtualizer currently reports visible.
// The returned slice is reused between calls; do not retain it.
func (e *Editor) VisibleNodes() []*Node {
	e.nodeBuf = e.store.appendNodes(e.nodeBuf[:0])
	return e.virtualizer.FilterVisible(e.nodeBuf, e.camera.Zoom)
}

// VisibleEdges returns the edges the virtualizer currently reports visible.
// The returned slice is reused between calls; do not retain it.
func (e *Editor) VisibleEdges() []*Edge {
	e.edgeBuf = e.store.appendEdges(e.edgeBuf[:0])
	return e.virtualizer.FilterVisibleEdges(e.edgeBuf, e.resolveNode, e.camera.Zoom)
}

// --- Drawing ---

// Draw renders the visible entities, edges under nodes, each dispatched to
// the renderer registered for its Type in the merged hooks. Entities whose
// type has no renderer are skipped. Call it from the ebiten Draw of the
// host game.
func (e *Editor) Draw(screen *ebiten.Image) {
	hooks := e.runtime.Hooks()

	e.drawEdges = append(e.drawEdges[:0], e.VisibleEdges()...)
	sort.SliceStable(e.drawEdges, func(i, j int) bool {
		return e.drawEdges[i].ZIndex < e.drawEdges[j].ZIndex
	})
	for _, ed := range e.drawEdges {
		if ed.Hidden {
			continue
		}
		renderer := hooks.EdgeRenderers[ed.Type]
		if renderer == nil {
			continue
		}
		src, _ := e.store.Node(ed.Source)
		tgt, _ := e.store.Node(ed.Target)
		e.drawEdge(renderer, screen, ed, src, tgt)
	}

	e.drawNodes = append(e.drawNodes[:0], e.VisibleNodes()...)
	sort.SliceStable(e.drawNodes, func(i, j int) bool {
		return e.drawNodes[i].ZIndex < e.drawNodes[j].ZIndex
	})
	for _, n := range e.drawNodes {
		if n.Hidden {
			continue
		}
		renderer := hooks.NodeRenderers[n.Type]
		if renderer == nil {
			continue
		}
		e.drawNode(renderer, screen, n)
	}

	if e.overlay {
		e.drawOverlay(screen, len(e.drawNodes), len(e.drawEdges))
	}
	e.flushScreenshots(screen)
}

// drawNode invokes a node renderer inside isolation.
func (e *Editor) drawNode(r NodeRenderer, screen *ebiten.Image, n *Node) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("node", string(n.ID)).Interface("panic", rec).
				Msg("node renderer panicked")
		}
	}()
	r(screen, n, e.camera)
}

// drawEdge invokes an edge renderer inside isolation.
func (e *Editor) drawEdge(r EdgeRenderer, screen *ebiten.Image, ed *Edge, src, tgt *Node) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Str("edge", string(ed.ID)).Interface("panic", rec).
				Msg("edge renderer panicked")
		}
	}()
	r(screen, ed, src, tgt, e.camera)
}

// --- Lifecycle ---

// SetDebugOverlay enables or disables the on-screen stats overlay.
func (e *Editor) SetDebugOverlay(enabled bool) {
	e.overlay = enabled
}

// SetReplay attaches a replay script stepped once per Update until done.
func (e *Editor) SetReplay(r *Replay) {
	e.replay = r
}

// Cleanup flushes any pending updates so their effects are observable, then
// tears the plugin runtime down. The editor should not be used afterward.
func (e *Editor) Cleanup() {
	e.scheduler.Flush()
	e.runtime.Cleanup()
}

// --- Run helper ---

// RunConfig configures the window Run opens.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// game adapts an Editor to ebiten.Game.
type game struct {
	editor *Editor
}

func (g *game) Update() error {
	g.editor.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.editor.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.editor.camera.Screen.Width), int(g.editor.camera.Screen.Height)
}

// Run opens a window and drives the editor with ebiten's game loop. For full
// control, implement ebiten.Game yourself and call Editor.Update and
// Editor.Draw directly.
func Run(e *Editor, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(e.camera.Screen.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(e.camera.Screen.Height)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	return ebiten.RunGame(&game{editor: e})
}
