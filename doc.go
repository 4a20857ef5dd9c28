// Package alder is a plugin runtime, update scheduler, and viewport
// virtualizer for interactive node-and-edge canvases built on [Ebitengine].
//
// Alder provides the extensibility substrate a diagram or graph editor
// needs: composable plugins with dependency-ordered lifecycles and merged
// hooks, an event bus, a frame-budgeted scheduler that coalesces entity
// mutations into one applied frame per display tick, and visibility culling
// for large canvases.
//
// Full documentation, tutorials, and examples are available at:
//
// https://phanxgames.github.io/alder/
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	editor := alder.NewEditor(alder.DefaultConfig())
//	// ... install plugins ...
//	alder.Run(editor, alder.RunConfig{
//		Title: "My Editor", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Editor.Update] and [Editor.Draw] directly:
//
//	type Game struct{ editor *alder.Editor }
//
//	func (g *Game) Update() error         { g.editor.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.editor.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Plugins
//
// Behavior is added with [Plugin] values installed into the editor's
// [Runtime]. A plugin declares dependencies, registers hooks from Init, and
// tears down on uninstall. The runtime merges every installed plugin's
// hooks into one [HookSet] the editor dispatches from:
//
//	grid := &alder.Plugin{
//		Name: "grid",
//		Init: func(r *alder.Runtime) error {
//			r.RegisterOwnedHooks("grid", &alder.HookSet{
//				NodeRenderers: map[string]alder.NodeRenderer{
//					"default": drawGridNode,
//				},
//			})
//			return nil
//		},
//	}
//	if err := editor.Runtime().Install(grid); err != nil {
//		log.Fatal(err)
//	}
//
// # Updates
//
// Mutations never touch the store directly. Producers enqueue [Update]
// records and the [Scheduler] coalesces them per entity, flushing one
// [Frame] per display tick under a frame budget:
//
//	editor.Scheduler().Enqueue(alder.Update{
//		ID: n.ID, Kind: alder.KindNode, Op: alder.OpUpdate, Payload: &moved,
//	})
//
// # Key features
//
// Alder includes a camera with pan/scroll-to/zoom animation (via [gween]),
// zoom-aware visibility culling with configurable buffers, replay scripts
// for headless runs, scheduler metrics, a debug overlay, and ECS bridging
// (via [Donburi] adapter in alder/ecs).
//
// See the full docs for guides on each feature:
// https://phanxgames.github.io/alder/
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package alder
