package alder

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestHookSetMerge_ScalarReplaces(t *testing.T) {
	var calls []string
	base := &HookSet{OnNodeClick: func(*Node) { calls = append(calls, "base") }}
	later := &HookSet{OnNodeClick: func(*Node) { calls = append(calls, "later") }}

	var merged HookSet
	merged.merge(base)
	merged.merge(later)

	merged.OnNodeClick(nil)
	if len(calls) != 1 || calls[0] != "later" {
		t.Errorf("calls = %v, want [later]", calls)
	}
}

func TestHookSetMerge_NilFieldsPreserved(t *testing.T) {
	var merged HookSet
	merged.merge(&HookSet{OnNodeClick: func(*Node) {}})
	merged.merge(&HookSet{OnCanvasClick: func(x, y float64) {}})

	if merged.OnNodeClick == nil {
		t.Error("OnNodeClick was cleared by a merge that did not set it")
	}
	if merged.OnCanvasClick == nil {
		t.Error("OnCanvasClick missing after merge")
	}
}

func TestHookSetMerge_RendererUnion(t *testing.T) {
	var merged HookSet
	merged.merge(&HookSet{NodeRenderers: map[string]NodeRenderer{
		"default": nil,
		"group":   nil,
	}})
	merged.merge(&HookSet{NodeRenderers: map[string]NodeRenderer{
		"note": nil,
	}})

	if len(merged.NodeRenderers) != 3 {
		t.Errorf("renderer count = %d, want 3", len(merged.NodeRenderers))
	}
	for _, key := range []string{"default", "group", "note"} {
		if _, ok := merged.NodeRenderers[key]; !ok {
			t.Errorf("renderer %q missing from union", key)
		}
	}
}

func TestHookSetMerge_RendererLaterWins(t *testing.T) {
	var drawn string
	var merged HookSet
	merged.merge(&HookSet{NodeRenderers: map[string]NodeRenderer{
		"default": func(dst *ebiten.Image, n *Node, cam *Camera) { drawn = "first" },
	}})
	merged.merge(&HookSet{NodeRenderers: map[string]NodeRenderer{
		"default": func(dst *ebiten.Image, n *Node, cam *Camera) { drawn = "second" },
	}})

	merged.NodeRenderers["default"](nil, nil, nil)
	if drawn != "second" {
		t.Errorf("drawn = %q, want second", drawn)
	}
}

func TestHookSetMerge_DoesNotAliasSourceMap(t *testing.T) {
	src := &HookSet{NodeRenderers: map[string]NodeRenderer{"default": nil}}
	var merged HookSet
	merged.merge(src)

	// Mutating the source after merge must not leak into the merged set.
	src.NodeRenderers["sneaky"] = nil
	if _, ok := merged.NodeRenderers["sneaky"]; ok {
		t.Error("merged set aliases the source map")
	}
}

func TestHookSetReset(t *testing.T) {
	var h HookSet
	h.merge(&HookSet{
		OnNodeClick:   func(*Node) {},
		NodeRenderers: map[string]NodeRenderer{"default": nil},
	})
	h.reset()

	if h.OnNodeClick != nil {
		t.Error("scalar hook survived reset")
	}
	if h.NodeRenderers != nil {
		t.Error("renderer map survived reset")
	}
}
