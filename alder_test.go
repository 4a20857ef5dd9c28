package alder

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 60, 45, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left of", 9.9, 45, false},
		{"right of", 110.1, 45, false},
		{"above", 60, 19.9, false},
		{"below", 60, 70.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Contains(%v,%v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{X: 50, Y: 50, Width: 100, Height: 100}, true},
		{"contained", Rect{X: 25, Y: 25, Width: 10, Height: 10}, true},
		{"touching right edge", Rect{X: 100, Y: 0, Width: 50, Height: 50}, true},
		{"touching corner", Rect{X: 100, Y: 100, Width: 10, Height: 10}, true},
		{"separated right", Rect{X: 100.1, Y: 0, Width: 50, Height: 50}, false},
		{"separated below", Rect{X: 0, Y: 101, Width: 50, Height: 50}, false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
		// Intersection is symmetric.
		if got := tt.b.Intersects(a); got != tt.want {
			t.Errorf("%s: reverse Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 30}

	e := r.Expand(5)
	if e.X != 5 || e.Y != 5 || e.Width != 30 || e.Height != 40 {
		t.Errorf("Expand(5) = %+v, want {5 5 30 40}", e)
	}

	s := r.Expand(-5)
	if s.X != 15 || s.Y != 15 || s.Width != 10 || s.Height != 20 {
		t.Errorf("Expand(-5) = %+v, want {15 15 10 20}", s)
	}
}

func TestSegmentRect(t *testing.T) {
	// Order of endpoints must not matter.
	a := segmentRect(10, 20, 110, 80)
	b := segmentRect(110, 80, 10, 20)
	if a != b {
		t.Errorf("segmentRect not symmetric: %+v vs %+v", a, b)
	}
	if a.X != 10 || a.Y != 20 || a.Width != 100 || a.Height != 60 {
		t.Errorf("segmentRect = %+v, want {10 20 100 60}", a)
	}

	// Degenerate segment collapses to a zero-size rect.
	p := segmentRect(5, 5, 5, 5)
	if p.Width != 0 || p.Height != 0 {
		t.Errorf("point segment = %+v, want zero size", p)
	}
}

func TestExtendRect(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	// Point inside leaves the rect alone.
	if got := extendRect(r, 5, 5); got != r {
		t.Errorf("extend with inner point = %+v, want %+v", got, r)
	}

	got := extendRect(r, -10, 25)
	if got.X != -10 || got.Y != 0 || got.Width != 20 || got.Height != 25 {
		t.Errorf("extendRect = %+v, want {-10 0 20 25}", got)
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.rank() < PriorityNormal.rank() && PriorityNormal.rank() < PriorityLow.rank()) {
		t.Errorf("rank order: high=%d normal=%d low=%d", PriorityHigh.rank(), PriorityNormal.rank(), PriorityLow.rank())
	}
	var zero Priority
	if zero != PriorityNormal {
		t.Error("zero Priority is not PriorityNormal")
	}
}

func TestEnumStrings(t *testing.T) {
	if KindNode.String() != "node" || KindEdge.String() != "edge" {
		t.Errorf("kind strings: %s, %s", KindNode, KindEdge)
	}
	if OpAdd.String() != "add" || OpUpdate.String() != "update" || OpRemove.String() != "remove" {
		t.Errorf("op strings: %s, %s, %s", OpAdd, OpUpdate, OpRemove)
	}
	if PriorityHigh.String() != "high" || PriorityNormal.String() != "normal" || PriorityLow.String() != "low" {
		t.Errorf("priority strings: %s, %s, %s", PriorityHigh, PriorityNormal, PriorityLow)
	}
}

func TestViewportRect(t *testing.T) {
	v := Viewport{X: 1, Y: 2, Width: 3, Height: 4, Zoom: 2}
	if got := v.Rect(); got != (Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("Viewport.Rect = %+v", got)
	}
}

func TestNodeBoundsAndCenter(t *testing.T) {
	n := NewNode("a")
	n.X, n.Y, n.Width, n.Height = 10, 20, 100, 50

	if got := n.Bounds(); got != (Rect{X: 10, Y: 20, Width: 100, Height: 50}) {
		t.Errorf("Bounds = %+v", got)
	}
	cx, cy := n.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center = (%v,%v), want (60,45)", cx, cy)
	}
	if n.Type != "default" {
		t.Errorf("Type = %q, want default", n.Type)
	}
}

func TestNewEdgeDefaults(t *testing.T) {
	e := NewEdge("e1", "a", "b")
	if e.Source != "a" || e.Target != "b" || e.Type != "default" {
		t.Errorf("NewEdge = %+v", e)
	}
}
