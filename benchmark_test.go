package alder

import (
	"fmt"
	"testing"
	"time"
)

// setupBenchNodes creates n nodes laid out on a 100-wide grid, 40 units
// apart, so a 1280x720 viewport sees a stable fraction of them.
func setupBenchNodes(n int) []*Node {
	nodes := make([]*Node, n)
	for i := range nodes {
		nd := NewNode(EntityID(fmt.Sprintf("n%d", i)))
		nd.X = float64(i%100) * 40
		nd.Y = float64(i/100) * 40
		nodes[i] = nd
	}
	return nodes
}

// --- Virtualizer Benchmarks ---

func BenchmarkFilterVisible_10000Nodes(b *testing.B) {
	nodes := setupBenchNodes(10000)
	v := NewVirtualizer()
	v.SetViewport(0, 0, 1280, 720)
	v.SetThreshold(0)

	// Warm up: first filter sizes the reused buffer.
	v.FilterVisible(nodes, 1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.FilterVisible(nodes, 1)
	}
}

func BenchmarkFilterVisible_Bypass(b *testing.B) {
	nodes := setupBenchNodes(40) // below the default threshold
	v := NewVirtualizer()
	v.SetViewport(0, 0, 1280, 720)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.FilterVisible(nodes, 1)
	}
}

func BenchmarkIsVisible(b *testing.B) {
	v := NewVirtualizer()
	v.SetViewport(0, 0, 1280, 720)
	n := NewNode("n")
	n.X, n.Y = 640, 360

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.IsVisible(n, 1)
	}
}

func BenchmarkFilterVisibleEdges_10000(b *testing.B) {
	nodes := setupBenchNodes(10000)
	byID := make(map[EntityID]*Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	edges := make([]*Edge, len(nodes)-1)
	for i := range edges {
		edges[i] = NewEdge(EntityID(fmt.Sprintf("e%d", i)), nodes[i].ID, nodes[i+1].ID)
	}
	resolve := func(id EntityID) *Node { return byID[id] }
	v := NewVirtualizer()
	v.SetViewport(0, 0, 1280, 720)
	v.SetThreshold(0)

	v.FilterVisibleEdges(edges, resolve, 1) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.FilterVisibleEdges(edges, resolve, 1)
	}
}

// --- Scheduler Benchmarks ---

func BenchmarkSchedulerEnqueue(b *testing.B) {
	s := NewScheduler()
	updates := make([]Update, 100)
	for i := range updates {
		n := NewNode(EntityID(fmt.Sprintf("n%d", i)))
		updates[i] = Update{ID: n.ID, Kind: KindNode, Op: OpUpdate, Payload: n}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Enqueue(updates[i%len(updates)])
	}
}

func BenchmarkSchedulerFlush_1000Coalesced(b *testing.B) {
	s := NewScheduler()
	s.SetFrameBudget(time.Second)
	delivered := 0
	s.SetUpdateCallback(func(f *Frame) { delivered += f.Len() })

	// 5000 enqueues coalescing onto 1000 ids.
	batch := make([]Update, 5000)
	for i := range batch {
		n := NewNode(EntityID(fmt.Sprintf("n%d", i%1000)))
		batch[i] = Update{ID: n.ID, Kind: KindNode, Op: OpUpdate, Payload: n}
	}
	s.EnqueueBatch(batch)
	s.Flush() // warmup sizes the sort buffer

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.EnqueueBatch(batch)
		s.Flush()
	}
	_ = delivered
}

// --- Event Bus Benchmarks ---

func BenchmarkEmit_10Subscribers(b *testing.B) {
	rt := NewRuntime()
	sink := 0
	for i := 0; i < 10; i++ {
		rt.On("bench:event", func(any) { sink++ })
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rt.Emit("bench:event", nil)
	}
	_ = sink
}

// --- Editor Benchmarks ---

func BenchmarkVisibleNodes_10000(b *testing.B) {
	ed := NewEditor(Config{})
	ed.Virtualizer().SetThreshold(0)
	for _, n := range setupBenchNodes(10000) {
		ed.Store().AddNode(n)
	}
	ed.VisibleNodes() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ed.VisibleNodes()
	}
}
