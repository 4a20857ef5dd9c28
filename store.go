package alder

import "github.com/google/uuid"

// NewID returns a fresh unique entity id.
func NewID() EntityID {
	return EntityID(uuid.NewString())
}

// Store is the canonical entity store the editor applies delivered frames
// to. Nodes and edges are kept in insertion order for deterministic
// iteration; replacing an entity keeps its original position.
type Store struct {
	nodes     map[EntityID]*Node
	edges     map[EntityID]*Edge
	nodeOrder []EntityID
	edgeOrder []EntityID
	selection []EntityID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nodes: make(map[EntityID]*Node),
		edges: make(map[EntityID]*Edge),
	}
}

// removeID deletes the first occurrence of id, preserving order.
func removeID(s []EntityID, id EntityID) []EntityID {
	for i := range s {
		if s[i] == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = ""
			return s[:len(s)-1]
		}
	}
	return s
}

// AddNode inserts or replaces a node.
func (s *Store) AddNode(n *Node) {
	if n == nil || n.ID == "" {
		panic("alder: AddNode requires a node with an ID")
	}
	if _, ok := s.nodes[n.ID]; !ok {
		s.nodeOrder = append(s.nodeOrder, n.ID)
	}
	s.nodes[n.ID] = n
}

// AddEdge inserts or replaces an edge.
func (s *Store) AddEdge(e *Edge) {
	if e == nil || e.ID == "" {
		panic("alder: AddEdge requires an edge with an ID")
	}
	if _, ok := s.edges[e.ID]; !ok {
		s.edgeOrder = append(s.edgeOrder, e.ID)
	}
	s.edges[e.ID] = e
}

// RemoveNode deletes the node, every edge touching it, and its selection
// entry. Reports whether the node existed.
func (s *Store) RemoveNode(id EntityID) bool {
	if _, ok := s.nodes[id]; !ok {
		return false
	}
	delete(s.nodes, id)
	s.nodeOrder = removeID(s.nodeOrder, id)
	for i := 0; i < len(s.edgeOrder); {
		e := s.edges[s.edgeOrder[i]]
		if e != nil && (e.Source == id || e.Target == id) {
			delete(s.edges, e.ID)
			s.edgeOrder = append(s.edgeOrder[:i], s.edgeOrder[i+1:]...)
			continue
		}
		i++
	}
	s.selection = removeID(s.selection, id)
	return true
}

// RemoveEdge deletes the edge and its selection entry, reporting whether it
// existed.
func (s *Store) RemoveEdge(id EntityID) bool {
	if _, ok := s.edges[id]; !ok {
		return false
	}
	delete(s.edges, id)
	s.edgeOrder = removeID(s.edgeOrder, id)
	s.selection = removeID(s.selection, id)
	return true
}

// Node returns the node with the given id.
func (s *Store) Node(id EntityID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (s *Store) Edge(id EntityID) (*Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// Nodes returns all nodes in insertion order. The slice is freshly
// allocated; the *Node values are live.
func (s *Store) Nodes() []*Node {
	return s.appendNodes(make([]*Node, 0, len(s.nodeOrder)))
}

// Edges returns all edges in insertion order. The slice is freshly
// allocated; the *Edge values are live.
func (s *Store) Edges() []*Edge {
	return s.appendEdges(make([]*Edge, 0, len(s.edgeOrder)))
}

// appendNodes appends all nodes in insertion order to buf. The editor uses
// this to reuse its per-frame buffers.
func (s *Store) appendNodes(buf []*Node) []*Node {
	for _, id := range s.nodeOrder {
		buf = append(buf, s.nodes[id])
	}
	return buf
}

// appendEdges appends all edges in insertion order to buf.
func (s *Store) appendEdges(buf []*Edge) []*Edge {
	for _, id := range s.edgeOrder {
		buf = append(buf, s.edges[id])
	}
	return buf
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// SetSelection replaces the selection. The input slice is copied.
func (s *Store) SetSelection(ids []EntityID) {
	s.selection = append(s.selection[:0], ids...)
}

// Selection returns a copy of the selected entity ids.
func (s *Store) Selection() []EntityID {
	return append([]EntityID(nil), s.selection...)
}

// Clear removes every entity and the selection.
func (s *Store) Clear() {
	clear(s.nodes)
	clear(s.edges)
	s.nodeOrder = s.nodeOrder[:0]
	s.edgeOrder = s.edgeOrder[:0]
	s.selection = s.selection[:0]
}

// ApplyFrame folds one delivered frame into the store. Add and update set
// the entity from the record's payload, whose ownership passes to the store;
// remove deletes it, for nodes together with every touching edge. A payload
// of the wrong type, or one whose ID contradicts the record's, is logged and
// skipped rather than allowed to break the host loop.
func (s *Store) ApplyFrame(f *Frame) {
	if f == nil {
		return
	}
	for id, u := range f.Kind(KindNode) {
		switch u.Op {
		case OpAdd, OpUpdate:
			n, ok := u.Payload.(*Node)
			if !ok || n == nil {
				logger.Warn().Str("entity", string(id)).Stringer("op", u.Op).
					Msg("node update payload is not *Node, skipping")
				continue
			}
			if n.ID == "" {
				n.ID = id
			} else if n.ID != id {
				logger.Warn().Str("entity", string(id)).Str("payload", string(n.ID)).
					Msg("node payload ID contradicts record, skipping")
				continue
			}
			s.AddNode(n)
		case OpRemove:
			s.RemoveNode(id)
		}
	}
	for id, u := range f.Kind(KindEdge) {
		switch u.Op {
		case OpAdd, OpUpdate:
			e, ok := u.Payload.(*Edge)
			if !ok || e == nil {
				logger.Warn().Str("entity", string(id)).Stringer("op", u.Op).
					Msg("edge update payload is not *Edge, skipping")
				continue
			}
			if e.ID == "" {
				e.ID = id
			} else if e.ID != id {
				logger.Warn().Str("entity", string(id)).Str("payload", string(e.ID)).
					Msg("edge payload ID contradicts record, skipping")
				continue
			}
			s.AddEdge(e)
		case OpRemove:
			s.RemoveEdge(id)
		}
	}
}
