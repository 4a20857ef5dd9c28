package alder

import (
	"encoding/json"
	"fmt"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action string   `json:"action"`
	ID     string   `json:"id,omitempty"`
	Type   string   `json:"type,omitempty"`
	From   string   `json:"from,omitempty"`
	To     string   `json:"to,omitempty"`
	IDs    []string `json:"ids,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	DX     float64  `json:"dx,omitempty"`
	DY     float64  `json:"dy,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Zoom   float64  `json:"zoom,omitempty"`
	Count  int      `json:"count,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay sequences scripted editor actions across ticks for automated and
// headless runs. Attach to an Editor via SetReplay.
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
}

// LoadReplay parses a JSON replay script and returns a Replay ready to be
// attached to an Editor via SetReplay.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay script: no steps")
	}
	return &Replay{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *Replay) Done() bool {
	return r.done
}

// step advances the replay by one tick. Called from Editor.Update.
func (r *Replay) step(e *Editor) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "add":
		n := NewNode(EntityID(st.ID))
		if n.ID == "" {
			n.ID = NewID()
		}
		if st.Type != "" {
			n.Type = st.Type
		}
		n.X, n.Y = st.X, st.Y
		if st.Width > 0 {
			n.Width = st.Width
		}
		if st.Height > 0 {
			n.Height = st.Height
		}
		e.scheduler.Enqueue(Update{ID: n.ID, Kind: KindNode, Op: OpAdd, Payload: n})
	case "move":
		if n, ok := e.store.Node(EntityID(st.ID)); ok {
			e.DragNodeBy(n, st.DX, st.DY)
		}
	case "burst":
		// Count coalescable moves in one tick; the scheduler should fold
		// them into a single applied position.
		n, ok := e.store.Node(EntityID(st.ID))
		if !ok {
			break
		}
		moved := *n
		for i := 0; i < st.Count; i++ {
			moved.X += st.DX
			moved.Y += st.DY
			cp := moved
			e.scheduler.Enqueue(Update{
				ID:       n.ID,
				Kind:     KindNode,
				Op:       OpUpdate,
				Payload:  &cp,
				Priority: PriorityHigh,
			})
		}
	case "remove":
		e.scheduler.Enqueue(Update{
			ID:       EntityID(st.ID),
			Kind:     KindNode,
			Op:       OpRemove,
			Priority: PriorityHigh,
		})
	case "connect":
		ed := NewEdge(EntityID(st.ID), EntityID(st.From), EntityID(st.To))
		if ed.ID == "" {
			ed.ID = NewID()
		}
		if st.Type != "" {
			ed.Type = st.Type
		}
		e.ConnectEdge(ed)
	case "select":
		ids := make([]EntityID, len(st.IDs))
		for i, id := range st.IDs {
			ids[i] = EntityID(id)
		}
		e.Select(ids...)
	case "pan":
		e.camera.Pan(st.DX, st.DY)
	case "zoom":
		if st.Zoom > 0 {
			e.camera.SetZoom(st.Zoom)
		}
	case "flush":
		e.scheduler.Flush()
	case "clear":
		e.scheduler.Clear()
		e.store.Clear()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		logger.Warn().Str("action", st.Action).Msg("unknown replay action")
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
