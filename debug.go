package alder

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugMaxPending warns when the scheduler backlog exceeds this many records.
const debugMaxPending = 10000

// drawOverlay prints editor and scheduler stats in the top-left corner.
// Only called when the overlay is enabled.
func (e *Editor) drawOverlay(screen *ebiten.Image, visibleNodes, visibleEdges int) {
	m := e.scheduler.Metrics()
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS %.1f  TPS %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	fmt.Fprintf(&sb, "nodes %d/%d  edges %d/%d\n",
		visibleNodes, e.store.NodeCount(), visibleEdges, e.store.EdgeCount())
	fmt.Fprintf(&sb, "pending %d  batches %d  updates %d\n",
		e.scheduler.Pending(), m.TotalBatches, m.TotalUpdates)
	fmt.Fprintf(&sb, "dropped %d  avg flush %v", m.DroppedFrames, m.AverageFrameTime)
	ebitenutil.DebugPrint(screen, sb.String())
}

// debugCheckBacklog warns once each time the pending backlog crosses the
// threshold, and rearms when it drains below it.
func (e *Editor) debugCheckBacklog() {
	p := e.scheduler.Pending()
	if p > debugMaxPending {
		if !e.backlogWarned {
			e.backlogWarned = true
			logger.Warn().Int("pending", p).Int("threshold", debugMaxPending).
				Msg("update backlog exceeds threshold")
		}
		return
	}
	e.backlogWarned = false
}
