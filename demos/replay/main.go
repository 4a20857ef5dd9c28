// Replay runs a scripted editing session headlessly. The embedded script
// builds a small pipeline diagram, bursts coalescable moves at one of its
// stages, and pans and zooms the camera, one scripted step per tick. When
// the script completes the final store contents and scheduler metrics are
// printed.
package main

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/phanxgames/alder"
)

//go:embed script.json
var scriptJSON []byte

const maxTicks = 10000

func main() {
	ed := alder.NewEditor(alder.Config{})
	ed.Scheduler().SetTargetRate(0) // headless run, flush whenever work is pending

	r, err := alder.LoadReplay(scriptJSON)
	if err != nil {
		log.Fatal(err)
	}
	ed.SetReplay(r)

	frames := 0
	ed.Runtime().On(alder.EventFrameApplied, func(any) { frames++ })

	ticks := 0
	for !r.Done() {
		ed.Update()
		ticks++
		if ticks > maxTicks {
			log.Fatal("replay did not finish")
		}
	}

	fmt.Printf("script finished after %d ticks (%d applied frames)\n\n", ticks, frames)
	for _, n := range ed.Store().Nodes() {
		fmt.Printf("node %-8s %-6s at (%6.1f, %6.1f)\n", n.ID, n.Type, n.X, n.Y)
	}
	for _, e := range ed.Store().Edges() {
		fmt.Printf("edge %-8s %s -> %s\n", e.ID, e.Source, e.Target)
	}
	if sel := ed.Store().Selection(); len(sel) > 0 {
		fmt.Printf("\nselected: %v\n", sel)
	}

	m := ed.Scheduler().Metrics()
	fmt.Printf("\nenqueued %d updates in %d batches, %d dropped frames\n",
		m.TotalUpdates, m.TotalBatches, m.DroppedFrames)

	v := ed.Camera().Viewport()
	fmt.Printf("viewport (%.0f, %.0f) %.0fx%.0f at zoom %g\n",
		v.X, v.Y, v.Width, v.Height, v.Zoom)
}
