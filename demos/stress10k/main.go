// stress10k fills the canvas with 10,000 boxes plus a band of wires and
// keeps a rolling subset of boxes moving through the scheduler every tick
// while the camera tours the grid on eased tweens. A stress test for the
// virtualizer and the update scheduler; the debug overlay shows visible
// counts, pending updates, and flush timings. Press S to save a screenshot.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/alder"
)

const (
	screenW = 1280
	screenH = 720

	gridCols = 100
	gridRows = 100
	spacingX = 90.0
	spacingY = 60.0
	boxW     = 64.0
	boxH     = 36.0

	worldW = gridCols * spacingX
	worldH = gridRows * spacingY

	moverStride = 20  // every Nth box is animated through the scheduler
	tourFrames  = 240 // ticks between camera waypoints
	tourSecs    = 3.0 // tween duration per waypoint
)

var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// fillRect draws a world-space rectangle through the camera transform.
func fillRect(dst *ebiten.Image, cam *alder.Camera, x, y, w, h float64, r, g, b float32) {
	sx, sy := cam.WorldToScreen(x, y)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w*cam.Zoom, h*cam.Zoom)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.Scale(r, g, b, 1)
	dst.DrawImage(whitePixel, &op)
}

// strokeLine draws a world-space segment through the camera transform.
func strokeLine(dst *ebiten.Image, cam *alder.Camera, x1, y1, x2, y2 float64, r, g, b float32) {
	sx1, sy1 := cam.WorldToScreen(x1, y1)
	sx2, sy2 := cam.WorldToScreen(x2, y2)
	dx, dy := sx2-sx1, sy2-sy1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(length, 2)
	op.GeoM.Translate(0, -1)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(sx1, sy1)
	op.ColorScale.Scale(r, g, b, 1)
	dst.DrawImage(whitePixel, &op)
}

// mover animates one box on a lissajous orbit around its grid slot.
type mover struct {
	id    alder.EntityID
	baseX float64
	baseY float64
	ampX  float64
	ampY  float64
	speed float64
	phase float64
}

// waypoint is one stop on the camera tour.
type waypoint struct {
	x, y, zoom float64
}

var tour = []waypoint{
	{worldW / 2, worldH / 2, 0.12}, // whole grid
	{worldW * 0.2, worldH * 0.2, 1.2},
	{worldW * 0.8, worldH * 0.3, 0.6},
	{worldW * 0.7, worldH * 0.8, 1.5},
	{worldW * 0.3, worldH * 0.7, 0.4},
}

type game struct {
	ed     *alder.Editor
	movers []mover
	frame  int
	stop   int

	shotWasDown bool
}

func (g *game) Update() error {
	g.frame++
	t := float64(g.frame) / 60.0

	// Advance the camera tour on a fixed cadence.
	if g.frame%tourFrames == 1 {
		w := tour[g.stop%len(tour)]
		g.stop++
		cam := g.ed.Camera()
		cam.ScrollTo(w.x, w.y, tourSecs, ease.InOutQuad)
		cam.ZoomTo(w.zoom, tourSecs, ease.InOutQuad)
	}

	// Every mover reports a fresh position each tick; the scheduler folds
	// them into one applied record per box per frame.
	for i := range g.movers {
		m := &g.movers[i]
		n, ok := g.ed.Store().Node(m.id)
		if !ok {
			continue
		}
		cp := *n
		cp.X = m.baseX + m.ampX*math.Sin(t*m.speed+m.phase)
		cp.Y = m.baseY + m.ampY*math.Cos(t*m.speed*0.7+m.phase)
		g.ed.Scheduler().Enqueue(alder.Update{
			ID: m.id, Kind: alder.KindNode, Op: alder.OpUpdate, Payload: &cp,
		})
	}

	shotDown := ebiten.IsKeyPressed(ebiten.KeyS)
	if shotDown && !g.shotWasDown {
		g.ed.Screenshot("stress10k")
	}
	g.shotWasDown = shotDown

	g.ed.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 15, G: 15, B: 23, A: 255})
	g.ed.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	ed := alder.NewEditor(alder.Config{
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		DebugOverlay: true,
	})

	plugin := &alder.Plugin{
		Name: "stress",
		Init: func(rt *alder.Runtime) error {
			rt.RegisterOwnedHooks("stress", &alder.HookSet{
				NodeRenderers: map[string]alder.NodeRenderer{
					"box": func(screen *ebiten.Image, n *alder.Node, cam *alder.Camera) {
						r := float32(0.25 + 0.55*(n.X/worldW))
						b := float32(0.25 + 0.55*(n.Y/worldH))
						fillRect(screen, cam, n.X, n.Y, n.Width, n.Height, r, 0.45, b)
					},
				},
				EdgeRenderers: map[string]alder.EdgeRenderer{
					"wire": func(screen *ebiten.Image, e *alder.Edge, src, tgt *alder.Node, cam *alder.Camera) {
						if src == nil || tgt == nil {
							return
						}
						x1, y1 := src.Center()
						x2, y2 := tgt.Center()
						strokeLine(screen, cam, x1, y1, x2, y2, 0.5, 0.5, 0.6)
					},
				},
			})
			return nil
		},
	}
	if err := ed.Runtime().Install(plugin); err != nil {
		log.Fatal(err)
	}

	var movers []mover
	for i := 0; i < gridCols*gridRows; i++ {
		col := i % gridCols
		row := i / gridCols
		n := alder.NewNode(alder.EntityID(fmt.Sprintf("n%d", i)))
		n.Type = "box"
		n.X = float64(col)*spacingX + (rand.Float64()-0.5)*14
		n.Y = float64(row)*spacingY + (rand.Float64()-0.5)*14
		n.Width, n.Height = boxW, boxH
		ed.Store().AddNode(n)

		// Every 10th row wires each box to its right neighbor.
		if row%10 == 0 && col > 0 {
			e := alder.NewEdge(
				alder.EntityID(fmt.Sprintf("w%d", i)),
				alder.EntityID(fmt.Sprintf("n%d", i-1)),
				n.ID,
			)
			e.Type = "wire"
			ed.Store().AddEdge(e)
		}

		if i%moverStride == 0 {
			movers = append(movers, mover{
				id:    n.ID,
				baseX: n.X,
				baseY: n.Y,
				ampX:  30 + rand.Float64()*60,
				ampY:  20 + rand.Float64()*40,
				speed: 0.5 + rand.Float64()*2,
				phase: rand.Float64() * math.Pi * 2,
			})
		}
	}

	cam := ed.Camera()
	cam.X, cam.Y = worldW/2, worldH/2
	cam.SetZoom(0.12)

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Alder — 10k Boxes")
	if err := ebiten.RunGame(&game{ed: ed, movers: movers}); err != nil {
		log.Fatal(err)
	}
}
