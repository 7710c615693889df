package main

import (
	"image"

	"github.com/gogpu/tilesurface"
	"github.com/gogpu/tilesurface/canvas"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelStep is the distance in pixels one wheel notch pans.
const wheelStep = 32

// input is a snapshot of the pointer and keyboard for one tick.
type input struct {
	cursor  image.Point
	pressed bool
	wheel   image.Point
	home    bool
}

func pollInput() input {
	x, y := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()
	return input{
		cursor:  image.Pt(x, y),
		pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		wheel:   image.Pt(int(wx*wheelStep), int(wy*wheelStep)),
		home:    inpututil.IsKeyJustPressed(ebiten.KeyHome) || inpututil.IsKeyJustPressed(ebiten.Key0),
	}
}

// game hosts a canvas in an ebiten window. The window size is the pane size.
type game struct {
	canvas *canvas.Canvas
	poll   func() input

	paneW, paneH int
	dragging     bool
	last         image.Point

	img   *image.RGBA
	frame *ebiten.Image

	drawFailed bool
}

func newGame(c *canvas.Canvas) *game {
	w, h := c.PaneSize()
	return &game{canvas: c, poll: pollInput, paneW: w, paneH: h}
}

// Update pans the viewport from the pointer state.
func (g *game) Update() error {
	return g.apply(g.poll())
}

func (g *game) apply(in input) error {
	if in.home {
		return g.canvas.MoveTo(0, 0)
	}
	if in.wheel != (image.Point{}) {
		// Scrolling up reveals content above.
		return g.canvas.Pan(-in.wheel.X, -in.wheel.Y)
	}
	if !in.pressed {
		g.dragging = false
		return nil
	}
	if !g.dragging {
		g.dragging = true
		g.last = in.cursor
		return nil
	}
	d := g.last.Sub(in.cursor)
	g.last = in.cursor
	if d == (image.Point{}) {
		return nil
	}
	return g.canvas.Pan(d.X, d.Y)
}

// Draw copies the visible frame into the window.
func (g *game) Draw(screen *ebiten.Image) {
	img, ok := g.snapshot()
	if !ok {
		return
	}
	b := img.Bounds()
	if g.frame == nil || g.img == nil || g.img.Bounds() != b {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.img = img
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)
}

// snapshot returns the visible frame. The first failure is logged; later
// ones are dropped until a snapshot succeeds again.
func (g *game) snapshot() (*image.RGBA, bool) {
	img, err := g.canvas.Snapshot()
	if err != nil {
		if !g.drawFailed {
			tilesurface.Logger().Warn("tileview: cannot present frame", "err", err)
			g.drawFailed = true
		}
		return nil, false
	}
	g.drawFailed = false
	return img, true
}

// Layout resizes the canvas to the window's logical size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.paneW || h != g.paneH {
		if err := g.canvas.Resize(w, h); err == nil {
			g.paneW, g.paneH = w, h
		}
	}
	return g.paneW, g.paneH
}
