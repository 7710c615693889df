package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/tilesurface/canvas"
	"golang.org/x/image/draw"
)

// cellWriter is the part of tcell.Screen the view paints through.
type cellWriter interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// panStep is the distance, in terminal pixels, an arrow key pans.
const panStep = 4

// view maps a terminal grid onto a canvas. Every cell shows two vertically
// stacked pixels with the upper half-block glyph; one terminal pixel covers
// scale x scale map pixels.
type view struct {
	canvas *canvas.Canvas
	scale  int
	cols   int
	rows   int
	img    *image.RGBA

	dragging bool
	last     image.Point
}

func newView(c *canvas.Canvas, scale, cols, rows int) (*view, error) {
	v := &view{canvas: c, scale: max(scale, 1)}
	if err := v.resize(cols, rows); err != nil {
		return nil, err
	}
	return v, nil
}

// resize adapts the pane to a cols x rows terminal.
func (v *view) resize(cols, rows int) error {
	cols, rows = max(cols, 1), max(rows, 1)
	v.cols, v.rows = cols, rows
	v.img = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	return v.canvas.Resize(cols*v.scale, rows*2*v.scale)
}

// pan moves the viewport by a delta in terminal pixels.
func (v *view) pan(dx, dy int) error {
	return v.canvas.Pan(dx*v.scale, dy*v.scale)
}

// handleKey applies a key event. It reports whether the view should quit.
func (v *view) handleKey(ev *tcell.EventKey) (quit bool, err error) {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyLeft:
		return false, v.pan(-panStep, 0)
	case tcell.KeyRight:
		return false, v.pan(panStep, 0)
	case tcell.KeyUp:
		return false, v.pan(0, -panStep)
	case tcell.KeyDown:
		return false, v.pan(0, panStep)
	case tcell.KeyHome:
		return false, v.canvas.MoveTo(0, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true, nil
		case '0':
			return false, v.canvas.MoveTo(0, 0)
		}
	}
	return false, nil
}

// handleMouse drags the content with the primary button and scrolls with
// the wheel. Dragging right moves the viewport left.
func (v *view) handleMouse(ev *tcell.EventMouse) error {
	x, y := ev.Position()
	p := image.Pt(x, y*2)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return v.pan(0, -panStep)
	case buttons&tcell.WheelDown != 0:
		return v.pan(0, panStep)
	case buttons&tcell.WheelLeft != 0:
		return v.pan(-panStep, 0)
	case buttons&tcell.WheelRight != 0:
		return v.pan(panStep, 0)
	}

	if buttons&tcell.Button1 == 0 {
		v.dragging = false
		return nil
	}
	if !v.dragging {
		v.dragging = true
		v.last = p
		return nil
	}
	d := v.last.Sub(p)
	v.last = p
	if d == (image.Point{}) {
		return nil
	}
	return v.pan(d.X, d.Y)
}

// paint presents the current frame into w.
func (v *view) paint(w cellWriter) error {
	if err := v.canvas.PresentTo(v.img, v.img.Bounds(), draw.NearestNeighbor); err != nil {
		return err
	}
	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			top := v.img.RGBAAt(col, row*2)
			bottom := v.img.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			w.SetContent(col, row, '▀', nil, style)
		}
	}
	return nil
}
