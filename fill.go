package tilesurface

import "image"

// frameTarget is one frame slot of the pixel buffer in viewport coordinates.
type frameTarget struct {
	pix    []uint32
	width  int
	height int
}

// bounds returns the writable area of the frame.
func (f frameTarget) bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// clear fills every pixel of the frame with c.
func (f frameTarget) clear(c ARGB) {
	v := uint32(c.Opaque())
	for i := range f.pix {
		f.pix[i] = v
	}
}

// fill paints r clipped to the frame. r is half-open.
func (f frameTarget) fill(r image.Rectangle, c ARGB) {
	r = r.Intersect(f.bounds())
	if r.Empty() {
		return
	}
	v := uint32(c.Opaque())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.pix[y*f.width+r.Min.X : y*f.width+r.Max.X]
		for i := range row {
			row[i] = v
		}
	}
}

// fillMargins paints the parts of the viewport at origin that lie outside
// the map's bounding box, one strip per side. The map is assumed gap-free,
// so everything else is covered by the tile pass.
func (f frameTarget) fillMargins(origin image.Point, m TileMap, c ARGB) {
	w, h := f.width, f.height
	if origin.X < 0 {
		f.fill(image.Rect(0, 0, -origin.X, h), c)
	}
	if origin.Y < 0 {
		f.fill(image.Rect(0, 0, w, -origin.Y), c)
	}
	if right := m.Width() - origin.X; right < w {
		f.fill(image.Rect(right, 0, w, h), c)
	}
	if bottom := m.Height() - origin.Y; bottom < h {
		f.fill(image.Rect(0, bottom, w, h), c)
	}
}

// drawTiles paints every tile of m that intersects the viewport at origin.
func (f frameTarget) drawTiles(origin image.Point, m TileMap, p Palette) {
	if m.Empty() {
		return
	}
	for row := 0; row < m.TilesY; row++ {
		for col := 0; col < m.TilesX; col++ {
			r := m.TileRect(row, col).Sub(origin)
			if !r.Overlaps(f.bounds()) {
				continue
			}
			f.fill(r, p.TileColor(m.Index(row, col)))
		}
	}
}
