package tilesurface

import (
	"image"
	"image/color"
	"sync"
	"unsafe"

	"github.com/gogpu/tilesurface/internal/arena"
)

// Frame is a reference to one rendered frame slot. While a Frame is held,
// the buffer behind it is not reclaimed, even if the surface is recreated.
// The writer may still render into the slot again, so presenters should copy
// a frame out before the render after next.
//
// Frame implements image.Image.
type Frame struct {
	block  *arena.Block
	index  int
	width  int
	height int
	offset int
	once   sync.Once
}

// Index returns the frame slot this frame lives in.
func (f *Frame) Index() int { return f.index }

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Generation returns the buffer generation the frame belongs to.
func (f *Frame) Generation() uint64 { return f.block.Generation() }

// Released reports whether the frame's memory is gone. While the Frame is
// held that only happens through Dispose; after Release it also happens
// once the buffer's generation has expired.
func (f *Frame) Released() bool { return f.block.Released() }

// Pix returns the frame's pixels, or nil once the memory is gone.
func (f *Frame) Pix() []uint32 {
	pix := f.block.Pix()
	if pix == nil {
		return nil
	}
	return pix[f.offset : f.offset+f.width*f.height]
}

// Bytes returns the frame's pixels as raw bytes in native byte order, four
// per pixel, or nil once the memory is gone. The view aliases Pix.
func (f *Frame) Bytes() []byte {
	pix := f.Pix()
	if pix == nil {
		return nil
	}
	if len(pix) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(pix))), len(pix)*BytesPerPixel)
}

// Pixel returns the pixel at (x, y), or 0 outside the frame.
func (f *Frame) Pixel(x, y int) ARGB {
	pix := f.Pix()
	if pix == nil || x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return ARGB(pix[y*f.width+x])
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color { return f.Pixel(x, y) }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.width, f.height) }

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return ARGBModel }

// Release drops the reference. Calling Release more than once is safe.
func (f *Frame) Release() {
	f.once.Do(f.block.Release)
}

// CopyRGBA converts the part of the frame that overlaps dst's bounds into
// dst. Frame pixel (x, y) lands at dst pixel (x, y).
func (f *Frame) CopyRGBA(dst *image.RGBA) {
	pix := f.Pix()
	if pix == nil {
		return
	}
	r := dst.Bounds().Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := pix[y*f.width+r.Min.X : y*f.width+r.Max.X]
		i := dst.PixOffset(r.Min.X, y)
		row := dst.Pix[i : i+len(src)*4]
		for x, v := range src {
			c := ARGB(v)
			row[x*4+0] = c.R()
			row[x*4+1] = c.G()
			row[x*4+2] = c.B()
			row[x*4+3] = c.A()
		}
	}
}

// Image returns a copy of the frame as an *image.RGBA.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.CopyRGBA(img)
	return img
}
