package tilesurface

import (
	"fmt"
	"image"
	"math"
	"unsafe"

	"github.com/gogpu/tilesurface/internal/arena"
)

// MaxBuffers is the largest supported frame count.
const MaxBuffers = 2

// Surface is an off-screen pixel buffer split into one or two frames, with
// a movable viewport over a tile map.
//
// A Surface has a single writer: Create, MoveViewport, Render and Dispose
// must not be called concurrently with each other. Frames obtained with
// AcquireFrame may be read from other goroutines while the writer renders
// into the other frame slot.
//
// The zero value is not usable; create surfaces with New.
type Surface struct {
	opts  options
	arena *arena.Arena
	block *arena.Block

	width    int
	height   int
	buffers  int
	format   PixelFormat
	frameLen int

	index    int
	origin   image.Point
	rendered bool
}

// New returns an uninitialized surface. Call Create before rendering.
func New(opts ...Option) *Surface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Surface{
		opts:  o,
		arena: arena.New(o.grace),
	}
}

// Create allocates a buffer of bufferCount frames of width x height pixels
// and returns a borrowed byte view of it. The view stays valid until the
// buffer is reclaimed, which happens no earlier than the second Create after
// this one, or at Dispose.
//
// bufferCount must be 1 or 2 and format must be PixelFormatARGB32; otherwise
// Create returns ErrInvalidConfiguration and leaves the surface unchanged.
// A non-positive width or height yields an empty buffer.
//
// The buffer contents are unspecified until the first Render of each frame.
// The active frame index and the viewport origin are reset to zero.
func (s *Surface) Create(width, height, bufferCount int, format PixelFormat) ([]byte, error) {
	if bufferCount < 1 || bufferCount > MaxBuffers {
		return nil, fmt.Errorf("%w: buffer count %d, want 1 or %d", ErrInvalidConfiguration, bufferCount, MaxBuffers)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported pixel format %v", ErrInvalidConfiguration, format)
	}

	width, height = max(width, 0), max(height, 0)
	frameLen := frameLength(width, height, bufferCount)

	if s.opts.mode == BackgroundClear && bufferCount == 1 {
		Logger().Warn("tilesurface: clearing a single-buffered surface may flicker",
			"width", width, "height", height)
	}

	block, st := s.arena.Alloc(frameLen * bufferCount)
	Logger().Debug("tilesurface: buffer created",
		"generation", st.Generation,
		"width", width,
		"height", height,
		"buffers", bufferCount,
		"bytes", block.Len()*BytesPerPixel,
		"reclaimed", st.Reclaimed,
		"pending", st.Pending,
		"reused", st.Reused)

	s.block = block
	s.width = width
	s.height = height
	s.buffers = bufferCount
	s.format = format
	s.frameLen = frameLen
	s.index = 0
	s.origin = image.Point{}
	s.rendered = false

	return s.Bytes(), nil
}

// frameLength returns width*height, panicking with ErrFrameTooLarge if the
// whole buffer cannot be addressed.
func frameLength(width, height, buffers int) int {
	if width == 0 || height == 0 {
		return 0
	}
	limit := math.MaxInt / BytesPerPixel / buffers
	if width > limit/height {
		panic(fmt.Errorf("%w: %dx%d x %d", ErrFrameTooLarge, width, height, buffers))
	}
	return width * height
}

// MoveViewport sets the viewport origin in map coordinates. The viewport may
// lie partly or fully outside the map. Nothing is drawn until the next
// Render. Before Create the call is ignored.
func (s *Surface) MoveViewport(x, y int) {
	if s.block == nil {
		return
	}
	s.origin = image.Pt(x, y)
}

// Render advances to the next frame slot, redraws the viewport into it and
// returns its index. Without a buffer Render does nothing and returns 0.
func (s *Surface) Render() int {
	if s.block == nil {
		return 0
	}

	s.index = (s.index + 1) % s.buffers
	f := s.target(s.index)

	switch s.opts.mode {
	case BackgroundDirtyMargin:
		f.fillMargins(s.origin, s.opts.tileMap, s.opts.palette.Background)
	default:
		f.clear(s.opts.palette.Background)
	}
	f.drawTiles(s.origin, s.opts.tileMap, s.opts.palette)

	s.rendered = true
	return s.index
}

// Dispose releases every buffer, including superseded ones still within
// their grace period, and returns the surface to its uninitialized state.
// Dispose is idempotent.
func (s *Surface) Dispose() {
	if n := s.arena.Reset(); n > 0 {
		Logger().Debug("tilesurface: disposed", "released", n)
	}
	s.block = nil
	s.width, s.height, s.buffers, s.frameLen = 0, 0, 0, 0
	s.format = PixelFormatARGB32
	s.index = 0
	s.origin = image.Point{}
	s.rendered = false
}

func (s *Surface) target(index int) frameTarget {
	off := index * s.frameLen
	return frameTarget{
		pix:    s.block.Pix()[off : off+s.frameLen],
		width:  s.width,
		height: s.height,
	}
}

// Initialized reports whether a buffer exists.
func (s *Surface) Initialized() bool { return s.block != nil }

// Width returns the frame width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *Surface) Height() int { return s.height }

// Buffers returns the number of frame slots.
func (s *Surface) Buffers() int { return s.buffers }

// Format returns the pixel format of the current buffer.
func (s *Surface) Format() PixelFormat { return s.format }

// Mode returns the background mode chosen at construction.
func (s *Surface) Mode() BackgroundMode { return s.opts.mode }

// TileMap returns the map being rendered.
func (s *Surface) TileMap() TileMap { return s.opts.tileMap }

// Palette returns the colors frames are painted with.
func (s *Surface) Palette() Palette { return s.opts.palette }

// Viewport returns the current viewport in map coordinates.
func (s *Surface) Viewport() image.Rectangle {
	return image.Rectangle{Min: s.origin, Max: s.origin.Add(image.Pt(s.width, s.height))}
}

// ActiveIndex returns the frame slot written by the last Render.
func (s *Surface) ActiveIndex() int { return s.index }

// Generation returns the generation of the current buffer, or 0.
func (s *Surface) Generation() uint64 {
	if s.block == nil {
		return 0
	}
	return s.block.Generation()
}

// Pixels returns the whole buffer, all frames, as packed ARGB words. The
// slice is borrowed: do not keep it past the buffer's grace period.
func (s *Surface) Pixels() []uint32 {
	if s.block == nil {
		return nil
	}
	return s.block.Pix()
}

// FramePixels returns the pixels of frame slot index, or nil if the slot
// does not exist.
func (s *Surface) FramePixels(index int) []uint32 {
	if s.block == nil || index < 0 || index >= s.buffers {
		return nil
	}
	return s.target(index).pix
}

// Bytes returns the whole buffer as raw bytes in native byte order, four
// per pixel. Like Pixels, the view is borrowed.
func (s *Surface) Bytes() []byte {
	pix := s.Pixels()
	if pix == nil {
		return nil
	}
	if len(pix) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(pix))), len(pix)*BytesPerPixel)
}

// AcquireFrame returns a reference to the frame written by the last Render.
// The frame's memory stays valid until Release, even across Create. It
// returns false if nothing has been rendered since the last Create.
func (s *Surface) AcquireFrame() (*Frame, bool) {
	if s.block == nil || !s.rendered || !s.block.Retain() {
		return nil, false
	}
	return &Frame{
		block:  s.block,
		index:  s.index,
		width:  s.width,
		height: s.height,
		offset: s.index * s.frameLen,
	}, true
}
