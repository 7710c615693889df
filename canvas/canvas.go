// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/tilesurface"
	"golang.org/x/image/draw"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("canvas: canvas is closed")

	// ErrInvalidDimensions is returned when the pane width or height is invalid.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

	// ErrNoFrame is returned when presenting before anything was rendered.
	ErrNoFrame = errors.New("canvas: no frame rendered")
)

// Option configures a Canvas.
type Option func(*config)

type config struct {
	buffers     int
	increment   int
	surfaceOpts []tilesurface.Option
}

// WithBuffers selects single (1) or double (2) buffering. The default is 2.
func WithBuffers(n int) Option {
	return func(c *config) { c.buffers = n }
}

// WithSizeIncrement sets the granularity native buffers are sized to.
// The default is DefaultSizeIncrement.
func WithSizeIncrement(n int) Option {
	return func(c *config) { c.increment = n }
}

// WithSurfaceOptions passes options through to the underlying surface.
func WithSurfaceOptions(opts ...tilesurface.Option) Option {
	return func(c *config) { c.surfaceOpts = append(c.surfaceOpts, opts...) }
}

// Canvas presents a tilesurface.Surface in a host pane.
//
// Canvas is NOT safe for concurrent use. Drive it from one goroutine, the
// same one that presents its frames.
type Canvas struct {
	surface   *tilesurface.Surface
	buffers   int
	increment int

	viewport Viewport
	paneW    int
	paneH    int

	front   *tilesurface.Frame
	scratch *image.RGBA
	staging []byte
	closed  bool
}

// New creates a canvas for a width x height pane and renders the first
// frame at the map origin.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	cfg := config{buffers: 2, increment: DefaultSizeIncrement}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Canvas{
		surface:   tilesurface.New(cfg.surfaceOpts...),
		buffers:   cfg.buffers,
		increment: cfg.increment,
	}
	if err := c.Resize(width, height); err != nil {
		c.surface.Dispose()
		return nil, err
	}
	return c, nil
}

// Surface returns the surface the canvas renders with.
func (c *Canvas) Surface() *tilesurface.Surface { return c.surface }

// Viewport returns the native viewport of the last render. Its size is the
// pane size rounded up to the size increment.
func (c *Canvas) Viewport() Viewport { return c.viewport }

// PaneSize returns the host pane dimensions.
func (c *Canvas) PaneSize() (width, height int) { return c.paneW, c.paneH }

// Resize adapts the canvas to a new pane size and re-renders. A new buffer
// is only created when the rounded viewport size changes.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	c.paneW, c.paneH = width, height
	return c.Render(c.viewport.WithSizeIncrement(width, height, c.increment))
}

// Pan moves the viewport by (dx, dy) map pixels and re-renders. Dragging
// the content right by d pixels is Pan(-d, 0).
func (c *Canvas) Pan(dx, dy int) error {
	return c.Render(c.viewport.WithDeltaLocation(dx, dy))
}

// MoveTo places the viewport origin at (x, y) and re-renders.
func (c *Canvas) MoveTo(x, y int) error {
	return c.Render(c.viewport.WithLocation(x, y))
}

// Render makes v the current viewport: it recreates the surface buffer if
// the size changed, moves the surface viewport and renders a frame. Empty
// viewports are ignored.
func (c *Canvas) Render(v Viewport) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if v.IsEmpty() {
		return nil
	}

	if !v.SameSize(c.viewport) || !c.surface.Initialized() {
		if _, err := c.surface.Create(v.Width, v.Height, c.buffers, tilesurface.PixelFormatARGB32); err != nil {
			return fmt.Errorf("canvas: create %dx%d: %w", v.Width, v.Height, err)
		}
		tilesurface.Logger().Info("canvas: buffer resized",
			"width", v.Width, "height", v.Height, "buffers", c.buffers,
			"generation", c.surface.Generation())
	}
	c.surface.MoveViewport(v.X, v.Y)
	c.surface.Render()
	c.viewport = v

	next, ok := c.surface.AcquireFrame()
	if !ok {
		return ErrNoFrame
	}
	if c.front != nil {
		c.front.Release()
	}
	c.front = next
	return nil
}

// Frame returns the last rendered frame. The canvas keeps ownership: do not
// Release it, and do not use it after the next render.
func (c *Canvas) Frame() *tilesurface.Frame { return c.front }

// VisibleRect returns the presented part of the whole buffer: the frame
// slot's rows, cropped to the pane.
func (c *Canvas) VisibleRect() image.Rectangle {
	if c.front == nil {
		return image.Rectangle{}
	}
	y := c.front.Index() * c.viewport.Height
	return image.Rect(0, y, min(c.paneW, c.viewport.Width), y+min(c.paneH, c.viewport.Height))
}

// present converts the visible part of the front frame into the scratch
// image, which is reused between calls.
func (c *Canvas) present() (*image.RGBA, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	if c.front == nil {
		return nil, ErrNoFrame
	}
	vis := c.VisibleRect()
	bounds := image.Rect(0, 0, vis.Dx(), vis.Dy())
	if c.scratch == nil || c.scratch.Bounds() != bounds {
		c.scratch = image.NewRGBA(bounds)
	}
	c.front.CopyRGBA(c.scratch)
	return c.scratch, nil
}

// Snapshot returns a copy of what the pane currently shows.
func (c *Canvas) Snapshot() (*image.RGBA, error) {
	img, err := c.present()
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out, nil
}

// PresentTo scales the visible frame into r of dst, preserving its aspect
// ratio and anchoring it at r's top-left corner. A nil scaler uses
// draw.NearestNeighbor.
func (c *Canvas) PresentTo(dst draw.Image, r image.Rectangle, s draw.Scaler) error {
	img, err := c.present()
	if err != nil {
		return err
	}
	if s == nil {
		s = draw.NearestNeighbor
	}
	dr := fitRect(img.Bounds().Size(), r)
	if dr.Empty() {
		return nil
	}
	s.Scale(dst, dr, img, img.Bounds(), draw.Src, nil)
	return nil
}

// TextureFormat returns the layout of the rows Upload writes. When the
// surface's native pixels match a GPU format (BGRA8Unorm on little-endian
// hosts) they are uploaded unconverted; otherwise Upload converts to
// RGBA8Unorm.
func (c *Canvas) TextureFormat() gputypes.TextureFormat {
	if tf, ok := c.surface.Format().TextureFormat(); ok {
		return tf
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// Upload writes the visible frame as tightly packed rows in TextureFormat
// into tex.
func (c *Canvas) Upload(tex gpucontext.TextureUpdater) error {
	var data []byte
	if _, ok := c.surface.Format().TextureFormat(); ok {
		var err error
		if data, err = c.stage(); err != nil {
			return err
		}
	} else {
		img, err := c.present()
		if err != nil {
			return err
		}
		data = img.Pix
	}
	if err := tex.UpdateData(data); err != nil {
		return fmt.Errorf("canvas: texture update failed: %w", err)
	}
	return nil
}

// stage copies the visible rows of the front frame, in native byte order,
// into the staging buffer, which is reused between calls.
func (c *Canvas) stage() ([]byte, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	if c.front == nil {
		return nil, ErrNoFrame
	}
	src := c.front.Bytes()
	if src == nil {
		return nil, ErrNoFrame
	}
	vis := c.VisibleRect()
	row := vis.Dx() * tilesurface.BytesPerPixel
	stride := c.front.Width() * tilesurface.BytesPerPixel
	n := row * vis.Dy()
	if cap(c.staging) < n {
		c.staging = make([]byte, n)
	}
	c.staging = c.staging[:n]
	for y := 0; y < vis.Dy(); y++ {
		copy(c.staging[y*row:(y+1)*row], src[y*stride:y*stride+row])
	}
	return c.staging, nil
}

// Close releases the front frame and all surface buffers.
// Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.front != nil {
		c.front.Release()
		c.front = nil
	}
	c.surface.Dispose()
	c.scratch = nil
	c.staging = nil
	return nil
}

// fitRect returns the largest rectangle with src's aspect ratio that fits
// in r, anchored at r.Min.
func fitRect(src image.Point, r image.Rectangle) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || r.Empty() {
		return image.Rectangle{}
	}
	w, h := r.Dx(), r.Dy()
	if w*src.Y > h*src.X {
		w = h * src.X / src.Y
	} else {
		h = w * src.Y / src.X
	}
	return image.Rectangle{Min: r.Min, Max: r.Min.Add(image.Pt(w, h))}
}
