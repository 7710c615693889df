// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bridge exposes a tilesurface.Surface through the flat call surface
// a foreign host binds to: 32-bit integer arguments, a raw byte view of the
// pixel buffer, and no error values.
//
// A host typically calls Init once, CreateCanvas whenever its view size
// changes, MoveTo and Render for every frame, and Dispose at shutdown. The
// byte slice returned by CreateCanvas holds numBuffers frames stacked
// vertically; Render's result selects the one to present.
package bridge

import (
	"github.com/gogpu/tilesurface"
)

// ColorModel identifies the pixel layout a host asks for.
type ColorModel int32

// ColorModelIntARGBPre is a native-endian 0xAARRGGBB word per pixel. All
// pixels are opaque, so premultiplied and straight alpha coincide. It is the
// only accepted model.
const ColorModelIntARGBPre ColorModel = 0

// pixelFormat maps a host color model to the surface's pixel format.
func (m ColorModel) pixelFormat() (tilesurface.PixelFormat, bool) {
	if m == ColorModelIntARGBPre {
		return tilesurface.PixelFormatARGB32, true
	}
	return 0, false
}

// Renderer is the native side of a host canvas.
//
// Renderer is NOT safe for concurrent use; the host serializes calls on its
// render thread.
type Renderer struct {
	surface *tilesurface.Surface
}

// NewRenderer creates a renderer. Options configure the underlying surface.
func NewRenderer(opts ...tilesurface.Option) *Renderer {
	return &Renderer{surface: tilesurface.New(opts...)}
}

// Init is the host's lifecycle hook. There is nothing to prepare.
func (r *Renderer) Init() {
	tilesurface.Logger().Info("bridge: init", "mode", r.surface.Mode())
}

// Dispose frees every buffer. The renderer may be reused after another
// CreateCanvas.
func (r *Renderer) Dispose() {
	r.surface.Dispose()
	tilesurface.Logger().Info("bridge: disposed")
}

// CreateCanvas allocates numBuffers frames of width x height pixels and
// returns the buffer. It returns nil for an unsupported buffer count or
// color model, leaving any previous canvas intact.
func (r *Renderer) CreateCanvas(width, height, numBuffers, colorModel int32) []byte {
	format, ok := ColorModel(colorModel).pixelFormat()
	if !ok {
		tilesurface.Logger().Warn("bridge: unsupported color model", "model", colorModel)
		return nil
	}
	buf, err := r.surface.Create(int(width), int(height), int(numBuffers), format)
	if err != nil {
		tilesurface.Logger().Warn("bridge: createCanvas failed", "err", err)
		return nil
	}
	return buf
}

// MoveTo positions the viewport's top-left corner in map coordinates.
func (r *Renderer) MoveTo(x, y int32) {
	r.surface.MoveViewport(int(x), int(y))
}

// Render draws the next frame and returns the index of the frame to present.
// Before CreateCanvas it returns 0.
func (r *Renderer) Render() int32 {
	return int32(r.surface.Render()) //nolint:gosec // index is 0 or 1
}

// Surface returns the underlying surface.
func (r *Renderer) Surface() *tilesurface.Surface {
	return r.surface
}
