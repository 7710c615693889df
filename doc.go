// Package tilesurface provides a double-buffered software raster surface.
//
// # Overview
//
// A Surface owns one pixel buffer holding one or two equally sized frames.
// A host positions a viewport over a tile map larger than the viewport and
// asks the surface to render; each render paints the viewport into the
// frame slot that is not being presented and returns that slot's index.
//
// The tile map is a stand-in for arbitrary pixel-producing code: squares
// alternating between two colors on a background color.
//
// # Quick Start
//
//	s := tilesurface.New()
//	defer s.Dispose()
//
//	buf, err := s.Create(800, 600, 2, tilesurface.PixelFormatARGB32)
//	if err != nil {
//	    return err
//	}
//	s.MoveViewport(100, 50)
//	index := s.Render()
//	frame := buf[index*800*600*4 : (index+1)*800*600*4]
//
// # Pixel Format
//
// Pixels are native-endian uint32 words holding 0xAARRGGBB. The alpha byte
// of every written pixel is 0xFF.
//
// # Buffer Lifetime
//
// Create may be called again at any time to resize. The previous buffer is
// not reclaimed at that point: a presenter may still be reading the frame it
// was handed. A buffer from generation N is reclaimed no earlier than the
// Create of generation N+2, and never while a Frame obtained from
// AcquireFrame still references it. Dispose reclaims everything.
//
// # Background Modes
//
// BackgroundClear repaints the whole frame before drawing tiles.
// BackgroundDirtyMargin only paints the viewport strips outside the map,
// relying on double buffering to keep the presented frame intact.
//
// # Packages
//
//   - bridge: the raw host call surface (createCanvas, moveTo, render, ...)
//   - canvas: a host-side driver that resizes, pans and presents frames
package tilesurface
