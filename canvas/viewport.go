// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "image"

// DefaultSizeIncrement is the granularity native viewport sizes are
// rounded up to.
const DefaultSizeIncrement = 64

// Viewport is a window into the tile map: its origin in map coordinates and
// its size in pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// IsEmpty reports whether the viewport covers no pixels.
func (v Viewport) IsEmpty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Rect returns the viewport in map coordinates.
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Width, v.Y+v.Height)
}

// SameSize reports whether v and o have identical extents.
func (v Viewport) SameSize(o Viewport) bool {
	return v.Width == o.Width && v.Height == o.Height
}

// WithSizeIncrement returns v resized to hold a width x height pane, with
// each dimension rounded up to a multiple of increment. A non-positive pane
// dimension yields an empty viewport.
func (v Viewport) WithSizeIncrement(width, height, increment int) Viewport {
	if width <= 0 || height <= 0 {
		v.Width, v.Height = 0, 0
		return v
	}
	if increment < 1 {
		increment = 1
	}
	v.Width = roundUp(width, increment)
	v.Height = roundUp(height, increment)
	return v
}

// WithDeltaLocation returns v moved by (dx, dy).
func (v Viewport) WithDeltaLocation(dx, dy int) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// WithLocation returns v with its origin at (x, y).
func (v Viewport) WithLocation(x, y int) Viewport {
	v.X, v.Y = x, y
	return v
}

func roundUp(n, step int) int {
	return (n + step - 1) / step * step
}
