// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas drives a tilesurface.Surface from a host's point of view.
//
// A Canvas tracks the host pane size, rounds it up to a size increment
// before asking the surface for buffers (so small resizes reuse the existing
// buffer), pans the viewport by pixel deltas, and presents the last rendered
// frame: as an RGBA snapshot, scaled into any draw.Image, or uploaded into a
// GPU texture.
//
// # Usage
//
//	c, err := canvas.New(800, 600)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	// On mouse drag:
//	_ = c.Pan(lastX-x, lastY-y)
//
//	// On paint:
//	c.PresentTo(screen, screen.Bounds(), draw.ApproxBiLinear)
package canvas
