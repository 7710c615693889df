package tilesurface

import "image"

// TileMap is a grid of square tiles anchored at the map origin. The map has
// no gaps: every point of Bounds belongs to exactly one tile.
type TileMap struct {
	TilesX   int
	TilesY   int
	TileSize int
}

// DefaultTileMap returns an 11 by 11 grid of 256 pixel tiles.
func DefaultTileMap() TileMap {
	return TileMap{TilesX: 11, TilesY: 11, TileSize: 256}
}

// Width returns the map width in pixels.
func (m TileMap) Width() int { return m.TilesX * m.TileSize }

// Height returns the map height in pixels.
func (m TileMap) Height() int { return m.TilesY * m.TileSize }

// Bounds returns the map's bounding box in map coordinates.
func (m TileMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width(), m.Height())
}

// Empty reports whether the map covers no pixels.
func (m TileMap) Empty() bool {
	return m.TilesX <= 0 || m.TilesY <= 0 || m.TileSize <= 0
}

// TileRect returns the map-space rectangle of tile (row, col).
func (m TileMap) TileRect(row, col int) image.Rectangle {
	x := col * m.TileSize
	y := row * m.TileSize
	return image.Rect(x, y, x+m.TileSize, y+m.TileSize)
}

// Index returns the row-major index of tile (row, col).
func (m TileMap) Index(row, col int) int {
	return row*m.TilesX + col
}

// TileAt returns the tile containing map point (x, y).
// ok is false if the point lies outside the map.
func (m TileMap) TileAt(x, y int) (row, col int, ok bool) {
	if m.Empty() || !image.Pt(x, y).In(m.Bounds()) {
		return 0, 0, false
	}
	return y / m.TileSize, x / m.TileSize, true
}
