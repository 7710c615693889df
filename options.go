package tilesurface

// BackgroundMode selects how Render paints pixels not covered by tiles.
type BackgroundMode int

const (
	// BackgroundClear fills the whole frame with the background color before
	// drawing tiles. Simple and always correct, but a single-buffered
	// surface shows the cleared frame while tiles are being drawn.
	BackgroundClear BackgroundMode = iota

	// BackgroundDirtyMargin fills only the parts of the viewport that lie
	// outside the tile map. Tiles overwrite everything else, so no pixel is
	// written twice.
	BackgroundDirtyMargin
)

// String implements fmt.Stringer.
func (m BackgroundMode) String() string {
	switch m {
	case BackgroundClear:
		return "clear"
	case BackgroundDirtyMargin:
		return "dirty-margin"
	default:
		return "unknown"
	}
}

// ParseBackgroundMode maps "clear" and "dirty-margin" to their modes.
// "margin" is accepted as a short form of "dirty-margin".
func ParseBackgroundMode(s string) (BackgroundMode, bool) {
	switch s {
	case "clear":
		return BackgroundClear, true
	case "dirty-margin", "margin":
		return BackgroundDirtyMargin, true
	default:
		return BackgroundClear, false
	}
}

// Option configures a Surface during construction.
//
// Example:
//
//	s := tilesurface.New(
//	    tilesurface.WithBackgroundMode(tilesurface.BackgroundDirtyMargin),
//	    tilesurface.WithTileMap(tilesurface.TileMap{TilesX: 5, TilesY: 5, TileSize: 64}),
//	)
type Option func(*options)

type options struct {
	mode    BackgroundMode
	tileMap TileMap
	palette Palette
	grace   int
}

func defaultOptions() options {
	return options{
		mode:    BackgroundClear,
		tileMap: DefaultTileMap(),
		palette: DefaultPalette(),
		grace:   1,
	}
}

// WithBackgroundMode selects the background pass. The default is
// BackgroundClear.
func WithBackgroundMode(m BackgroundMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithTileMap replaces the default 11x11 map of 256 pixel tiles.
func WithTileMap(m TileMap) Option {
	return func(o *options) {
		o.tileMap = m
	}
}

// WithPalette replaces the default red/green/blue palette. Alpha channels
// are ignored; every written pixel is opaque.
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// WithGrace sets how many generations a superseded buffer stays valid after
// the next Create. Values below 1 are treated as 1.
func WithGrace(generations int) Option {
	return func(o *options) {
		if generations < 1 {
			generations = 1
		}
		o.grace = generations
	}
}
