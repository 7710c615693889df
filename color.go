package tilesurface

import "image/color"

// ARGB is a packed 32-bit pixel laid out as 0xAARRGGBB.
type ARGB uint32

// OpaqueAlpha is ORed into every pixel the surface writes.
const OpaqueAlpha ARGB = 0xFF000000

// Colors of the default palette.
const (
	Red   ARGB = 0xFFFF0000
	Green ARGB = 0xFF00FF00
	Blue  ARGB = 0xFF0000FF
)

// Opaque returns c with its alpha channel forced to 0xFF.
func (c ARGB) Opaque() ARGB { return c | OpaqueAlpha }

// A returns the alpha channel.
func (c ARGB) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c ARGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c ARGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c ARGB) B() uint8 { return uint8(c) }

// RGBA implements color.Color. Channels are treated as non-premultiplied.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	r = uint32(c.R()) * 0x101 * a / 0xFF
	g = uint32(c.G()) * 0x101 * a / 0xFF
	b = uint32(c.B()) * 0x101 * a / 0xFF
	a *= 0x101
	return r, g, b, a
}

// NRGBA converts c to a non-premultiplied standard library color.
func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// PackARGB builds a pixel from its channels.
func PackARGB(a, r, g, b uint8) ARGB {
	return ARGB(a)<<24 | ARGB(r)<<16 | ARGB(g)<<8 | ARGB(b)
}

// FromColor converts any color.Color to ARGB.
func FromColor(c color.Color) ARGB {
	if v, ok := c.(ARGB); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return PackARGB(n.A, n.R, n.G, n.B)
}

// ARGBModel converts colors to ARGB.
var ARGBModel = color.ModelFunc(func(c color.Color) color.Color { return FromColor(c) })

// Palette holds the three colors a frame is painted with.
type Palette struct {
	Even       ARGB
	Odd        ARGB
	Background ARGB
}

// DefaultPalette paints red and green tiles on a blue background.
func DefaultPalette() Palette {
	return Palette{Even: Red, Odd: Green, Background: Blue}
}

// TileColor returns the color of the tile with the given row-major index.
func (p Palette) TileColor(index int) ARGB {
	if index%2 == 0 {
		return p.Even
	}
	return p.Odd
}
