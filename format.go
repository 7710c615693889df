package tilesurface

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
)

// PixelFormat identifies the memory layout of surface pixels.
type PixelFormat int

// PixelFormatARGB32 is one native-endian uint32 per pixel holding
// 0xAARRGGBB. It is the only supported format.
const PixelFormatARGB32 PixelFormat = 0

// BytesPerPixel is the size of one pixel in every supported format.
const BytesPerPixel = 4

// String implements fmt.Stringer.
func (f PixelFormat) String() string {
	if f == PixelFormatARGB32 {
		return "ARGB32"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// Valid reports whether f is a supported format.
func (f PixelFormat) Valid() bool {
	return f == PixelFormatARGB32
}

// TextureFormat returns the GPU texture format with the same byte layout as
// f on this machine. On little-endian hosts a native 0xAARRGGBB word is
// stored as B, G, R, A, which is BGRA8Unorm. Big-endian hosts have no
// matching format and report false.
func (f PixelFormat) TextureFormat() (gputypes.TextureFormat, bool) {
	if f != PixelFormatARGB32 || !littleEndian() {
		return 0, false
	}
	return gputypes.TextureFormatBGRA8Unorm, true
}

func littleEndian() bool {
	return binary.NativeEndian.Uint16([]byte{1, 0}) == 1
}
