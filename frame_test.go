package tilesurface

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func renderedFrame(t *testing.T, x, y int) (*Surface, *Frame) {
	t.Helper()
	s := newTestSurface(t, BackgroundClear)
	mustCreate(t, s, 12, 10, 2)
	s.MoveViewport(x, y)
	s.Render()
	f, ok := s.AcquireFrame()
	if !ok {
		t.Fatal("AcquireFrame() failed")
	}
	t.Cleanup(f.Release)
	return s, f
}

func TestFrameImplementsImage(t *testing.T) {
	_, f := renderedFrame(t, -4, 3)
	var img image.Image = f

	if img.Bounds() != image.Rect(0, 0, 12, 10) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	if img.ColorModel() != ARGBModel {
		t.Error("ColorModel() should be ARGBModel")
	}
	// Column 0 maps to x=-4: background.
	if got := img.At(0, 0); got != Blue {
		t.Errorf("At(0, 0) = %v, want background", got)
	}
	if got := f.Pixel(4, 0); got != Red {
		t.Errorf("Pixel(4, 0) = %#08x, want even tile", uint32(got))
	}
	if f.Pixel(-1, 0) != 0 || f.Pixel(12, 0) != 0 {
		t.Error("out-of-bounds Pixel should be 0")
	}
}

func TestFrameBytes(t *testing.T) {
	_, f := renderedFrame(t, -4, 3)
	b := f.Bytes()
	pix := f.Pix()
	if len(b) != len(pix)*BytesPerPixel {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), len(pix)*BytesPerPixel)
	}
	for i, v := range pix {
		if got := binary.NativeEndian.Uint32(b[i*4:]); got != v {
			t.Fatalf("word %d = %#08x, want %#08x", i, got, v)
		}
	}
	// The byte view aliases the frame slot, not a copy.
	pix[0] = 0xFF123456
	if binary.NativeEndian.Uint32(b) != 0xFF123456 {
		t.Error("Bytes() should alias Pix()")
	}
}

func TestFrameImage(t *testing.T) {
	s, f := renderedFrame(t, 5, 0)
	img := f.Image()
	vp := s.Viewport()
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			want := expectedPixel(s.TileMap(), s.Palette(), vp.Min.X+x, vp.Min.Y+y).NRGBA()
			got := img.RGBAAt(x, y)
			if got != (color.RGBA{R: want.R, G: want.G, B: want.B, A: want.A}) {
				t.Fatalf("Image() pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, f); err != nil {
		t.Fatalf("png.Encode(frame) error = %v", err)
	}
}

func TestFrameCopyRGBAClips(t *testing.T) {
	_, f := renderedFrame(t, 0, 0)
	dst := image.NewRGBA(image.Rect(8, 8, 20, 20))
	f.CopyRGBA(dst)
	if got := dst.RGBAAt(8, 8); got.A != 0xFF {
		t.Errorf("overlapping pixel not copied: %v", got)
	}
	if got := dst.RGBAAt(15, 15); got.A != 0 {
		t.Errorf("pixel outside the frame was written: %v", got)
	}
}

func TestFrameAfterDispose(t *testing.T) {
	s, f := renderedFrame(t, 0, 0)
	s.Dispose()
	if f.Pix() != nil || f.Pixel(0, 0) != 0 {
		t.Error("disposed frame should expose no pixels")
	}
	f.CopyRGBA(image.NewRGBA(f.Bounds()))
}
