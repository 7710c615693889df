// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tilesurface"
	"golang.org/x/image/draw"
)

var testMap = tilesurface.TileMap{TilesX: 4, TilesY: 4, TileSize: 16}

// mockTexture implements gpucontext.TextureUpdater for testing.
type mockTexture struct {
	data    []byte
	updated int
	fail    bool
}

func (m *mockTexture) UpdateData(data []byte) error {
	if m.fail {
		return errors.New("mock upload failed")
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func newTestCanvas(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	opts = append([]Option{
		WithSizeIncrement(8),
		WithSurfaceOptions(tilesurface.WithTileMap(testMap)),
	}, opts...)
	c, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// wantAt returns the expected color of map point (x, y).
func wantAt(x, y int) color.RGBA {
	p := tilesurface.DefaultPalette()
	c := p.Background
	if row, col, ok := testMap.TileAt(x, y); ok {
		c = p.TileColor(testMap.Index(row, col))
	}
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}
}

func checkSnapshot(t *testing.T, c *Canvas) {
	t.Helper()
	img, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	w, h := c.PaneSize()
	if img.Bounds() != image.Rect(0, 0, w, h) {
		t.Fatalf("snapshot bounds = %v, want pane %dx%d", img.Bounds(), w, h)
	}
	v := c.Viewport()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got, want := img.RGBAAt(x, y), wantAt(v.X+x, v.Y+y); got != want {
				t.Fatalf("viewport (%d,%d) pixel (%d,%d) = %v, want %v", v.X, v.Y, x, y, got, want)
			}
		}
	}
}

func TestNewInvalidDimensions(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(sz[0], sz[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", sz[0], sz[1], err)
		}
	}
}

func TestNewInvalidBuffers(t *testing.T) {
	_, err := New(10, 10, WithBuffers(3))
	if !errors.Is(err, tilesurface.ErrInvalidConfiguration) {
		t.Errorf("New with 3 buffers error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestNewRendersFirstFrame(t *testing.T) {
	c := newTestCanvas(t, 20, 13)

	v := c.Viewport()
	if v.Width != 24 || v.Height != 16 || v.X != 0 || v.Y != 0 {
		t.Errorf("Viewport() = %+v, want 24x16 at origin", v)
	}
	if c.Frame() == nil {
		t.Fatal("Frame() is nil after New")
	}
	if got := c.VisibleRect(); got != image.Rect(0, 16, 20, 29) {
		t.Errorf("VisibleRect() = %v, want frame slot 1 cropped to the pane", got)
	}
	checkSnapshot(t, c)
}

func TestResizeReusesBufferWithinIncrement(t *testing.T) {
	c := newTestCanvas(t, 20, 13)
	gen := c.Surface().Generation()

	if err := c.Resize(23, 15); err != nil {
		t.Fatal(err)
	}
	if c.Surface().Generation() != gen {
		t.Error("resize within the increment should not recreate the buffer")
	}
	checkSnapshot(t, c)

	if err := c.Resize(30, 15); err != nil {
		t.Fatal(err)
	}
	if c.Surface().Generation() != gen+1 {
		t.Errorf("Generation() = %d, want %d after growing", c.Surface().Generation(), gen+1)
	}
	if v := c.Viewport(); v.Width != 32 || v.Height != 16 {
		t.Errorf("Viewport() = %+v, want 32x16", v)
	}
	checkSnapshot(t, c)

	if err := c.Resize(0, 5); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 5) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestResizeKeepsOrigin(t *testing.T) {
	c := newTestCanvas(t, 16, 16)
	if err := c.MoveTo(20, 5); err != nil {
		t.Fatal(err)
	}
	if err := c.Resize(40, 40); err != nil {
		t.Fatal(err)
	}
	if v := c.Viewport(); v.X != 20 || v.Y != 5 {
		t.Errorf("origin after resize = (%d,%d), want (20,5)", v.X, v.Y)
	}
	checkSnapshot(t, c)
}

func TestPan(t *testing.T) {
	c := newTestCanvas(t, 16, 16)
	moves := [][2]int{{5, 3}, {-30, 0}, {100, 100}, {-75, -103}}
	for _, m := range moves {
		prev := c.Viewport()
		if err := c.Pan(m[0], m[1]); err != nil {
			t.Fatal(err)
		}
		if v := c.Viewport(); v.X != prev.X+m[0] || v.Y != prev.Y+m[1] {
			t.Fatalf("Pan(%d, %d) moved to (%d,%d)", m[0], m[1], v.X, v.Y)
		}
		checkSnapshot(t, c)
	}
}

func TestSingleBuffered(t *testing.T) {
	c := newTestCanvas(t, 10, 10, WithBuffers(1))
	for i := 0; i < 3; i++ {
		if err := c.Pan(3, 3); err != nil {
			t.Fatal(err)
		}
		if c.Frame().Index() != 0 {
			t.Errorf("single-buffered frame index = %d, want 0", c.Frame().Index())
		}
		checkSnapshot(t, c)
	}
}

func TestRenderEmptyViewportIsIgnored(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	before := c.Viewport()
	if err := c.Render(Viewport{X: 50, Y: 50}); err != nil {
		t.Fatal(err)
	}
	if c.Viewport() != before {
		t.Error("empty viewport should not replace the current one")
	}
}

func TestFramesSurviveResize(t *testing.T) {
	c := newTestCanvas(t, 16, 16)
	for i := 0; i < 5; i++ {
		if err := c.Resize(16+8*i, 16); err != nil {
			t.Fatal(err)
		}
		if c.Frame().Released() {
			t.Fatal("front frame released while presented")
		}
		checkSnapshot(t, c)
	}
}

func TestPresentTo(t *testing.T) {
	c := newTestCanvas(t, 16, 8)
	if err := c.MoveTo(-8, 0); err != nil {
		t.Fatal(err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	if err := c.PresentTo(dst, dst.Bounds(), nil); err != nil {
		t.Fatal(err)
	}
	// 16x8 scaled by 4 into the top 64x32 rows.
	if got, want := dst.RGBAAt(0, 0), wantAt(-8, 0); got != want {
		t.Errorf("dst (0,0) = %v, want background %v", got, want)
	}
	if got, want := dst.RGBAAt(63, 31), wantAt(7, 7); got != want {
		t.Errorf("dst (63,31) = %v, want tile %v", got, want)
	}
	if got := dst.RGBAAt(10, 40); got.A != 0 {
		t.Errorf("letterbox area written: %v", got)
	}

	if err := c.PresentTo(dst, image.Rectangle{}, draw.ApproxBiLinear); err != nil {
		t.Errorf("PresentTo(empty rect) error = %v", err)
	}
}

func TestTextureFormat(t *testing.T) {
	c := newTestCanvas(t, 12, 10)
	want := gputypes.TextureFormatBGRA8Unorm
	if binary.NativeEndian.Uint16([]byte{0, 1}) == 1 {
		want = gputypes.TextureFormatRGBA8Unorm
	}
	if got := c.TextureFormat(); got != want {
		t.Errorf("TextureFormat() = %v, want %v", got, want)
	}
}

// uploadedColor decodes pixel i of an upload in format tf.
func uploadedColor(t *testing.T, data []byte, i int, tf gputypes.TextureFormat) color.RGBA {
	t.Helper()
	p := data[i*4 : i*4+4]
	switch tf {
	case gputypes.TextureFormatBGRA8Unorm:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	case gputypes.TextureFormatRGBA8Unorm:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	default:
		t.Fatalf("unexpected texture format %v", tf)
		return color.RGBA{}
	}
}

func TestUpload(t *testing.T) {
	// The viewport is rounded up to 16x16, so each uploaded row is cropped
	// from a wider frame row.
	c := newTestCanvas(t, 12, 10)
	if err := c.MoveTo(10, 13); err != nil {
		t.Fatal(err)
	}
	tex := &mockTexture{}
	if err := c.Upload(tex); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if tex.updated != 1 || len(tex.data) != 12*10*4 {
		t.Fatalf("upload count %d, %d bytes; want 1, %d", tex.updated, len(tex.data), 12*10*4)
	}

	tf := c.TextureFormat()
	for _, p := range []image.Point{{0, 0}, {5, 2}, {6, 3}, {11, 9}} {
		got := uploadedColor(t, tex.data, p.Y*12+p.X, tf)
		if want := wantAt(10+p.X, 13+p.Y); got != want {
			t.Errorf("uploaded pixel %v = %v, want %v", p, got, want)
		}
	}

	tex.fail = true
	if err := c.Upload(tex); err == nil {
		t.Error("Upload() should report texture errors")
	}

	tex.fail = false
	_ = c.Close()
	if err := c.Upload(tex); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Upload() after Close = %v, want ErrCanvasClosed", err)
	}
}

func TestClose(t *testing.T) {
	c, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	front := c.Frame()
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if !front.Released() {
		t.Error("Close should release surface memory")
	}
	if c.Surface().Initialized() {
		t.Error("Close should dispose the surface")
	}

	if err := c.Pan(1, 1); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Pan after Close error = %v", err)
	}
	if err := c.Resize(5, 5); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Resize after Close error = %v", err)
	}
	if _, err := c.Snapshot(); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Snapshot after Close error = %v", err)
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		src  image.Point
		r    image.Rectangle
		want image.Rectangle
	}{
		{image.Pt(10, 5), image.Rect(0, 0, 100, 100), image.Rect(0, 0, 100, 50)},
		{image.Pt(5, 10), image.Rect(0, 0, 100, 100), image.Rect(0, 0, 50, 100)},
		{image.Pt(4, 4), image.Rect(10, 20, 30, 60), image.Rect(10, 20, 30, 40)},
		{image.Pt(0, 4), image.Rect(0, 0, 10, 10), image.Rectangle{}},
		{image.Pt(4, 4), image.Rectangle{}, image.Rectangle{}},
	}
	for _, tt := range tests {
		if got := fitRect(tt.src, tt.r); got != tt.want {
			t.Errorf("fitRect(%v, %v) = %v, want %v", tt.src, tt.r, got, tt.want)
		}
	}
}
