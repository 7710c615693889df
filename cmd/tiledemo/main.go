// Command tiledemo renders the tile map at a viewport and saves the
// presented frame as an image.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/tilesurface"
	"golang.org/x/image/bmp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	var (
		width   = flag.Int("width", 800, "viewport width")
		height  = flag.Int("height", 600, "viewport height")
		buffers = flag.Int("buffers", 2, "frame count (1 or 2)")
		mode    = flag.String("mode", "clear", "background mode: clear or dirty-margin (alias margin)")
		x       = flag.Int("x", 0, "viewport origin x")
		y       = flag.Int("y", 0, "viewport origin y")
		frames  = flag.Int("frames", 1, "number of renders before saving")
		output  = flag.String("output", "tiles.png", "output file (.png or .bmp)")
		verbose = flag.Bool("v", false, "log surface activity")
	)
	flag.Parse()

	if *verbose {
		tilesurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	bg, ok := tilesurface.ParseBackgroundMode(*mode)
	if !ok {
		log.Fatalf("Invalid mode %q: want clear or dirty-margin", *mode)
	}

	img, stats, err := render(config{
		width:   *width,
		height:  *height,
		buffers: *buffers,
		mode:    bg,
		x:       *x,
		y:       *y,
		frames:  *frames,
	})
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	if err := save(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	p := message.NewPrinter(language.English)
	log.Print(p.Sprintf("Frame %d of %d saved to %s (%dx%d, %d bytes buffer, generation %d)",
		stats.index, stats.buffers, *output, *width, *height, stats.bytes, stats.generation))
}

type config struct {
	width, height int
	buffers       int
	mode          tilesurface.BackgroundMode
	x, y          int
	frames        int
}

type renderStats struct {
	index      int
	buffers    int
	bytes      int
	generation uint64
}

// render creates a surface, renders cfg.frames frames at the requested
// origin and returns a copy of the last one.
func render(cfg config) (*image.RGBA, renderStats, error) {
	s := tilesurface.New(tilesurface.WithBackgroundMode(cfg.mode))
	defer s.Dispose()

	buf, err := s.Create(cfg.width, cfg.height, cfg.buffers, tilesurface.PixelFormatARGB32)
	if err != nil {
		return nil, renderStats{}, err
	}
	s.MoveViewport(cfg.x, cfg.y)
	for i := 0; i < max(cfg.frames, 1); i++ {
		s.Render()
	}

	f, ok := s.AcquireFrame()
	if !ok {
		return nil, renderStats{}, fmt.Errorf("no frame rendered")
	}
	defer f.Release()

	return f.Image(), renderStats{
		index:      f.Index(),
		buffers:    s.Buffers(),
		bytes:      len(buf),
		generation: f.Generation(),
	}, nil
}

func save(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
