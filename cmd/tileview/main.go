// Command tileview pans a tile surface in a desktop window.
//
// Drag with the left button or scroll to move the viewport; Home or 0
// returns to the map origin. The last viewport origin is remembered in a
// SQLite database.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/tilesurface"
	"github.com/gogpu/tilesurface/canvas"
	"github.com/gogpu/tilesurface/internal/viewstore"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		width   = flag.Int("width", 800, "initial window width")
		height  = flag.Int("height", 600, "initial window height")
		buffers = flag.Int("buffers", 2, "frame count (1 or 2)")
		mode    = flag.String("mode", "dirty-margin", "background mode: clear or dirty-margin (alias margin)")
		dbPath  = flag.String("db", defaultDBPath(), "bookmark database path (empty disables)")
		name    = flag.String("view", "tileview", "bookmark name")
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

	c, err := canvas.New(*width, *height,
		canvas.WithBuffers(*buffers),
		canvas.WithSurfaceOptions(tilesurface.WithBackgroundMode(bg)))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	var store *viewstore.Store
	if *dbPath != "" {
		store, err = viewstore.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("Failed to open bookmarks: %v", err)
		}
		defer store.Close()

		if b, found, err := store.Load(ctx, *name); err != nil {
			log.Printf("Failed to load bookmark: %v", err)
		} else if found {
			if err := c.MoveTo(b.X, b.Y); err != nil {
				log.Fatalf("Failed to restore viewport: %v", err)
			}
		}
	}

	ebiten.SetWindowTitle("tileview")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(newGame(c)); err != nil {
		log.Printf("Window closed: %v", err)
	}

	if store != nil {
		vp := c.Viewport()
		if err := store.Save(ctx, *name, vp.X, vp.Y); err != nil {
			log.Printf("Failed to save bookmark: %v", err)
		}
	}
}

func defaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tilesurface", "views.db")
}
