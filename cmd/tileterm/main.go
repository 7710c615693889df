// Command tileterm pans a tile surface inside a terminal.
//
// Arrow keys, the mouse wheel and dragging with the primary button move the
// viewport. Home or 0 returns to the map origin; q or Esc quits. The last
// viewport origin is remembered in a SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/tilesurface"
	"github.com/gogpu/tilesurface/canvas"
	"github.com/gogpu/tilesurface/internal/viewstore"
)

func main() {
	var (
		scale   = flag.Int("scale", 8, "map pixels per terminal pixel")
		buffers = flag.Int("buffers", 2, "frame count (1 or 2)")
		mode    = flag.String("mode", "dirty-margin", "background mode: clear or dirty-margin (alias margin)")
		dbPath  = flag.String("db", defaultDBPath(), "bookmark database path (empty disables)")
		name    = flag.String("view", "tileterm", "bookmark name")
		logPath = flag.String("log", "", "write debug log to this file")
	)
	flag.Parse()

	if err := run(*scale, *buffers, *mode, *dbPath, *name, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "tileterm: %v\n", err)
		os.Exit(1)
	}
}

func defaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tilesurface", "views.db")
}

func run(scale, buffers int, mode, dbPath, name, logPath string) error {
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		tilesurface.SetLogger(slog.New(slog.NewTextHandler(f,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	bg, ok := tilesurface.ParseBackgroundMode(mode)
	if !ok {
		return fmt.Errorf("invalid mode %q", mode)
	}

	ctx := context.Background()
	var store *viewstore.Store
	if dbPath != "" {
		s, err := viewstore.Open(ctx, dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	cols, rows := screen.Size()
	c, err := canvas.New(max(cols, 1)*max(scale, 1), max(rows, 1)*2*max(scale, 1),
		canvas.WithBuffers(buffers),
		canvas.WithSurfaceOptions(tilesurface.WithBackgroundMode(bg)))
	if err != nil {
		return err
	}
	defer c.Close()

	v, err := newView(c, scale, cols, rows)
	if err != nil {
		return err
	}
	if store != nil {
		if err := restore(ctx, store, c, name); err != nil {
			return err
		}
	}

	if err := loop(screen, v); err != nil {
		return err
	}

	if store != nil {
		vp := c.Viewport()
		if err := store.Save(ctx, name, vp.X, vp.Y); err != nil {
			return err
		}
	}
	return nil
}

// restore moves the canvas to the bookmarked origin, if one was saved.
func restore(ctx context.Context, store *viewstore.Store, c *canvas.Canvas, name string) error {
	b, ok, err := store.Load(ctx, name)
	if err != nil || !ok {
		return err
	}
	if err := c.MoveTo(b.X, b.Y); err != nil {
		return err
	}
	tilesurface.Logger().Info("tileterm: restored viewport", "view", name, "x", b.X, "y", b.Y)
	return nil
}

// loop renders and dispatches events until the user quits.
func loop(screen tcell.Screen, v *view) error {
	for {
		if err := v.paint(screen); err != nil {
			return err
		}
		screen.Show()

		var err error
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			cols, rows := ev.Size()
			err = v.resize(cols, rows)
			screen.Sync()
		case *tcell.EventKey:
			var quit bool
			quit, err = v.handleKey(ev)
			if quit {
				return nil
			}
		case *tcell.EventMouse:
			err = v.handleMouse(ev)
		}
		if err != nil {
			return err
		}
	}
}
