// Command desktop opens a window on a 2048 game. By default the engine runs
// locally with a configuration from -config-dir; with -session it mirrors a
// session on a running server and sends moves over the websocket.
//
// Keys: arrows or WASD shift, R resets, C copies the board, Esc quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/wricardo/game2048/game/config"
	"github.com/wricardo/game2048/game/engine"
	"github.com/wricardo/game2048/game/palette"
	"github.com/wricardo/game2048/internal/board"
)

var (
	configDir  = flag.String("config-dir", getConfigDirDefault(), "Directory containing game configurations")
	configName = flag.String("config", config.DefaultConfigName, "Configuration to play locally")
	serverURL  = flag.String("server", "http://localhost:8080", "Server to connect to with -session")
	sessionID  = flag.String("session", "", "Mirror this server session instead of playing locally")
	paletteArg = flag.String("palette", "", "Palette override (ylorbr, classic, mono)")
	seed       = flag.Uint64("seed", 0, "Spawn seed for local games (0 picks one at random)")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func getConfigDirDefault() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	b, paletteName, err := openBoard(logger)
	if err != nil {
		logger.Error("failed to open board", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	if *paletteArg != "" {
		paletteName = *paletteArg
	}
	p, err := palette.Lookup(paletteName)
	if err != nil {
		logger.Error("bad palette", "error", err)
		os.Exit(1)
	}

	game := NewGame(b, p, logger)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(game.title)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}

// openBoard returns the board to drive and the palette its configuration names
func openBoard(logger *slog.Logger) (board.Board, string, error) {
	if *sessionID != "" {
		remote, err := board.Dial(*serverURL, *sessionID, logger)
		if err != nil {
			return nil, "", fmt.Errorf("connect to session %s: %w", *sessionID, err)
		}
		logger.Info("mirroring session", "server", *serverURL, "session", *sessionID)
		return remote, "", nil
	}

	manager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, "", err
	}
	cfg, err := manager.LoadConfig(*configName)
	if err != nil {
		return nil, "", fmt.Errorf("load config %s: %w", *configName, err)
	}

	var opts []engine.Option
	if *seed != 0 {
		opts = append(opts, engine.WithRandomSource(engine.NewRandomSource(*seed)))
	}
	local, err := board.NewLocal(cfg, opts...)
	if err != nil {
		return nil, "", err
	}
	logger.Info("local game", "config", cfg.Name, "rows", cfg.Rows, "columns", cfg.Columns)
	return local, cfg.Palette, nil
}
