// Command spritewalk opens a window with a keyboard-driven walking sprite.
//
// Arrow keys walk, keypad +/- (or =/-) scale, F3 toggles the status line,
// F1 toggles the debug overlay when started with -debug, Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spritewalk/config"
	debugui_ebiten "github.com/plus3/spritewalk/ecs/debugui/ebiten"
	"github.com/plus3/spritewalk/game"
	"github.com/plus3/spritewalk/logging"
	"github.com/plus3/spritewalk/sprite"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()

	log, done := logging.New(logging.Options{Level: level, File: cfg.LogFile})
	err := run(cfg, log)
	if err != nil {
		log.Errorw("spritewalk failed", "error", err)
	}
	done()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	sheet, err := sprite.Load(sprite.PlayerSheet, cfg.SheetPath, game.PlayerLayout)
	if err != nil {
		return err
	}

	player := game.DefaultPlayerOptions()
	player.Size = game.Size{Width: cfg.PlayerWidth, Height: cfg.PlayerHeight}
	player.Velocity = cfg.Velocity
	player.ScaleRate = cfg.ScaleRate
	player.FrameTime = cfg.FrameTimeMillis()

	g := game.New(game.Options{
		Width:    cfg.ScreenWidth,
		Height:   cfg.ScreenHeight,
		TPS:      cfg.TPS,
		Player:   player,
		Sheet:    sheet,
		Bindings: game.DefaultBindings(),
		HUD:      cfg.HUD,
		Log:      log,
	})

	if cfg.Debug {
		// The backend creates the window itself.
		g.SetOverlay(debugui_ebiten.NewOverlay(g.Storage(), cfg.Title, cfg.ScreenWidth, cfg.ScreenHeight, g.Player(), g.Scheduler()))
	} else {
		ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetTPS(cfg.TPS)

	log.Infow("starting",
		"title", cfg.Title,
		"sheet", cfg.SheetPath,
		"debug", cfg.Debug)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("stopped")
	return nil
}
