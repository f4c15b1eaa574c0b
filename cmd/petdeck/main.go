// petdeck is a terminal pet-adoption deck: swipe the front card right to like,
// left to pass, or up to open the detail sheet
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/petdeck/audio"
	"github.com/lixenwraith/petdeck/config"
	"github.com/lixenwraith/petdeck/engine"
	"github.com/lixenwraith/petdeck/render"
	"github.com/lixenwraith/petdeck/status"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		logFile    string
		mute       bool
		fps        int
	)

	flagSet := pflag.NewFlagSet("petdeck", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML config with tuning and candidates (default: built-in sample deck)")
	flagSet.StringVar(&logFile, "log-file", "", "write text log records to this file")
	flagSet.BoolVar(&mute, "mute", false, "start with sound cues muted")
	flagSet.IntVar(&fps, "fps", 0, "frame rate override")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// The screen owns stdout and stderr, logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	switch {
	case errors.Is(err, config.ErrNoCandidates):
		logger.Warn("config has no candidates, using sample deck", "path", configPath)
		cfg.Candidates = config.SampleCandidates()
	case err != nil:
		return err
	}
	if flagSet.Changed("fps") {
		cfg.Engine.FrameRate = fps
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sound := audio.NewSoundManager(cfg.Audio, audio.WithLogger(logger))
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing silently", "error", err)
	}
	defer sound.Cleanup()
	if mute {
		sound.SetMuted(true)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	engine.SetCrashScreen(screen)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.EnableFocus()
	screen.HideCursor()

	cols, rows := screen.Size()
	eng := engine.New(cfg, cols, rows,
		engine.WithLogger(logger),
		engine.WithSounder(sound),
		engine.WithRenderer(render.NewTerminalRenderer(screen)),
	)
	eng.Start()
	defer eng.Stop()

	engine.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eng.Post(ev)
		}
	})

	<-eng.Done()
	logger.Info("quit", "frames", eng.Metrics().Count(status.EngineFrames))
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `petdeck - swipe through adoptable pets in the terminal.

Drag the front card with the mouse or use the keys:
  ← / h      pass
  → / l      like
  ↑ / k      open details
  esc / x    close details
  m          toggle sound
  q          quit

Usage:
  petdeck [flags]

Flags:
`)
	flagSet.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  %s  %s  %s  %s
`, config.EnvSwipeThreshold, config.EnvHintDelay, config.EnvAudioEnabled, config.EnvFrameRate)
}
