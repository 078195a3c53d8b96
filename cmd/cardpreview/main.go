// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/tilt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cardpreview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("card-config", "card.yaml", "path to the card configuration file")
		gradient   = flag.String("gradient", "", "inner gradient to shade the card with")
		handle     = flag.String("handle", "preview", "handle shown on the card")
		mobile     = flag.Bool("mobile", false, "simulate a phone with an orientation sensor")
		permission = flag.Bool("permission", false, "require a tap before orientation events flow")
		noTilt     = flag.Bool("no-tilt", false, "start with the tilt effect off")
		fps        = flag.Int("fps", 60, "frames per second")
		logFile    = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	// The terminal belongs to tcell, so logs go to a file or nowhere
	logger := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)

	cfg, err := cardconfig.Load(*configPath)
	if err != nil {
		return err
	}
	if *fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *fps)
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

	p := newPreview(*gradient, *handle)
	p.layout(screen.Size())

	loop := tilt.NewFrameLoop()
	p.card = tilt.NewCard(tilt.Environment{
		Surface: p,
		Input:   p,
		Capabilities: tilt.StaticCapabilities{
			Mobile:          *mobile,
			Orientation:     *mobile,
			NeedsPermission: *permission,
		},
		Scheduler: loop,
		Clock:     tilt.SystemClock{},
	}, tilt.Options{
		EnableTilt: !*noTilt,
		Animation:  cfg.Animation.Tilt(),
		OnContactClick: func() {
			slog.Info("contact clicked", "handle", *handle)
		},
	})
	p.card.Mount()
	defer p.card.Unmount()

	slog.Info("preview started", "mode", p.card.Mode(), "mobile", *mobile, "fps", *fps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !p.handleEvent(ctx, ev) {
				return nil
			}

		case now := <-ticker.C:
			loop.Tick(now)
			p.draw(screen)
		}
	}
}
