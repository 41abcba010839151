// Command snejk-term runs a snake session in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"snakenet/internal/app"
	"snakenet/internal/audio"
	"snakenet/internal/config"
	"snakenet/internal/framedump"
	"snakenet/internal/scene"
	"snakenet/internal/session"
	"snakenet/internal/termview"
)

func main() {
	path := flag.String("config", config.DefaultPath, "settings file")
	logPath := flag.String("log", "", "write logs to this file; the screen belongs to the UI")
	mute := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	if err := run(*path, *logPath, *mute); err != nil {
		fmt.Fprintln(os.Stderr, "snejk-term:", err)
		os.Exit(1)
	}
}

func run(path, logPath string, mute bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	lv := cfg.LevelVar()
	log := config.NewLogger(out, lv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fx audio.Player
	var sys *audio.System
	if !mute {
		if sys, err = audio.New(cfg.SFXVolume, log); err != nil {
			log.Warn("audio init failed, continuing without sound", "err", err)
		} else {
			fx = sys
		}
	}
	if err := config.Watch(ctx, path, log, app.Reloader(lv, sys)); err != nil {
		log.Warn("config watch disabled", "err", err)
	}

	g, err := app.NewGame(cfg, app.Seed(cfg), fx, log)
	if err != nil {
		return err
	}
	client, err := app.Connect(ctx, cfg, g, log)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	steer := termview.NewSteering(len(g.Locals()))
	p := tea.NewProgram(termview.New(steer), tea.WithAltScreen())

	clock := session.NewClock(cfg.Period(), cfg.MaxFrameSkip)
	done := make(chan error, 1)
	go func() {
		done <- clock.Run(ctx, func(render bool) bool {
			playing := app.Step(g, client, log, steer.Take()...)
			if render || !playing {
				p.Send(termview.FrameMsg(scene.Capture(g)))
			}
			return playing
		})
	}()

	_, err = p.Run()
	cancel()
	if cerr := <-done; cerr != nil && !errors.Is(cerr, context.Canceled) {
		log.Warn("clock stopped", "err", cerr)
	}
	if err != nil {
		return err
	}

	if cfg.DumpDir != "" {
		if path, err := framedump.Dump(cfg.DumpDir, scene.Capture(g), 2); err != nil {
			log.Warn("frame dump failed", "err", err)
		} else {
			fmt.Println("last frame:", path)
		}
	}
	over, reason, _ := g.Over()
	log.Info("session closed", "ticks", g.Ticks(), "over", over, "reason", reason.String())
	return nil
}
