// Command snejk runs a snake session in an OpenGL window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"snakenet/internal/app"
	"snakenet/internal/audio"
	"snakenet/internal/config"
	"snakenet/internal/framedump"
	"snakenet/internal/render"
	"snakenet/internal/scene"
	"snakenet/internal/session"
)

// dumpScale is the pixel scale of F12 frame dumps.
const dumpScale = 2

func init() {
	// GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	path := flag.String("config", config.DefaultPath, "settings file")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, "snejk:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	lv := cfg.LevelVar()
	log := config.NewLogger(nil, lv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var fx audio.Player
	sys, err := audio.New(cfg.SFXVolume, log)
	if err != nil {
		log.Warn("audio init failed, continuing without sound", "err", err)
	} else {
		fx = sys
	}
	if err := config.Watch(ctx, path, log, app.Reloader(lv, sys)); err != nil {
		log.Warn("config watch disabled", "err", err)
	}

	seed := app.Seed(cfg)
	g, err := app.NewGame(cfg, seed, fx, log)
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

	window, err := render.OpenArenaWindow("snejk", g.Map().Width(), g.Map().Height(), 2)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	input := render.NewInput()
	players := len(g.Locals())
	period := cfg.Period()
	deadline := time.Now().Add(period)
	title := ""

	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press || ctx.Err() != nil {
			window.SetShouldClose(true)
			continue
		}

		n, next := session.Plan(time.Now(), deadline, period, cfg.MaxFrameSkip)
		deadline = next
		for i := 0; i < n; i++ {
			if !app.Step(g, client, log, render.Turns(window, players)...) {
				break
			}
		}

		f := scene.Capture(g)
		if input.JustPressed(window, glfw.KeyF12) {
			dump(f, cfg.DumpDir, log)
		}
		if t := strings.Join(f.HUD(), "  |  "); t != title {
			window.SetTitle("snejk  " + t)
			title = t
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.DrawFrame(f, fbW, fbH)
		window.SwapBuffers()
	}

	if cfg.DumpDir != "" {
		dump(scene.Capture(g), cfg.DumpDir, log)
	}
	log.Info("session closed", "ticks", g.Ticks(), "state", g.State().String())
	return nil
}

func dump(f scene.Frame, dir string, log *slog.Logger) {
	if dir == "" {
		dir = "."
	}
	p, err := framedump.Dump(dir, f, dumpScale)
	if err != nil {
		log.Warn("frame dump failed", "err", err)
		return
	}
	log.Info("frame dumped", "path", p)
}
