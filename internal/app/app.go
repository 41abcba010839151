// Package app builds a session from the settings file and connects it to a
// relay. The window and terminal front ends share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"snakenet/internal/arena"
	"snakenet/internal/audio"
	"snakenet/internal/config"
	"snakenet/internal/netsync"
	"snakenet/internal/session"
)

// dialTimeout bounds the relay handshake.
const dialTimeout = 5 * time.Second

// Seed returns the configured seed, or one from the clock when it is 0.
func Seed(cfg config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

// NewArena loads the map file when one is set, otherwise builds the level.
func NewArena(cfg config.Config, seed uint64) (*arena.Map, error) {
	if cfg.MapFile != "" {
		return arena.LoadMask(cfg.MapFile, arena.DefaultWidth, arena.DefaultHeight, seed)
	}
	return arena.Level(cfg.Level, seed)
}

// NewGame starts a session with cfg.Players local snakes. Each local snake
// gets a fresh UUID so IDs stay unique across a relay. fx may be nil.
func NewGame(cfg config.Config, seed uint64, fx audio.Player, log *slog.Logger) (*session.Game, error) {
	m, err := NewArena(cfg, seed)
	if err != nil {
		return nil, err
	}
	ids := make([]string, cfg.Players)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return session.NewGame(session.Config{
		Map:           m,
		Mode:          cfg.CollisionMode(),
		LocalIDs:      ids,
		FirstSlot:     cfg.FirstSlot,
		ScoreFloor:    cfg.ScoreFloor,
		TimeLimit:     cfg.TimeLimitTicks(),
		SnapshotEvery: cfg.SnapshotEvery,
		Pickups:       cfg.Pickups,
		Seed:          seed,
		Effects:       fx,
		Log:           log,
	})
}

// Connect joins the relay named by cfg.RelayURL. It returns nil and no
// error when no relay is configured.
func Connect(ctx context.Context, cfg config.Config, g *session.Game, log *slog.Logger) (*netsync.Client, error) {
	if cfg.RelayURL == "" {
		return nil, nil
	}
	ids := make([]string, 0, len(g.Locals()))
	for _, s := range g.Locals() {
		ids = append(ids, s.ID())
	}
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	c, err := netsync.Dial(ctx, cfg.RelayURL, ids, g, log)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return c, nil
}

// Step runs one session tick and publishes the result. Once the session is
// over nothing is published and Step reports false.
func Step(g *session.Game, c *netsync.Client, log *slog.Logger, turns ...float64) bool {
	if !g.Tick(turns...) {
		return false
	}
	Publish(g, c, log)
	return true
}

// Publish sends the local snapshots when the session says they are due.
// A full send queue only drops this round.
func Publish(g *session.Game, c *netsync.Client, log *slog.Logger) {
	if c == nil || !g.PublishDue() {
		return
	}
	for _, p := range g.Snapshots() {
		if err := c.Publish(p.ID, p.Snapshot); err != nil {
			if !errors.Is(err, netsync.ErrQueueFull) {
				log.Debug("publish failed", "snake", p.ID, "err", err)
			}
			return
		}
	}
}

// Reloader returns a config callback that applies the settings which can
// change while a session runs: log level and effect volume.
func Reloader(lv *slog.LevelVar, fx *audio.System) func(config.Config) {
	return func(cfg config.Config) {
		if l, err := config.ParseLevel(cfg.LogLevel); err == nil {
			lv.Set(l)
		}
		if fx != nil {
			fx.SetVolume(cfg.SFXVolume)
		}
	}
}
