// Package config loads the JSON settings file shared by the snejk commands.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"snakenet/internal/arena"
	"snakenet/internal/engine"
)

// DefaultPath is used when no -config flag is given.
const DefaultPath = "snejk.json"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	TickMS        int      `json:"tick_ms"`
	MaxFrameSkip  int      `json:"max_frame_skip"`
	Collision     []string `json:"collision"`
	Level         int      `json:"level"`
	MapFile       string   `json:"map_file"`
	Players       int      `json:"players"`
	FirstSlot     int      `json:"first_slot"` // spawn slot of the first local snake
	Pickups       int      `json:"pickups"`
	RelayListen   string   `json:"relay_listen"`
	RelayURL      string   `json:"relay_url"`
	SnapshotEvery int      `json:"snapshot_every"`
	SFXVolume     float64  `json:"sfx_volume"`
	LogLevel      string   `json:"log_level"`
	ScoreFloor    int      `json:"score_floor"`
	TimeLimitS    int      `json:"time_limit_s"`
	DumpDir       string   `json:"dump_dir"`
	Seed          uint64   `json:"seed"` // 0 picks one from the clock
}

func Default() Config {
	return Config{
		TickMS:        50,
		MaxFrameSkip:  5,
		Collision:     []string{"wall", "own", "other"},
		Level:         1,
		Players:       1,
		Pickups:       3,
		RelayListen:   ":38870",
		SnapshotEvery: 1,
		SFXVolume:     0.6,
		LogLevel:      "info",
		ScoreFloor:    -20,
	}
}

// Load reads path. A missing file is created with the defaults, the way a
// first run should leave an editable file behind. Fields absent from the
// file keep their defaults; unknown fields are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	check := func(ok bool, field string, v any) error {
		if ok {
			return nil
		}
		return fmt.Errorf("%w: %s = %v", ErrInvalid, field, v)
	}
	if err := errors.Join(
		check(c.TickMS >= 5 && c.TickMS <= 1000, "tick_ms", c.TickMS),
		check(c.MaxFrameSkip >= 0 && c.MaxFrameSkip <= 20, "max_frame_skip", c.MaxFrameSkip),
		check(c.Level >= 1, "level", c.Level),
		check(c.Players >= 1 && c.Players <= 2, "players", c.Players),
		check(c.FirstSlot >= 0 && c.FirstSlot < arena.SpawnSlots, "first_slot", c.FirstSlot),
		check(c.Pickups >= 0 && c.Pickups <= 16, "pickups", c.Pickups),
		check(c.SnapshotEvery >= 0, "snapshot_every", c.SnapshotEvery),
		check(c.SFXVolume >= 0 && c.SFXVolume <= 1, "sfx_volume", c.SFXVolume),
		check(c.ScoreFloor <= 0, "score_floor", c.ScoreFloor),
		check(c.TimeLimitS >= 0, "time_limit_s", c.TimeLimitS),
	); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := engine.ParseCollisionMode(c.Collision); err != nil {
		return fmt.Errorf("%w: collision: %w", ErrInvalid, err)
	}
	return nil
}

func (c Config) Period() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// CollisionMode returns the parsed collision list. Validate has already
// rejected unknown names.
func (c Config) CollisionMode() engine.CollisionMode {
	m, _ := engine.ParseCollisionMode(c.Collision)
	return m
}

// TimeLimitTicks converts the time limit to ticks; 0 means no limit.
func (c Config) TimeLimitTicks() int {
	if c.TimeLimitS <= 0 {
		return 0
	}
	return c.TimeLimitS * 1000 / c.TickMS
}

// ParseLevel accepts slog level names such as "debug" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log_level = %q", ErrInvalid, s)
	}
	return l, nil
}
