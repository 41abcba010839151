package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snakenet/internal/engine"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "snejk.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if cfg.TickMS != want.TickMS || cfg.RelayListen != want.RelayListen || len(cfg.Collision) != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("defaults not written: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written defaults: %v", err)
	}
	if again.SFXVolume != want.SFXVolume || again.ScoreFloor != want.ScoreFloor {
		t.Fatalf("reloaded = %+v", again)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := writeFile(t, `{"level": 3, "collision": ["wall"], "players": 2}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != 3 || cfg.Players != 2 || cfg.TickMS != 50 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.CollisionMode() != engine.CollideWall {
		t.Fatalf("mode = %v", cfg.CollisionMode())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"tick_rate": 20}`},
		{"tick too short", `{"tick_ms": 1}`},
		{"three players", `{"players": 3}`},
		{"slot out of range", `{"first_slot": 4}`},
		{"loud", `{"sfx_volume": 1.5}`},
		{"positive floor", `{"score_floor": 4}`},
		{"log level", `{"log_level": "chatty"}`},
		{"collision name", `{"collision": ["wall", "lava"]}`},
		{"not json", `tick_ms = 50`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.TickMS = 0
	cfg.Level = 0
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
	for _, field := range []string{"tick_ms", "level"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Default()
	cfg.TickMS = 40
	cfg.TimeLimitS = 2
	if cfg.Period() != 40*time.Millisecond {
		t.Fatalf("period = %v", cfg.Period())
	}
	if cfg.TimeLimitTicks() != 50 {
		t.Fatalf("ticks = %d", cfg.TimeLimitTicks())
	}
	cfg.TimeLimitS = 0
	if cfg.TimeLimitTicks() != 0 {
		t.Fatal("zero limit should stay unlimited")
	}
}

func TestLoggerFollowsLevelVar(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	lv := cfg.LevelVar()
	log := NewLogger(&buf, lv)

	log.Debug("hidden")
	lv.Set(slog.LevelDebug)
	log.Debug("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("output = %q", out)
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, `{"sfx_volume": 0.2}`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 8)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := Watch(ctx, path, log, func(c Config) { got <- c }); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{"sfx_volume": 0.9, "log_level": "debug"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-got:
			if c.SFXVolume == 0.9 && c.LogLevel == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snejk.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
