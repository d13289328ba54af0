package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-comet/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML(), "embedded")
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	want := DefaultCometConfig()
	if cfg.Gameplay != want.Gameplay || cfg.Input != want.Input {
		t.Errorf("embedded gameplay/input differ: %+v / %+v", cfg.Gameplay, cfg.Input)
	}
	if cfg.Bonus.DropChance != want.Bonus.DropChance || cfg.Bonus.FallSpeed != want.Bonus.FallSpeed ||
		cfg.Bonus.MultiplierDuration != want.Bonus.MultiplierDuration {
		t.Errorf("embedded bonus settings differ: %+v", cfg.Bonus)
	}
	if len(cfg.Bonus.Table) != len(want.Bonus.Table) {
		t.Fatalf("expected %d table entries, got %d", len(want.Bonus.Table), len(cfg.Bonus.Table))
	}
	for i := range cfg.Bonus.Table {
		if cfg.Bonus.Table[i] != want.Bonus.Table[i] {
			t.Errorf("table[%d] = %v, expected %v", i, cfg.Bonus.Table[i], want.Bonus.Table[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCometCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comet.yaml")
	data := []byte(`
gameplay:
  lives: 5
bonus:
  table:
    - bonus: "multiplier:3"
      weight: 1
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadComet(path)
	if err != nil {
		t.Fatalf("LoadComet() failed: %v", err)
	}

	if cfg.Gameplay.Lives != 5 {
		t.Errorf("Lives = %d, expected 5", cfg.Gameplay.Lives)
	}
	if cfg.Gameplay.PointsPerBrick != 10 {
		t.Errorf("missing keys should keep defaults, got points_per_brick=%d", cfg.Gameplay.PointsPerBrick)
	}
	if len(cfg.Bonus.Table) != 1 || cfg.Bonus.Table[0].Bonus != engine.MultiplierBonus(3) {
		t.Errorf("table not replaced: %v", cfg.Bonus.Table)
	}
}

func TestLoadCometRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown bonus kind", "bonus:\n  table:\n    - bonus: shield\n      weight: 1\n"},
		{"zero lives", "gameplay:\n  lives: 0\n"},
		{"drop chance above 100", "bonus:\n  drop_chance: 150\n"},
		{"drops without table", "bonus:\n  table: []\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "comet.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadComet(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadCometUnknownBonusIsConfigurationError(t *testing.T) {
	_, err := parse([]byte("bonus:\n  table:\n    - bonus: \"multiplier:-1\"\n"), "inline")
	if !errors.Is(err, engine.ErrConfiguration) {
		t.Errorf("expected configuration error through yaml, got %v", err)
	}
}

func TestLoadCometMissingCustomPath(t *testing.T) {
	if _, err := LoadComet(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := DefaultCometConfig()
	cfg.Input.KeyStep = 0
	if err := cfg.Validate(); !errors.Is(err, engine.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	cfg = DefaultCometConfig()
	cfg.Bonus.DropChance = 0
	cfg.Bonus.Table = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("drops disabled without table should be valid, got %v", err)
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	cfg := DefaultCometConfig()
	cfg.Gameplay.RespawnDelay = 5
	cfg.Bonus.Table = []BonusWeight{{Bonus: engine.LifeBonus(-1), Weight: 4}}

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if got.Gameplay.RespawnDelay != 5 {
		t.Errorf("RespawnDelay = %d", got.Gameplay.RespawnDelay)
	}
	if len(got.Bonus.Table) != 1 || got.Bonus.Table[0].Bonus != engine.LifeBonus(-1) {
		t.Errorf("table lost: %v", got.Bonus.Table)
	}
}
