package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"screen width", config.Screen.Width, 640},
		{"screen height", config.Screen.Height, 480},
		{"lives", config.Ship.StartingLives, 3},
		{"turn speed", config.Ship.TurnSpeed, 4.58},
		{"acceleration", config.Ship.Acceleration, 2.0},
		{"deceleration", config.Ship.Deceleration, 4.0},
		{"max thrust", config.Ship.MaxThrust, 48.0},
		{"laser cooldown", config.Ship.LaserCooldown, 1.0},
		{"frame time", config.Ship.AnimationFrameTime, 0.1},
		{"asteroid count", config.Asteroids.Count, 5},
		{"spawn attempts", config.Asteroids.SpawnMaxAttempts, 32},
		{"bullet speed", config.Bullets.Speed, 100.0},
		{"damage per hit", config.Rules.DamagePerHit, 1},
		{"invulnerability", config.Ship.InvulnerabilityTime, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestGameConfig_ShipStats(t *testing.T) {
	config := DefaultConfig()
	config.Bullets.Speed = 250
	stats := config.ShipStats()

	if stats.TurnSpeed != 4.58 || stats.MaxThrust != 48 || stats.LaserCooldown != 1 {
		t.Errorf("unexpected ship stats %+v", stats)
	}
	if stats.BulletSpeed != 250 || stats.BulletRadius != 3 {
		t.Errorf("bullet settings not carried: %+v", stats)
	}
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr []string
	}{
		{"defaults", func(c *GameConfig) {}, nil},
		{"zero width", func(c *GameConfig) { c.Screen.Width = 0 }, []string{"screen.width"}},
		{"no lives", func(c *GameConfig) { c.Ship.StartingLives = 0 }, []string{"ship.startingLives"}},
		{"inverted speed range", func(c *GameConfig) { c.Asteroids.MinSpeed = 20 }, []string{"asteroids.minSpeed"}},
		{"zero spawn attempts", func(c *GameConfig) { c.Asteroids.SpawnMaxAttempts = 0 }, []string{"asteroids.spawnMaxAttempts"}},
		{"no damage", func(c *GameConfig) { c.Rules.DamagePerHit = 0 }, []string{"rules.damagePerHit"}},
		{"bad sample rate ignored when muted", func(c *GameConfig) {
			c.Audio.Enabled = false
			c.Audio.SampleRate = 0
		}, nil},
		{"several at once", func(c *GameConfig) {
			c.Screen.Height = -1
			c.Bullets.Speed = 0
			c.Ship.MaxThrust = 0
		}, []string{"screen.height", "bullets.speed", "ship.maxThrust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, field := range tt.wantErr {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q does not mention %s", err, field)
				}
			}
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "game"+ext)

			config := DefaultConfig()
			config.Screen.Width = 800
			config.Asteroids.Count = 9
			config.Rules.AutoFire = true
			config.Rules.Seed = 1234

			if err := SaveConfig(config, path); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}
			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if *loaded != *config {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, config)
			}
		})
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "partial.yaml", "asteroids:\n  count: 12\n"},
		{"json", "partial.json", `{"asteroids": {"count": 12}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if config.Asteroids.Count != 12 {
				t.Errorf("Count = %d, want 12", config.Asteroids.Count)
			}
			if config.Ship.MaxThrust != 48 || config.Screen.Width != 640 {
				t.Errorf("defaults lost: %+v", config)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(bad)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected wrapped *json.SyntaxError, got %T", err)
	}

	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("screen: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(badYAML); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestGameConfig_ApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv(EnvScreenWidth, "1024")
		t.Setenv(EnvScreenHeight, "768")
		t.Setenv(EnvAsteroidCount, "8")
		t.Setenv(EnvLives, "5")
		t.Setenv(EnvSeed, "42")
		t.Setenv(EnvAutoFire, "true")
		t.Setenv(EnvAudio, "false")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() failed: %v", err)
		}
		if config.Screen.Width != 1024 || config.Screen.Height != 768 {
			t.Errorf("screen = %dx%d", config.Screen.Width, config.Screen.Height)
		}
		if config.Asteroids.Count != 8 || config.Ship.StartingLives != 5 {
			t.Errorf("count=%d lives=%d", config.Asteroids.Count, config.Ship.StartingLives)
		}
		if config.Rules.Seed != 42 || !config.Rules.AutoFire || config.Audio.Enabled {
			t.Errorf("rules=%+v audio=%+v", config.Rules, config.Audio)
		}
	})

	t.Run("unset leaves defaults", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() failed: %v", err)
		}
		if *config != *DefaultConfig() {
			t.Errorf("config changed without environment: %+v", config)
		}
	})

	t.Run("invalid values reported", func(t *testing.T) {
		t.Setenv(EnvScreenWidth, "wide")
		t.Setenv(EnvSeed, "-1")
		config := DefaultConfig()
		err := config.ApplyEnv()
		if err == nil {
			t.Fatal("expected error")
		}
		for _, key := range []string{EnvScreenWidth, EnvSeed} {
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not mention %s", err, key)
			}
		}
		if config.Screen.Width != 640 {
			t.Errorf("invalid value applied: width=%d", config.Screen.Width)
		}
	})
}
