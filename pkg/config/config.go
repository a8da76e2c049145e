// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-asteroids/pkg/entity"
)

// GameConfig contains configuration for a game of asteroids
type GameConfig struct {
	Screen    ScreenConfig   `json:"screen" yaml:"screen"`
	Ship      ShipConfig     `json:"ship" yaml:"ship"`
	Asteroids AsteroidConfig `json:"asteroids" yaml:"asteroids"`
	Bullets   BulletConfig   `json:"bullets" yaml:"bullets"`
	Rules     GameRules      `json:"rules" yaml:"rules"`
	Audio     AudioConfig    `json:"audio" yaml:"audio"`
}

// ScreenConfig describes the playfield, which is also the window size.
type ScreenConfig struct {
	Title      string `json:"title" yaml:"title"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	VSync      bool   `json:"vsync" yaml:"vsync"`
}

// ShipConfig contains the player's ship handling. Turn and speed steps are
// applied per tick; times are in seconds.
type ShipConfig struct {
	Radius              float64 `json:"radius" yaml:"radius"`
	StartingLives       int     `json:"startingLives" yaml:"startingLives"`
	TurnSpeed           float64 `json:"turnSpeed" yaml:"turnSpeed"`
	Acceleration        float64 `json:"acceleration" yaml:"acceleration"`
	Deceleration        float64 `json:"deceleration" yaml:"deceleration"`
	MaxThrust           float64 `json:"maxThrust" yaml:"maxThrust"`
	LaserCooldown       float64 `json:"laserCooldown" yaml:"laserCooldown"`
	AnimationFrameTime  float64 `json:"animationFrameTime" yaml:"animationFrameTime"`
	InvulnerabilityTime float64 `json:"invulnerabilityTime" yaml:"invulnerabilityTime"`
}

// AsteroidConfig controls the asteroid field. Headings are degrees and
// speeds pixels per second; both are drawn uniformly from [min, max).
type AsteroidConfig struct {
	Count            int     `json:"count" yaml:"count"`
	Radius           float64 `json:"radius" yaml:"radius"`
	MinHeading       float64 `json:"minHeading" yaml:"minHeading"`
	MaxHeading       float64 `json:"maxHeading" yaml:"maxHeading"`
	MinSpeed         float64 `json:"minSpeed" yaml:"minSpeed"`
	MaxSpeed         float64 `json:"maxSpeed" yaml:"maxSpeed"`
	SpawnMaxAttempts int     `json:"spawnMaxAttempts" yaml:"spawnMaxAttempts"`
}

// BulletConfig contains laser bolt settings
type BulletConfig struct {
	Speed  float64 `json:"speed" yaml:"speed"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// GameRules contains game rules configuration
type GameRules struct {
	DamagePerHit int  `json:"damagePerHit" yaml:"damagePerHit"`
	AutoFire     bool `json:"autoFire" yaml:"autoFire"`
	// Seed for the match RNG. Zero picks a random seed.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// AudioConfig controls sound effects.
type AudioConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Volume is a base-2 gain: 0 is unchanged, -1 halves amplitude.
	Volume         float64 `json:"volume" yaml:"volume"`
	SampleRate     int     `json:"sampleRate" yaml:"sampleRate"`
	ThrustInterval float64 `json:"thrustInterval" yaml:"thrustInterval"`
}

// ShipStats converts the ship and bullet sections into entity handling.
func (c *GameConfig) ShipStats() entity.ShipStats {
	return entity.ShipStats{
		TurnSpeed:           c.Ship.TurnSpeed,
		Acceleration:        c.Ship.Acceleration,
		Deceleration:        c.Ship.Deceleration,
		MaxThrust:           c.Ship.MaxThrust,
		LaserCooldown:       c.Ship.LaserCooldown,
		AnimationFrameTime:  c.Ship.AnimationFrameTime,
		InvulnerabilityTime: c.Ship.InvulnerabilityTime,
		BulletSpeed:         c.Bullets.Speed,
		BulletRadius:        c.Bullets.Radius,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are decoded as YAML, anything else as JSON. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, using the same extension
// rule as LoadConfig.
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Screen: ScreenConfig{
			Title:  "Asteroids",
			Width:  640,
			Height: 480,
			VSync:  true,
		},
		Ship: ShipConfig{
			Radius:             16,
			StartingLives:      3,
			TurnSpeed:          4.58,
			Acceleration:       2,
			Deceleration:       4,
			MaxThrust:          48,
			LaserCooldown:      1,
			AnimationFrameTime: 0.1,
		},
		Asteroids: AsteroidConfig{
			Count:            5,
			Radius:           24,
			MinHeading:       1,
			MaxHeading:       90,
			MinSpeed:         5,
			MaxSpeed:         10,
			SpawnMaxAttempts: 32,
		},
		Bullets: BulletConfig{
			Speed:  100,
			Radius: 3,
		},
		Rules: GameRules{
			DamagePerHit: 1,
		},
		Audio: AudioConfig{
			Enabled:        true,
			SampleRate:     44100,
			ThrustInterval: 0.25,
		},
	}
}

// Validate checks every field and reports all problems at once.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0, "screen.width must be positive, got %d", c.Screen.Width)
	check(c.Screen.Height > 0, "screen.height must be positive, got %d", c.Screen.Height)

	check(c.Ship.Radius > 0, "ship.radius must be positive, got %v", c.Ship.Radius)
	check(c.Ship.StartingLives > 0, "ship.startingLives must be positive, got %d", c.Ship.StartingLives)
	check(c.Ship.TurnSpeed >= 0, "ship.turnSpeed must not be negative, got %v", c.Ship.TurnSpeed)
	check(c.Ship.Acceleration >= 0, "ship.acceleration must not be negative, got %v", c.Ship.Acceleration)
	check(c.Ship.Deceleration >= 0, "ship.deceleration must not be negative, got %v", c.Ship.Deceleration)
	check(c.Ship.MaxThrust > 0, "ship.maxThrust must be positive, got %v", c.Ship.MaxThrust)
	check(c.Ship.LaserCooldown >= 0, "ship.laserCooldown must not be negative, got %v", c.Ship.LaserCooldown)
	check(c.Ship.AnimationFrameTime > 0, "ship.animationFrameTime must be positive, got %v", c.Ship.AnimationFrameTime)
	check(c.Ship.InvulnerabilityTime >= 0, "ship.invulnerabilityTime must not be negative, got %v", c.Ship.InvulnerabilityTime)

	check(c.Asteroids.Count >= 0, "asteroids.count must not be negative, got %d", c.Asteroids.Count)
	check(c.Asteroids.Radius > 0, "asteroids.radius must be positive, got %v", c.Asteroids.Radius)
	check(c.Asteroids.MinHeading <= c.Asteroids.MaxHeading,
		"asteroids.minHeading %v exceeds maxHeading %v", c.Asteroids.MinHeading, c.Asteroids.MaxHeading)
	check(c.Asteroids.MinSpeed <= c.Asteroids.MaxSpeed,
		"asteroids.minSpeed %v exceeds maxSpeed %v", c.Asteroids.MinSpeed, c.Asteroids.MaxSpeed)
	check(c.Asteroids.SpawnMaxAttempts > 0, "asteroids.spawnMaxAttempts must be positive, got %d", c.Asteroids.SpawnMaxAttempts)

	check(c.Bullets.Speed > 0, "bullets.speed must be positive, got %v", c.Bullets.Speed)
	check(c.Bullets.Radius > 0, "bullets.radius must be positive, got %v", c.Bullets.Radius)

	check(c.Rules.DamagePerHit > 0, "rules.damagePerHit must be positive, got %d", c.Rules.DamagePerHit)

	if c.Audio.Enabled {
		check(c.Audio.SampleRate > 0, "audio.sampleRate must be positive, got %d", c.Audio.SampleRate)
		check(c.Audio.ThrustInterval >= 0, "audio.thrustInterval must not be negative, got %v", c.Audio.ThrustInterval)
	}

	return errors.Join(errs...)
}

// Environment variables read by ApplyEnv.
const (
	EnvScreenWidth   = "ASTEROIDS_SCREEN_WIDTH"
	EnvScreenHeight  = "ASTEROIDS_SCREEN_HEIGHT"
	EnvFullscreen    = "ASTEROIDS_FULLSCREEN"
	EnvAsteroidCount = "ASTEROIDS_ASTEROID_COUNT"
	EnvLives         = "ASTEROIDS_LIVES"
	EnvSeed          = "ASTEROIDS_SEED"
	EnvAutoFire      = "ASTEROIDS_AUTOFIRE"
	EnvAudio         = "ASTEROIDS_AUDIO"
)

// ApplyEnv overrides fields from ASTEROIDS_* environment variables. Unset
// variables leave the field alone; unparsable values are all reported.
func (c *GameConfig) ApplyEnv() error {
	var errs []error
	setInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	setInt(EnvScreenWidth, &c.Screen.Width)
	setInt(EnvScreenHeight, &c.Screen.Height)
	setBool(EnvFullscreen, &c.Screen.Fullscreen)
	setInt(EnvAsteroidCount, &c.Asteroids.Count)
	setInt(EnvLives, &c.Ship.StartingLives)
	setBool(EnvAutoFire, &c.Rules.AutoFire)
	setBool(EnvAudio, &c.Audio.Enabled)

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.Rules.Seed = seed
		}
	}

	return errors.Join(errs...)
}
