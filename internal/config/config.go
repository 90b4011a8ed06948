package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Loop    LoopConfig    `toml:"loop"`
	Camera  CameraConfig  `toml:"camera"`
	Physics PhysicsConfig `toml:"physics"`
	Logging LoggingConfig `toml:"logging"`
	Paths   PathsConfig   `toml:"paths"`
	Random  RandomConfig  `toml:"random"`
	HUD     HUDConfig     `toml:"hud"`
}

// SimConfig holds the gameplay constants of the agent state machine.
// Speeds are multiplied by the tick delta before use, so they are "per tick
// at 1 Hz" rather than units per second.
type SimConfig struct {
	MoveSpeed       float64       `toml:"move_speed"`
	DragSpeed       float64       `toml:"drag_speed"`
	DragDeadZone    float64       `toml:"drag_dead_zone"`
	ArrivalRadius   float64       `toml:"arrival_radius"`
	TurnSpeed       float64       `toml:"turn_speed"`
	TurnDeadZone    float64       `toml:"turn_dead_zone"` // radians
	HungerRate      float64       `toml:"hunger_rate"`    // percent per second
	CarryPenalty    float64       `toml:"carry_penalty"`  // hunger multiplier while carrying
	AbandonAfter    time.Duration `toml:"abandon_after"`
	ShrinkEvery     time.Duration `toml:"shrink_every"`
	DespawnDepth    float64       `toml:"despawn_depth"`
	RayMaxDistance  float64       `toml:"ray_max_distance"`
	JointCompliance float64       `toml:"joint_compliance"`
}

type LoopConfig struct {
	FixedRate     int           `toml:"fixed_rate"` // Hz
	FrameRate     int           `toml:"frame_rate"` // Hz
	MaxFixedSteps int           `toml:"max_fixed_steps"`
	RunFor        time.Duration `toml:"run_for"` // 0 = until signal
	StatusEvery   time.Duration `toml:"status_every"`
	Realtime      bool          `toml:"realtime"` // false = run as fast as possible
}

type CameraConfig struct {
	Position       [3]float64 `toml:"position"`
	LookAt         [3]float64 `toml:"look_at"`
	ViewportHeight float64    `toml:"viewport_height"` // world units visible vertically
	Width          int        `toml:"width"`           // window pixels
	Height         int        `toml:"height"`
}

type PhysicsConfig struct {
	Gravity       float64 `toml:"gravity"` // downward acceleration, m/s²
	ContactMargin float64 `toml:"contact_margin"`
	GroundDamping float64 `toml:"ground_damping"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`      // "json" or "console"
	TimeLayout string `toml:"time_layout"` // console only
	Caller     bool   `toml:"caller"`
	Stacktrace bool   `toml:"stacktrace"` // on error and above
}

type PathsConfig struct {
	Layout      string `toml:"layout"`       // empty = built-in layout
	InputScript string `toml:"input_script"` // empty = no pointer input
	Scripts     string `toml:"scripts"`      // Lua tuning scripts directory
}

type HUDConfig struct {
	Language string `toml:"language"` // BCP 47 tag, e.g. "en" or "zh-Hant"
}

type RandomConfig struct {
	Seed int64 `toml:"seed"`
}

// FixedStep returns the fixed-cadence tick length.
func (c LoopConfig) FixedStep() time.Duration {
	return time.Second / time.Duration(c.FixedRate)
}

// FrameStep returns the frame-cadence tick length.
func (c LoopConfig) FrameStep() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.FixedRate <= 0 || c.Loop.FrameRate <= 0 {
		return fmt.Errorf("loop rates must be positive (fixed %d, frame %d)", c.Loop.FixedRate, c.Loop.FrameRate)
	}
	if c.Loop.MaxFixedSteps <= 0 {
		return fmt.Errorf("max_fixed_steps must be positive, got %d", c.Loop.MaxFixedSteps)
	}
	if c.Sim.AbandonAfter <= 0 || c.Sim.ShrinkEvery <= 0 {
		return fmt.Errorf("abandon_after and shrink_every must be positive")
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 || c.Camera.ViewportHeight <= 0 {
		return fmt.Errorf("camera viewport must be positive")
	}
	return nil
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			MoveSpeed:       50,
			DragSpeed:       50,
			DragDeadZone:    0.3,
			ArrivalRadius:   0.5,
			TurnSpeed:       1,
			TurnDeadZone:    0.01,
			HungerRate:      4,
			CarryPenalty:    7,
			AbandonAfter:    10 * time.Second,
			ShrinkEvery:     5 * time.Second,
			DespawnDepth:    -50,
			RayMaxDistance:  100,
			JointCompliance: 0.5,
		},
		Loop: LoopConfig{
			FixedRate:     64,
			FrameRate:     60,
			MaxFixedSteps: 8,
			StatusEvery:   5 * time.Second,
			Realtime:      true,
		},
		Camera: CameraConfig{
			Position:       [3]float64{5, 5, -5},
			LookAt:         [3]float64{0, 2.5, 0},
			ViewportHeight: 10,
			Width:          1280,
			Height:         720,
		},
		Physics: PhysicsConfig{
			Gravity:       9.81,
			ContactMargin: 0.01,
			GroundDamping: 4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			TimeLayout: "15:04:05",
		},
		Paths: PathsConfig{
			Scripts: "scripts",
		},
		Random: RandomConfig{
			Seed: 1,
		},
		HUD: HUDConfig{
			Language: "en",
		},
	}
}
