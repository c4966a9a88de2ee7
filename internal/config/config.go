// Package config provides YAML-based configuration for the game: player
// physics, gate and door timing, and frame-loop settings.
package config

import (
	"fmt"
	"slices"
)

// GameConfig contains all tunable game parameters.
type GameConfig struct {
	Physics    PhysicsConfig   `yaml:"physics"`
	Mechanisms MechanismConfig `yaml:"mechanisms"`
	Play       PlayConfig      `yaml:"play"`
}

// PhysicsConfig defines player physics in world units per frame.
// One tile is 16 world units.
type PhysicsConfig struct {
	RunSpeed     float64 `yaml:"run_speed"`
	Gravity      float64 `yaml:"gravity"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	CoyoteFrames int     `yaml:"coyote_frames"` // jump allowed while air timer is below this
	PlayerWidth  int     `yaml:"player_width"`
	PlayerHeight int     `yaml:"player_height"`
}

// MechanismConfig defines how fast gates and doors move.
type MechanismConfig struct {
	GateFrames int    `yaml:"gate_frames"` // frames from closed to fully open
	DoorFrames int    `yaml:"door_frames"` // frames a player must stand at a door
	GateEasing string `yaml:"gate_easing"`
	DoorEasing string `yaml:"door_easing"`
}

// PlayConfig defines frame-loop settings of the game shell.
type PlayConfig struct {
	TickRate            int `yaml:"tick_rate"`
	DeathFlashTicks     int `yaml:"death_flash_ticks"`     // pause before players respawn
	CompleteBannerTicks int `yaml:"complete_banner_ticks"` // banner shown before the run ends
	InputHoldTicks      int `yaml:"input_hold_ticks"`      // ticks a key press keeps its action held
}

// Easings lists the easing names accepted for gates and doors.
var Easings = []string{"linear", "in_quad", "out_quad", "in_out_quad", "in_out_cubic", "out_bounce"}

// Validate reports the first unusable value.
func (c GameConfig) Validate() error {
	p := c.Physics
	switch {
	case p.RunSpeed <= 0:
		return fmt.Errorf("config: physics.run_speed must be positive, got %v", p.RunSpeed)
	case p.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be positive, got %v", p.Gravity)
	case p.JumpSpeed <= 0:
		return fmt.Errorf("config: physics.jump_speed must be positive, got %v", p.JumpSpeed)
	case p.MaxFallSpeed <= 0 || p.MaxFallSpeed >= float64(p.PlayerHeight):
		// Falling a full player height per frame would skip through floors
		return fmt.Errorf("config: physics.max_fall_speed must be in (0, player_height), got %v", p.MaxFallSpeed)
	case p.CoyoteFrames < 1:
		return fmt.Errorf("config: physics.coyote_frames must be at least 1, got %d", p.CoyoteFrames)
	case p.PlayerWidth <= 0 || p.PlayerWidth > 16 || p.PlayerHeight <= 0 || p.PlayerHeight > 16:
		return fmt.Errorf("config: player size %dx%d must fit in one tile", p.PlayerWidth, p.PlayerHeight)
	}

	m := c.Mechanisms
	if m.GateFrames < 1 || m.DoorFrames < 1 {
		return fmt.Errorf("config: mechanism frames must be at least 1, got gate=%d door=%d", m.GateFrames, m.DoorFrames)
	}
	for _, name := range []string{m.GateEasing, m.DoorEasing} {
		if !slices.Contains(Easings, name) {
			return fmt.Errorf("config: unknown easing %q", name)
		}
	}

	if c.Play.TickRate < 1 || c.Play.TickRate > 240 {
		return fmt.Errorf("config: play.tick_rate must be in [1, 240], got %d", c.Play.TickRate)
	}
	if c.Play.InputHoldTicks < 1 {
		return fmt.Errorf("config: play.input_hold_ticks must be at least 1, got %d", c.Play.InputHoldTicks)
	}
	return nil
}
