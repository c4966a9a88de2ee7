package config

import (
	_ "embed"
)

//go:embed defaults/magmahydro.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// Used when the embedded YAML cannot be decoded.
func DefaultConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			RunSpeed:     2,
			Gravity:      0.25,
			JumpSpeed:    4,
			MaxFallSpeed: 5,
			CoyoteFrames: 6,
			PlayerWidth:  12,
			PlayerHeight: 16,
		},
		Mechanisms: MechanismConfig{
			GateFrames: 24,
			DoorFrames: 16,
			GateEasing: "in_out_quad",
			DoorEasing: "linear",
		},
		Play: PlayConfig{
			TickRate:            60,
			DeathFlashTicks:     45,
			CompleteBannerTicks: 120,
			InputHoldTicks:      8,
		},
	}
}
