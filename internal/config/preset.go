package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.CoyoteFrames += 3
		cfg.Physics.Gravity *= 0.9
		cfg.Mechanisms.GateFrames = max(1, cfg.Mechanisms.GateFrames*2/3)
		cfg.Mechanisms.DoorFrames = max(1, cfg.Mechanisms.DoorFrames/2)
	case DifficultyHard:
		cfg.Physics.CoyoteFrames = max(1, cfg.Physics.CoyoteFrames-3)
		cfg.Physics.Gravity *= 1.1
		cfg.Mechanisms.GateFrames *= 2
		cfg.Mechanisms.DoorFrames *= 2
	}
}
