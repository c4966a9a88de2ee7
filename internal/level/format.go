package level

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID     string           `yaml:"id"`
	Name   string           `yaml:"name"`
	Map    []string         `yaml:"map"`
	Spawns map[string]Point `yaml:"spawns"`
	Gates  []yamlGate       `yaml:"gates"`
	Doors  []yamlDoor       `yaml:"doors"`
}

type yamlGate struct {
	Rect   Area    `yaml:"rect"`
	Plates []Point `yaml:"plates"`
	// OpenOffset defaults to raising the gate by its own height.
	OpenOffset *Point `yaml:"open_offset,omitempty"`
}

type yamlDoor struct {
	Owner string `yaml:"owner"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// Parse decodes and validates a YAML level.
func Parse(data []byte) (*Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("level: yaml unmarshal: %w", err)
	}

	board, err := NewBoard(yl.Map)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", yl.ID, err)
	}

	lvl := &Level{
		ID:    yl.ID,
		Name:  yl.Name,
		Board: board,
	}

	// Map iteration order is random; keep spawns in a fixed order
	for _, owner := range []string{OwnerMagma, OwnerWater} {
		if p, ok := yl.Spawns[owner]; ok {
			lvl.Spawns = append(lvl.Spawns, Spawn{Owner: owner, Tile: p})
		}
	}
	for owner := range yl.Spawns {
		if owner != OwnerMagma && owner != OwnerWater {
			return nil, fmt.Errorf("level %q: %w: unknown spawn owner %q", yl.ID, ErrInvalidLevel, owner)
		}
	}

	for _, g := range yl.Gates {
		offset := Point{X: 0, Y: -g.Rect.H}
		if g.OpenOffset != nil {
			offset = *g.OpenOffset
		}
		lvl.Gates = append(lvl.Gates, GateDef{Area: g.Rect, Plates: g.Plates, Offset: offset})
	}
	for _, d := range yl.Doors {
		lvl.Doors = append(lvl.Doors, DoorDef{Owner: d.Owner, Tile: Point{X: d.X, Y: d.Y}})
	}

	if err := Validate(lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// IsLevelFile reports whether a path has a level file extension.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
