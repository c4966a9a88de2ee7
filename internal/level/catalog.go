package level

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

//go:embed levels/*.yaml
var levelsFS embed.FS

var (
	catalogOnce sync.Once
	catalog     []*Level
	catalogErr  error
)

// Catalog returns the built-in levels sorted by ID.
// The embedded files are parsed once; a broken embedded level is a build
// defect and is reported on every call.
func Catalog() ([]*Level, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = loadFS(levelsFS, "levels")
	})
	return catalog, catalogErr
}

// ByID returns a built-in level.
func ByID(id string) (*Level, error) {
	levels, err := Catalog()
	if err != nil {
		return nil, err
	}
	return find(levels, id)
}

// Names returns the display names of the built-in levels in catalog order.
func Names() []string {
	levels, err := Catalog()
	if err != nil {
		return nil
	}
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	return names
}

func loadFS(fsys fs.FS, dir string) ([]*Level, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("level: reading embedded levels: %w", err)
	}

	var levels []*Level
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("level: reading %s: %w", e.Name(), err)
		}
		lvl, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("level: %s: %w", e.Name(), err)
		}
		levels = append(levels, lvl)
	}

	sortByID(levels)
	return levels, nil
}

func sortByID(levels []*Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

func find(levels []*Level, id string) (*Level, error) {
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}
