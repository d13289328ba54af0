package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail to
// parse are skipped and reported in the second return value.
func (l *Loader) LoadAll() ([]Level, []error, error) {
	var (
		levels  []Level
		skipped []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(FormatExtensions(), ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, skipped, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, skipped, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	lvl, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, _, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	if lvl, _, ok := ByID(levels, id); ok {
		return lvl, nil
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns the IDs declared by the level files under Root, sorted.
// Only the id key is decoded, so bricks and rows are not validated.
func (l *Loader) ListIDs() ([]string, error) {
	var ids []string
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(FormatExtensions(), strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("levels: reading file %s: %w", path, err)
		}
		var head struct {
			ID string `yaml:"id"`
		}
		if yaml.Unmarshal(data, &head) != nil || head.ID == "" {
			return nil
		}
		ids = append(ids, head.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Strings(ids)
	return slices.Compact(ids), nil
}

// Load returns the built-in castles, or the levels found under dir when
// dir is non-empty. An empty directory is an error.
func Load(dir string) ([]Level, []error, error) {
	if dir == "" {
		return BuiltinLevels(), nil, nil
	}

	levels, skipped, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, skipped, err
	}
	if len(levels) == 0 {
		return nil, skipped, fmt.Errorf("levels: no level files in %s", dir)
	}
	return levels, skipped, nil
}
