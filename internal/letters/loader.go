package letters

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed defaults/*.yaml
var builtinFS embed.FS

// Builtin returns the letters shipped with the game, sorted by ID.
func Builtin() ([]Letter, error) {
	entries, err := fs.ReadDir(builtinFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("letters: reading built-in letters: %w", err)
	}
	var out []Letter
	for _, e := range entries {
		data, err := builtinFS.ReadFile("defaults/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("letters: reading %s: %w", e.Name(), err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("letters: parsing built-in %s: %w", e.Name(), err)
		}
		out = append(out, l)
	}
	sortByID(out)
	return out, nil
}

// Loader loads letters from a directory on top of the built-in set.
type Loader struct {
	Root string // empty means built-in letters only
}

// NewLoader creates a new letter loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns the built-in letters plus every letter file found under
// Root. A file whose ID matches a built-in letter replaces it. Invalid files
// are logged and skipped.
func (l *Loader) LoadAll() ([]Letter, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Letter, len(builtin))
	for _, lt := range builtin {
		byID[lt.ID] = lt
	}

	if l.Root != "" {
		err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
				return nil
			}
			lt, err := l.LoadFile(path)
			if err != nil {
				log.Warn("skipping letter file", "path", path, "err", err)
				return nil
			}
			byID[lt.ID] = lt
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("letters: walking directory %s: %w", l.Root, err)
		}
	}

	out := make([]Letter, 0, len(byID))
	for _, lt := range byID {
		out = append(out, lt)
	}
	sortByID(out)
	return out, nil
}

// LoadFile loads a single letter file.
func (l *Loader) LoadFile(path string) (Letter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Letter{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	lt, err := Parse(data)
	if err != nil {
		return Letter{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lt.FilePath = path
	return lt, nil
}

// LoadByID loads a specific letter by ID.
func (l *Loader) LoadByID(id string) (Letter, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Letter{}, err
	}
	for _, lt := range all {
		if lt.ID == id {
			return lt, nil
		}
	}
	return Letter{}, fmt.Errorf("letter not found: %s", id)
}

// ListIDs returns all letter IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lt := range all {
		ids[i] = lt.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortByID(ls []Letter) {
	sort.Slice(ls, func(i, j int) bool {
		return ls[i].ID < ls[j].ID
	})
}
