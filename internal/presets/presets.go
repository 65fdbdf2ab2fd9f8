// internal/presets/presets.go
//
// Named game configurations (alphabet, length, guess limit).
//
// Initialization behavior (Init):
//   1. If a presets file path is given (MASTERMIND_PRESETS_FILE), load it.
//   2. Otherwise fall back to the presets embedded in assets/presets.yaml.
//
// Constraints:
//   • Names are unique and non-empty.
//   • Colors must form a valid alphabet and length must be positive.
//   • Initialization is run once (sync.Once); the first preset is the default.

package presets

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/mastermind"
)

// ErrUnknownPreset is returned by Lookup for names that were never loaded.
var ErrUnknownPreset = errors.New("presets: unknown preset")

// Preset describes one kind of game.
type Preset struct {
	Name        string `yaml:"name" json:"name"`
	Colors      string `yaml:"colors" json:"colors"`
	Length      int    `yaml:"length" json:"length"`
	MaxGuesses  int    `yaml:"max_guesses" json:"maxGuesses"`
	Description string `yaml:"description" json:"description,omitempty"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

var (
	initOnce   sync.Once
	list       []Preset
	byName     map[string]Preset
	initialErr error
)

// Init loads the presets exactly once. path may be empty.
func Init(path string) error {
	initOnce.Do(func() {
		ps, err := Load(path)
		if err != nil {
			initialErr = err
			return
		}
		list = ps
		byName = make(map[string]Preset, len(ps))
		for _, p := range ps {
			byName[p.Name] = p
		}
	})
	return initialErr
}

// Load reads presets from path, or from the embedded file when path is empty.
func Load(path string) ([]Preset, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = assets.Presets()
	}
	if err != nil {
		return nil, fmt.Errorf("presets: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a presets document.
func Parse(data []byte) ([]Preset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("presets: decode: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, errors.New("presets: no presets defined")
	}
	seen := make(map[string]bool, len(f.Presets))
	for i, p := range f.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("presets: entry %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("presets: duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		if _, err := mastermind.NewAlphabet(p.Colors); err != nil {
			return nil, fmt.Errorf("presets: %s: %w", p.Name, err)
		}
		if p.Length <= 0 {
			return nil, fmt.Errorf("presets: %s: %w: length %d", p.Name, mastermind.ErrInvalidConfiguration, p.Length)
		}
		if p.MaxGuesses <= 0 {
			f.Presets[i].MaxGuesses = 10
		}
	}
	return f.Presets, nil
}

// Lookup returns the preset called name.
func Lookup(name string) (Preset, error) {
	p, ok := byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// All returns the loaded presets in file order.
func All() []Preset { return list }

// Default returns the first preset, or false if none are loaded.
func Default() (Preset, bool) {
	if len(list) == 0 {
		return Preset{}, false
	}
	return list[0], true
}
