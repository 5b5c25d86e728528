package game

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode is a named starting position with the rules it is played under.
type Mode struct {
	Name  string  `yaml:"name"`
	Start string  `yaml:"start"`
	Rules RuleSet `yaml:"rules"`
}

type modesFile struct {
	Modes []Mode `yaml:"modes"`
}

func (m Mode) Position() (Position, error) {
	p, err := ParsePosition(m.Start)
	if err != nil {
		return Position{}, fmt.Errorf("mode %q: %w", m.Name, err)
	}
	return p, nil
}

// LoadModes decodes a YAML document of the form
//
//	modes:
//	  - name: gardner
//	    start: "bk,br,bn,br,bn,x,x,wn,wr,wn,wr,wk:w"
//	    rules: {promotion: true, strategy: optimal}
//
// Every start position is validated.
func LoadModes(r io.Reader) ([]Mode, error) {
	var file modesFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no modes defined")
		}
		return nil, fmt.Errorf("failed to decode modes: %w", err)
	}
	if len(file.Modes) == 0 {
		return nil, fmt.Errorf("no modes defined")
	}
	seen := make(map[string]bool, len(file.Modes))
	for _, mode := range file.Modes {
		if mode.Name == "" {
			return nil, fmt.Errorf("mode with start %q has no name", mode.Start)
		}
		if seen[mode.Name] {
			return nil, fmt.Errorf("duplicate mode %q", mode.Name)
		}
		seen[mode.Name] = true
		if _, err := mode.Position(); err != nil {
			return nil, err
		}
	}
	return file.Modes, nil
}

func LoadModesFile(path string) ([]Mode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open modes file: %w", err)
	}
	defer f.Close()
	return LoadModes(f)
}

func FindMode(modes []Mode, name string) (Mode, bool) {
	for _, mode := range modes {
		if mode.Name == name {
			return mode, true
		}
	}
	return Mode{}, false
}
