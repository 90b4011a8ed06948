package data

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// InputStep is one scripted pointer state, effective from At until the next
// step. Aim is a world point the pointer is placed over; Screen is a raw
// viewport position. Exactly one of them may be set, neither means the
// pointer left the window.
type InputStep struct {
	At      time.Duration `yaml:"at"`
	Aim     *[3]float64   `yaml:"aim"`
	Screen  *[2]float64   `yaml:"screen"`
	Hold    bool          `yaml:"hold"`
	Restart bool          `yaml:"restart"`
}

// InputScript drives the headless runner in place of a mouse and keyboard.
type InputScript struct {
	Steps []InputStep `yaml:"steps"`
}

// LoadInputScript loads a scripted input timeline from YAML. Steps are
// sorted by time.
func LoadInputScript(path string) (*InputScript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input script: read %s: %w", path, err)
	}
	return ParseInputScript(raw, path)
}

func ParseInputScript(raw []byte, name string) (*InputScript, error) {
	var s InputScript
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("input script: parse %s: %w", name, err)
	}
	for i, st := range s.Steps {
		if st.Aim != nil && st.Screen != nil {
			return nil, fmt.Errorf("input script: %s step %d sets both aim and screen", name, i)
		}
		if st.At < 0 {
			return nil, fmt.Errorf("input script: %s step %d has negative time %s", name, i, st.At)
		}
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	return &s, nil
}
