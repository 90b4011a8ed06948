package data

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultLayout(t *testing.T) {
	l, err := DefaultLayout()
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	if got := len(l.Ground.Spawns); got != 54 {
		t.Errorf("expected 54 ground tiles, got %d", got)
	}
	if got := len(l.Agents.Spawns); got != 9 {
		t.Errorf("expected 9 agents, got %d", got)
	}
	if got := len(l.Food.Items); got != 9 {
		t.Errorf("expected 9 food items, got %d", got)
	}
	if got := len(l.Logs.Spawns); got != 16 {
		t.Errorf("expected 16 logs, got %d", got)
	}
	if got := l.StoreCount(); got != 1 {
		t.Errorf("expected exactly one food store, got %d", got)
	}
	if len(l.Ship) != 2 || l.Ship[0].Name != "floor" || l.Ship[1].Name != "door" {
		t.Errorf("unexpected ship parts %+v", l.Ship)
	}
	if v := Vec(l.Agents.Spawns[0]); v.X() != -7.5 || v.Y() != 0.5 || v.Z() != -1 {
		t.Errorf("unexpected first agent spawn %v", v)
	}
}

func TestLoadLayout_EmptyPathIsDefault(t *testing.T) {
	l, err := LoadLayout("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Name != "island" {
		t.Errorf("expected built-in layout, got %q", l.Name)
	}
}

func TestParseLayout_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"missing agents": `
ground:
  half_extents: [1, 1, 1]
  spawns: []
`,
		"unknown key": `
ground:
  half_extents: [1, 1, 1]
  spawns: []
agents:
  half_extents: [1, 1, 1]
  spawns: []
trees: []
`,
		"short vector": `
ground:
  half_extents: [1, 1, 1]
  spawns: [[1, 2]]
agents:
  half_extents: [1, 1, 1]
  spawns: []
`,
		"zero extent": `
ground:
  half_extents: [1, 0, 1]
  spawns: []
agents:
  half_extents: [1, 1, 1]
  spawns: []
`,
	}
	for name, src := range cases {
		if _, err := ParseLayout([]byte(src), name); err == nil {
			t.Errorf("%s: expected validation error", name)
		} else if !strings.Contains(err.Error(), "validate") {
			t.Errorf("%s: expected a validation error, got %v", name, err)
		}
	}
}

func TestParseLayout_Minimal(t *testing.T) {
	l, err := ParseLayout([]byte(`
ground:
  half_extents: [1, 0.1, 1]
  spawns: [[0, -0.1, 0]]
agents:
  half_extents: [0.1, 0.1, 0.1]
  spawns: [[0, 1, 0]]
food:
  half_extents: [0.2, 0.2, 0.2]
  items:
    - position: [2, 0.2, 0]
      store: true
    - position: [3, 0.2, 0]
`), "minimal")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if l.StoreCount() != 1 || len(l.Food.Items) != 2 {
		t.Errorf("unexpected food %+v", l.Food)
	}
	if len(l.Ship) != 0 || len(l.Logs.Spawns) != 0 {
		t.Errorf("optional sections must default to empty")
	}
}

func TestParseInputScript(t *testing.T) {
	s, err := ParseInputScript([]byte(`
steps:
  - at: 2s
    aim: [1, 0, 1]
  - at: 500ms
    aim: [-7.5, 0.5, 0]
    hold: true
  - at: 3s
    restart: true
`), "script")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(s.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(s.Steps))
	}
	if s.Steps[0].At != 500*time.Millisecond || !s.Steps[0].Hold {
		t.Errorf("steps must be sorted by time, first=%+v", s.Steps[0])
	}
	if s.Steps[1].Aim == nil || s.Steps[1].Aim[0] != 1 {
		t.Errorf("unexpected aim %+v", s.Steps[1].Aim)
	}
	if !s.Steps[2].Restart || s.Steps[2].Aim != nil {
		t.Errorf("unexpected restart step %+v", s.Steps[2])
	}
}

func TestParseInputScript_AimAndScreen(t *testing.T) {
	_, err := ParseInputScript([]byte(`
steps:
  - at: 1s
    aim: [0, 0, 0]
    screen: [10, 10]
`), "bad")
	if err == nil {
		t.Errorf("expected error when both aim and screen are set")
	}
}
