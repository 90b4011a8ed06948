package data

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayoutYAML []byte

//go:embed layout.schema.json
var layoutSchemaJSON []byte

const layoutSchemaURL = "layout.schema.json"

// Layout describes everything spawned at the start of a round: the ship
// (spawned once, survives resets) and the restartable arena contents.
type Layout struct {
	Name   string      `yaml:"name"`
	Ship   []ShipPart  `yaml:"ship"`
	Ground SpawnGroup  `yaml:"ground"`
	Agents SpawnGroup  `yaml:"agents"`
	Logs   SpawnGroup  `yaml:"logs"`
	Food   FoodSection `yaml:"food"`
}

// ShipPart is one static drag surface of the ship (floor, door).
type ShipPart struct {
	Name        string     `yaml:"name"`
	Position    [3]float64 `yaml:"position"`
	HalfExtents [3]float64 `yaml:"half_extents"`
}

// SpawnGroup is a set of identical boxes at different positions.
type SpawnGroup struct {
	HalfExtents [3]float64   `yaml:"half_extents"`
	Mass        float64      `yaml:"mass"`
	Spawns      [][3]float64 `yaml:"spawns"`
}

type FoodSection struct {
	HalfExtents [3]float64 `yaml:"half_extents"`
	Mass        float64    `yaml:"mass"`
	Items       []FoodItem `yaml:"items"`
}

// FoodItem is a carryable food. Store marks the one agents eat from.
type FoodItem struct {
	Position [3]float64 `yaml:"position"`
	Store    bool       `yaml:"store"`
}

// Vec converts a YAML triple to a vector.
func Vec(v [3]float64) mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }

// StoreCount returns how many food items are flagged as the store.
func (l *Layout) StoreCount() int {
	n := 0
	for _, f := range l.Food.Items {
		if f.Store {
			n++
		}
	}
	return n
}

// DefaultLayout returns the built-in island layout.
func DefaultLayout() (*Layout, error) {
	return ParseLayout(defaultLayoutYAML, "default layout")
}

// LoadLayout loads an arena layout from YAML. An empty path selects the
// built-in layout.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return ParseLayout(raw, path)
}

// ParseLayout validates raw YAML against the layout schema and decodes it.
func ParseLayout(raw []byte, name string) (*Layout, error) {
	if err := validateLayout(raw); err != nil {
		return nil, fmt.Errorf("layout: validate %s: %w", name, err)
	}
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("layout: parse %s: %w", name, err)
	}
	return &l, nil
}

var layoutSchema *jsonschema.Schema

func compileLayoutSchema() (*jsonschema.Schema, error) {
	if layoutSchema != nil {
		return layoutSchema, nil
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(layoutSchemaURL, bytes.NewReader(layoutSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := c.Compile(layoutSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	layoutSchema = s
	return s, nil
}

// validateLayout checks the document shape before decoding, so typos in
// keys are reported instead of silently zeroing fields. The YAML tree is
// round-tripped through JSON to get the value types the validator expects.
func validateLayout(raw []byte) error {
	s, err := compileLayoutSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return s.Validate(v)
}
