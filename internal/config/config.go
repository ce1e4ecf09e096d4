// Package config loads park scenarios from YAML. Documents are checked
// against an embedded JSON schema before they are decoded.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/talgya/mini-park/internal/entropy"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/world"
)

//go:embed schema.json
var schemaText string

//go:embed default.yaml
var defaultYAML []byte

const schemaURL = "mem://mini-park/park.schema.json"

var parkSchema = jsonschema.MustCompileString(schemaURL, schemaText)

// Config is a complete scenario: the rules, the park layout, the starting
// staff and the engine pace.
type Config struct {
	Scenario Scenario     `yaml:"scenario"`
	Park     Park         `yaml:"park"`
	Staff    StaffCounts  `yaml:"staff"`
	Engine   EngineConfig `yaml:"engine"`
}

// Scenario holds the rules of a park. It implements engine.Scenario.
type Scenario struct {
	Title       string `yaml:"name"`
	Seed        int64  `yaml:"seed"`
	Guests      int    `yaml:"max_guests"`
	Probability int    `yaml:"spawn_probability"` // Out of 1024, 0 for the default.
	Cash        int64  `yaml:"start_cash"`        // Cents.
}

func (s Scenario) Name() string     { return s.Title }
func (s Scenario) StartCash() int64 { return s.Cash }
func (s Scenario) MaxGuests() int   { return s.Guests }

// SpawnProbability returns the daily guest arrival chance out of 1024, def
// when the scenario leaves it unset.
func (s Scenario) SpawnProbability(def int) int {
	if s.Probability <= 0 {
		return def
	}
	return s.Probability
}

// Cell is a stack of the park.
type Cell struct {
	X int16 `yaml:"x"`
	Y int16 `yaml:"y"`
}

// Segment is a straight path between two cells in the same row or column.
type Segment struct {
	From Cell `yaml:"from"`
	To   Cell `yaml:"to"`
}

// LitterSeed is litter lying on a path when the park opens.
type LitterSeed struct {
	At     Cell  `yaml:"at"`
	Amount uint8 `yaml:"amount"`
}

// RideConfig places a ride by its mechanic entrance.
type RideConfig struct {
	Name        string `yaml:"name"`
	Entrance    Cell   `yaml:"entrance"`
	Edge        string `yaml:"edge"`
	Reliability uint16 `yaml:"reliability"` // Chance out of 1024 to last a day.
}

// Park is the layout of the park.
type Park struct {
	Width            int16        `yaml:"width"`
	Length           int16        `yaml:"length"`
	GroundHeight     int16        `yaml:"ground_height"`
	TerrainAmplitude int16        `yaml:"terrain_amplitude"`
	Paths            []Segment    `yaml:"paths"`
	Litter           []LitterSeed `yaml:"litter"`
	Vandalised       []Cell       `yaml:"vandalised"`
	Rides            []RideConfig `yaml:"rides"`
}

// StaffCounts is the staff hired when the park opens.
type StaffCounts struct {
	Mechanics    int `yaml:"mechanics"`
	Handymen     int `yaml:"handymen"`
	Guards       int `yaml:"guards"`
	Entertainers int `yaml:"entertainers"`
}

// EngineConfig sets the frame length and the speed of the frame loop.
type EngineConfig struct {
	FrameMs int     `yaml:"frame_ms"`
	Speed   float64 `yaml:"speed"`
}

const defaultReliability = 1000

func defaults() Config {
	return Config{
		Scenario: Scenario{
			Title:  "Unnamed park",
			Seed:   1,
			Guests: 500,
			Cash:   10_000_00,
		},
		Park: Park{
			Width:        32,
			Length:       32,
			GroundHeight: 2,
		},
		Engine: EngineConfig{
			FrameMs: 30,
			Speed:   1,
		},
	}
}

// Default returns the built-in demo park.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: built-in park: %v", err))
	}
	return cfg
}

// Load reads and validates a scenario file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates a YAML document and decodes it over the defaults.
func Parse(b []byte) (*Config, error) {
	if err := validateSchema(b); err != nil {
		return nil, err
	}
	cfg := defaults()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateSchema checks the raw document against the park schema. The YAML
// tree is passed through JSON so the validator sees JSON types.
func validateSchema(b []byte) error {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := parkSchema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// Normalize fills in values left empty. A zero seed asks for a random one.
func (c *Config) Normalize() {
	c.Scenario.Title = strings.TrimSpace(c.Scenario.Title)
	if c.Scenario.Seed == 0 {
		c.Scenario.Seed = entropy.CryptoSeed()
		slog.Info("scenario seed drawn", "seed", c.Scenario.Seed)
	}
	for i := range c.Park.Rides {
		r := &c.Park.Rides[i]
		r.Edge = strings.ToLower(strings.TrimSpace(r.Edge))
		if r.Edge == "" {
			r.Edge = "ne"
		}
		if r.Reliability == 0 {
			r.Reliability = defaultReliability
		}
	}
}

// Validate checks what the schema cannot: cells inside the park and
// straight path segments.
func (c *Config) Validate() error {
	var errs []error
	if c.Scenario.Title == "" {
		errs = append(errs, errors.New("scenario.name is empty"))
	}
	if c.Scenario.Guests > people.GuestBlockSize {
		errs = append(errs, fmt.Errorf("scenario.max_guests %d exceeds %d", c.Scenario.Guests, people.GuestBlockSize))
	}
	for i, s := range c.Park.Paths {
		if s.From.X != s.To.X && s.From.Y != s.To.Y {
			errs = append(errs, fmt.Errorf("park.paths[%d] is not straight", i))
		}
		errs = append(errs, c.checkCell(fmt.Sprintf("park.paths[%d].from", i), s.From))
		errs = append(errs, c.checkCell(fmt.Sprintf("park.paths[%d].to", i), s.To))
	}
	for i, l := range c.Park.Litter {
		errs = append(errs, c.checkCell(fmt.Sprintf("park.litter[%d]", i), l.At))
	}
	for i, v := range c.Park.Vandalised {
		errs = append(errs, c.checkCell(fmt.Sprintf("park.vandalised[%d]", i), v))
	}
	for i, r := range c.Park.Rides {
		errs = append(errs, c.checkCell(fmt.Sprintf("park.rides[%d].entrance", i), r.Entrance))
		if _, ok := edgeNames[r.Edge]; !ok {
			errs = append(errs, fmt.Errorf("park.rides[%d].edge %q is unknown", i, r.Edge))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) checkCell(field string, p Cell) error {
	if p.X < 0 || p.Y < 0 || p.X >= c.Park.Width || p.Y >= c.Park.Length {
		return fmt.Errorf("%s (%d,%d) is outside the %dx%d park", field, p.X, p.Y, c.Park.Width, c.Park.Length)
	}
	return nil
}

var edgeNames = map[string]world.TileEdge{
	"ne": world.EdgeNE,
	"se": world.EdgeSE,
	"sw": world.EdgeSW,
	"nw": world.EdgeNW,
}
