package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fullkning/constants"
	"github.com/lixenwraith/fullkning/core"
	"github.com/lixenwraith/fullkning/engine"
	"github.com/lixenwraith/fullkning/level"
)

// Environment overrides
const (
	EnvAudioEnabled = "FULLKNING_AUDIO_ENABLED"
	EnvTickMs       = "FULLKNING_TICK_MS"
	EnvLevelDir     = "FULLKNING_LEVEL_DIR"
)

// ErrInvalid is returned when a configuration fails schema or consistency checks
var ErrInvalid = errors.New("invalid config")

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("fullkning.config.schema.json", schemaJSON)

// Config is the full game configuration as read from YAML
type Config struct {
	Field      FieldConfig       `yaml:"field"`
	Rules      RulesConfig       `yaml:"rules"`
	TickMs     int               `yaml:"tick_ms"`
	LevelDir   string            `yaml:"level_dir"`
	DBPath     string            `yaml:"db"`
	JournalDir string            `yaml:"journal_dir"`
	Debug      bool              `yaml:"debug"`
	Audio      AudioConfig       `yaml:"audio"`
	Keys       map[string]string `yaml:"keys,omitempty"` // Key name -> action name
}

type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type RulesConfig struct {
	Cooldown       int64  `yaml:"cooldown"`
	DropCost       int64  `yaml:"drop_cost"`
	ScorePerTarget int64  `yaml:"score_per_target"`
	BuilderRow     int    `yaml:"builder_row"`
	BuilderCol     int    `yaml:"builder_col"`
	BuilderWrap    bool   `yaml:"builder_wrap"`
	SwapMode       string `yaml:"swap_mode"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// Default returns the classic 10x20 configuration
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			Width:  constants.FieldWidth,
			Height: constants.FieldHeight,
		},
		Rules: RulesConfig{
			Cooldown:       constants.DropCooldown,
			DropCost:       constants.DropCost,
			ScorePerTarget: constants.ScorePerTarget,
			BuilderRow:     constants.BuilderStartRow,
			BuilderCol:     constants.BuilderStartCol,
			BuilderWrap:    true,
			SwapMode:       constants.SwapSettle,
		},
		TickMs:     int(constants.TickInterval / time.Millisecond),
		LevelDir:   level.DefaultDir,
		DBPath:     "fullkning.db",
		JournalDir: "",
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Load reads the YAML file at path over the defaults
// A missing file is not an error: defaults are returned
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[config] %s not found, using defaults", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates YAML data against the schema and decodes it over the defaults
func Parse(data []byte) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateSchema checks the document shape before it is decoded into Config
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config parse: %w", err)
	}
	if doc == nil {
		// Empty document
		return nil
	}

	// The validator expects JSON-shaped values
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: %v: %w", err, ErrInvalid)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("config: %v: %w", err, ErrInvalid)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("config schema: %v: %w", err, ErrInvalid)
	}
	return nil
}

// Validate checks constraints the schema cannot express
func (c *Config) Validate() error {
	if c.Field.Width < 1 || c.Field.Height < 2 {
		return fmt.Errorf("field %dx%d too small: %w", c.Field.Width, c.Field.Height, ErrInvalid)
	}
	if c.Rules.BuilderRow >= c.Field.Height-1 || c.Rules.BuilderCol >= c.Field.Width ||
		c.Rules.BuilderRow < 0 || c.Rules.BuilderCol < 0 {
		return fmt.Errorf("builder (%d,%d) leaves no room below it in a %dx%d field: %w",
			c.Rules.BuilderRow, c.Rules.BuilderCol, c.Field.Width, c.Field.Height, ErrInvalid)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms %d: %w", c.TickMs, ErrInvalid)
	}
	switch c.Rules.SwapMode {
	case constants.SwapSettle, constants.SwapFallthrough:
	default:
		return fmt.Errorf("swap_mode %q: %w", c.Rules.SwapMode, ErrInvalid)
	}
	return nil
}

// ApplyEnv overrides fields from the environment; malformed values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvAudioEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = enabled
		} else {
			log.Printf("[config] ignoring %s=%q", EnvAudioEnabled, v)
		}
	}

	if v := getenv(EnvTickMs); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.TickMs = ms
		} else {
			log.Printf("[config] ignoring %s=%q", EnvTickMs, v)
		}
	}

	if v := strings.TrimSpace(getenv(EnvLevelDir)); v != "" {
		c.LevelDir = v
	}
}

// TickInterval returns the simulation cadence
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// EngineSettings converts the rules section into engine settings
func (c *Config) EngineSettings() engine.Settings {
	return engine.Settings{
		Width:          c.Field.Width,
		Height:         c.Field.Height,
		Cooldown:       c.Rules.Cooldown,
		DropCost:       c.Rules.DropCost,
		ScorePerTarget: c.Rules.ScorePerTarget,
		BuilderStart:   core.Point{Row: c.Rules.BuilderRow, Col: c.Rules.BuilderCol},
		BuilderWrap:    c.Rules.BuilderWrap,
		SwapMode:       c.Rules.SwapMode,
	}
}

// Encode writes the configuration as YAML
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config encode: %w", err)
	}
	return enc.Close()
}
