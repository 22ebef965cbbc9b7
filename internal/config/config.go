package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables used to hand a complete configuration to a process
// without a file on disk. The YAML variant is base64 encoded so it survives
// being passed through a single environment value.
const (
	EnvConfigJSON    = "VOXELNOISE_CONFIG_JSON"
	EnvConfigYAMLB64 = "VOXELNOISE_CONFIG_YAML_B64"
)

// Duration is a JSON- and YAML-friendly wrapper around time.Duration that
// accepts human readable strings such as "150ms" in configuration files while
// still allowing numeric representations when necessary.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration using the canonical string representation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration from either a string (e.g. "250ms") or a
// numeric value representing nanoseconds. Empty strings and null values decode
// to zero.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("duration: empty value")
	}
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("duration: decode string: %w", err)
		}
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = Duration(time.Duration(f))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", string(b))
}

// MarshalYAML encodes the duration as its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration: line %d: expected a scalar", node.Line)
	}
	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("duration: line %d: %w", node.Line, err)
		}
		*d = Duration(time.Duration(n))
		return nil
	}
	if node.Tag == "!!null" {
		*d = 0
		return nil
	}
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters of the noise generator tools.
type Config struct {
	Noise   NoiseConfig   `json:"noise" yaml:"noise"`
	Terrain TerrainConfig `json:"terrain" yaml:"terrain"`
	Region  RegionConfig  `json:"region" yaml:"region"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}

type NoiseConfig struct {
	Target string `json:"target" yaml:"target"` // "auto" or a simd target name such as "avx2"
}

type TerrainConfig struct {
	Seed               int32    `json:"seed" yaml:"seed"`
	ChunkSize          int      `json:"chunkSize" yaml:"chunkSize"`                   // blocks per chunk edge
	MaxHeight          int      `json:"maxHeight" yaml:"maxHeight"`                   // highest block the density field can reach
	SurfaceProbe       int      `json:"surfaceProbe" yaml:"surfaceProbe"`             // blocks sampled above a chunk to find the surface depth
	ContinentFrequency float64  `json:"continentFrequency" yaml:"continentFrequency"` // land/sea mask
	HeightFrequency    float64  `json:"heightFrequency" yaml:"heightFrequency"`       // hill amplitude field
	ShapeFrequency     float64  `json:"shapeFrequency" yaml:"shapeFrequency"`         // 3D density selector
	CaveFrequency      float64  `json:"caveFrequency" yaml:"caveFrequency"`
	Workers            int      `json:"workers" yaml:"workers"`           // 0 picks GOMAXPROCS*2
	ChunkTimeout       Duration `json:"chunkTimeout" yaml:"chunkTimeout"` // 0 disables the per-chunk limit
}

type RegionConfig struct {
	Origin ChunkIndex `json:"origin" yaml:"origin"`
	Chunks ChunkIndex `json:"chunks" yaml:"chunks"` // number of chunks along each axis
}

type OutputConfig struct {
	PreviewDir string `json:"previewDir" yaml:"previewDir"`
	Previews   bool   `json:"previews" yaml:"previews"`
}

type ChunkIndex struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Load reads configuration from a JSON or YAML file if provided. Files ending
// in .yaml or .yml are parsed as YAML, anything else as JSON. An empty path
// returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// FromEnv decodes a configuration handed over through EnvConfigJSON or
// EnvConfigYAMLB64, layered over the defaults. The boolean is false when
// neither variable is set.
func FromEnv() (*Config, bool, error) {
	jsonPayload := os.Getenv(EnvConfigJSON)
	yamlPayload := os.Getenv(EnvConfigYAMLB64)
	if jsonPayload == "" && yamlPayload == "" {
		return nil, false, nil
	}

	cfg := Default()
	if jsonPayload != "" {
		if err := json.Unmarshal([]byte(jsonPayload), cfg); err != nil {
			return nil, false, fmt.Errorf("decode config json: %w", err)
		}
	} else {
		data, err := base64.StdEncoding.DecodeString(yamlPayload)
		if err != nil {
			return nil, false, fmt.Errorf("decode config yaml: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, false, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("validate config: %w", err)
	}
	return cfg, true, nil
}

// Save writes cfg to path, as YAML or JSON depending on the extension.
func Save(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func Default() *Config {
	return &Config{
		Noise: NoiseConfig{
			Target: "auto",
		},
		Terrain: TerrainConfig{
			Seed:               1337,
			ChunkSize:          16,
			MaxHeight:          120,
			SurfaceProbe:       4,
			ContinentFrequency: 0.005,
			HeightFrequency:    1.0 / 128,
			ShapeFrequency:     1.0 / 512,
			CaveFrequency:      0.01,
			Workers:            0,
			ChunkTimeout:       Duration(2 * time.Second),
		},
		Region: RegionConfig{
			Origin: ChunkIndex{X: -4, Y: -2, Z: -4},
			Chunks: ChunkIndex{X: 8, Y: 4, Z: 8},
		},
		Output: OutputConfig{
			PreviewDir: "previews",
			Previews:   false,
		},
	}
}

func (c *Config) Validate() error {
	if c.Noise.Target == "" {
		return errors.New("noise.target must be set")
	}
	if c.Terrain.ChunkSize <= 0 {
		return errors.New("terrain.chunkSize must be positive")
	}
	if c.Terrain.MaxHeight <= 0 {
		return errors.New("terrain.maxHeight must be positive")
	}
	if c.Terrain.SurfaceProbe < 0 {
		return errors.New("terrain.surfaceProbe cannot be negative")
	}
	if c.Terrain.ContinentFrequency <= 0 || c.Terrain.HeightFrequency <= 0 ||
		c.Terrain.ShapeFrequency <= 0 || c.Terrain.CaveFrequency <= 0 {
		return errors.New("terrain frequencies must be positive")
	}
	if c.Terrain.Workers < 0 {
		return errors.New("terrain.workers cannot be negative")
	}
	if c.Terrain.ChunkTimeout < 0 {
		return errors.New("terrain.chunkTimeout cannot be negative")
	}
	if c.Region.Chunks.X <= 0 || c.Region.Chunks.Y <= 0 || c.Region.Chunks.Z <= 0 {
		return errors.New("region chunk counts must be positive")
	}
	if c.Output.Previews && c.Output.PreviewDir == "" {
		return errors.New("output.previewDir must be set when previews are enabled")
	}
	return nil
}
