// Package config loads the host configuration of a container process.
//
// Values are layered, later layers winning:
//
//  1. Default()
//  2. an optional YAML file
//  3. BEANS_* variables from .env files (missing files are ignored)
//  4. BEANS_* variables from the process environment
//
// The configuration of the beans themselves is not handled here.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation and parse error returned by Load.
var ErrInvalid = errors.New("config: invalid configuration")

// Environment variable names.
const (
	EnvName        = "BEANS_ENV"
	EnvLogLevel    = "BEANS_LOG_LEVEL"
	EnvLogFormat   = "BEANS_LOG_FORMAT"
	EnvScanDepth   = "BEANS_SCAN_DEPTH"
	EnvInspectAddr = "BEANS_INSPECT_ADDR"
	EnvMetrics     = "BEANS_METRICS_ENABLED"
)

// Config is the typed host configuration.
type Config struct {
	Env     string        `yaml:"env"`
	Log     LogConfig     `yaml:"log"`
	Scan    ScanConfig    `yaml:"scan"`
	Inspect InspectConfig `yaml:"inspect"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

// UnboundedDepth is the scan depth that walks every sub-namespace, matching
// ioc.Catalog.SetDepth's treatment of negative depths.
const UnboundedDepth = -1

type ScanConfig struct {
	// Depth is how many sub-namespace levels below the scanned namespace are
	// walked. UnboundedDepth walks all of them.
	Depth int `yaml:"depth"`
}

type InspectConfig struct {
	Addr string `yaml:"addr"` // empty disables the inspector
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Env:  "development",
		Log:  LogConfig{Level: "info", Format: "json"},
		Scan: ScanConfig{Depth: 1},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty), the given .env files (".env" when none are given) and the process
// environment. The result is validated.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readDotenv(envFiles)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown log levels and formats and scan depths below
// UnboundedDepth.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Scan.Depth < UnboundedDepth {
		return fmt.Errorf("%w: scan depth %d", ErrInvalid, c.Scan.Depth)
	}
	return nil
}

// IsProduction reports whether Env names a production deployment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func readYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return nil
}

// readDotenv merges the given files without touching the process
// environment. Earlier files win, as with godotenv.Load.
func readDotenv(files []string) (map[string]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	out := map[string]string{}
	for _, file := range files {
		vals, err := godotenv.Read(file)
		if err != nil {
			// .env may not exist in production
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
		for k, v := range vals {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvName); ok && v != "" {
		cfg.Env = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v, ok := lookup(EnvScanDepth); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvScanDepth, v)
		}
		cfg.Scan.Depth = n
	}
	if v, ok := lookup(EnvInspectAddr); ok {
		cfg.Inspect.Addr = v
	}
	if v, ok := lookup(EnvMetrics); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvMetrics, v)
		}
		cfg.Metrics.Enabled = b
	}
	return nil
}
