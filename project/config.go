package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFileName = "phpfront.toml"

// Config is the contents of phpfront.toml. Every field has a default, so an
// empty or missing file is valid.
type Config struct {
	Scan ScanConfig `toml:"scan"`
	LSP  LSPConfig  `toml:"lsp"`
	Log  LogConfig  `toml:"log"`
}

type ScanConfig struct {
	// Extensions lists the file suffixes treated as PHP source.
	Extensions []string `toml:"extensions"`
	// Exclude holds glob patterns matched against each path element and
	// against the slash-separated path relative to the project root.
	Exclude []string `toml:"exclude"`
	Timeout Duration `toml:"timeout"`
}

type LSPConfig struct {
	Watch        bool     `toml:"watch"`
	PollInterval Duration `toml:"poll_interval"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Duration is a time.Duration written as a string such as "5s" or "250ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions: []string{".php", ".phtml", ".inc"},
			Exclude:    []string{"vendor", "node_modules"},
			Timeout:    Duration{5 * time.Second},
		},
		LSP: LSPConfig{
			PollInterval: Duration{2 * time.Second},
		},
	}
}

// LoadConfig reads a config file on top of the defaults. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions must not be empty")
	}
	for i, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return fmt.Errorf("scan.extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scan.Extensions[i] = ext
	}
	if c.Scan.Timeout.Duration <= 0 {
		return fmt.Errorf("scan.timeout must be positive, got %s", c.Scan.Timeout)
	}
	if c.LSP.PollInterval.Duration <= 0 {
		return fmt.Errorf("lsp.poll_interval must be positive, got %s", c.LSP.PollInterval)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative")
	}
	return nil
}

// Marshal renders the config as TOML, used by "phpfront config" to show the
// effective settings.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
