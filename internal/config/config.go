// Package config loads tsiface.toml.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"tsiface/internal/version"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownKey is returned for keys the schema does not define.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrVersionMismatch is returned when [tool].requires excludes this build.
	ErrVersionMismatch = errors.New("tool version does not satisfy [tool].requires")
)

// Formats lists the accepted [check].format values.
var Formats = []string{"pretty", "short", "json", "sarif"}

// LogLevels lists the accepted [log].level values, quietest first.
var LogLevels = []string{"quiet", "error", "warning", "notice", "info", "debug"}

type Config struct {
	// Path is the file the configuration was read from, empty for Default.
	Path string `toml:"-"`
	// Root is the directory holding Path. Relative paths resolve against it.
	Root string `toml:"-"`

	Tool  ToolConfig  `toml:"tool"`
	Parse ParseConfig `toml:"parse"`
	Check CheckConfig `toml:"check"`
	Log   LogConfig   `toml:"log"`
}

type ToolConfig struct {
	Requires string `toml:"requires"`
}

type ParseConfig struct {
	TypeScript bool     `toml:"typescript"`
	Extensions []string `toml:"extensions"`
}

type CheckConfig struct {
	MaxDiagnostics int64    `toml:"max_diagnostics"`
	Jobs           int64    `toml:"jobs"`
	Cache          bool     `toml:"cache"`
	Exclude        []string `toml:"exclude"`
	Format         string   `toml:"format"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used without a tsiface.toml.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			TypeScript: true,
			Extensions: []string{".ts", ".mts", ".cts", ".d.ts"},
		},
		Check: CheckConfig{
			MaxDiagnostics: 100,
			Exclude:        []string{"node_modules", ".git"},
			Format:         "pretty",
		},
		Log: LogConfig{Level: "warning"},
	}
}

// LoadFile decodes path over Default and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and the [tool].requires constraint.
func (c *Config) Validate() error {
	if c.Tool.Requires != "" {
		ok, err := version.Satisfies(c.Tool.Requires)
		if err != nil {
			return fmt.Errorf("%w: [tool].requires: %w", ErrInvalidConfig, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s is not %s", ErrVersionMismatch, version.Version, c.Tool.Requires)
		}
	}
	if _, err := c.MaxDiagnostics(); err != nil {
		return err
	}
	if _, err := c.Jobs(); err != nil {
		return err
	}
	for _, ext := range c.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: [parse].extensions: %q must start with '.'", ErrInvalidConfig, ext)
		}
	}
	if !slices.Contains(Formats, c.Check.Format) {
		return fmt.Errorf("%w: [check].format: %q is not one of %s", ErrInvalidConfig, c.Check.Format, strings.Join(Formats, ", "))
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("%w: [log].level: %q is not one of %s", ErrInvalidConfig, c.Log.Level, strings.Join(LogLevels, ", "))
	}
	return nil
}

// MaxDiagnostics returns [check].max_diagnostics as a bag size. Bags hold
// at most 65535 entries; zero means unlimited.
func (c *Config) MaxDiagnostics() (int, error) {
	n, err := safecast.Conv[uint16](c.Check.MaxDiagnostics)
	if err != nil {
		return 0, fmt.Errorf("%w: [check].max_diagnostics: %d out of range 0..65535", ErrInvalidConfig, c.Check.MaxDiagnostics)
	}
	return int(n), nil
}

// Jobs returns [check].jobs. Zero means one worker per CPU.
func (c *Config) Jobs() (int, error) {
	n, err := safecast.Conv[uint8](c.Check.Jobs)
	if err != nil {
		return 0, fmt.Errorf("%w: [check].jobs: %d out of range 0..255", ErrInvalidConfig, c.Check.Jobs)
	}
	return int(n), nil
}

// LogFile returns [log].file resolved against Root.
func (c *Config) LogFile() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) || c.Root == "" {
		return c.Log.File
	}
	return filepath.Join(c.Root, c.Log.File)
}
