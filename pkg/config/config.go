package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/logging"
)

// Default configuration values exported for documentation and validation
const (
	DefaultBackend       = "tcell"
	DefaultTick          = 50 * time.Millisecond
	DefaultEscapeTimeout = 25 * time.Millisecond
	DefaultMaxFPS        = 60
	DefaultTheme         = "default"
	DefaultLogDir        = "~/.dtk/logs"
	DefaultLogLevel      = "info"

	// MaxEscapeTimeout bounds how long a partial sequence may stay buffered
	MaxEscapeTimeout = time.Second
)

// Backends lists the screen backends the demo knows how to build.
var Backends = []string{"tcell", "tty", "sim"}

// Config represents the complete toolkit configuration
type Config struct {
	UI        UIConfig        `yaml:"ui"`
	Input     InputConfig     `yaml:"input"`
	Keymap    KeymapConfig    `yaml:"keymap"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// UIConfig controls the render loop
type UIConfig struct {
	Backend       string        `yaml:"backend"`
	Tick          time.Duration `yaml:"tick"`           // Bounded input wait per loop tick
	EscapeTimeout time.Duration `yaml:"escape_timeout"` // Wait for the next byte of a partial sequence
	MaxFPS        int           `yaml:"max_fps"`        // 0 disables the frame cap
	Theme         string        `yaml:"theme"`
}

// InputConfig extends the default escape-sequence table
type InputConfig struct {
	// Sequences maps raw byte strings (YAML escapes such as "\e[1;5A") to key names.
	Sequences map[string]string `yaml:"sequences"`
	// AltKeys decodes ESC followed by a character as alt-<char>.
	AltKeys bool `yaml:"alt_keys"`
}

// KeymapConfig locates the optional TOML keymap
type KeymapConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig configures the JSONL session log
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// TelemetryConfig configures tracing and metrics output
type TelemetryConfig struct {
	TraceFile     string `yaml:"trace_file"`
	MetricsOnExit bool   `yaml:"metrics_on_exit"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Backend:       DefaultBackend,
			Tick:          DefaultTick,
			EscapeTimeout: DefaultEscapeTimeout,
			MaxFPS:        DefaultMaxFPS,
			Theme:         DefaultTheme,
		},
		Input: InputConfig{
			Sequences: map[string]string{},
			AltKeys:   true,
		},
		Logging: LoggingConfig{
			Dir:   DefaultLogDir,
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath returns the user config location, honoring DTK_CONFIG.
func DefaultPath() string {
	if v := strings.TrimSpace(os.Getenv("DTK_CONFIG")); v != "" {
		return expandHomeDir(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "dtk", "config.yaml")
}

// Load loads the user config if present, then applies env overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := DefaultPath(); path != "" {
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, wrapLoadError(err, path)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, wrapLoadError(err, path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func wrapLoadError(err error, path string) error {
	if errors.IsCode(err, errors.ErrCodeConfigParse) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeConfigLoad, "loading config").WithContext("path", path)
}

// ApplyEnvOverridesForTest exposes env override logic for tests without file I/O.
func ApplyEnvOverridesForTest(cfg *Config) {
	applyEnvOverrides(cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DTK_BACKEND"); v != "" {
		cfg.UI.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if d, ok := envDuration("DTK_TICK"); ok {
		cfg.UI.Tick = d
	}
	if d, ok := envDuration("DTK_ESCAPE_TIMEOUT"); ok {
		cfg.UI.EscapeTimeout = d
	}
	if v := os.Getenv("DTK_MAX_FPS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.UI.MaxFPS = n
		}
	}
	if v := os.Getenv("DTK_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("DTK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DTK_KEYMAP"); v != "" {
		cfg.Keymap.Path = v
	}
	if val, ok := envBool("DTK_KEYMAP_WATCH"); ok {
		cfg.Keymap.Watch = val
	}
	if v := os.Getenv("DTK_TRACE_FILE"); v != "" {
		cfg.Telemetry.TraceFile = v
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func envDuration(key string) (time.Duration, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return 0, false
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, false
	}
	return d, true
}

// Validate checks that all fields hold usable values
func (c *Config) Validate() error {
	invalid := func(field string, value any, msg string) error {
		return errors.New(errors.ErrCodeConfigInvalid, msg).
			WithContext("field", field).
			WithContext("value", value)
	}

	validBackend := false
	for _, b := range Backends {
		if c.UI.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return invalid("ui.backend", c.UI.Backend, "unknown backend (valid: "+strings.Join(Backends, ", ")+")")
	}

	if c.UI.Tick <= 0 {
		return invalid("ui.tick", c.UI.Tick, "tick must be positive")
	}
	if c.UI.EscapeTimeout <= 0 || c.UI.EscapeTimeout > MaxEscapeTimeout {
		return invalid("ui.escape_timeout", c.UI.EscapeTimeout, "escape timeout must be in (0, 1s]")
	}
	if c.UI.MaxFPS < 0 {
		return invalid("ui.max_fps", c.UI.MaxFPS, "max_fps cannot be negative")
	}
	if strings.TrimSpace(c.UI.Theme) == "" {
		return invalid("ui.theme", c.UI.Theme, "theme name is required")
	}

	for seq, name := range c.Input.Sequences {
		if seq == "" || strings.TrimSpace(name) == "" {
			return invalid("input.sequences", seq, "sequence and key name must be non-empty")
		}
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return invalid("logging.level", c.Logging.Level, "unknown log level (valid: debug, info, warn, error)")
	}

	if c.Keymap.Watch && strings.TrimSpace(c.Keymap.Path) == "" {
		return invalid("keymap.watch", c.Keymap.Watch, "keymap.watch requires keymap.path")
	}

	return nil
}

// LogDir returns the log directory with ~ expanded.
func (c *Config) LogDir() string {
	return expandHomeDir(c.Logging.Dir)
}

// KeymapPath returns the keymap file with ~ expanded, or "".
func (c *Config) KeymapPath() string {
	return expandHomeDir(c.Keymap.Path)
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	level, ok := logging.ParseLevel(c.Logging.Level)
	if !ok {
		return logging.LevelInfo
	}
	return level
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
