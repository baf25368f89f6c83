// Package config loads the huecycle settings file.
//
// The file is TOML:
//
//	backend = "web"
//	addr = ":8080"
//	fps = 60
//	cycle_period = "10s"
//	log_level = "debug"
//
//	[gradient]
//	left = "#ff0000"
//	right = "#00ffff"
//
// Every key is optional. When no gradient is configured the resize redraw
// uses a random one.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/huecycle"
)

// FileName is the settings file name inside the config directory.
const FileName = "config.toml"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Gradient holds the endpoints of a fixed resize gradient as hex colors.
type Gradient struct {
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// Config is the settings file content.
type Config struct {
	// Backend names the display backend. Empty selects the best available.
	Backend string `toml:"backend"`

	// Addr is the listen address of the web backend.
	Addr string `toml:"addr"`

	FPS         int      `toml:"fps"`
	CyclePeriod Duration `toml:"cycle_period"`
	Gradient    Gradient `toml:"gradient"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Unknown lists keys in the file that match no setting. Load fills it so
	// the caller can report them once logging is set up.
	Unknown []string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:        ":8080",
		FPS:         huecycle.DefaultFPS,
		CyclePeriod: Duration{huecycle.DefaultCyclePeriod},
		LogLevel:    "info",
	}
}

// Dir returns the huecycle config directory, $XDG_CONFIG_HOME/huecycle or
// ~/.config/huecycle.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "huecycle")
}

// DefaultPath returns the settings file location inside Dir.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the settings at path, or at DefaultPath if path is empty.
// Keys missing from the file keep their default values, and a missing
// file yields Default. Unrecognized keys are returned in Unknown.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and color syntax.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.CyclePeriod.Duration <= 0 {
		return fmt.Errorf("%w: cycle_period must be positive, got %s", ErrInvalid, c.CyclePeriod.Duration)
	}
	if _, _, _, err := c.GradientColors(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// GradientColors returns the fixed gradient endpoints. ok is false when
// the file configures no gradient. Setting only one endpoint is an error.
func (c Config) GradientColors() (left, right huecycle.Color, ok bool, err error) {
	g := c.Gradient
	if g.Left == "" && g.Right == "" {
		return huecycle.Color{}, huecycle.Color{}, false, nil
	}
	if g.Left == "" || g.Right == "" {
		return huecycle.Color{}, huecycle.Color{}, false,
			fmt.Errorf("%w: gradient needs both left and right", ErrInvalid)
	}

	left, lok := huecycle.ParseHex(g.Left)
	if !lok {
		return huecycle.Color{}, huecycle.Color{}, false, fmt.Errorf("%w: gradient.left %q", ErrInvalid, g.Left)
	}
	right, rok := huecycle.ParseHex(g.Right)
	if !rok {
		return huecycle.Color{}, huecycle.Color{}, false, fmt.Errorf("%w: gradient.right %q", ErrInvalid, g.Right)
	}
	return left, right, true, nil
}

// Level parses LogLevel. An empty level is info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return level, nil
}

// AnimatorOptions maps the settings to animator options.
func (c Config) AnimatorOptions() []huecycle.AnimatorOption {
	return []huecycle.AnimatorOption{
		huecycle.WithFPS(c.FPS),
		huecycle.WithCyclePeriod(c.CyclePeriod.Duration),
	}
}

// CanvasOptions maps the settings to canvas options. Without a configured
// gradient the canvas keeps its random resize redraw.
func (c Config) CanvasOptions() []huecycle.CanvasOption {
	left, right, ok, err := c.GradientColors()
	if err != nil || !ok {
		return nil
	}
	return []huecycle.CanvasOption{huecycle.WithRedraw(huecycle.FixedGradientRedraw(left, right))}
}
