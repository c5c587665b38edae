// Package config loads stickerboard settings from TOML.
//
// The file lives at $XDG_CONFIG_HOME/stickerboard/config.toml, falling back
// to ~/.config/stickerboard/config.toml. Every key is optional; missing keys
// keep their defaults and a missing file is the same as an empty one.
//
//	seed = 42
//	max_attempts = 100
//	debounce = "150ms"
//
//	[sizing]
//	default = 180
//	breakpoints = [
//	  { below = 768, size = 100 },
//	  { below = 1024, size = 140 },
//	]
//
//	[stickers]
//	dir = "./public/stickers"
//
//	[server]
//	addr = ":8080"
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stickerboard/pkg/assets"
	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/debounce"
	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/placement"
	"github.com/matzehuels/stickerboard/pkg/sizing"
)

const (
	appName  = "stickerboard"
	fileName = "config.toml"

	// DefaultAddr is the listen address for serve.
	DefaultAddr = ":8080"
	// DefaultSessionTTL is how long an idle HTTP session is kept.
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions bounds concurrent HTTP sessions.
	DefaultMaxSessions = 1000

	maxRotation = 180.0
)

// Config is the full set of user settings.
type Config struct {
	// Seed makes layouts reproducible. Zero picks a random seed per board.
	Seed              uint64       `toml:"seed"`
	MaxAttempts       int          `toml:"max_attempts"`
	MinDistanceFactor float64      `toml:"min_distance_factor"`
	// Rotation bounds in degrees. Zero keeps stickers upright.
	InitialRotation   float64      `toml:"initial_rotation"`
	DragJitter        float64      `toml:"drag_jitter"`
	Debounce          Duration     `toml:"debounce"`
	Sizing            sizing.Table `toml:"sizing"`
	Stickers          Stickers     `toml:"stickers"`
	Server            Server       `toml:"server"`
}

// Stickers selects the sticker images.
type Stickers struct {
	// Dir is where images are preloaded from. Empty skips preloading.
	Dir string `toml:"dir"`
	// Names are the image file names, relative to Dir.
	Names []string `toml:"names"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr        string   `toml:"addr"`
	SessionTTL  Duration `toml:"session_ttl"`
	MaxSessions int      `toml:"max_sessions"`
}

// Duration is a time.Duration that reads and writes strings like "150ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxAttempts:       placement.DefaultMaxAttempts,
		MinDistanceFactor: sizing.DefaultMinDistanceFactor,
		InitialRotation:   board.DefaultInitialRotation,
		DragJitter:        board.DefaultDragJitter,
		Debounce:          Duration{debounce.DefaultWindow},
		Sizing: sizing.Table{
			Breakpoints: slices.Clone(sizing.DefaultTable.Breakpoints),
			Default:     sizing.DefaultTable.Default,
		},
		Stickers: Stickers{Names: slices.Clone(assets.DefaultStickers)},
		Server: Server{
			Addr:        DefaultAddr,
			SessionTTL:  Duration{DefaultSessionTTL},
			MaxSessions: DefaultMaxSessions,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate home directory")
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path over the defaults and validates the result. A missing file
// yields the defaults. Unknown keys are rejected so typos do not pass
// silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.MaxAttempts <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.MinDistanceFactor < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_distance_factor must be at least 1, got %v", c.MinDistanceFactor)
	}
	if c.InitialRotation < 0 || c.InitialRotation > maxRotation {
		return errors.New(errors.ErrCodeInvalidConfig, "initial_rotation must be within [0, %v], got %v", maxRotation, c.InitialRotation)
	}
	if c.DragJitter < 0 || c.DragJitter > maxRotation {
		return errors.New(errors.ErrCodeInvalidConfig, "drag_jitter must be within [0, %v], got %v", maxRotation, c.DragJitter)
	}
	if c.Debounce.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "debounce must be positive, got %s", c.Debounce)
	}
	if err := c.Sizing.Validate(); err != nil {
		return err
	}
	for _, name := range c.Assets() {
		if err := errors.ValidateAssetPath(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "stickers.names")
		}
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	if c.Server.MaxSessions <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_sessions must be positive, got %d", c.Server.MaxSessions)
	}
	return nil
}

// BoardOptions converts the config into board options.
func (c Config) BoardOptions(logger *log.Logger) board.Options {
	return board.Options{
		Sizer:             c.Sizing.Func(),
		MinDistanceFactor: c.MinDistanceFactor,
		MaxAttempts:       c.MaxAttempts,
		Seed:              c.Seed,
		InitialRotation:   rotation(c.InitialRotation),
		DragJitter:        rotation(c.DragJitter),
		Debounce:          c.Debounce.Duration,
		Logger:            logger,
	}
}

// rotation maps a configured angle onto board options. A configured zero
// disables rotation, while a zero board option would select the default.
func rotation(deg float64) float64 {
	if deg == 0 {
		return board.NoRotation
	}
	return deg
}

// Assets returns the configured sticker names without blanks or repeats.
func (c Config) Assets() []string {
	return assets.Dedupe(c.Stickers.Names)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
