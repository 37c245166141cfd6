package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"matrix-arcade/internal/matrix"
	"matrix-arcade/internal/puzzle"
)

var (
	cfgFile = "matrix-arcade/config.yaml"
	envPath = "MATRIX_ARCADE_CONFIG"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type EngineConfig struct {
	FrameDelay   time.Duration `yaml:"frame_delay"`
	FlashCycles  int           `yaml:"flash_cycles"`
	FlashHold    time.Duration `yaml:"flash_hold"`
	GameOverHold time.Duration `yaml:"game_over_hold"`
	Seed         uint64        `yaml:"seed"` // 0 picks a time-based seed
}

type WeightsConfig struct {
	Lines  int `yaml:"lines"`
	Holes  int `yaml:"holes"`
	Height int `yaml:"height"`
}

type PaletteConfig struct {
	Letters   map[string]uint8 `yaml:"letters"`
	Highlight uint8            `yaml:"highlight"`
}

type DisplayConfig struct {
	Tint  [3]uint8 `yaml:"tint"`
	Scale int      `yaml:"scale"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKey     string `yaml:"host_key"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// ListenAddr returns the SSH listen address. PORT in the environment wins
// over the configured address.
func (s *ServerConfig) ListenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return s.Addr
}

type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Weights WeightsConfig `yaml:"weights"`
	Palette PaletteConfig `yaml:"palette"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
}

// Default returns the appliance's settings.
func Default() Config {
	letters := make(map[string]uint8, puzzle.NumPieces)
	for _, p := range puzzle.AllPieces() {
		letters[p.String()] = puzzle.DefaultPalette[p]
	}
	t := matrix.DefaultTint
	return Config{
		Engine: EngineConfig{
			FrameDelay:   puzzle.DefaultTiming.FrameDelay,
			FlashCycles:  puzzle.DefaultTiming.FlashCycles,
			FlashHold:    puzzle.DefaultTiming.FlashHold,
			GameOverHold: puzzle.DefaultTiming.GameOverHold,
		},
		Weights: WeightsConfig{
			Lines:  puzzle.DefaultWeights.Lines,
			Holes:  puzzle.DefaultWeights.Holes,
			Height: puzzle.DefaultWeights.Height,
		},
		Palette: PaletteConfig{
			Letters:   letters,
			Highlight: puzzle.DefaultHighlight,
		},
		Display: DisplayConfig{
			Tint:  [3]uint8{t.R, t.G, t.B},
			Scale: 24,
		},
		Server: ServerConfig{
			Addr:    ":2222",
			HostKey: "host_key",
		},
	}
}

// Load reads the configuration. An empty path falls back to
// $MATRIX_ARCADE_CONFIG, then the XDG config directories. When no file is
// found the defaults are returned. Values missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envPath)
	}
	explicit := path != ""
	if !explicit {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			path = found
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	e := c.Engine
	if e.FrameDelay <= 0 {
		return &InvalidConfig{"engine.frame_delay must be positive"}
	}
	if e.FlashCycles < 0 || e.FlashHold < 0 || e.GameOverHold < 0 {
		return &InvalidConfig{"engine flash and hold settings must not be negative"}
	}
	if c.Weights == (WeightsConfig{}) {
		return &InvalidConfig{"weights must not all be zero"}
	}
	for letter, v := range c.Palette.Letters {
		if _, ok := puzzle.ParsePiece(strings.ToUpper(letter)); !ok {
			return &InvalidConfig{fmt.Sprintf("palette: unknown piece %q", letter)}
		}
		if v == 0 {
			return &InvalidConfig{fmt.Sprintf("palette: piece %s has brightness 0 and would be invisible", letter)}
		}
	}
	if c.Palette.Highlight == 0 {
		return &InvalidConfig{"palette.highlight must be non-zero"}
	}
	if c.Display.Scale < 1 || c.Display.Scale > 128 {
		return &InvalidConfig{"display.scale must be between 1 and 128"}
	}
	return nil
}

// Timing converts the engine section.
func (c *Config) Timing() puzzle.Timing {
	return puzzle.Timing{
		FrameDelay:   c.Engine.FrameDelay,
		FlashCycles:  c.Engine.FlashCycles,
		FlashHold:    c.Engine.FlashHold,
		GameOverHold: c.Engine.GameOverHold,
	}
}

// Tint returns the display colour for the matrix.
func (c *Config) Tint() matrix.Tint {
	return matrix.Tint{R: c.Display.Tint[0], G: c.Display.Tint[1], B: c.Display.Tint[2]}
}

// ControllerOptions builds engine options from the config. Source and
// Observer are left for the caller.
func (c *Config) ControllerOptions() puzzle.ControllerOptions {
	var palette [puzzle.NumPieces]uint8
	for letter, v := range c.Palette.Letters {
		if p, ok := puzzle.ParsePiece(strings.ToUpper(letter)); ok {
			palette[p] = v
		}
	}
	return puzzle.ControllerOptions{
		Weights: puzzle.Weights{
			Lines:  c.Weights.Lines,
			Holes:  c.Weights.Holes,
			Height: c.Weights.Height,
		},
		Timing:    c.Timing(),
		Palette:   palette,
		Highlight: c.Palette.Highlight,
	}
}

// Source returns the piece source for the configured seed.
func (c *Config) Source() puzzle.PieceSource {
	seed := c.Engine.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return puzzle.NewRandomSource(seed)
}
