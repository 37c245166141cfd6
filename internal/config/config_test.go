package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matrix-arcade/internal/matrix"
	"matrix-arcade/internal/puzzle"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts := cfg.ControllerOptions()
	assert.Equal(t, puzzle.DefaultWeights, opts.Weights)
	assert.Equal(t, puzzle.DefaultTiming, opts.Timing)
	assert.Equal(t, puzzle.DefaultPalette, opts.Palette)
	assert.Equal(t, uint8(puzzle.DefaultHighlight), opts.Highlight)
	assert.Equal(t, matrix.DefaultTint, cfg.Tint())
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
engine:
  frame_delay: 40ms
  seed: 7
weights:
  holes: 250
palette:
  letters:
    i: 255
display:
  tint: [0, 255, 0]
server:
  metrics_addr: ":9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40*time.Millisecond, cfg.Engine.FrameDelay)
	assert.Equal(t, puzzle.DefaultTiming.FlashHold, cfg.Engine.FlashHold)
	assert.Equal(t, uint64(7), cfg.Engine.Seed)
	assert.Equal(t, WeightsConfig{Lines: 500, Holes: 250, Height: 5}, cfg.Weights)
	assert.Equal(t, ":9100", cfg.Server.MetricsAddr)
	assert.Equal(t, ":2222", cfg.Server.Addr)

	opts := cfg.ControllerOptions()
	assert.Equal(t, uint8(255), opts.Palette[puzzle.PieceI])
	assert.Equal(t, puzzle.DefaultPalette[puzzle.PieceO], opts.Palette[puzzle.PieceO])
	assert.Equal(t, matrix.Tint{G: 255}, cfg.Tint())
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeConfig(t, "weights:\n  lines: 900\n")
	t.Setenv(envPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Weights.Lines)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv(envPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Engine, cfg.Engine)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "engine: [1, 2"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "engine:\n  frame_delay: 0s\n"))
		var invalid *InvalidConfig
		require.True(t, errors.As(err, &invalid), "got %v", err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"negative flash cycles", func(c *Config) { c.Engine.FlashCycles = -1 }},
		{"negative game over hold", func(c *Config) { c.Engine.GameOverHold = -time.Second }},
		{"zero weights", func(c *Config) { c.Weights = WeightsConfig{} }},
		{"unknown piece", func(c *Config) { c.Palette.Letters["X"] = 10 }},
		{"invisible piece", func(c *Config) { c.Palette.Letters["T"] = 0 }},
		{"zero highlight", func(c *Config) { c.Palette.Highlight = 0 }},
		{"scale too small", func(c *Config) { c.Display.Scale = 0 }},
		{"scale too large", func(c *Config) { c.Display.Scale = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			var invalid *InvalidConfig
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestListenAddrPrefersPort(t *testing.T) {
	s := ServerConfig{Addr: ":2222"}
	t.Setenv("PORT", "")
	assert.Equal(t, ":2222", s.ListenAddr())

	t.Setenv("PORT", "4000")
	assert.Equal(t, ":4000", s.ListenAddr())
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	cfg := Default()
	cfg.Engine.Seed = 42
	a, b := cfg.Source(), cfg.Source()
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.NextPiece(), b.NextPiece())
	}
}
