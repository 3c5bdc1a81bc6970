package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/glyph/glyphtest"
	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 36.0, cfg.Text.FontSize)
	assert.Equal(t, []string{"white"}, cfg.Text.Colors)
	assert.Equal(t, 16*time.Millisecond, cfg.Speak.TickInterval)
	assert.Equal(t, "embed:go-regular", cfg.Fonts.Regular)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lively.yaml")
	content := "text:\n  font_size: 24\n  anchor: middle-center\n  colors: [red, '#00FF00']\nlogger:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("LIVELY_TEXT_WIDTH", "320")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24.0, cfg.Text.FontSize)
	assert.Equal(t, 320.0, cfg.Text.Width)
	assert.Equal(t, "middle-center", cfg.Text.Anchor)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "truncate", cfg.Text.VerticalWrap, "unset keys keep defaults")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Text, cfg.Text)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"font size":  func(c *Config) { c.Text.FontSize = 0 },
		"anchor":     func(c *Config) { c.Text.Anchor = "nowhere" },
		"wrap":       func(c *Config) { c.Text.HorizontalWrap = "squash" },
		"color":      func(c *Config) { c.Text.Colors = []string{"notacolor"} },
		"colors":     func(c *Config) { c.Text.Colors = []string{"red", "red", "red", "red", "red"} },
		"page fill":  func(c *Config) { c.Text.MinPageFill = 2 },
		"font style": func(c *Config) { c.Text.FontStyle = "heavy" },
		"speed":      func(c *Config) { c.Speak.GlyphsPerSecond = 0 },
		"font":       func(c *Config) { c.Fonts.Regular = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestToYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	out, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "font_size: 36")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	if diff := cmp.Diff(*cfg, back); diff != "" {
		t.Fatalf("yaml round trip changed the config (-want +got):\n%s", diff)
	}
}

func TestTextOptions(t *testing.T) {
	cfg := Default()
	cfg.Text.Anchor = "lower-right"
	cfg.Text.FontStyle = "bold"
	cfg.Text.FontSize = 20
	cfg.Text.Colors = []string{"red", "blue"}

	opts, err := cfg.TextOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, layout.LowerRight, opts.Layout.Anchor)
	assert.Equal(t, markup.FontBold, opts.FontStyle)
	assert.Equal(t, glyph.Rect{XMax: 800, YMax: 200}, opts.Layout.Bounds)
	assert.Equal(t, []rune(".!?"), opts.Layout.PageBreakChars)
	assert.Equal(t, opts.Colors[markup.BottomLeft], opts.Colors[markup.BottomRight])
	assert.Zero(t, opts.Layout.LineHeight, "left to the view")

	cfg.Text.LineSpacing = 1.5
	opts, err = cfg.TextOptions(glyphtest.NewMono())
	require.NoError(t, err)
	assert.InDelta(t, 36.0, opts.Layout.LineHeight, 1e-9)
	assert.InDelta(t, 16.0, opts.Layout.Ascent, 1e-9)
}

func TestColorsDefaultToWhite(t *testing.T) {
	assert.Equal(t, markup.Uniform(markup.White), Colors(nil))
}
