// Package config loads the engine and CLI settings with viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/layout"
	"github.com/ByLCY/lively/markup"
	"github.com/ByLCY/lively/textview"
)

// EnvPrefix is prepended to every environment override, e.g. LIVELY_TEXT_FONT_SIZE.
const EnvPrefix = "LIVELY"

// Config is the root configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Text   TextConfig   `mapstructure:"text" yaml:"text"`
	Fonts  FontsConfig  `mapstructure:"fonts" yaml:"fonts"`
	Icons  IconsConfig  `mapstructure:"icons" yaml:"icons"`
	Speak  SpeakConfig  `mapstructure:"speak" yaml:"speak"`
}

// LoggerConfig mirrors the zap + lumberjack options.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// TextConfig holds the root style and the layout container.
type TextConfig struct {
	RichText  bool    `mapstructure:"rich_text" yaml:"rich_text"`
	FontSize  float64 `mapstructure:"font_size" yaml:"font_size"`
	FontStyle string  `mapstructure:"font_style" yaml:"font_style"`
	// Colors holds 1 to 4 corner colors in tag order.
	Colors             []string `mapstructure:"colors" yaml:"colors"`
	Width              float64  `mapstructure:"width" yaml:"width"`
	Height             float64  `mapstructure:"height" yaml:"height"`
	Anchor             string   `mapstructure:"anchor" yaml:"anchor"`
	AlignByGeometry    bool     `mapstructure:"align_by_geometry" yaml:"align_by_geometry"`
	HorizontalWrap     string   `mapstructure:"horizontal_wrap" yaml:"horizontal_wrap"`
	VerticalWrap       string   `mapstructure:"vertical_wrap" yaml:"vertical_wrap"`
	PageBreakChars     string   `mapstructure:"page_break_chars" yaml:"page_break_chars"`
	LineSpacing        float64  `mapstructure:"line_spacing" yaml:"line_spacing"`
	KeepOversizedGlyph bool     `mapstructure:"keep_oversized_glyph" yaml:"keep_oversized_glyph"`
	MinPageFill        float64  `mapstructure:"min_page_fill" yaml:"min_page_fill"`
}

// FontsConfig names one font source per style; see fonts.Load.
type FontsConfig struct {
	Regular    string `mapstructure:"regular" yaml:"regular"`
	Bold       string `mapstructure:"bold" yaml:"bold"`
	Italic     string `mapstructure:"italic" yaml:"italic"`
	BoldItalic string `mapstructure:"bold_italic" yaml:"bold_italic"`
}

// IconsConfig points at the icon image directory.
type IconsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SpeakConfig drives the speak command.
type SpeakConfig struct {
	GlyphsPerSecond float64       `mapstructure:"glyphs_per_second" yaml:"glyphs_per_second"`
	TickInterval    time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	AutoAdvance     time.Duration `mapstructure:"auto_advance" yaml:"auto_advance"`
}

// SetDefaults initializes default values for every key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "lively")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Text --
	v.SetDefault("text.rich_text", true)
	v.SetDefault("text.font_size", 36.0)
	v.SetDefault("text.font_style", "normal")
	v.SetDefault("text.colors", []string{"white"})
	v.SetDefault("text.width", 800.0)
	v.SetDefault("text.height", 200.0)
	v.SetDefault("text.anchor", "upper-left")
	v.SetDefault("text.align_by_geometry", false)
	v.SetDefault("text.horizontal_wrap", "wrap")
	v.SetDefault("text.vertical_wrap", "truncate")
	v.SetDefault("text.page_break_chars", ".!?")
	v.SetDefault("text.line_spacing", 1.0)
	v.SetDefault("text.keep_oversized_glyph", false)
	v.SetDefault("text.min_page_fill", 0.0)

	// -- Fonts --
	v.SetDefault("fonts.regular", "embed:go-regular")
	v.SetDefault("fonts.bold", "embed:go-bold")
	v.SetDefault("fonts.italic", "embed:go-italic")
	v.SetDefault("fonts.bold_italic", "embed:go-bold-italic")

	// -- Icons --
	v.SetDefault("icons.dir", "")

	// -- Speak --
	v.SetDefault("speak.glyphs_per_second", 30.0)
	v.SetDefault("speak.tick_interval", "16ms")
	v.SetDefault("speak.auto_advance", "1s")
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewViper returns a viper instance with defaults and LIVELY_ environment
// overrides. path may be empty; a missing file is not an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Load reads path (optional) plus environment overrides and validates.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	t := c.Text
	if t.FontSize <= 0 {
		return fmt.Errorf("text.font_size must be positive")
	}
	if t.Width < 0 || t.Height < 0 {
		return fmt.Errorf("text.width and text.height must not be negative")
	}
	if t.LineSpacing <= 0 {
		return fmt.Errorf("text.line_spacing must be positive")
	}
	if t.MinPageFill < 0 || t.MinPageFill > 1 {
		return fmt.Errorf("text.min_page_fill must be within [0, 1]")
	}
	if len(t.Colors) > 4 {
		return fmt.Errorf("text.colors takes at most 4 corner colors")
	}
	for _, s := range t.Colors {
		if _, ok := markup.ParseColor(s); !ok {
			return fmt.Errorf("text.colors: invalid color %q", s)
		}
	}
	if _, err := markup.ParseFontStyle(t.FontStyle); err != nil {
		return fmt.Errorf("text.font_style: %w", err)
	}
	if _, err := layout.ParseAnchor(t.Anchor); err != nil {
		return fmt.Errorf("text.anchor: %w", err)
	}
	if _, err := layout.ParseHorizontalWrap(t.HorizontalWrap); err != nil {
		return fmt.Errorf("text.horizontal_wrap: %w", err)
	}
	if _, err := layout.ParseVerticalWrap(t.VerticalWrap); err != nil {
		return fmt.Errorf("text.vertical_wrap: %w", err)
	}
	if c.Fonts.Regular == "" {
		return fmt.Errorf("fonts.regular is required")
	}
	if c.Speak.GlyphsPerSecond <= 0 {
		return fmt.Errorf("speak.glyphs_per_second must be positive")
	}
	if c.Speak.TickInterval <= 0 {
		return fmt.Errorf("speak.tick_interval must be positive")
	}
	return nil
}

// ToYAML serializes the configuration, e.g. for `config init`.
func (c *Config) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// TextOptions converts the text section into component options. Line metrics
// are left for the view to query unless LineSpacing scales them.
func (c *Config) TextOptions(metrics glyph.MetricsProvider) (textview.Options, error) {
	t := c.Text
	style, err := markup.ParseFontStyle(t.FontStyle)
	if err != nil {
		return textview.Options{}, err
	}
	anchor, err := layout.ParseAnchor(t.Anchor)
	if err != nil {
		return textview.Options{}, err
	}
	hw, err := layout.ParseHorizontalWrap(t.HorizontalWrap)
	if err != nil {
		return textview.Options{}, err
	}
	vw, err := layout.ParseVerticalWrap(t.VerticalWrap)
	if err != nil {
		return textview.Options{}, err
	}
	opts := textview.Options{
		RichText:  t.RichText,
		FontSize:  t.FontSize,
		FontStyle: style,
		Colors:    Colors(t.Colors),
		Layout: layout.Options{
			Bounds:             glyph.Rect{XMax: t.Width, YMax: t.Height},
			Anchor:             anchor,
			AlignByGeometry:    t.AlignByGeometry,
			Horizontal:         hw,
			Vertical:           vw,
			PageBreakChars:     []rune(t.PageBreakChars),
			KeepOversizedGlyph: t.KeepOversizedGlyph,
			MinPageFill:        t.MinPageFill,
		},
	}
	if t.LineSpacing != 1 && metrics != nil {
		lineHeight, ascent := metrics.LineMetrics(t.FontSize, style)
		// 行距只放大行高，首行基线位置不变
		opts.Layout.LineHeight = lineHeight * t.LineSpacing
		opts.Layout.Ascent = ascent
	}
	return opts, nil
}

// Colors resolves 1 to 4 color strings like a color tag does; an empty list
// is white.
func Colors(params []string) markup.Corners {
	if len(params) == 0 {
		return markup.Uniform(markup.White)
	}
	return markup.ParseCorners(params)
}
