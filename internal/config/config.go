// Package config maps viper settings onto the typed options used by the
// parser, the extractor and the renderers.
//
// Keys are flat and hyphenated so that a cobra flag, a papyrus.yaml entry
// and a PAPYRUS_* environment variable all name the same setting.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/parser"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/report"
)

const (
	Name      = "papyrus"
	EnvPrefix = "PAPYRUS"
)

// Front ends selectable with the frontend key.
const (
	FrontendCLI = "cli"
	FrontendGUI = "gui"
)

type Config struct {
	Encoding      string `mapstructure:"encoding"`
	PreambleLines int    `mapstructure:"preamble-lines"`

	PressureChannel    int     `mapstructure:"pressure-channel"`
	TemperatureChannel int     `mapstructure:"temperature-channel"`
	PressureDivisor    float64 `mapstructure:"pressure-divisor"`
	TemperatureDivisor float64 `mapstructure:"temperature-divisor"`

	X           string `mapstructure:"x"`
	Y           string `mapstructure:"y"`
	XLabel      string `mapstructure:"x-label"`
	YLabel      string `mapstructure:"y-label"`
	TimeUnit    string `mapstructure:"time-unit"`
	Style       string `mapstructure:"style"`
	Size        int    `mapstructure:"size"`
	DPI         int    `mapstructure:"dpi"`
	Transparent bool   `mapstructure:"transparent"`
	XRange      string `mapstructure:"x-range"`
	YRange      string `mapstructure:"y-range"`

	Renderer string `mapstructure:"renderer"`
	Rows     int    `mapstructure:"rows"`
	Frontend string `mapstructure:"frontend"`
	LogFile  string `mapstructure:"log-file"`
	Verbose  bool   `mapstructure:"verbose"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	popts := parser.DefaultOptions()
	sel := analysis.DefaultSelection()
	form := report.DefaultForm()

	v.SetDefault("encoding", popts.Encoding)
	v.SetDefault("preamble-lines", popts.PreambleLines)

	v.SetDefault("pressure-channel", sel.PressureChannel)
	v.SetDefault("temperature-channel", sel.TemperatureChannel)
	v.SetDefault("pressure-divisor", sel.PressureDivisor)
	v.SetDefault("temperature-divisor", sel.TemperatureDivisor)

	v.SetDefault("x", form.X)
	v.SetDefault("y", form.Y)
	v.SetDefault("x-label", form.XLabel)
	v.SetDefault("y-label", form.YLabel)
	v.SetDefault("time-unit", form.TimeUnit)
	v.SetDefault("style", form.Style)
	v.SetDefault("size", form.Size)
	v.SetDefault("dpi", form.DPI)
	v.SetDefault("transparent", form.Transparent)
	v.SetDefault("x-range", "")
	v.SetDefault("y-range", "")

	v.SetDefault("renderer", report.RendererGonum)
	v.SetDefault("rows", report.DefaultPreviewRows)
	v.SetDefault("frontend", FrontendCLI)
	v.SetDefault("log-file", "")
	v.SetDefault("verbose", false)
}

// Setup points v at the papyrus config file search path and environment.
// An explicit file, when given, replaces the search path.
func Setup(v *viper.Viper, file string) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath("/etc/papyrus/")
		v.AddConfigPath("$HOME/.papyrus/")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load decodes the current settings of v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(errs.ErrInvalidParameter, err.Error())
	}
	c.Frontend = strings.ToLower(strings.TrimSpace(c.Frontend))
	switch c.Frontend {
	case FrontendCLI, FrontendGUI:
	default:
		return nil, errors.Wrapf(errs.ErrInvalidParameter, "unknown frontend %q (want %s or %s)", c.Frontend, FrontendCLI, FrontendGUI)
	}
	return &c, nil
}

func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		Encoding:      c.Encoding,
		PreambleLines: c.PreambleLines,
	}
}

func (c *Config) Selection() analysis.ChannelSelection {
	return analysis.ChannelSelection{
		PressureChannel:    c.PressureChannel,
		TemperatureChannel: c.TemperatureChannel,
		PressureDivisor:    c.PressureDivisor,
		TemperatureDivisor: c.TemperatureDivisor,
	}
}

func (c *Config) PlotForm() report.PlotForm {
	return report.PlotForm{
		X:           c.X,
		Y:           c.Y,
		XLabel:      c.XLabel,
		YLabel:      c.YLabel,
		TimeUnit:    c.TimeUnit,
		Style:       c.Style,
		Size:        c.Size,
		DPI:         c.DPI,
		Transparent: c.Transparent,
		XRange:      c.XRange,
		YRange:      c.YRange,
	}
}

// NewRenderer builds the configured back end with the default figure style.
func (c *Config) NewRenderer() (report.Renderer, error) {
	return report.NewRenderer(c.Renderer, report.DefaultStyle())
}
