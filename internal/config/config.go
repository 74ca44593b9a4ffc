package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rangeslider/internal/errors"
	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/server"
	"github.com/vango-dev/rangeslider/pkg/view"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultMetricsPath is where metrics are served by default.
	DefaultMetricsPath = "/metrics"

	// DefaultReadLimit is the default largest client message in bytes.
	DefaultReadLimit = 4096

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// Config is the complete configuration file.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Slider holds the initial slider options. Unset options keep the
	// slider defaults.
	Slider model.Overrides `json:"slider" yaml:"slider"`

	// Scale contains scale drawing settings.
	Scale ScaleConfig `json:"scale" yaml:"scale"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// path stores the file the config was loaded from.
	path string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// MetricsPath is where prometheus metrics are served.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`

	// ReadLimit is the largest accepted websocket message in bytes.
	ReadLimit int64 `json:"readLimit,omitempty" yaml:"readLimit,omitempty"`

	// Title is the page heading.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// ScaleConfig contains scale settings.
type ScaleConfig struct {
	// DensityCapped halves the tick count until at most ten ticks remain.
	DensityCapped bool `json:"densityCapped,omitempty" yaml:"densityCapped,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        DefaultAddr,
			MetricsPath: DefaultMetricsPath,
			ReadLimit:   DefaultReadLimit,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No config file at " + path).
				WithSuggestion("Check the --config flag or drop it to use the defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = decodeJSON(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		return nil, errors.New("E103").
			WithDetail(fmt.Sprintf("%q is not a supported extension", ext)).
			WithSuggestion("Rename the file to end in .json, .yaml or .yml")
	}
	if err != nil {
		se := errors.New("E101").Wrap(err)
		if line := errorLine(data, err); line > 0 {
			se.WithLocation(path, line, 0)
		}
		return nil, se
	}

	cfg.path = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeJSON(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// errorLine finds the 1-based line a decode error points at, or 0.
func errorLine(data []byte, err error) int {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return lineAt(data, syntaxErr.Offset)
	}
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return lineAt(data, typeErr.Offset)
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.ReadLimit == 0 {
		c.Server.ReadLimit = DefaultReadLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks the configuration for values the slider or the server
// cannot use.
func (c *Config) Validate() error {
	if c.Server.ReadLimit < 0 {
		return invalid("server.readLimit must not be negative")
	}
	if c.Server.MetricsPath != "" && !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return invalid("server.metricsPath must start with /")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return invalid(err.Error())
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return invalid(fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}

	o := c.Slider
	for name, v := range map[string]*float64{
		"minValue":         o.MinValue,
		"maxValue":         o.MaxValue,
		"step":             o.Step,
		"leftHandleValue":  o.LeftHandleValue,
		"rightHandleValue": o.RightHandleValue,
	} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return invalid("slider." + name + " must be a finite number")
		}
	}
	if o.Step != nil && *o.Step <= 0 {
		return invalid("slider.step must be positive")
	}
	if o.PointsNumber != nil && *o.PointsNumber < 1 {
		return invalid("slider.pointsNumber must be at least 1")
	}
	if o.DefaultValues != nil && len(o.DefaultValues) == 0 {
		return invalid("slider.defaultValues must not be empty")
	}
	if o.MinValue != nil && o.MaxValue != nil && *o.MinValue >= *o.MaxValue {
		return invalid("slider.minValue must be below slider.maxValue")
	}
	return nil
}

func invalid(detail string) *errors.SliderError {
	return errors.New("E102").WithDetail(detail)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q must be debug, info, warn or error", s)
	}
	return level, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// TickPolicy returns the scale tick policy.
func (c *Config) TickPolicy() view.TickPolicy {
	if c.Scale.DensityCapped {
		return view.TicksDensityCapped
	}
	return view.TicksRequested
}

// Logger builds a logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ServerConfig returns the live server settings for this config.
func (c *Config) ServerConfig(logger *slog.Logger) *server.Config {
	sc := server.DefaultConfig()
	if c.Server.Title != "" {
		sc.Title = c.Server.Title
	}
	if c.Server.MetricsPath != "" {
		sc.MetricsPath = c.Server.MetricsPath
	}
	if c.Server.ReadLimit > 0 {
		sc.ReadLimit = c.Server.ReadLimit
	}
	sc.Overrides = c.Slider
	sc.TickPolicy = c.TickPolicy()
	sc.Logger = logger
	return sc
}
