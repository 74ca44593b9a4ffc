package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/view"
)

// Config holds the server settings.
type Config struct {
	// Title is shown as the page heading.
	Title string

	// Overrides are applied to every new session's slider.
	Overrides model.Overrides

	// TickPolicy selects how scale ticks are counted.
	TickPolicy view.TickPolicy

	// MetricsPath is where prometheus metrics are served.
	// Default: "/metrics".
	MetricsPath string

	// ReadLimit is the largest accepted client message in bytes.
	// Default: 4KB.
	ReadLimit int64

	// WriteTimeout bounds every socket write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// QueueSize is the capacity of each session's dispatch queue.
	// Default: 64.
	QueueSize int

	// Registry receives the server metrics. It must also be a
	// prometheus.Gatherer to be served on MetricsPath.
	// Default: a fresh registry.
	Registry prometheus.Registerer

	// TracerName names the OpenTelemetry tracer.
	// Default: "rangeslider".
	TracerName string

	// Logger is the base logger.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:        "Range slider",
		MetricsPath:  "/metrics",
		ReadLimit:    4 * 1024,
		WriteTimeout: 10 * time.Second,
		QueueSize:    64,
		TracerName:   "rangeslider",
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		c = d
	}
	out := *c
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	if out.ReadLimit <= 0 {
		out.ReadLimit = d.ReadLimit
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.QueueSize <= 0 {
		out.QueueSize = d.QueueSize
	}
	if out.TracerName == "" {
		out.TracerName = d.TracerName
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
