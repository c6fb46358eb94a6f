package analytics

import (
	"time"

	"github.com/vblock/vblock/pkg/analytics"
)

type Config struct {
	analytics.Config

	// ListLimit bounds the in-memory event list. Zero keeps the
	// default, a negative value disables the list so records fall
	// back to the debug log.
	ListLimit int

	// RequestsPerMinute rate-limits event ingestion per client ip.
	RequestsPerMinute int

	Window time.Duration `mapstructure:"-"`
}

func (c Config) withDefaultValues() Config {
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = 120
	}
	if c.Window == 0 {
		c.Window = time.Minute
	}
	return c
}
