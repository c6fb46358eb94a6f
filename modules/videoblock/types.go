package videoblock

import "github.com/vblock/vblock/pkg/decorate"

type Config struct {
	decorate.Config

	// MaxBlockBytes bounds the accepted block payload.
	MaxBlockBytes int64
}

func (c Config) withDefaultValues() Config {
	if c.MaxBlockBytes == 0 {
		c.MaxBlockBytes = 1 << 20
	}
	return c
}
