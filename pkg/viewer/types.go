package viewer

import (
	"context"
	"net/http"
	"time"
)

type Config struct {
	// ScriptURL of the external player script whose availability gates
	// every decoration.
	ScriptURL string

	PollInterval time.Duration // how often the script url is re-probed
	Timeout      time.Duration // bounded wait before the gate fails

	Client *http.Client
}

func (c Config) withDefaultValues() Config {
	if c.PollInterval == 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 5 * time.Second}
	}
	return c
}

type State int

const (
	StatePending State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

type Manager interface {
	EnsureReady(ctx context.Context) error
	State() State
	Stop()
}
