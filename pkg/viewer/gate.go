package viewer

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrLoadTimeout means the player script never became available
	// within the configured bounded wait.
	ErrLoadTimeout = errors.New("player script load timeout")

	// ErrStopped means the gate was shut down while still probing.
	ErrStopped = errors.New("viewer gate stopped")
)

// ManagerCtx gates decoration on the external player script being
// reachable. The first caller starts a single probe loop; every caller,
// concurrent or later, shares its outcome. The outcome is recorded at
// most once and never reset.
type ManagerCtx struct {
	logger zerolog.Logger
	config Config

	mu      sync.Mutex
	probing bool
	err     error
	done    chan struct{}

	shutdown chan struct{}
}

func New(config *Config) *ManagerCtx {
	return &ManagerCtx{
		logger:   log.With().Str("module", "viewer").Logger(),
		config:   config.withDefaultValues(),
		done:     make(chan struct{}),
		shutdown: make(chan struct{}),
	}
}

// EnsureReady blocks until the player script is available, the gate
// fails or the caller context is cancelled. It never panics and always
// returns the same outcome once the gate has resolved.
func (m *ManagerCtx) EnsureReady(ctx context.Context) error {
	m.mu.Lock()
	if !m.probing {
		m.probing = true
		go m.probe()
	}
	done := m.done
	m.mu.Unlock()

	select {
	case <-done:
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *ManagerCtx) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		if m.err != nil {
			return StateFailed
		}
		return StateReady
	default:
		return StatePending
	}
}

// Stop unblocks pending waiters of an unresolved gate. A resolved gate
// keeps its outcome.
func (m *ManagerCtx) Stop() {
	select {
	case <-m.shutdown:
	default:
		close(m.shutdown)
	}
}

func (m *ManagerCtx) probe() {
	m.logger.Debug().Str("script", m.config.ScriptURL).Msg("probing player script")

	deadline := time.NewTimer(m.config.Timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		// fast path: resolve on the first successful probe
		if m.available() {
			m.resolve(nil)
			return
		}

		select {
		case <-m.shutdown:
			m.resolve(ErrStopped)
			return
		case <-deadline.C:
			m.logger.Warn().
				Str("script", m.config.ScriptURL).
				Dur("timeout", m.config.Timeout).
				Msg("player script never became available")
			m.resolve(ErrLoadTimeout)
			return
		case <-ticker.C:
		}
	}
}

func (m *ManagerCtx) available() bool {
	req, err := http.NewRequest(http.MethodHead, m.config.ScriptURL, nil)
	if err != nil {
		return false
	}

	res, err := m.config.Client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	// some CDNs reject HEAD, retry the probe with GET
	if res.StatusCode == http.StatusMethodNotAllowed {
		res2, err := m.config.Client.Get(m.config.ScriptURL)
		if err != nil {
			return false
		}
		defer res2.Body.Close()
		return res2.StatusCode >= 200 && res2.StatusCode < 300
	}

	return res.StatusCode >= 200 && res.StatusCode < 300
}

func (m *ManagerCtx) resolve(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
	close(m.done)

	if err == nil {
		m.logger.Info().Str("script", m.config.ScriptURL).Msg("player script ready")
	}
}
