package videoblock

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vblock/vblock/internal/metrics"
	"github.com/vblock/vblock/modules"
	"github.com/vblock/vblock/pkg/decorate"
	"github.com/vblock/vblock/pkg/viewer"
)

var _ modules.Module = (*ModuleCtx)(nil)

// ModuleCtx decorates authored video blocks over HTTP. The response is
// always the rewritten block; failures are encoded in the block's
// state marker, never in the status code.
type ModuleCtx struct {
	logger     zerolog.Logger
	pathPrefix string
	config     Config

	decorator *decorate.DecoratorCtx
}

func New(pathPrefix string, gate viewer.Manager, config *Config) *ModuleCtx {
	cfg := config.withDefaultValues()

	return &ModuleCtx{
		logger:     log.With().Str("module", "videoblock").Logger(),
		pathPrefix: pathPrefix,
		config:     cfg,

		decorator: decorate.New(gate, &cfg.Config),
	}
}

func (m *ModuleCtx) Shutdown() {

}

func (m *ModuleCtx) ConfigReload(config *Config) {
	m.config = config.withDefaultValues()
	m.decorator = decorate.New(m.decorator.Gate(), &m.config.Config)
}

func (m *ModuleCtx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "405 method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body := http.MaxBytesReader(w, r.Body, m.config.MaxBlockBytes)

	out, outcome, err := m.decorator.Decorate(r.Context(), body)
	if err != nil {
		m.logger.Warn().Err(err).Str("outcome", string(outcome)).Msg("decoration finished with error marker")
	}
	metrics.Decorations.WithLabelValues(string(outcome)).Inc()

	if out == nil {
		// nothing renderable came back, the input was not a block
		http.Error(w, "400 invalid block", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}
