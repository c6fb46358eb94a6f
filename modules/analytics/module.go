package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vblock/vblock/internal/metrics"
	"github.com/vblock/vblock/modules"
	"github.com/vblock/vblock/pkg/analytics"
)

// eventRequest is one playback beacon posted by a decorated block.
type eventRequest struct {
	Type        string      `json:"type"`
	AssetPath   string      `json:"assetPath"`
	CurrentTime float64     `json:"currentTime"`
	Duration    float64     `json:"duration"`
	Chapter     *chapterRef `json:"chapter,omitempty"`
}

type chapterRef struct {
	Label string  `json:"label"`
	Time  float64 `json:"time"`
}

var _ modules.Module = (*ModuleCtx)(nil)

// ModuleCtx ingests playback beacons and exposes the translated event
// list.
type ModuleCtx struct {
	logger     zerolog.Logger
	pathPrefix string
	config     Config

	bridge *analytics.BridgeCtx
	list   *analytics.ListSink
	router chi.Router
}

func New(pathPrefix string, config *Config) *ModuleCtx {
	cfg := config.withDefaultValues()

	var list *analytics.ListSink
	if cfg.ListLimit >= 0 {
		list = analytics.NewListSink(cfg.ListLimit)
		cfg.Sink = list
	}

	module := &ModuleCtx{
		logger:     log.With().Str("module", "analytics").Logger(),
		pathPrefix: pathPrefix,
		config:     cfg,

		bridge: analytics.New(&cfg.Config),
		list:   list,
	}

	router := chi.NewRouter()
	router.Use(httprate.LimitByIP(cfg.RequestsPerMinute, cfg.Window))
	router.Post("/sessions/{sessionID}/events", module.handleEvent)
	router.Get("/events", module.handleList)
	module.router = router

	return module
}

func (m *ModuleCtx) Start() {
	m.bridge.Start()
}

func (m *ModuleCtx) Shutdown() {
	m.bridge.Stop()
}

// TODO: rebuild the rate limiter when the window changes on reload.
func (m *ModuleCtx) ConfigReload(config *Config) {
	m.config = config.withDefaultValues()
}

// Sink exposes the event list for other surfaces, nil when disabled.
func (m *ModuleCtx) Sink() *analytics.ListSink {
	return m.list
}

func (m *ModuleCtx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix(m.pathPrefix, m.router).ServeHTTP(w, r)
}

func (m *ModuleCtx) handleEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "400 invalid event payload", http.StatusBadRequest)
		return
	}

	switch req.Type {
	case "play":
		m.bridge.Play(sessionID, req.AssetPath)
	case "pause":
		m.bridge.Pause(sessionID, req.AssetPath)
	case "complete":
		m.bridge.Complete(sessionID, req.AssetPath)
	case "timeupdate":
		m.bridge.Progress(sessionID, req.AssetPath, req.CurrentTime, req.Duration)
	case "chapter":
		if req.Chapter == nil {
			http.Error(w, "400 chapter event without chapter", http.StatusBadRequest)
			return
		}
		m.bridge.ChapterJump(sessionID, req.AssetPath, req.Chapter.Label, req.Chapter.Time)
	default:
		http.Error(w, "400 unknown event type", http.StatusBadRequest)
		return
	}

	metrics.PlayerEvents.WithLabelValues(req.Type).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (m *ModuleCtx) handleList(w http.ResponseWriter, r *http.Request) {
	if m.list == nil {
		http.Error(w, "404 event list disabled", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m.list.Snapshot()); err != nil {
		m.logger.Warn().Err(err).Msg("unable to encode event list")
	}
}
