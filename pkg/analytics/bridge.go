package analytics

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BridgeCtx translates player lifecycle events into structured
// analytics records. Sessions are created lazily per playback session
// id and dropped after inactivity.
type BridgeCtx struct {
	logger zerolog.Logger
	config Config
	sink   Sink

	sessions   map[string]*SessionCtx
	sessionsMu sync.Mutex

	shutdown chan struct{}
}

func New(config *Config) *BridgeCtx {
	cfg := config.withDefaultValues()

	sink := cfg.Sink
	if sink == nil {
		// demo-mode fallback, records end up in the debug log
		sink = NewLogSink()
	}

	return &BridgeCtx{
		logger:   log.With().Str("module", "analytics").Str("submodule", "bridge").Logger(),
		config:   cfg,
		sink:     sink,
		sessions: map[string]*SessionCtx{},
		shutdown: make(chan struct{}),
	}
}

func (b *BridgeCtx) Start() {
	go func() {
		ticker := time.NewTicker(b.config.CleanupPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-b.shutdown:
				return
			case <-ticker.C:
				b.Cleanup()
			}
		}
	}()
}

func (b *BridgeCtx) Stop() {
	select {
	case <-b.shutdown:
	default:
		close(b.shutdown)
	}
}

// Cleanup drops sessions that have been inactive for longer than the
// configured expiration.
func (b *BridgeCtx) Cleanup() {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	for id, session := range b.sessions {
		if session.expired(b.config.SessionExpiration) {
			delete(b.sessions, id)
		}
	}
}

func (b *BridgeCtx) session(id string) *SessionCtx {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	session, ok := b.sessions[id]
	if !ok {
		session = newSession()
		b.sessions[id] = session
	}
	return session
}

func (b *BridgeCtx) Play(sessionID, assetPath string) {
	b.session(sessionID).touch()
	b.emit(EventInfo{Type: EventPlay, AssetPath: assetPath})
}

func (b *BridgeCtx) Pause(sessionID, assetPath string) {
	b.session(sessionID).touch()
	b.emit(EventInfo{Type: EventPause, AssetPath: assetPath})
}

func (b *BridgeCtx) Complete(sessionID, assetPath string) {
	b.session(sessionID).touch()
	b.emit(EventInfo{Type: EventComplete, AssetPath: assetPath})
}

func (b *BridgeCtx) ChapterJump(sessionID, assetPath, chapter string, seconds float64) {
	b.session(sessionID).touch()
	b.emit(EventInfo{Type: EventChapterJump, AssetPath: assetPath, Chapter: chapter, Time: seconds})
}

// Progress evaluates a playback tick and emits one milestone record
// per newly crossed threshold.
func (b *BridgeCtx) Progress(sessionID, assetPath string, current, duration float64) {
	for _, threshold := range b.session(sessionID).Progress(current, duration) {
		b.emit(EventInfo{Type: EventMilestone, AssetPath: assetPath, Milestone: threshold})
	}
}

func (b *BridgeCtx) emit(info EventInfo) {
	b.sink.Append(Record{
		Event:     "videoInteraction",
		EventInfo: info,
	})
}
