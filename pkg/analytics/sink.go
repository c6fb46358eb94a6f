package analytics

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ListSink is the appendable in-memory event list. It is bounded;
// the oldest records are dropped once the limit is reached.
type ListSink struct {
	mu      sync.RWMutex
	records []Record
	limit   int
}

func NewListSink(limit int) *ListSink {
	if limit <= 0 {
		limit = 1024
	}
	return &ListSink{limit: limit}
}

func (l *ListSink) Append(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	if len(l.records) > l.limit {
		l.records = l.records[len(l.records)-l.limit:]
	}
}

// Snapshot returns a copy of the current list.
func (l *ListSink) Snapshot() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]Record, len(l.records))
	copy(records, l.records)
	return records
}

func (l *ListSink) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// LogSink writes records to the debug log. It is the fallback when no
// event list is wired up.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{
		logger: log.With().Str("module", "analytics").Str("submodule", "sink").Logger(),
	}
}

func (l *LogSink) Append(record Record) {
	l.logger.Debug().
		Str("event", record.Event).
		Str("type", record.EventInfo.Type).
		Str("assetPath", record.EventInfo.AssetPath).
		Float64("milestone", record.EventInfo.Milestone).
		Str("chapter", record.EventInfo.Chapter).
		Msg("video interaction")
}
