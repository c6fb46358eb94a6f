package analytics

import "time"

// event types forwarded to the sink
const (
	EventPlay        = "play"
	EventPause       = "pause"
	EventComplete    = "complete"
	EventMilestone   = "milestone"
	EventChapterJump = "chapterJump"
)

// Record is one structured analytics entry, shaped like the page-wide
// event list records of the hosting pages.
type Record struct {
	Event     string    `json:"event"`
	EventInfo EventInfo `json:"eventInfo"`
}

type EventInfo struct {
	Type      string  `json:"type"`
	AssetPath string  `json:"assetPath"`
	Milestone float64 `json:"milestone,omitempty"`
	Chapter   string  `json:"chapter,omitempty"`
	Time      float64 `json:"time,omitempty"`
}

// Sink receives translated player events. Appending must never fail
// the caller.
type Sink interface {
	Append(record Record)
}

type Config struct {
	// Sink for translated records. When nil, records degrade to the
	// debug log.
	Sink Sink

	SessionExpiration time.Duration // inactivity before a playback session is dropped
	CleanupPeriod     time.Duration
}

func (c Config) withDefaultValues() Config {
	if c.SessionExpiration == 0 {
		c.SessionExpiration = 30 * time.Minute
	}
	if c.CleanupPeriod == 0 {
		c.CleanupPeriod = time.Minute
	}
	return c
}
