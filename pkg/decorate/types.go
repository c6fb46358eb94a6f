package decorate

// StatusAttr is the machine-readable state marker written on the block.
const StatusAttr = "data-video-loaded"

// Outcome is the value of the state marker after one decoration pass.
type Outcome string

const (
	OutcomeLoading Outcome = "loading"
	OutcomeLoaded  Outcome = "true"
	OutcomeError   Outcome = "error"
)

type Config struct {
	// ScriptURL of the external player script, loaded idempotently by
	// the emitted bootstrap.
	ScriptURL string

	// Namespace is the global constructor the script exposes.
	Namespace string

	// EventsPath is the base path of the analytics event api the
	// decorated block reports to.
	EventsPath string

	PollIntervalMs int // page-side readiness poll interval
	TimeoutMs      int // page-side readiness timeout
}

func (c Config) withDefaultValues() Config {
	if c.Namespace == "" {
		c.Namespace = "AdaptiveVideoPlayer"
	}
	if c.EventsPath == "" {
		c.EventsPath = "/analytics"
	}
	if c.PollIntervalMs == 0 {
		c.PollIntervalMs = 100
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = 10000
	}
	return c
}
