package analytics

import (
	"sync"
	"time"
)

// playback-progress fractions that fire a milestone event
var milestones = []float64{0.25, 0.50, 0.75}

// SessionCtx tracks milestone state for one playback session. Each
// threshold fires at most once, the first time cumulative progress
// reaches or exceeds it.
type SessionCtx struct {
	mu       sync.Mutex
	hit      map[float64]struct{}
	lastSeen time.Time
}

func newSession() *SessionCtx {
	return &SessionCtx{
		hit:      map[float64]struct{}{},
		lastSeen: time.Now(),
	}
}

// Progress evaluates cumulative playback progress and returns the
// thresholds crossed for the first time, in ascending order. Unknown
// or zero duration fires nothing.
func (s *SessionCtx) Progress(current, duration float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()

	if duration <= 0 {
		return nil
	}

	progress := current / duration

	var fired []float64
	for _, threshold := range milestones {
		if progress < threshold {
			break
		}
		if _, ok := s.hit[threshold]; ok {
			continue
		}
		s.hit[threshold] = struct{}{}
		fired = append(fired, threshold)
	}
	return fired
}

func (s *SessionCtx) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *SessionCtx) expired(expiration time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen) > expiration
}
