package analytics

import (
	"reflect"
	"testing"
	"time"
)

func TestBridgeRecordsShape(t *testing.T) {
	list := NewListSink(16)
	bridge := New(&Config{Sink: list})

	bridge.Play("s1", "/adobe/assets/urn:x:y")
	bridge.ChapterJump("s1", "/adobe/assets/urn:x:y", "Intro", 12.5)
	bridge.Progress("s1", "/adobe/assets/urn:x:y", 50, 100)
	bridge.Complete("s1", "/adobe/assets/urn:x:y")

	want := []Record{
		{Event: "videoInteraction", EventInfo: EventInfo{Type: EventPlay, AssetPath: "/adobe/assets/urn:x:y"}},
		{Event: "videoInteraction", EventInfo: EventInfo{Type: EventChapterJump, AssetPath: "/adobe/assets/urn:x:y", Chapter: "Intro", Time: 12.5}},
		{Event: "videoInteraction", EventInfo: EventInfo{Type: EventMilestone, AssetPath: "/adobe/assets/urn:x:y", Milestone: 0.25}},
		{Event: "videoInteraction", EventInfo: EventInfo{Type: EventMilestone, AssetPath: "/adobe/assets/urn:x:y", Milestone: 0.50}},
		{Event: "videoInteraction", EventInfo: EventInfo{Type: EventComplete, AssetPath: "/adobe/assets/urn:x:y"}},
	}
	if got := list.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestBridgeMilestonesPerSession(t *testing.T) {
	list := NewListSink(16)
	bridge := New(&Config{Sink: list})

	bridge.Progress("s1", "/a", 30, 100)
	bridge.Progress("s1", "/a", 30, 100)
	bridge.Progress("s2", "/a", 30, 100)

	// one milestone per session, replays swallowed
	if got := list.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestBridgeNilSinkFallsBackToLog(t *testing.T) {
	bridge := New(&Config{})

	// must not panic without a list sink
	bridge.Play("s1", "/a")
	bridge.Progress("s1", "/a", 90, 100)
}

func TestBridgeCleanup(t *testing.T) {
	bridge := New(&Config{Sink: NewListSink(4), SessionExpiration: time.Nanosecond})

	bridge.Play("s1", "/a")
	time.Sleep(time.Millisecond)
	bridge.Cleanup()

	bridge.sessionsMu.Lock()
	defer bridge.sessionsMu.Unlock()
	if len(bridge.sessions) != 0 {
		t.Errorf("sessions after cleanup = %d, want 0", len(bridge.sessions))
	}
}

func TestListSinkBounded(t *testing.T) {
	list := NewListSink(3)
	for i := 0; i < 5; i++ {
		list.Append(Record{Event: "videoInteraction", EventInfo: EventInfo{Type: EventPlay}})
	}
	if got := list.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}
