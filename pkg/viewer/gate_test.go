package viewer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnsureReadyImmediate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gate := New(&Config{ScriptURL: srv.URL})
	defer gate.Stop()

	require.NoError(t, gate.EnsureReady(context.Background()))
	require.Equal(t, StateReady, gate.State())
}

func TestEnsureReadySharedOutcome(t *testing.T) {
	var probes int32
	ready := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&probes, 1)
		select {
		case <-ready:
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	gate := New(&Config{
		ScriptURL:    srv.URL,
		PollInterval: 5 * time.Millisecond,
		Timeout:      time.Second,
	})
	defer gate.Stop()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = gate.EnsureReady(context.Background())
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(ready)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// the resolved gate must not probe again for later callers
	seen := atomic.LoadInt32(&probes)
	require.NoError(t, gate.EnsureReady(context.Background()))
	require.Equal(t, seen, atomic.LoadInt32(&probes))
}

func TestEnsureReadyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gate := New(&Config{
		ScriptURL:    srv.URL,
		PollInterval: 5 * time.Millisecond,
		Timeout:      30 * time.Millisecond,
	})
	defer gate.Stop()

	err := gate.EnsureReady(context.Background())
	require.ErrorIs(t, err, ErrLoadTimeout)
	require.Equal(t, StateFailed, gate.State())

	// failed outcome is sticky
	require.ErrorIs(t, gate.EnsureReady(context.Background()), ErrLoadTimeout)
}

func TestEnsureReadyHeadFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gate := New(&Config{ScriptURL: srv.URL})
	defer gate.Stop()

	require.NoError(t, gate.EnsureReady(context.Background()))
}

func TestEnsureReadyCallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gate := New(&Config{
		ScriptURL:    srv.URL,
		PollInterval: 5 * time.Millisecond,
		Timeout:      time.Second,
	})
	defer gate.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gate.EnsureReady(ctx)
	require.True(t, errors.Is(err, context.Canceled))

	// cancellation of one caller must not resolve the gate
	require.Equal(t, StatePending, gate.State())
}

func TestStopUnblocksWaiters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gate := New(&Config{
		ScriptURL:    srv.URL,
		PollInterval: 5 * time.Millisecond,
		Timeout:      time.Minute,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- gate.EnsureReady(context.Background())
	}()

	time.Sleep(15 * time.Millisecond)
	gate.Stop()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrStopped)
	case <-time.After(time.Second):
		t.Fatal("EnsureReady still blocked after Stop")
	}
}
