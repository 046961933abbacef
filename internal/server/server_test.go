package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"theater-run-service/internal/app/movies"
	"theater-run-service/internal/config"
	"theater-run-service/internal/poller"
	"theater-run-service/internal/store"
)

type stubPoller struct {
	startCalls int
	stopCalls  int
	err        error
	status     poller.Status
}

func (p *stubPoller) Start(ctx context.Context) {
	_ = ctx
	p.startCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopCalls++
	return p.err
}

func (p *stubPoller) Status() poller.Status {
	return p.status
}

type stubHTTPServer struct {
	addr          string
	handler       http.Handler
	listenCalls   int
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	s.listenCalls++
	return s.listenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string {
	return s.addr
}

func (s *stubHTTPServer) Handler() http.Handler {
	return s.handler
}

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		PollInterval: time.Hour,
		Provider:     "fixture",
		Cache:        config.CacheConfig{Dir: "", TTLHours: 1},
	}
}

func TestNewBuildsFixtureServer(t *testing.T) {
	srv, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if srv.Handler() == nil {
		t.Fatal("expected an HTTP handler")
	}
	if srv.poller == nil {
		t.Fatal("expected a poller")
	}
}

func TestNewFailsWithoutTMDBKey(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "tmdb"

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error when tmdb key is missing")
	}
}

func TestRunStartsAndStopsComponents(t *testing.T) {
	plr := &stubPoller{}
	httpSrv := &stubHTTPServer{addr: ":0"}
	movieSvc := movies.NewService(store.NewMemoryStore())

	srv := newServerWithDeps(testConfig(), nil, movieSvc, httpSrv, plr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Run to return")
	}

	if plr.startCalls != 1 || plr.stopCalls != 1 {
		t.Fatalf("expected poller start/stop once, got %d/%d", plr.startCalls, plr.stopCalls)
	}
	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected HTTP shutdown once, got %d", httpSrv.shutdownCalls)
	}
}

func TestListenErrorCancelsContext(t *testing.T) {
	plr := &stubPoller{}
	httpSrv := &stubHTTPServer{addr: ":0", listenErr: http.ErrAbortHandler}
	movieSvc := movies.NewService(store.NewMemoryStore())

	srv := newServerWithDeps(testConfig(), nil, movieSvc, httpSrv, plr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after listen failure")
	}
}

func TestStatusReadiness(t *testing.T) {
	notReady := statusReadiness{&stubPoller{}}
	if notReady.IsReady() {
		t.Fatal("expected not ready without success")
	}

	ready := statusReadiness{&stubPoller{status: poller.Status{LastSuccess: time.Now()}}}
	if !ready.IsReady() {
		t.Fatal("expected ready after success")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("TMDB", nil); got != "tmdb" {
		t.Fatalf("expected lower-cased name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected fallback name, got %s", got)
	}
}
