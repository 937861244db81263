package web

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/view"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StoreFetcher loads the detail payload of one store.
type StoreFetcher interface {
	Store(ctx context.Context, name string) (api.StoreDetail, error)
}

// Options configure a Server.
type Options struct {
	Addr           string
	RequestTimeout time.Duration
	View           view.Options
}

// Server wraps an HTTP server and route handlers.
type Server struct {
	httpServer *http.Server
	poller     *engine.Poller
	fetcher    StoreFetcher
	timeout    time.Duration

	mu    sync.Mutex
	board *view.Dashboard
}

// NewServer creates a server rendering the poller's state. The poller must
// be started by the caller.
func NewServer(p *engine.Poller, fetcher StoreFetcher, opts Options) *Server {
	s := &Server{
		poller:  p,
		fetcher: fetcher,
		timeout: opts.RequestTimeout,
		board:   view.NewDashboard(opts.View),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(newPollerCollector(p))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.dashboardHandler)
	mux.HandleFunc("GET /store/{name}", s.storeHandler)
	mux.HandleFunc("GET /api/view", s.viewHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /favicon.ico", faviconHandler)

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           loggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// dashboard folds the newest tick into the page state and returns a copy.
func (s *Server) dashboard() (view.Dashboard, engine.Snapshot) {
	snap := s.poller.Snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Info.TickCount > 0 && snap.Last.Seq != s.board.LastSeq {
		s.board.Apply(snap.Last)
	}
	return *s.board, snap
}

func (s *Server) dashboardHandler(w http.ResponseWriter, _ *http.Request) {
	d, snap := s.dashboard()
	writeHTML(w, http.StatusOK, RenderDashboard(&d, snap.Info.Interval))
}

func (s *Server) storeHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	payload, err := s.fetcher.Store(ctx, name)
	if err != nil {
		log.Printf("store %q: %s", name, api.Describe(err))
		writeHTML(w, http.StatusBadGateway, RenderDetail(view.FailedDetail(name, err)))
		return
	}
	writeHTML(w, http.StatusOK, RenderDetail(view.BuildDetail(name, payload)))
}

type viewResponse struct {
	Rendered  bool                   `json:"rendered"`
	Summary   view.Summary           `json:"summary"`
	Badge     string                 `json:"badge"`
	Rows      []view.Row             `json:"rows"`
	Raw       string                 `json:"raw"`
	LastError string                 `json:"last_error,omitempty"`
	UpError   string                 `json:"up_error,omitempty"`
	State     string                 `json:"state"`
	TickCount int                    `json:"tick_count"`
	LastTick  time.Time              `json:"last_tick"`
	History   []engine.HistorySample `json:"history"`
}

func (s *Server) viewHandler(w http.ResponseWriter, _ *http.Request) {
	d, snap := s.dashboard()
	rows := d.Table.Rows
	if rows == nil {
		rows = []view.Row{}
	}
	history := snap.History
	if history == nil {
		history = []engine.HistorySample{}
	}
	writeJSON(w, http.StatusOK, viewResponse{
		Rendered:  d.Rendered,
		Summary:   d.Summary,
		Badge:     d.Summary.Badge.Class(),
		Rows:      rows,
		Raw:       d.Raw,
		LastError: d.LastError,
		UpError:   d.UpError,
		State:     snap.Info.State.String(),
		TickCount: snap.Info.TickCount,
		LastTick:  snap.Info.LastTick,
		History:   history,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	info := s.poller.Info()
	status := "ok"
	if info.State == engine.EngineError {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"engine": info.State.String(),
		"time":   time.Now().UTC(),
	})
}

func faviconHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

func writeHTML(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
