package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rangeslider/pkg/demo"
	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/render"
	"github.com/vango-dev/rangeslider/pkg/slider"
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

// SocketPath is the websocket route.
const SocketPath = "/ws"

// Server serves the demo page and its live sessions.
type Server struct {
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	renderer *render.Renderer
	metrics  *metrics
	tracer   trace.Tracer
	logger   *slog.Logger

	nextID atomic.Uint64
	wg     sync.WaitGroup

	mu        sync.Mutex
	overrides model.Overrides
	sessions  map[*Session]struct{}
	closed    bool
}

// New creates a server. A nil config uses DefaultConfig.
func New(config *Config) *Server {
	config = config.withDefaults()

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		renderer:  render.NewRenderer(render.RendererConfig{}),
		metrics:   newMetrics(config.Registry),
		tracer:    otel.Tracer(config.TracerName),
		logger:    config.Logger.With("component", "server"),
		overrides: config.Overrides,
		sessions:  make(map[*Session]struct{}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(SocketPath, s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, s.config.MetricsPath, s.metricsHandler())

	s.router = r
}

func (s *Server) metricsHandler() http.Handler {
	if g, ok := s.config.Registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Overrides returns the overrides new sessions start from.
func (s *Server) Overrides() model.Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overrides
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// newPage builds a page body with its own slider.
func (s *Server) newPage(o model.Overrides) (*vdom.VNode, *demo.Panel) {
	return demo.NewPage(s.config.Title, o,
		demo.WithLogger(s.config.Logger),
		demo.WithSliderOptions(
			slider.WithLogger(s.config.Logger),
			slider.WithTickPolicy(s.config.TickPolicy),
			slider.WithRejectHook(func(name string, err error) {
				s.metrics.rejectedWrites.WithLabelValues(name).Inc()
			}),
		),
	)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, _ := s.newPage(s.Overrides())
	vdom.AssignAllHIDs(body, vdom.NewHIDGenerator())

	var buf bytes.Buffer
	err := s.renderer.RenderPage(&buf, render.PageData{
		Body:       body,
		Title:      s.config.Title,
		SocketPath: SocketPath,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.ReadLimit)

	id := fmt.Sprintf("s%d", s.nextID.Add(1))
	body, panel := s.newPage(s.Overrides())
	sess := newSession(s, id, conn, body, panel)

	if !s.register(sess) {
		sess.Close()
		return
	}
	defer s.unregister(sess)

	sess.serve()
}

func (s *Server) register(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.sessions[sess] = struct{}{}
	s.wg.Add(1)
	s.metrics.activeSessions.Inc()
	sess.logger.Info("session opened")
	return true
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	s.metrics.activeSessions.Dec()
	s.wg.Done()
}

func (s *Server) snapshotSessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// Broadcast makes o the starting point of new sessions and applies it to
// every open one. Fields left nil keep each session's current value.
func (s *Server) Broadcast(o model.Overrides) {
	s.mu.Lock()
	s.overrides = o
	s.mu.Unlock()

	sessions := s.snapshotSessions()
	for _, sess := range sessions {
		sess.dispatch(func() { sess.apply(o) })
	}
	s.logger.Info("overrides broadcast", "sessions", len(sessions))
}

// Shutdown closes every session and waits for them to finish or for ctx
// to expire. New connections are refused afterwards.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	for _, sess := range s.snapshotSessions() {
		sess.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("sessions closed")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
