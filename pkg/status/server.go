package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second

	unknownHost = "unknown"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Hostname  string `json:"hostname"`
	Project   string `json:"project"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type InfoResponse struct {
	Project      string   `json:"project"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Hostname     string   `json:"hostname"`
	Environment  string   `json:"environment"`
}

type Server struct {
	config    Config
	log       *zap.Logger
	mux       *http.ServeMux
	metrics   *metrics
	startedAt time.Time
}

func NewServer(config Config, log *zap.Logger) *Server {
	config.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		config:    config,
		log:       log,
		mux:       http.NewServeMux(),
		metrics:   newMetrics(),
		startedAt: config.Clock.Now(),
	}

	s.handle("GET /{$}", "/", s.home)
	s.handle("GET /health", "/health", s.health)
	s.handle("GET /api/info", "/api/info", s.info)
	s.mux.Handle("GET /metrics", s.metrics.handler())

	return s
}

// Handler exposes the instrumented router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener and shuts down gracefully when ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("status server listening", zap.String("addr", listener.Addr().String()))
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down status server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down status server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handle(pattern string, route string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(route, h))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.config.Clock.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := s.config.Clock.Since(start)
		s.metrics.record(r.Method, route, rec.status, elapsed)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

func (s *Server) hostname() string {
	host, err := s.config.Hostname()
	if err != nil || host == "" {
		s.log.Warn("resolving hostname", zap.Error(err))
		return unknownHost
	}
	return host
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Hostname:  s.hostname(),
		Project:   s.config.Slug,
		Timestamp: s.config.Clock.Now().UTC().Format(time.RFC3339),
		Version:   s.config.Version,
	})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Project:      s.config.Project,
		Description:  s.config.Description,
		Technologies: s.config.Technologies,
		Hostname:     s.hostname(),
		Environment:  s.config.Environment,
	})
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	host := s.hostname()
	ip, err := s.config.LookupIP(host)
	if err != nil {
		s.log.Debug("resolving server ip", zap.String("host", host), zap.Error(err))
		ip = unknownHost
	}

	data := pageData{
		Project:      s.config.Project,
		Description:  s.config.Description,
		Hostname:     host,
		ServerIP:     ip,
		DeployedAt:   s.startedAt.UTC().Format("2006-01-02 15:04:05") + " UTC",
		Technologies: s.config.Technologies,
		Version:      s.config.Version,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error("rendering status page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render page")
	}
}
