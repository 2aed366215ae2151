package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-gems/internal/config"
)

// Config holds the websocket server settings.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// PongPeriod is how long a connection may stay silent before it is
	// dropped. PingPeriod must be shorter.
	PongPeriod time.Duration
	PingPeriod time.Duration

	// WriteTimeout bounds a single write.
	WriteTimeout time.Duration

	// MaxBoardSide caps the width and height a client may request.
	MaxBoardSide int

	// Game supplies board defaults, the cascade cap and scoring.
	Game config.GemsConfig
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		PongPeriod:   60 * time.Second,
		PingPeriod:   20 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxBoardSide: 16,
		Game:         config.DefaultGemsConfig(),
	}
}

func (cfg Config) validate() error {
	switch {
	case cfg.PongPeriod <= 0:
		return errors.New("positive pong period required")
	case cfg.PingPeriod <= 0:
		return errors.New("positive ping period required")
	case cfg.PingPeriod >= cfg.PongPeriod:
		return errors.New("ping period must be less than pong period")
	case cfg.WriteTimeout <= 0:
		return errors.New("positive write timeout required")
	case cfg.MaxBoardSide < 3:
		return errors.New("max board side must be at least 3")
	}
	return cfg.Game.Validate()
}

// Server upgrades HTTP requests on /ws and runs one game per connection.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	mux      *http.ServeMux
	conns    atomic.Int64
}

// NewServer creates a websocket server.
func NewServer(cfg Config, logger *log.Logger) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ws: invalid config: %w", err)
	}

	s := &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: logger.WithPrefix("ws"),
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /ws", s.handleSocket)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Connections returns the number of open sockets.
func (s *Server) Connections() int64 {
	return s.conns.Load()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok %d\n", s.conns.Load())
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.conns.Add(1)
	defer s.conns.Add(-1)

	c := newSocket(conn, s.config, s.logger.With("remote", r.RemoteAddr))
	c.run(r.Context())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		// Sockets outlive Shutdown once hijacked; their contexts end with ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting websocket server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
