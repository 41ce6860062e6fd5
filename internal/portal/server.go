package portal

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"golang.org/x/sync/errgroup"

	"github.com/agolabs/architect/internal/discovery"
	"github.com/agolabs/architect/internal/logging"
	"github.com/agolabs/architect/internal/sim"
	"github.com/agolabs/architect/internal/store"
	"github.com/agolabs/architect/internal/version"
	"go.uber.org/zap"
)

const (
	// DefaultAddr is the listen address when none is configured
	DefaultAddr = ":8787"

	// DefaultInstance is the mDNS instance name when none is configured
	DefaultInstance = "Meta Architect"

	shutdownTimeout = 10 * time.Second
)

// Config holds the server configuration
type Config struct {
	Addr      string
	Advertise bool   // Register over mDNS
	Instance  string // mDNS instance name
}

// Server is the portal preview server
type Server struct {
	config   Config
	kv       store.KV
	page     *template.Template
	upgrader websocket.Upgrader
	handler  http.Handler

	// play streams the deployment script; replaced in tests
	play func(ctx context.Context, keyword string, emit func(string) error) error
}

// New creates a server that reads blueprints from kv
func New(config Config, kv store.KV) (*Server, error) {
	if kv == nil {
		return nil, errors.New("store is required")
	}
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.Instance == "" {
		config.Instance = DefaultInstance
	}

	page, err := parsePreview()
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview template: %w", err)
	}

	s := &Server{
		config: config,
		kv:     kv,
		page:   page,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		play: sim.Play,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler with every route mounted
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully. The mDNS advertisement, when enabled, lives as long as the
// listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logging.Info("Portal listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("version", version.Version),
		zap.Bool("advertise", s.config.Advertise),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("portal server failed: %w", err)
		}
		return nil
	})

	if s.config.Advertise {
		g.Go(func() error {
			return s.advertise(gctx, ln.Addr())
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down portal...")
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Portal shutdown timed out, forcing close", zap.Error(err))
			return httpServer.Close()
		}
		return nil
	})

	err := g.Wait()
	logging.Sync()
	return err
}

// advertise registers the portal over mDNS until ctx is canceled
func (s *Server) advertise(ctx context.Context, addr net.Addr) error {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("cannot advertise non-TCP address %s", addr)
	}

	srv, err := zeroconf.Register(s.config.Instance, discovery.ServiceType, discovery.ServiceDomain,
		tcp.Port, discovery.TXTRecords(version.Version, "/"), nil)
	if err != nil {
		// The preview still works without discovery.
		logging.Warn("mDNS registration failed", zap.Error(err))
		return nil
	}
	logging.Info("Portal advertised over mDNS",
		zap.String("instance", s.config.Instance),
		zap.String("service", discovery.ServiceType),
		zap.Int("port", tcp.Port),
	)

	<-ctx.Done()
	srv.Shutdown()
	return nil
}
