package coap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/submission"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/plgd-dev/go-coap/v3/mux"
	coapnet "github.com/plgd-dev/go-coap/v3/net"
	"github.com/plgd-dev/go-coap/v3/options"
	"github.com/plgd-dev/go-coap/v3/udp"
	udpserver "github.com/plgd-dev/go-coap/v3/udp/server"
	"github.com/rs/zerolog"
)

const DefaultRequestTimeout = 10 * time.Second

var ErrAlreadyStarted = errors.New("coap server already started")

type State int32

const (
	Stopped State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "stopped"
	}
}

type Config struct {
	Host                     string
	Port                     int
	RequestTimeout           time.Duration
	SuppressProtocolWarnings bool
}

type Server struct {
	cfg     Config
	handler submission.Handler
	rl      *logging.RateLimitedLogger
	metrics *metrics.Metrics

	state atomic.Int32

	mu       sync.Mutex
	log      zerolog.Logger
	server   *udpserver.Server
	listener *coapnet.UDPConn
	done     chan struct{}
}

func NewServer(cfg Config, handler submission.Handler, rl *logging.RateLimitedLogger, m *metrics.Metrics) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return &Server{
		cfg:     cfg,
		handler: handler,
		rl:      rl,
		metrics: m,
		log:     zerolog.Nop(),
	}
}

func (s *Server) State() State {
	return State(s.state.Load())
}

// Start binds the UDP socket and begins serving in the background. The
// server keeps running until Stop is called or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(Stopped), int32(Starting)) {
		return ErrAlreadyStarted
	}

	log := logging.GetLoggerFromContext(ctx).With().Str("transport", "coap").Logger()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	l, err := coapnet.NewListenUDP("udp", addr)
	if err != nil {
		s.state.Store(int32(Stopped))
		return fmt.Errorf("failed to bind coap listener on %s: %w", addr, err)
	}

	router, err := s.newRouter(log)
	if err != nil {
		l.Close()
		s.state.Store(int32(Stopped))
		return err
	}

	srv := udp.NewServer(
		options.WithMux(router),
		options.WithContext(logging.NewContextWithLogger(ctx, log)),
		options.WithErrors(s.transportError(log)),
	)

	done := make(chan struct{})

	s.mu.Lock()
	s.log = log
	s.server = srv
	s.listener = l
	s.done = done
	s.mu.Unlock()

	s.state.Store(int32(Running))

	go func() {
		defer close(done)

		if err := srv.Serve(l); err != nil && s.State() == Running {
			log.Error().Err(err).Msg("coap server stopped unexpectedly")
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}

		s.mu.Lock()
		current := s.done == done
		s.mu.Unlock()

		if current {
			s.Stop()
		}
	}()

	log.Info().Str("addr", l.LocalAddr().String()).Msg("coap server started")

	return nil
}

// Stop shuts the server down and releases the socket. Calling Stop on a
// server that is not running does nothing.
func (s *Server) Stop() {
	if !s.state.CompareAndSwap(int32(Running), int32(Stopping)) {
		return
	}

	s.mu.Lock()
	srv, l, done, log := s.server, s.listener, s.done, s.log
	s.mu.Unlock()

	srv.Stop()
	l.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Warn().Msg("timed out waiting for coap server to stop")
	}

	s.mu.Lock()
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	s.state.Store(int32(Stopped))

	log.Info().Msg("coap server stopped")
}

// Addr returns the bound address, or nil when the server is not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.LocalAddr()
}

func (s *Server) newRouter(log zerolog.Logger) (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(s.recoverer(log))

	ingest := mux.HandlerFunc(s.serveIngestion)

	for _, p := range submission.IngestionPaths {
		if p == "/" {
			continue
		}
		if err := r.Handle(p, ingest); err != nil {
			return nil, fmt.Errorf("failed to register coap path %s: %w", p, err)
		}
	}

	for _, p := range submission.DiagnosticPaths {
		if err := r.Handle(p, mux.HandlerFunc(s.serveDiagnostic)); err != nil {
			return nil, fmt.Errorf("failed to register coap path %s: %w", p, err)
		}
	}

	r.DefaultHandle(mux.HandlerFunc(s.serveDefault))

	return r, nil
}
