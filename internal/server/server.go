package server

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/Brownie44l1/simple-server/internal/config"
	"github.com/Brownie44l1/simple-server/internal/request"
)

// Server accepts connections one at a time and answers each accepted
// request line with the same document.
type Server struct {
	Logger Logger

	listener net.Listener
	closed   atomic.Bool
	checker  request.ResourceChecker
	document string
	readSize int
	metrics  *Metrics
}

// Listen binds cfg.Addr. It does not start accepting; call Serve.
func Listen(cfg *config.Config, logger Logger) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind to %s: %w", cfg.Addr, err)
	}

	s := newServer(cfg, logger)
	s.listener = listener
	return s, nil
}

func newServer(cfg *config.Config, logger Logger) *Server {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Server{
		Logger:   logger,
		checker:  request.NewDirChecker(cfg.StaticRoot),
		document: cfg.Document,
		readSize: cfg.ReadSize,
		metrics:  NewMetrics(),
	}
}

// Serve accepts and handles connections sequentially until Close is
// called. Accept and connection errors are logged and never stop the loop.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			s.metrics.AcceptFailures.Add(1)
			s.Logger.Error("error while establishing connection", Field{"error", err})
			continue
		}

		if err := s.serveConn(conn); err != nil {
			s.Logger.Error("error occurred while handling connection",
				Field{"error", err},
				Field{"remote_addr", conn.RemoteAddr().String()},
			)
		}
	}
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}

func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}
