package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Brownie44l1/simple-server/internal/request"
	"github.com/Brownie44l1/simple-server/internal/response"
)

// ErrInvalidDocument means the document is not valid UTF-8 text.
var ErrInvalidDocument = errors.New("document is not valid UTF-8")

// serveConn handles the single request on conn and closes it.
func (s *Server) serveConn(conn net.Conn) error {
	defer conn.Close()

	start := time.Now()
	fields := []Field{
		{"conn_id", uuid.NewString()},
		{"remote_addr", conn.RemoteAddr().String()},
	}

	o, err := s.handle(conn, fields)
	s.metrics.RecordConnection(o, time.Since(start))

	s.Logger.Debug("connection closed", append(fields,
		Field{"duration_ms", time.Since(start).Milliseconds()},
		Field{"connections_total", s.metrics.ConnectionsTotal.Load()},
	)...)
	return err
}

// handle reads the request line from rw and, if it is accepted, writes the
// fixed document back. A rejected request line gets no response at all.
func (s *Server) handle(rw io.ReadWriter, fields []Field) (outcome, error) {
	line, err := request.ReadLine(rw, s.readSize)
	if err != nil {
		return outcomeFailed, err
	}

	req, err := request.ParseRequestLine(line, s.checker)
	if err != nil {
		kind := "unknown"
		var perr *request.ParseError
		if errors.As(err, &perr) {
			kind = perr.Kind.String()
		}
		s.Logger.Error("bad request", append(fields,
			Field{"error", err},
			Field{"kind", kind},
		)...)
		return outcomeRejected, nil
	}

	s.Logger.Info("request accepted", append(fields,
		Field{"method", req.Method},
		Field{"uri", req.URI},
		Field{"version", req.HTTPVersion},
	)...)

	doc, err := os.ReadFile(s.document)
	if err != nil {
		return outcomeFailed, fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(doc) {
		return outcomeFailed, fmt.Errorf("read document %s: %w", s.document, ErrInvalidDocument)
	}

	w := response.NewWriter(rw)
	if err := w.WriteStatusLine(response.StatusOK); err != nil {
		return outcomeFailed, fmt.Errorf("write response: %w", err)
	}
	if err := w.WriteBody(doc); err != nil {
		return outcomeFailed, fmt.Errorf("write response: %w", err)
	}
	if err := w.Flush(); err != nil {
		return outcomeFailed, fmt.Errorf("flush response: %w", err)
	}

	s.Logger.Info("response sent", append(fields,
		Field{"status", int(w.StatusCode())},
		Field{"response", w.String()},
		Field{"bytes", w.Len()},
	)...)
	return outcomeServed, nil
}
