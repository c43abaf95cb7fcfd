package server

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/simple-server/internal/request"
)

func TestHandleServesDocument(t *testing.T) {
	logger := &recordingLogger{}
	s := newServer(testConfig(t), logger)
	conn := newFakeConn("GET /index.html HTTP/1.1\r\nHost: localhost\r\n\r\n")

	o, err := s.handle(conn, nil)
	require.NoError(t, err)
	assert.Equal(t, outcomeServed, o)
	assert.Equal(t, "HTTP/1.1 200 OK \r\n\r\n"+testDocument, conn.out.String())

	accepted, ok := logger.find("request accepted")
	require.True(t, ok)
	assert.Equal(t, "GET", accepted.fields["method"])
	assert.Equal(t, "/index.html", accepted.fields["uri"])
	assert.Equal(t, "HTTP/1.1", accepted.fields["version"])

	sent, ok := logger.find("response sent")
	require.True(t, ok)
	assert.Equal(t, 200, sent.fields["status"])
	assert.Equal(t, conn.out.String(), sent.fields["response"])
}

func TestHandleDocumentIgnoresURI(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.StaticRoot+"/other.txt", []byte("other"), 0o644))
	s := newServer(cfg, &NullLogger{})

	conn := newFakeConn("GET /other.txt HTTP/1.1\r\n")
	_, err := s.handle(conn, nil)

	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK \r\n\r\n"+testDocument, conn.out.String())
}

func TestHandleRejectsWithoutResponse(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind request.ErrorKind
	}{
		{"unsupported method", "POST / HTTP/1.1\r\n", request.UnsupportedMethod},
		{"missing method", "\r\nGET / HTTP/1.1\r\n", request.MissingMethod},
		{"missing uri", "GET\r\n", request.MissingURI},
		{"resource not found", "GET /missing.txt HTTP/1.1\r\n", request.ResourceNotFound},
		{"missing version", "GET /index.html\r\n", request.MissingVersion},
		{"unsupported version", "GET /index.html HTTP/1.0\r\n", request.UnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			s := newServer(testConfig(t), logger)
			conn := newFakeConn(tt.data)

			o, err := s.handle(conn, nil)
			require.NoError(t, err)
			assert.Equal(t, outcomeRejected, o)
			assert.Equal(t, 0, conn.out.Len())

			entry, ok := logger.find("bad request")
			require.True(t, ok)
			assert.Equal(t, "error", entry.level)
			assert.Equal(t, tt.kind.String(), entry.fields["kind"])
			_, accepted := logger.find("request accepted")
			assert.False(t, accepted)
		})
	}
}

func TestHandleUsesChecker(t *testing.T) {
	s := newServer(testConfig(t), &NullLogger{})
	var asked []string
	s.checker = request.CheckerFunc(func(uri string) bool {
		asked = append(asked, uri)
		return true
	})

	conn := newFakeConn("GET /anything/at/all HTTP/1.1\r\n")
	o, err := s.handle(conn, nil)

	require.NoError(t, err)
	assert.Equal(t, outcomeServed, o)
	assert.Equal(t, []string{"/anything/at/all"}, asked)
}

func TestHandleEmptyRequest(t *testing.T) {
	s := newServer(testConfig(t), &NullLogger{})
	conn := newFakeConn("")

	o, err := s.handle(conn, nil)
	assert.Equal(t, outcomeFailed, o)
	assert.ErrorIs(t, err, request.ErrEmptyRequest)
	assert.Equal(t, 0, conn.out.Len())
}

func TestHandleMissingDocument(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.Document))
	s := newServer(cfg, &NullLogger{})
	conn := newFakeConn("GET /index.html HTTP/1.1\r\n")

	o, err := s.handle(conn, nil)
	assert.Equal(t, outcomeFailed, o)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "read document"))
	assert.Equal(t, 0, conn.out.Len())
}

func TestHandleInvalidDocument(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Document, []byte("<h1>\xff\xfe</h1>"), 0o644))
	logger := &recordingLogger{}
	s := newServer(cfg, logger)
	conn := newFakeConn("GET /index.html HTTP/1.1\r\n")

	o, err := s.handle(conn, nil)
	assert.Equal(t, outcomeFailed, o)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Equal(t, 0, conn.out.Len())
	_, sent := logger.find("response sent")
	assert.False(t, sent)
}

func TestNewServerDefaultsLogger(t *testing.T) {
	s := newServer(testConfig(t), nil)

	_, ok := s.Logger.(*DefaultLogger)
	assert.True(t, ok)
}

func TestHandleWriteFailure(t *testing.T) {
	s := newServer(testConfig(t), &NullLogger{})
	boom := errors.New("broken pipe")
	conn := &brokenConn{fakeConn: newFakeConn("GET /index.html HTTP/1.1\r\n"), err: boom}

	o, err := s.handle(conn, nil)
	assert.Equal(t, outcomeFailed, o)
	assert.ErrorIs(t, err, boom)
}

func TestHandleTruncatedLine(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReadSize = 16
	s := newServer(cfg, &NullLogger{})
	s.checker = request.CheckerFunc(func(string) bool { return true })

	// "GET /index.html " fits, the version does not
	conn := newFakeConn("GET /index.html HTTP/1.1\r\n")
	o, err := s.handle(conn, nil)

	require.NoError(t, err)
	assert.Equal(t, outcomeRejected, o)
	assert.Equal(t, 0, conn.out.Len())
}

type brokenConn struct {
	*fakeConn
	err error
}

func (c *brokenConn) Write(p []byte) (int, error) {
	return 0, c.err
}
