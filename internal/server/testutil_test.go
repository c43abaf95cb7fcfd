package server

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/simple-server/internal/config"
)

const testDocument = "<!DOCTYPE html>\n<html><body><h1>Hello</h1></body></html>\n"

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingLogger keeps every entry so tests can assert on them
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	r.entries = append(r.entries, logEntry{level: level, msg: msg, fields: m})
}

func (r *recordingLogger) Debug(msg string, fields ...Field) { r.record("debug", msg, fields) }
func (r *recordingLogger) Info(msg string, fields ...Field)  { r.record("info", msg, fields) }
func (r *recordingLogger) Warn(msg string, fields ...Field)  { r.record("warn", msg, fields) }
func (r *recordingLogger) Error(msg string, fields ...Field) { r.record("error", msg, fields) }

func (r *recordingLogger) find(msg string) (logEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

func (r *recordingLogger) count(msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.msg == msg {
			n++
		}
	}
	return n
}

// testConfig lays out a static root holding index.html and a document file
func testConfig(t *testing.T) *config.Config {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("static copy"), 0o644))

	docDir := t.TempDir()
	doc := filepath.Join(docDir, "index.html")
	require.NoError(t, os.WriteFile(doc, []byte(testDocument), 0o644))

	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.StaticRoot = root
	cfg.Document = doc
	return cfg
}

// fakeConn reads from a fixed request and collects what is written back
type fakeConn struct {
	*strings.Reader
	out bytes.Buffer
}

func newFakeConn(data string) *fakeConn {
	return &fakeConn{Reader: strings.NewReader(data)}
}

func (c *fakeConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}
