package response

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// StatusCode represents HTTP status codes
type StatusCode int

const (
	StatusOK StatusCode = 200
)

var statusText = map[StatusCode]string{
	StatusOK: "OK",
}

type writerState int

const (
	stateStart writerState = iota
	stateHeadWritten
	stateBodyWritten
)

// Writer writes a single bare response: a status line, an empty header
// section and a raw body. Nothing reaches the connection until Flush.
type Writer struct {
	bw         *bufio.Writer
	sent       bytes.Buffer
	state      writerState
	statusCode StatusCode
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		bw:    bufio.NewWriter(w),
		state: stateStart,
	}
}

// StatusLine renders "HTTP/1.1 <code> <reason> \r\n". The space before CRLF
// is part of the line clients have always received from this server.
func StatusLine(code StatusCode) string {
	reason, ok := statusText[code]
	if !ok {
		reason = "Unknown"
	}
	return fmt.Sprintf("HTTP/1.1 %d %s \r\n", code, reason)
}

// WriteStatusLine writes the status line followed by the blank line that
// ends the (empty) header section.
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	if err := w.write([]byte(StatusLine(code) + "\r\n")); err != nil {
		return err
	}

	w.statusCode = code
	w.state = stateHeadWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadWritten {
		return fmt.Errorf("must write status line before body")
	}

	if err := w.write(data); err != nil {
		return err
	}

	w.state = stateBodyWritten
	return nil
}

// Flush pushes everything buffered to the underlying writer. A short write
// is reported as io.ErrShortWrite.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

func (w *Writer) write(p []byte) error {
	if _, err := w.bw.Write(p); err != nil {
		return err
	}
	w.sent.Write(p)
	return nil
}

// String returns everything written so far, for logging.
func (w *Writer) String() string {
	return w.sent.String()
}

func (w *Writer) Len() int {
	return w.sent.Len()
}

func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}
