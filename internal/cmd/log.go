package cmd

import (
	"bufio"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/lthibault/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger wraps github.com/lthibault/log so that field helpers keep
// returning *Logger.
type Logger struct{ log.Logger }

func (l Logger) With(v log.Loggable) *Logger               { return &Logger{l.Logger.With(v)} }
func (l Logger) WithError(err error) *Logger               { return &Logger{l.Logger.WithError(err)} }
func (l Logger) WithField(s string, v interface{}) *Logger { return &Logger{l.Logger.WithField(s, v)} }
func (l Logger) WithFields(log logrus.Fields) *Logger      { return &Logger{l.Logger.WithFields(log)} }

// WithRequest tags entries with the request line.  Assign requests carry
// their parameters in the query, so it is logged too.
func (l *Logger) WithRequest(r *http.Request) *Logger {
	f := log.F{
		"method": r.Method,
		"path":   r.URL.Path,
	}

	if q := r.URL.RawQuery; q != "" {
		f["query"] = q
	}

	return l.With(f)
}

// WithSession tags entries with a websocket session id.
func (l *Logger) WithSession(id uuid.UUID) *Logger {
	return l.WithField("session", id)
}

// logWriter records the status and size of a response so that it can be
// logged once the handler returns.
type logWriter struct {
	http.ResponseWriter
	status int
	n      int
}

func newLogWriter(w http.ResponseWriter) *logWriter {
	return &logWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *logWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.n += n
	return n, err
}

func (w *logWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Hijack hands the connection to the websocket upgrader.
func (w *logWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer cannot be hijacked")
	}

	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *logWriter) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"status": w.status,
		"bytes":  w.n,
	}
}
