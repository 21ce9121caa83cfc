package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/lthibault/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	lw := newLogWriter(rec)

	assert.Equal(t, http.StatusOK, lw.Loggable()["status"], "status should default to 200")

	http.Error(lw, "no such role", http.StatusUnprocessableEntity)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, lw.Loggable()["status"])
	assert.Equal(t, rec.Body.Len(), lw.Loggable()["bytes"])

	_, _, err := lw.Hijack()
	assert.Error(t, err, "recorder does not support hijacking")
}

func TestLoggerFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := &Logger{log.New(
		log.WithLevel(log.DebugLevel),
		log.WithFormatter(&logrus.JSONFormatter{}),
		log.WithWriter(&buf))}

	r := httptest.NewRequest(http.MethodGet, "/assign?clients=3", nil)
	id := uuid.New()

	l.WithRequest(r).WithSession(id).Debug("request served")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"path":"/assign"`)
	assert.Contains(t, out, `"query":"clients=3"`)
	assert.Contains(t, out, id.String())
}
