package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/backoffice-api/internal/config"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/orders", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/orders", "GET", 200, 4*time.Millisecond)
	m.RecordError("/orders", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/orders|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/orders|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.InDelta(t, 3.0, snap.AverageLatencyMS, 0.001)

	snap.Requests["/orders|GET|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/orders|GET|200"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Zero(t, m.Snapshot().TotalRequests)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "shouting"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerConsoleFormat(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug", Format: "console", Service: "backoffice-api"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestRequestLoggerRecordsErrorStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/orders/:id", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("order", nil)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/orders/42", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/orders/42", fields["path"])
	assert.Equal(t, "/orders/:id", fields["route"])
	assert.Equal(t, int64(fiber.StatusNotFound), fields["status"])

	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/orders/:id|GET|404"])
}
