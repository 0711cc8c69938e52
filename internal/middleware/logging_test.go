package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/models"
)

func captureLogger(t *testing.T, env string) *bytes.Buffer {
	t.Helper()
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var buf bytes.Buffer
	InitLogger(env, "debug", &buf)
	return &buf
}

func TestInitLogger_ProductionUsesJSON(t *testing.T) {
	buf := captureLogger(t, "production")

	ctx := context.WithValue(context.Background(), RequestIDKey, "rid-1")
	ctx = context.WithValue(ctx, UserIDKey, uint(7))
	Logger.With("component", "test").InfoContext(ctx, "hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "rid-1", entry["request_id"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, "test", entry["component"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel(" Warning ").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}

func TestStructuredLogger_WithRequestContext(t *testing.T) {
	buf := captureLogger(t, "development")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithAppError(c, err)
		},
	})
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "req-42" }}))
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return models.NewNotFoundError("Post", 1) })
	app.Get("/boom", func(c *fiber.Ctx) error { return models.NewInternalError(assert.AnError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "request processed")
	assert.Contains(t, lines[0], "request_id=req-42")
	assert.Contains(t, lines[0], "status=200")
	assert.Contains(t, lines[1], "request rejected")
	assert.Contains(t, lines[1], "status=404")
	assert.Contains(t, lines[2], "request failed")
	assert.Contains(t, lines[2], "status=500")
}

func TestInitMetrics_ReturnsSingleton(t *testing.T) {
	first := InitMetrics("scribe-test")
	second := InitMetrics("scribe-test")
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.NotNil(t, MetricsMiddleware(first))
}
