// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	netHTTP "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddlewareLogger(t *testing.T) {
	t.Parallel()

	log := newTestLogger(nil)
	records := make([]InfoLog, 0)
	log.OnInfo(func(record InfoLog) { records = append(records, record) })

	app := fiber.New(fiber.Config{})
	require.NotNil(t, app)

	middleware := RequestMiddlewareLogger(log, []string{"/-/healthz"})
	require.NotNil(t, middleware)

	app.Use(middleware)
	app.Get("/foo", func(c *fiber.Ctx) error {
		FromContext(c.UserContext()).Info("handling foo")
		return c.SendString("hello")
	})
	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(netHTTP.StatusOK)
	})

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/foo", nil)
	req.Header.Set("User-Agent", "UnitTestAgent/1.0")
	req.Header.Set(requestIDHeaderName, "request-1")
	req.RemoteAddr = "127.0.0.1:12345"

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, records, 3)
	assert.Equal(t, IncomingRequestMessage, records[0].Message)
	assert.Equal(t, "handling foo", records[1].Message)
	assert.Equal(t, RequestCompletedMessage, records[2].Message)

	for _, record := range records {
		assert.Equal(t, RequestScope, record.Scope)
		assert.Equal(t, "request-1", record.Context[RequestIDContextKey])
	}

	incoming := records[0].Context["http"].(HTTP)
	require.NotNil(t, incoming.Request)
	assert.Equal(t, netHTTP.MethodGet, incoming.Request.Method)
	assert.Equal(t, "UnitTestAgent/1.0", incoming.Request.UserAgent)
	assert.Equal(t, "/foo", records[0].Context["path"])
	assert.Equal(t, "example.com", records[0].Context["host"].(Host).Hostname)

	completed := records[2].Context["http"].(HTTP)
	require.NotNil(t, completed.Response)
	assert.Equal(t, netHTTP.StatusOK, completed.Response.StatusCode)
	assert.Equal(t, len("hello"), completed.Response.BodyBytes)
	assert.Contains(t, records[2].Context, "responseTime")
	assert.Contains(t, records[1].Trace[0], "logger.TestRequestMiddlewareLogger")

	healthReq := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/-/healthz", nil)
	healthResp, err := app.Test(healthReq)
	require.NoError(t, err)
	defer healthResp.Body.Close()
	assert.Len(t, records, 3, "excluded prefixes are not logged")
}

func TestRequestMiddlewareGeneratesRequestID(t *testing.T) {
	t.Parallel()

	log := newTestLogger(nil)
	records := make([]InfoLog, 0)
	log.OnInfo(func(record InfoLog) { records = append(records, record) })

	app := fiber.New(fiber.Config{})
	app.Use(RequestMiddlewareLogger(log, nil))

	resp, err := app.Test(httptest.NewRequest(netHTTP.MethodGet, "http://example.com/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, records, 2)
	requestID, ok := records[0].Context[RequestIDContextKey].(string)
	require.True(t, ok)
	_, err = uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, requestID, records[1].Context[RequestIDContextKey])

	completed := records[1].Context["http"].(HTTP)
	assert.Equal(t, netHTTP.StatusNotFound, completed.Response.StatusCode)
}
