// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	requestIDHeaderName    = "x-request-id"

	RequestScope            = "request"
	RequestIDContextKey     = "requestId"
	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

type fiberLoggingContext struct {
	c          *fiber.Ctx
	handlerErr error
}

type loggingContext interface {
	Request() requestLoggingContext
	Response() responseLoggingContext
}

type requestLoggingContext interface {
	GetHeader(string) string
	URI() string
	Host() string
	Method() string
}

type responseLoggingContext interface {
	BodySize() int
	StatusCode() int
}

// HTTP is the http section of the request records context.
type HTTP struct {
	Request  *HTTPRequest  `json:"request,omitempty"`
	Response *HTTPResponse `json:"response,omitempty"`
}

// HTTPRequest contains the request details of a request record.
type HTTPRequest struct {
	Method    string `json:"method,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// HTTPResponse contains the response details of a request completed record.
type HTTPResponse struct {
	StatusCode int `json:"statusCode,omitempty"`
	BodyBytes  int `json:"bodyBytes,omitempty"`
}

// Host has the host information.
type Host struct {
	Hostname      string `json:"hostname,omitempty"`
	ForwardedHost string `json:"forwardedHost,omitempty"`
	IP            string `json:"ip,omitempty"`
}

func removePort(host string) string {
	return strings.Split(host, ":")[0]
}

// requestID returns the x-request-id header of the request, or a new random uuid
// when the header is missing.
func requestID(ctx loggingContext) string {
	if id := ctx.Request().GetHeader(requestIDHeaderName); id != "" {
		return id
	}
	// Generate a random uuid string. e.g. 16c9c1f2-c001-40d3-bbfe-48857367e7b5
	id, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return id.String()
}

func requestHost(ctx loggingContext) Host {
	return Host{
		ForwardedHost: ctx.Request().GetHeader(forwardedHostHeaderKey),
		Hostname:      removePort(ctx.Request().Host()),
		IP:            ctx.Request().GetHeader(forwardedForHeaderKey),
	}
}

func logIncomingRequest(ctx loggingContext, log *ScopedLogger) {
	log.Info(IncomingRequestMessage, Context{
		"http": HTTP{
			Request: &HTTPRequest{
				Method:    ctx.Request().Method(),
				UserAgent: ctx.Request().GetHeader("user-agent"),
			},
		},
		"path": ctx.Request().URI(),
		"host": requestHost(ctx),
	})
}

func logRequestCompleted(ctx loggingContext, log *ScopedLogger, startTime time.Time) {
	log.Info(RequestCompletedMessage, Context{
		"http": HTTP{
			Request: &HTTPRequest{
				Method:    ctx.Request().Method(),
				UserAgent: ctx.Request().GetHeader("user-agent"),
			},
			Response: &HTTPResponse{
				StatusCode: ctx.Response().StatusCode(),
				BodyBytes:  ctx.Response().BodySize(),
			},
		},
		"path":         ctx.Request().URI(),
		"host":         requestHost(ctx),
		"responseTime": float64(time.Since(startTime).Milliseconds()),
	})
}

func (flc *fiberLoggingContext) Request() requestLoggingContext {
	return flc
}

func (flc *fiberLoggingContext) Response() responseLoggingContext {
	return flc
}

func (flc *fiberLoggingContext) GetHeader(key string) string {
	return flc.c.Get(key, "")
}

func (flc *fiberLoggingContext) URI() string {
	return string(flc.c.Request().URI().RequestURI())
}

func (flc *fiberLoggingContext) Host() string {
	return string(flc.c.Request().Host())
}

func (flc *fiberLoggingContext) Method() string {
	return flc.c.Method()
}

func (flc fiberLoggingContext) getFiberError() *fiber.Error {
	if fiberErr, ok := flc.handlerErr.(*fiber.Error); flc.handlerErr != nil && ok {
		return fiberErr
	}
	return nil
}

func (flc *fiberLoggingContext) setError(err error) {
	flc.handlerErr = err
}

func (flc *fiberLoggingContext) BodySize() int {
	if fiberErr := flc.getFiberError(); fiberErr != nil {
		return len(fiberErr.Error())
	}

	if content := flc.c.GetRespHeader("Content-Length"); content != "" {
		if length, err := strconv.Atoi(content); err == nil {
			return length
		}
	}
	return len(flc.c.Response().Body())
}

func (flc *fiberLoggingContext) StatusCode() int {
	if fiberErr := flc.getFiberError(); fiberErr != nil {
		return fiberErr.Code
	}

	return flc.c.Response().StatusCode()
}

// RequestMiddlewareLogger is a fiber middleware to log all requests on a request
// scope of log. The scope carries the request id in its context and is stored in
// the fiber user context, so handlers can retrieve it with FromContext.
func RequestMiddlewareLogger(log *Logger, excludedPrefix []string) fiber.Handler {
	return func(fiberCtx *fiber.Ctx) error {
		fiberLoggingContext := &fiberLoggingContext{c: fiberCtx}

		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(fiberLoggingContext.Request().URI(), prefix) {
				return fiberCtx.Next()
			}
		}

		start := time.Now()

		requestLog := log.CreateScope(RequestScope, Context{RequestIDContextKey: requestID(fiberLoggingContext)})

		ctx := WithContext(fiberCtx.UserContext(), requestLog)
		fiberCtx.SetUserContext(ctx)

		logIncomingRequest(fiberLoggingContext, requestLog)
		err := fiberCtx.Next()
		fiberLoggingContext.setError(err)

		logRequestCompleted(fiberLoggingContext, requestLog, start)

		return err
	}
}
