package http

import (
	"time"

	"weather-reminder/pkg/log"

	"go.uber.org/zap"
)

// HTTPLogger receives a callback around every outgoing request.
// Query strings are not passed since they may carry credentials.
type HTTPLogger interface {
	LogRequest(method, path string)
	LogResponse(method, path string, httpStatus int, latency time.Duration, err error)
}

type noopLogger struct{}

func (noopLogger) LogRequest(string, string) {}

func (noopLogger) LogResponse(string, string, int, time.Duration, error) {}

// ZapLogger logs outgoing calls through pkg/log under the given client name.
type ZapLogger struct {
	Name string
}

func (l ZapLogger) LogRequest(method, path string) {
	log.Debug("Outgoing request",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("path", path))
}

func (l ZapLogger) LogResponse(method, path string, httpStatus int, latency time.Duration, err error) {
	fields := []zap.Field{
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", httpStatus),
		zap.Duration("latency", latency),
	}
	if err != nil {
		log.Warn("Outgoing request failed", append(fields, zap.Error(err))...)
		return
	}
	log.Debug("Outgoing request finished", fields...)
}
