package schedule

import (
	"weather-reminder/pkg/log"

	"github.com/go-co-op/gocron/v2"
)

// zapLogger routes gocron's own messages to the application logger.
type zapLogger struct{}

var _ gocron.Logger = zapLogger{}

func (zapLogger) Debug(msg string, args ...any) { log.Debugw(msg, args...) }

func (zapLogger) Error(msg string, args ...any) { log.Errorw(msg, args...) }

func (zapLogger) Info(msg string, args ...any) { log.Debugw(msg, args...) }

func (zapLogger) Warn(msg string, args ...any) { log.Warnw(msg, args...) }
