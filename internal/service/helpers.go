package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/events"
)

func publish(ctx context.Context, d events.Dispatcher, logger *zap.Logger, event events.Event) {
	if err := d.Publish(ctx, event); err != nil {
		logger.Warn("publish failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func dispatcherOrDiscard(d events.Dispatcher) events.Dispatcher {
	if d == nil {
		return events.Discard
	}
	return d
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
