package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/config"
	"github.com/academyhq/academy-service/internal/events"
)

// NotificationService turns domain events into outbound notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     loggerOrNop(logger),
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventEventScheduled, n.handleEventScheduled)
	n.dispatcher.Subscribe(events.EventEventDeleted, n.handleEventDeleted)
	n.dispatcher.Subscribe(events.EventPlayerEnrolled, n.handlePlayerEnrolled)
	n.dispatcher.Subscribe(events.EventAttendanceReconciled, n.handleAttendanceReconciled)
}

func (n *NotificationService) handleEventScheduled(ctx context.Context, event events.Event) error {
	n.logger.Info("EventScheduled", zap.Int64("event_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendEmail(ctx, event)
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleEventDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("EventDeleted", zap.Int64("event_id", event.ResourceID), zap.Int64("actor", event.Actor.SubjectID))
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handlePlayerEnrolled(ctx context.Context, event events.Event) error {
	n.logger.Info("PlayerEnrolled", zap.Int64("academy_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendEmail(ctx, event)
	return nil
}

func (n *NotificationService) handleAttendanceReconciled(ctx context.Context, event events.Event) error {
	n.logger.Debug("AttendanceReconciled", zap.Int64("event_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) sendEmail(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification queued",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhook(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification queued",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
