package worker

import (
	"github.com/academyhq/academy-service/internal/events"
	"github.com/academyhq/academy-service/internal/service"
)

// StartEventWorkers registers notification handlers and, when forwarder is set, relays
// every domain event to the external channel.
func StartEventWorkers(dispatcher events.Dispatcher, notifications *service.NotificationService, forwarder *events.Forwarder) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if forwarder != nil && dispatcher != nil {
		forwarder.Attach(dispatcher)
	}
}
