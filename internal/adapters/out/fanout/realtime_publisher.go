package fanout

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Broadcaster is the part of realtime.Registry the publisher needs.
type Broadcaster interface {
	BroadcastToRole(role kernel.Role, msg []byte) int
	BroadcastToUser(userID kernel.UUID, msg []byte) int
}

// RealtimePublisher implements ports.EventPublisher on top of the websocket registry.
type RealtimePublisher struct {
	hub    Broadcaster
	logger *slog.Logger
}

func NewRealtimePublisher(hub Broadcaster, logger *slog.Logger) *RealtimePublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RealtimePublisher{hub: hub, logger: logger.With("component", "realtime_publisher")}
}

// Publish never blocks on slow clients. Events without a wire form are skipped.
func (p *RealtimePublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errs []error
	for _, event := range events {
		body, route, err := Encode(event)
		var unsupported UnsupportedEventError
		if errors.As(err, &unsupported) {
			p.logger.DebugContext(ctx, "skipping event", "event", unsupported.Name)
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		delivered := 0
		for _, role := range route.Roles {
			delivered += p.hub.BroadcastToRole(role, body)
		}
		for _, userID := range route.Users {
			delivered += p.hub.BroadcastToUser(userID, body)
		}
		p.logger.DebugContext(ctx, "event broadcast",
			"event", event.EventName(),
			"key", route.Key,
			"clients", delivered,
		)
	}
	return errors.Join(errs...)
}
