package kernel

import "time"

// DomainEvent is something that happened to an aggregate and is published after the
// unit of work that produced it commits.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
