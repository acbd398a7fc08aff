package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// UpdatedEventName is the wire name of UpdatedEvent.
const UpdatedEventName = "order_updated"

// UpdateType tells subscribers what happened to the order.
type UpdateType string

const (
	UpdateCreated       UpdateType = "created"
	UpdateUpdated       UpdateType = "updated"
	UpdateAssigned      UpdateType = "assigned"
	UpdateStatusChanged UpdateType = "status_changed"
	UpdateCancelled     UpdateType = "cancelled"
	UpdateRated         UpdateType = "rated"
	UpdateNoteAdded     UpdateType = "note_added"
)

// UpdatedEvent carries the full order state as of the end of the unit of work.
type UpdatedEvent struct {
	ID    kernel.UUID
	Type  UpdateType
	Order Snapshot
	At    time.Time
}

func (e UpdatedEvent) EventID() kernel.UUID { return e.ID }
func (e UpdatedEvent) EventName() string { return UpdatedEventName }
func (e UpdatedEvent) OccurredAt() time.Time { return e.At }

type pendingEvent struct {
	id   kernel.UUID
	kind UpdateType
	at   time.Time
}

func (o *Order) record(kind UpdateType, now time.Time) {
	o.events = append(o.events, pendingEvent{id: kernel.NewUUID(), kind: kind, at: now})
}

// DomainEvents materializes the recorded events with the current order state.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	if len(o.events) == 0 {
		return nil
	}
	snapshot := o.Snapshot()
	result := make([]kernel.DomainEvent, 0, len(o.events))
	for _, e := range o.events {
		result = append(result, UpdatedEvent{ID: e.id, Type: e.kind, Order: snapshot, At: e.at})
	}
	return result
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}
