package user

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// AvailabilityChangedEventName is the wire name of AvailabilityChangedEvent.
const AvailabilityChangedEventName = "partner_availability_updated"

// AvailabilityChangedEvent is recorded whenever a partner's isAvailable flag flips.
type AvailabilityChangedEvent struct {
	ID          kernel.UUID
	PartnerID   kernel.UUID
	IsAvailable bool
	At          time.Time
}

func (e AvailabilityChangedEvent) EventID() kernel.UUID { return e.ID }
func (e AvailabilityChangedEvent) EventName() string { return AvailabilityChangedEventName }
func (e AvailabilityChangedEvent) OccurredAt() time.Time { return e.At }

func (u *User) DomainEvents() []kernel.DomainEvent {
	if len(u.events) == 0 {
		return nil
	}
	result := make([]kernel.DomainEvent, 0, len(u.events))
	for _, e := range u.events {
		result = append(result, e)
	}
	return result
}

func (u *User) ClearDomainEvents() {
	u.events = nil
}

// setAvailable flips the flag and records the change.
func (u *User) setAvailable(available bool, now time.Time) {
	if u.partner.IsAvailable == available {
		return
	}
	u.partner.IsAvailable = available
	u.updatedAt = now
	u.events = append(u.events, AvailabilityChangedEvent{
		ID:          kernel.NewUUID(),
		PartnerID:   u.id,
		IsAvailable: available,
		At:          now,
	})
}
