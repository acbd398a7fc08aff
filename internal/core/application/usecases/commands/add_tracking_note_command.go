package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAddTrackingNoteCommandIsNotConstructed = errors.New(
	"AddTrackingNoteCommand must be created via NewAddTrackingNoteCommand constructor",
)

type AddTrackingNoteCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
	text    string

	guard guard.ConstructorGuard
}

func NewAddTrackingNoteCommand(actor kernel.Actor, orderID kernel.UUID, text string) (AddTrackingNoteCommand, error) {
	var textErr error
	switch trimmed := strings.TrimSpace(text); {
	case trimmed == "":
		textErr = errs.NewValueIsRequiredError("text")
	case len(trimmed) > order.MaxNoteLength:
		textErr = errs.NewValueIsOutOfRangeError("text.length", len(trimmed), 1, order.MaxNoteLength)
	}
	if err := errors.Join(actor.ID.Validate(), orderID.Validate(), textErr); err != nil {
		return AddTrackingNoteCommand{}, err
	}
	return AddTrackingNoteCommand{
		actor:   actor,
		orderID: orderID,
		text:    text,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddTrackingNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddTrackingNoteCommandIsNotConstructed)
}

func (c AddTrackingNoteCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AddTrackingNoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddTrackingNoteCommand) Text() string {
	return c.text
}
