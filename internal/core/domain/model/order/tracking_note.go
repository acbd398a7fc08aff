package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// MaxNoteLength is the longest tracking note text, in bytes.
const MaxNoteLength = 500

// TrackingNote is a free-text entry in the order's append-only tracking log.
type TrackingNote struct {
	id        kernel.UUID
	text      string
	authorID  kernel.UUID
	createdAt time.Time
}

func NewTrackingNote(id kernel.UUID, text string, authorID kernel.UUID, createdAt time.Time) (TrackingNote, error) {
	text = strings.TrimSpace(text)
	var textErr error
	switch {
	case text == "":
		textErr = errs.NewValueIsRequiredError("note.text")
	case len(text) > MaxNoteLength:
		textErr = errs.NewValueIsInvalidErrorWithCause("note.text",
			fmt.Errorf("%d characters exceed the limit of %d", len(text), MaxNoteLength))
	}
	if err := errors.Join(id.Validate(), authorID.Validate(), textErr); err != nil {
		return TrackingNote{}, err
	}
	return TrackingNote{id: id, text: text, authorID: authorID, createdAt: createdAt}, nil
}

func (n TrackingNote) ID() kernel.UUID { return n.id }
func (n TrackingNote) Text() string { return n.text }
func (n TrackingNote) AuthorID() kernel.UUID { return n.authorID }
func (n TrackingNote) CreatedAt() time.Time { return n.createdAt }
