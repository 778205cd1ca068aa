// Package audit contains the append-only audit trail of order mutations.
// Every state-mutating action writes exactly one entry in the same transaction
// as the mutation it documents. Entries are never updated or deleted.
package audit

import (
	"errors"
	"fmt"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

// Action tags the kind of mutation an audit entry documents.
// Actions are persisted as strings so the trail stays legible in raw form.
type Action string

const (
	ActionStatusChange   Action = "STATUS_CHANGE"
	ActionManualCreate   Action = "MANUAL_CREATE"
	ActionRequestQuote   Action = "REQUEST_QUOTE"
	ActionAcceptQuote    Action = "ACCEPT_QUOTE"
	ActionRefund         Action = "REFUND"
	ActionTriggerPayout  Action = "TRIGGER_PAYOUT"
	ActionMessage        Action = "MESSAGE"
	ActionSupplierStatus Action = "SUPPLIER_STATUS"
)

func getValidActions() map[Action]struct{} {
	return map[Action]struct{}{
		ActionStatusChange:   {},
		ActionManualCreate:   {},
		ActionRequestQuote:   {},
		ActionAcceptQuote:    {},
		ActionRefund:         {},
		ActionTriggerPayout:  {},
		ActionMessage:        {},
		ActionSupplierStatus: {},
	}
}

// Validate checks if the Action is one of the defined tags.
func (a Action) Validate() error {
	if _, ok := getValidActions()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid",
			fmt.Errorf("%q is not a valid audit action", string(a)))
	}
	return nil
}

// String returns the persisted tag.
func (a Action) String() string {
	return string(a)
}

// ErrEntryIsNotConstructed is returned when an Entry was not created via NewEntry
// or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one immutable audit record. The payload is free-form structured
// context (previous/next status, amounts, reasons); consumers that aggregate
// over it must tolerate missing or malformed fields.
type Entry struct {
	id      kernel.UUID
	orderID kernel.UUID
	actorID kernel.UUID
	action  Action
	payload map[string]any

	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit entry for a mutation happening now.
// A nil payload is stored as an empty object.
func NewEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	action Action,
	payload map[string]any,
) (*Entry, error) {
	return RestoreEntry(id, orderID, actorID, action, payload, time.Now().UTC())
}

// RestoreEntry reconstructs an entry from persisted state.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	action Action,
	payload map[string]any,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		action.Validate(),
	); err != nil {
		return nil, err
	}

	if payload == nil {
		payload = map[string]any{}
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		actorID:       actorID,
		action:        action,
		payload:       payload,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was created through a factory.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// OrderID returns the order the entry belongs to.
func (e *Entry) OrderID() kernel.UUID { return e.orderID }

// ActorID returns the user who performed the documented action.
func (e *Entry) ActorID() kernel.UUID { return e.actorID }

// Action returns the mutation tag.
func (e *Entry) Action() Action { return e.action }

// Payload returns the structured context of the entry.
// Callers must not mutate the returned map.
func (e *Entry) Payload() map[string]any { return e.payload }

// CreatedAt returns when the entry was written.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
