package commands

import (
	"errors"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrRecordSupplierStatusCommandIsNotConstructed = errors.New(
	"RecordSupplierStatusCommand must be created via NewRecordSupplierStatusCommand constructor",
)

// RecordSupplierStatusCommand records a supplier's free-form progress note on
// an order, optionally with the device location captured alongside it. This is
// a narrative update; lifecycle moves go through ChangeStatus.
type RecordSupplierStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actorID  kernel.UUID
	note     string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRecordSupplierStatusCommand creates a command to record a progress note.
// Location may be nil.
func NewRecordSupplierStatusCommand(
	orderID kernel.UUID, actorID kernel.UUID, note string, location *kernel.GeoPoint,
) (RecordSupplierStatusCommand, error) {
	cmd := RecordSupplierStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return RecordSupplierStatusCommand{}, err
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return RecordSupplierStatusCommand{}, errs.NewValueIsRequiredError("status note")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return RecordSupplierStatusCommand{}, err
		}
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.note = note
	cmd.location = location
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordSupplierStatusCommand) Validate() error {
	return c.guard.Validate(ErrRecordSupplierStatusCommandIsNotConstructed)
}

// OrderID returns the order the note is about.
func (c RecordSupplierStatusCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the supplier staff member posting the note.
func (c RecordSupplierStatusCommand) ActorID() kernel.UUID { return c.actorID }

// Note returns the progress note.
func (c RecordSupplierStatusCommand) Note() string { return c.note }

// Location returns the captured device location, nil if not provided.
func (c RecordSupplierStatusCommand) Location() *kernel.GeoPoint { return c.location }
