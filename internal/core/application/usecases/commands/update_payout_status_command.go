package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/pkg/guard"
)

var ErrUpdatePayoutStatusCommandIsNotConstructed = errors.New(
	"UpdatePayoutStatusCommand must be created via NewUpdatePayoutStatusCommand constructor",
)

// UpdatePayoutStatusCommand represents settling a pending payout: Released
// when the money went out, Failed when the transfer bounced.
type UpdatePayoutStatusCommand struct { //nolint:recvcheck //using for validation
	payoutID kernel.UUID
	actorID  kernel.UUID
	target   payout.Status

	guard guard.ConstructorGuard
}

// NewUpdatePayoutStatusCommand creates a command to settle a payout.
func NewUpdatePayoutStatusCommand(
	payoutID kernel.UUID, actorID kernel.UUID, target payout.Status,
) (UpdatePayoutStatusCommand, error) {
	cmd := UpdatePayoutStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payoutID.Validate(),
		actorID.Validate(),
		target.Validate(),
	); err != nil {
		return UpdatePayoutStatusCommand{}, err
	}

	cmd.payoutID = payoutID
	cmd.actorID = actorID
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePayoutStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePayoutStatusCommandIsNotConstructed)
}

// PayoutID returns the payout being settled.
func (c UpdatePayoutStatusCommand) PayoutID() kernel.UUID { return c.payoutID }

// ActorID returns the user settling the payout.
func (c UpdatePayoutStatusCommand) ActorID() kernel.UUID { return c.actorID }

// Target returns the settlement status.
func (c UpdatePayoutStatusCommand) Target() payout.Status { return c.target }
