package commands

import (
	"errors"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrIssueRefundCommandIsNotConstructed = errors.New(
	"IssueRefundCommand must be created via NewIssueRefundCommand constructor",
)

// IssueRefundCommand represents an operations decision to return money to the
// customer against a settled payment. The refund ceiling depends on the
// actor's role: caretakers are capped, admins are not.
type IssueRefundCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	paymentID kernel.UUID
	actorID   kernel.UUID
	amount    kernel.Money
	reason    string

	guard guard.ConstructorGuard
}

// NewIssueRefundCommand creates a command to issue a refund. Reason is
// mandatory: every refund must be explainable from the audit trail alone.
func NewIssueRefundCommand(
	orderID kernel.UUID,
	paymentID kernel.UUID,
	actorID kernel.UUID,
	amount kernel.Money,
	reason string,
) (IssueRefundCommand, error) {
	cmd := IssueRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		paymentID.Validate(),
		actorID.Validate(),
		amount.Validate(),
	); err != nil {
		return IssueRefundCommand{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return IssueRefundCommand{}, errs.NewValueIsRequiredError("refund reason")
	}

	cmd.orderID = orderID
	cmd.paymentID = paymentID
	cmd.actorID = actorID
	cmd.amount = amount
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueRefundCommand) Validate() error {
	return c.guard.Validate(ErrIssueRefundCommandIsNotConstructed)
}

// OrderID returns the order being refunded.
func (c IssueRefundCommand) OrderID() kernel.UUID { return c.orderID }

// PaymentID returns the settled payment the refund reverses.
func (c IssueRefundCommand) PaymentID() kernel.UUID { return c.paymentID }

// ActorID returns the operations user issuing the refund.
func (c IssueRefundCommand) ActorID() kernel.UUID { return c.actorID }

// Amount returns the refund amount.
func (c IssueRefundCommand) Amount() kernel.Money { return c.amount }

// Reason returns the human explanation recorded in the audit trail.
func (c IssueRefundCommand) Reason() string { return c.reason }
