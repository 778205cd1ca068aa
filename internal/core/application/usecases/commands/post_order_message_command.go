package commands

import (
	"errors"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrPostOrderMessageCommandIsNotConstructed = errors.New(
	"PostOrderMessageCommand must be created via NewPostOrderMessageCommand constructor",
)

// PostOrderMessageCommand posts a message on an order's thread. Messages live
// in the audit trail; counterparties are notified through the fan-out.
type PostOrderMessageCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	authorID kernel.UUID
	text     string

	guard guard.ConstructorGuard
}

// NewPostOrderMessageCommand creates a command to post a message.
func NewPostOrderMessageCommand(
	orderID kernel.UUID, authorID kernel.UUID, text string,
) (PostOrderMessageCommand, error) {
	cmd := PostOrderMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		authorID.Validate(),
	); err != nil {
		return PostOrderMessageCommand{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return PostOrderMessageCommand{}, errs.NewValueIsRequiredError("message text")
	}

	cmd.orderID = orderID
	cmd.authorID = authorID
	cmd.text = text
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PostOrderMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostOrderMessageCommandIsNotConstructed)
}

// OrderID returns the order whose thread takes the message.
func (c PostOrderMessageCommand) OrderID() kernel.UUID { return c.orderID }

// AuthorID returns the user posting the message.
func (c PostOrderMessageCommand) AuthorID() kernel.UUID { return c.authorID }

// Text returns the message text.
func (c PostOrderMessageCommand) Text() string { return c.text }
