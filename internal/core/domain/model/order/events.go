package order

import "fulfilment/internal/core/domain/model/kernel"

// Domain events raised by order mutations. Events are published after the
// owning transaction commits; delivery to handlers is at-least-once and
// never affects the outcome of the mutation that raised them.

// CreatedEvent is raised when a new order is persisted.
type CreatedEvent struct {
	OrderID kernel.UUID
	// Manual is true for operations-recorded sales (cash/EFT/card at the counter).
	Manual bool
}

// StatusChangedEvent is raised after a successful status transition.
type StatusChangedEvent struct {
	OrderID kernel.UUID
	From    Status
	To      Status
}

// DriverAssignedEvent is raised when a driver is bound to an order.
type DriverAssignedEvent struct {
	OrderID  kernel.UUID
	DriverID kernel.UUID
}

// QuoteRequestedEvent is raised when a quote is requested from a supplier.
type QuoteRequestedEvent struct {
	OrderID    kernel.UUID
	SupplierID kernel.UUID
}

// MessagePostedEvent is raised when a message is posted on an order's thread.
type MessagePostedEvent struct {
	OrderID  kernel.UUID
	AuthorID kernel.UUID
	Text     string
}
