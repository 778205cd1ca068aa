package order

import (
	"errors"
	"fmt"

	"fulfilment/internal/pkg/errs"
)

// Status represents the lifecycle state of a fulfilment order.
// It implements a strict forward-only state machine: no status may regress,
// and any transition not listed in the table is rejected.
//
// State transitions:
//
//	New ──> SourcingSupplier ──> SupplierConfirmed ──> InProgress ──> ReadyForDelivery
//	 │              │                    │                  │                │
//	 └──────────────┴────────────────────┴──────────────────┘                ▼
//	                       Canceled                                   OutForDelivery
//	                                                                         │
//	                                                                         ▼
//	                                                    Closed <── Delivered
//
// Closed and Canceled are terminal: they have no outgoing transitions and
// orders in them are retained for audit and reporting, never deleted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of every order. Orders are never created
	// in any other state.
	New

	// SourcingSupplier means operations staff are finding a supplier for the job.
	SourcingSupplier

	// SupplierConfirmed means a supplier has accepted the job.
	SupplierConfirmed

	// InProgress means the supplier is working on the job.
	InProgress

	// ReadyForDelivery means the work is done and awaiting a driver.
	ReadyForDelivery

	// OutForDelivery means a driver is returning the job to the customer.
	OutForDelivery

	// Delivered means the customer has received the completed job.
	Delivered

	// Closed is the terminal success state, entered after delivery is settled.
	Closed

	// Canceled is the terminal failure state, reachable only before the
	// work reaches ReadyForDelivery.
	Canceled
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a transition request not present in the
// transition table. It names the attempted from→to pair.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		New:               "New",
		SourcingSupplier:  "SourcingSupplier",
		SupplierConfirmed: "SupplierConfirmed",
		InProgress:        "InProgress",
		ReadyForDelivery:  "ReadyForDelivery",
		OutForDelivery:    "OutForDelivery",
		Delivered:         "Delivered",
		Closed:            "Closed",
		Canceled:          "Canceled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// getTransitions returns the legal transition table. The graph is a forward-only
// DAG; every pair absent from the table is illegal.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		New:               {SourcingSupplier, Canceled},
		SourcingSupplier:  {SupplierConfirmed, Canceled},
		SupplierConfirmed: {InProgress, Canceled},
		InProgress:        {ReadyForDelivery, Canceled},
		ReadyForDelivery:  {OutForDelivery},
		OutForDelivery:    {Delivered},
		Delivered:         {Closed},
		Closed:            {},
		Canceled:          {},
	}
}

// StatusFromString parses a status name as produced by String.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
// Implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Closed || s == Canceled
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to the target status.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range getTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the transition table and returns
// the new status.
//
// Returns:
//   - (to, nil) when the table lists the transition
//   - (0, *InvalidTransitionError) naming the from→to pair otherwise
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(to) {
		return 0, &InvalidTransitionError{From: s, To: to}
	}
	return to, nil
}
