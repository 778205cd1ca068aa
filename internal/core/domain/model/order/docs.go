// Package order contains the Order aggregate root, its lifecycle state machine,
// and the domain events raised by order mutations. The status transition table
// in status.go is the single source of truth for legal lifecycle moves; role
// authority over transitions lives separately in the services package.
package order
