// Package events contains the in-process domain event fan-out: stakeholder
// resolution, notification batching, and one handler per event type.
//
// Events are published after the producing transaction commits. Handlers are
// best-effort: a failed fan-out is logged and dropped, never propagated back
// to the command that raised the event. Within one event's batch, duplicate
// notifications (same recipient, type, title and body) collapse to a single
// row before the write.
package events
