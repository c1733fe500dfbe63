// Package order contains the order aggregate and its finite-state lifecycle.
//
// The aggregate root Order owns a fixed set of Lines and a Status. Every
// status change goes through the static transition table: Apply resolves a
// (status, event) pair to a target status and an optional Action, which the
// application layer executes after the new status has been committed.
//
// The table is deliberately the single source of truth for the lifecycle.
// There are no ad-hoc status setters; an event with no row in the table
// leaves the order untouched and surfaces ErrEventNotPermitted for the
// caller to log.
package order
