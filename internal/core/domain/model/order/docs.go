// Package order provides the Order aggregate of the storehouse queue.
//
// The package includes:
//   - Order: the aggregate root owning items, the cached total price and the status history
//   - Status: the lifecycle state machine (RESERVED, PENDING, DELIVERED, CANCELLED)
//   - HistoryEntry: one recorded transition
//
// Key business rules:
//   - RESERVED is the only initial status and the only status that may change
//   - a transition to the current status is rejected
//   - the current status always equals the status of the last history entry
//   - the total price is recalculated explicitly, never on item mutation
//   - a customer holds at most one RESERVED order at a time
//
// The package also declares the lifecycle error kinds shared by the
// application layer (ErrOrderNotFound, ErrDuplicateActiveOrder, ...).
package order
