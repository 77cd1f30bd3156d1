// Package services contains the stateless domain services of the storehouse.
//
//   - QueueCalculator answers "where does this customer stand in the queue and
//     how much quantity is ahead of them", giving premium customers strict
//     priority over everybody else and FIFO order inside each tier.
//   - IntakeBatcher decides how many browsed intake messages fit into one
//     capacity-bounded fulfilment batch.
//
// Neither service keeps state between calls. Every answer is recomputed from
// the RESERVED orders visible through the OrderReader port.
package services
