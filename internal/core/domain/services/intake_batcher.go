package services

import "storehouse/internal/core/domain/model/order"

// IntakeBatcher sizes capacity-bounded fulfilment batches.
type IntakeBatcher struct {
	capacity int
}

// NewIntakeBatcher falls back to order.MaxLoad for a non-positive capacity.
func NewIntakeBatcher(capacity int) IntakeBatcher {
	if capacity <= 0 {
		capacity = order.MaxLoad
	}
	return IntakeBatcher{capacity: capacity}
}

func (b IntakeBatcher) Capacity() int {
	return b.capacity
}

// BatchSize returns how many leading quantities form the next batch.
//
// Quantities are admitted in order while the running sum stays at or under
// capacity; the first one that would overflow stops the batch. A leading
// quantity that alone meets or exceeds capacity is admitted by itself.
//
//	capacity 25: [10 10 10 30] -> 2, [30] -> 1, [25 1] -> 1, [] -> 0
func (b IntakeBatcher) BatchSize(quantities []int) int {
	load, count := 0, 0
	for _, q := range quantities {
		if count == 0 && q >= b.capacity {
			return 1
		}
		if load+q > b.capacity {
			break
		}
		load += q
		count++
	}
	return count
}
