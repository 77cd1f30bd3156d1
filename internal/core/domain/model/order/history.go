package order

import "time"

// HistoryEntry records one status transition.
type HistoryEntry struct {
	status    Status
	createdAt time.Time
}

func NewHistoryEntry(status Status, createdAt time.Time) HistoryEntry {
	return HistoryEntry{status: status, createdAt: createdAt}
}

func (h HistoryEntry) Status() Status {
	return h.status
}

func (h HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

// Equal compares entries by status only; the transition time is ignored.
// Two DELIVERED entries recorded at different times are equal.
func (h HistoryEntry) Equal(other HistoryEntry) bool {
	return h.status == other.status
}
