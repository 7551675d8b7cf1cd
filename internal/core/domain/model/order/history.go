package order

import "time"

// HistoryEntry records one status the order passed through. The order's
// history is append-only: entries are never rewritten or removed.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewHistoryEntry creates a history entry. The note is optional except for
// moves to declined or cancelled, where the aggregate enforces a reason.
func NewHistoryEntry(status Status, timestamp time.Time, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		status:    status,
		timestamp: timestamp,
		note:      note,
	}, nil
}

// Status returns the status recorded by this entry.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Timestamp returns when the status was reached.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}

// Note returns the optional annotation, e.g. a decline reason or the
// packed-count report of a ready override.
func (h HistoryEntry) Note() string {
	return h.note
}
