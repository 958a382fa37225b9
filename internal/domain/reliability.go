package domain

import "time"

// ReliabilityEventKind kind of a booking lifecycle event that affects reliability
type ReliabilityEventKind string

const (
	EventCancellation ReliabilityEventKind = "cancellation"
	EventNoShow       ReliabilityEventKind = "no_show"
	EventCompleted    ReliabilityEventKind = "completed"
)

// IsValid returns true for the known event kinds
func (k ReliabilityEventKind) IsValid() bool {
	switch k {
	case EventCancellation, EventNoShow, EventCompleted:
		return true
	default:
		return false
	}
}

// IsPenalty returns true for kinds that count as a missed appointment
func (k ReliabilityEventKind) IsPenalty() bool {
	return k == EventCancellation || k == EventNoShow
}

// ReliabilityEvent is a single booking lifecycle event reported by the booking subsystem
type ReliabilityEvent struct {
	EventID    string // ключ идемпотентности, уникален в рамках клиента
	ClientID   string
	Kind       ReliabilityEventKind
	OccurredAt time.Time
}

// ClientReliabilityRecord represents the attendance history of a client
// Score is never set directly: it is always recomputed from the counters
type ClientReliabilityRecord struct {
	ClientID                 string
	Score                    int
	TotalCancellations       int
	TotalNoShows             int
	TotalBookings            int
	ConsecutiveCancellations int
	LastEventAt              *time.Time // только для наблюдаемости, в расчёте не участвует

	// AppliedEventIDs идентификаторы уже применённых событий
	AppliedEventIDs map[string]struct{}

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClientReliabilityRecord returns a record for a client without history
func NewClientReliabilityRecord(clientID string) *ClientReliabilityRecord {
	return &ClientReliabilityRecord{
		ClientID:        clientID,
		Score:           InitialReliabilityScore,
		AppliedEventIDs: make(map[string]struct{}),
	}
}

// HasApplied returns true if the event was already applied to this record
func (r *ClientReliabilityRecord) HasApplied(eventID string) bool {
	_, ok := r.AppliedEventIDs[eventID]
	return ok
}

// IsNewClient returns true if the client has no completed bookings yet
func (r *ClientReliabilityRecord) IsNewClient() bool {
	return r.TotalBookings == 0
}

// Clone returns a deep copy of the record
func (r *ClientReliabilityRecord) Clone() *ClientReliabilityRecord {
	clone := *r

	if r.LastEventAt != nil {
		lastEventAt := *r.LastEventAt
		clone.LastEventAt = &lastEventAt
	}

	clone.AppliedEventIDs = make(map[string]struct{}, len(r.AppliedEventIDs)+1)
	for id := range r.AppliedEventIDs {
		clone.AppliedEventIDs[id] = struct{}{}
	}

	return &clone
}
