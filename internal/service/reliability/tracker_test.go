package reliability

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

var baseTime = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func event(id string, kind domain.ReliabilityEventKind) domain.ReliabilityEvent {
	return domain.ReliabilityEvent{
		EventID:    id,
		ClientID:   "client-1",
		Kind:       kind,
		OccurredAt: baseTime,
	}
}

func applyAll(t *testing.T, record *domain.ClientReliabilityRecord, events ...domain.ReliabilityEvent) *domain.ClientReliabilityRecord {
	t.Helper()
	for _, e := range events {
		updated, _, err := ApplyEvent(record, e)
		require.NoError(t, err)
		record = updated
	}
	return record
}

func TestApplyEvent_FreshRecord(t *testing.T) {
	tests := []struct {
		name  string
		kind  domain.ReliabilityEventKind
		score int
	}{
		// 100 - 0.8*100 - 15 = 5
		{name: "cancellation", kind: domain.EventCancellation, score: 5},
		// 100 - 1.2*100 - 15 < 0
		{name: "no show", kind: domain.EventNoShow, score: 0},
		{name: "completed", kind: domain.EventCompleted, score: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, applied, err := ApplyEvent(nil, event("evt-1", tt.kind))
			require.NoError(t, err)
			assert.True(t, applied)
			assert.Equal(t, "client-1", record.ClientID)
			assert.Equal(t, tt.score, record.Score)
			assert.True(t, record.HasApplied("evt-1"))
		})
	}
}

func TestApplyEvent_Counters(t *testing.T) {
	record := applyAll(t, nil,
		event("c1", domain.EventCompleted),
		event("c2", domain.EventCompleted),
		event("c3", domain.EventCompleted),
		event("c4", domain.EventCompleted),
		event("x1", domain.EventCancellation),
	)

	assert.Equal(t, 4, record.TotalBookings)
	assert.Equal(t, 1, record.TotalCancellations)
	assert.Equal(t, 1, record.ConsecutiveCancellations)
	// 100 - 0.8*25 - 15 = 65
	assert.Equal(t, 65, record.Score)

	record = applyAll(t, record, event("n1", domain.EventNoShow))
	assert.Equal(t, 1, record.TotalNoShows)
	assert.Equal(t, 2, record.ConsecutiveCancellations)
	// 100 - 0.8*25 - 1.2*25 - 30 = 20
	assert.Equal(t, 20, record.Score)

	record = applyAll(t, record, event("c5", domain.EventCompleted))
	assert.Equal(t, 0, record.ConsecutiveCancellations)
	assert.Equal(t, 5, record.TotalBookings)
	// 100 - 0.8*20 - 1.2*20 = 60
	assert.Equal(t, 60, record.Score)
}

func TestApplyEvent_Idempotent(t *testing.T) {
	once := applyAll(t, nil, event("c1", domain.EventCompleted), event("x1", domain.EventCancellation))

	twice, applied, err := ApplyEvent(once, event("x1", domain.EventCancellation))
	require.NoError(t, err)

	assert.False(t, applied)
	assert.Same(t, once, twice)
	assert.Equal(t, 1, twice.TotalCancellations)
}

func TestApplyEvent_DoesNotMutateInput(t *testing.T) {
	record := applyAll(t, nil, event("c1", domain.EventCompleted))
	snapshot := record.Clone()

	updated, applied, err := ApplyEvent(record, event("x1", domain.EventCancellation))
	require.NoError(t, err)
	require.True(t, applied)

	assert.Equal(t, snapshot, record)
	assert.NotEqual(t, snapshot.Score, updated.Score)
}

func TestApplyEvent_Rejections(t *testing.T) {
	record := applyAll(t, nil, event("c1", domain.EventCompleted))
	snapshot := record.Clone()

	updated, applied, err := ApplyEvent(record, event("r1", domain.ReliabilityEventKind("rescheduled")))
	assert.ErrorIs(t, err, ErrInvalidEventKind)
	assert.Nil(t, updated)
	assert.False(t, applied)
	assert.Equal(t, snapshot, record)

	_, _, err = ApplyEvent(record, event("", domain.EventCancellation))
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Equal(t, snapshot, record)
}

func TestApplyEvent_LastEventAtKeepsLatest(t *testing.T) {
	late := event("x1", domain.EventCancellation)
	late.OccurredAt = baseTime.Add(48 * time.Hour)
	early := event("x2", domain.EventNoShow)
	early.OccurredAt = baseTime
	completed := event("c1", domain.EventCompleted)
	completed.OccurredAt = baseTime.Add(72 * time.Hour)

	record := applyAll(t, nil, late, early, completed)

	require.NotNil(t, record.LastEventAt)
	assert.Equal(t, late.OccurredAt, *record.LastEventAt)
}

func TestComputeScore(t *testing.T) {
	assert.Equal(t, 100, ComputeScore(0, 0, 0, 0))
	assert.Equal(t, 100, ComputeScore(0, 0, 10, 0))
	// 100 - 0.8*(1/3*100) = 73.33
	assert.Equal(t, 73, ComputeScore(1, 0, 3, 0))
	// 100 - 0.8*12.5 - 1.2*12.5 = 75
	assert.Equal(t, 75, ComputeScore(1, 1, 8, 0))
	// 100 - 0.8*3.125 = 97.5, половина округляется вверх
	assert.Equal(t, 98, ComputeScore(1, 0, 32, 0))
	// 100 - 0.8*62.5 = 50
	assert.Equal(t, 50, ComputeScore(5, 0, 8, 0))
	assert.Equal(t, 0, ComputeScore(10, 10, 1, 5))
}

func TestApplyEvent_RandomSequencesProperties(t *testing.T) {
	kinds := []domain.ReliabilityEventKind{domain.EventCancellation, domain.EventNoShow, domain.EventCompleted}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		var (
			record *domain.ClientReliabilityRecord
			events []domain.ReliabilityEvent
		)

		for i := 0; i < 100; i++ {
			e := event(fmt.Sprintf("run-%d-evt-%d", run, i), kinds[rng.Intn(len(kinds))])
			events = append(events, e)

			prevScore := domain.InitialReliabilityScore
			prevBookings := 0
			if record != nil {
				prevScore = record.Score
				prevBookings = record.TotalBookings
			}

			updated, applied, err := ApplyEvent(record, e)
			require.NoError(t, err)
			require.True(t, applied)

			assert.GreaterOrEqual(t, updated.Score, domain.MinReliabilityScore)
			assert.LessOrEqual(t, updated.Score, domain.MaxReliabilityScore)
			assert.Equal(t, ComputeScore(updated.TotalCancellations, updated.TotalNoShows,
				updated.TotalBookings, updated.ConsecutiveCancellations), updated.Score)

			if e.Kind.IsPenalty() {
				assert.LessOrEqual(t, updated.Score, prevScore, "penalty must not raise the score")
			}
			assert.GreaterOrEqual(t, updated.TotalBookings, prevBookings)

			record = updated
		}

		// Повторная доставка всех событий ничего не меняет
		replayed := applyAll(t, record, events...)
		assert.Equal(t, record, replayed)
	}
}
