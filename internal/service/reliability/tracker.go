package reliability

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// ApplyEvent применяет событие к записи клиента и возвращает новую запись
// Входная запись не изменяется. nil трактуется как клиент без истории.
// Повторное событие с тем же EventID - no-op: возвращается исходная запись и applied=false
func ApplyEvent(record *domain.ClientReliabilityRecord, event domain.ReliabilityEvent) (*domain.ClientReliabilityRecord, bool, error) {
	if event.EventID == "" {
		return nil, false, fmt.Errorf("%w: event id is required", ErrInvalidEvent)
	}

	if !event.Kind.IsValid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidEventKind, event.Kind)
	}

	if record == nil {
		record = domain.NewClientReliabilityRecord(event.ClientID)
	}

	if record.HasApplied(event.EventID) {
		return record, false, nil
	}

	updated := record.Clone()

	switch event.Kind {
	case domain.EventCancellation:
		updated.TotalCancellations++
		updated.ConsecutiveCancellations++
		touchLastEvent(updated, event)

	case domain.EventNoShow:
		updated.TotalNoShows++
		updated.ConsecutiveCancellations++
		touchLastEvent(updated, event)

	case domain.EventCompleted:
		updated.ConsecutiveCancellations = 0
		updated.TotalBookings++
	}

	updated.Score = ComputeScore(
		updated.TotalCancellations,
		updated.TotalNoShows,
		updated.TotalBookings,
		updated.ConsecutiveCancellations,
	)
	updated.AppliedEventIDs[event.EventID] = struct{}{}

	return updated, true, nil
}

// ComputeScore считает скор заново по счётчикам:
//
//	cancellationRate = totalCancellations / max(totalBookings, 1) * 100
//	noShowRate       = totalNoShows / max(totalBookings, 1) * 100
//	score = 100 - 0.8*cancellationRate - 1.2*noShowRate - 15*consecutiveCancellations
//
// Результат округляется (половина вверх) и ограничивается [0, 100]
func ComputeScore(totalCancellations, totalNoShows, totalBookings, consecutiveCancellations int) int {
	denominator := float64(max(totalBookings, 1))

	cancellationRate := float64(totalCancellations) / denominator * 100
	noShowRate := float64(totalNoShows) / denominator * 100

	raw := float64(domain.InitialReliabilityScore) -
		domain.CancellationRateWeight*cancellationRate -
		domain.NoShowRateWeight*noShowRate -
		domain.ConsecutivePenaltyPoints*float64(consecutiveCancellations)

	score := int(math.Floor(raw + 0.5))

	return min(max(score, domain.MinReliabilityScore), domain.MaxReliabilityScore)
}

// touchLastEvent LastEventAt хранит самое позднее событие: события могут прийти не по порядку
func touchLastEvent(record *domain.ClientReliabilityRecord, event domain.ReliabilityEvent) {
	if event.OccurredAt.IsZero() {
		return
	}
	if record.LastEventAt == nil || event.OccurredAt.After(*record.LastEventAt) {
		occurredAt := event.OccurredAt
		record.LastEventAt = &occurredAt
	}
}
