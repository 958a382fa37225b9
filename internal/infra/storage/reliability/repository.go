package reliability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	"github.com/m04kA/SMC-DepositService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepositService/pkg/psqlbuilder"
)

// Repository репозиторий записей надёжности клиентов и применённых событий
//
// Ошибки драйвера оборачиваются через %w, чтобы txmanager видел конфликт сериализации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureExists создает начальную запись клиента, если её ещё нет
// Нужна перед GetByClientID внутри транзакции: FOR UPDATE не блокирует несуществующую строку
func (r *Repository) EnsureExists(ctx context.Context, clientID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("client_reliability").
		Columns("client_id", "score").
		Values(clientID, domain.InitialReliabilityScore).
		Suffix("ON CONFLICT (client_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EnsureExists - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureExists - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByClientID получает запись клиента вместе с идентификаторами применённых событий
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByClientID(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"client_id",
		"score",
		"total_cancellations",
		"total_no_shows",
		"total_bookings",
		"consecutive_cancellations",
		"last_event_at",
		"created_at",
		"updated_at",
	).
		From("client_reliability").
		Where(squirrel.Eq{"client_id": clientID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.ClientReliabilityRecord
	var lastEventAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ClientID,
		&record.Score,
		&record.TotalCancellations,
		&record.TotalNoShows,
		&record.TotalBookings,
		&record.ConsecutiveCancellations,
		&lastEventAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - scan record: %w", ErrScanRow, err)
	}

	if lastEventAt.Valid {
		record.LastEventAt = &lastEventAt.Time
	}
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	record.AppliedEventIDs, err = r.getAppliedEventIDs(ctx, executor, clientID)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Update сохраняет счётчики и скор клиента
func (r *Repository) Update(ctx context.Context, record *domain.ClientReliabilityRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("client_reliability").
		Set("score", record.Score).
		Set("total_cancellations", record.TotalCancellations).
		Set("total_no_shows", record.TotalNoShows).
		Set("total_bookings", record.TotalBookings).
		Set("consecutive_cancellations", record.ConsecutiveCancellations).
		Set("last_event_at", record.LastEventAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"client_id": record.ClientID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// AddEvent сохраняет применённое событие (журнал идемпотентности)
// Повтор не прерывает транзакцию: ON CONFLICT DO NOTHING, затем ErrDuplicateEvent
func (r *Repository) AddEvent(ctx context.Context, event domain.ReliabilityEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	occurredAt := sql.NullTime{Time: event.OccurredAt, Valid: !event.OccurredAt.IsZero()}

	query, args, err := psqlbuilder.Insert("reliability_events").
		Columns("client_id", "event_id", "kind", "occurred_at").
		Values(event.ClientID, event.EventID, string(event.Kind), occurredAt).
		Suffix("ON CONFLICT (client_id, event_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddEvent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddEvent - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddEvent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDuplicateEvent
	}

	return nil
}

func (r *Repository) getAppliedEventIDs(ctx context.Context, executor DBExecutor, clientID string) (map[string]struct{}, error) {
	query, args, err := psqlbuilder.Select("event_id").
		From("reliability_events").
		Where(squirrel.Eq{"client_id": clientID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getAppliedEventIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getAppliedEventIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	eventIDs := make(map[string]struct{})
	for rows.Next() {
		var eventID string
		if err := rows.Scan(&eventID); err != nil {
			return nil, fmt.Errorf("%w: getAppliedEventIDs - scan event_id: %v", ErrScanRow, err)
		}
		eventIDs[eventID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getAppliedEventIDs - rows error: %w", ErrScanRow, err)
	}

	return eventIDs, nil
}
