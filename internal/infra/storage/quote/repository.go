package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	"github.com/m04kA/SMC-DepositService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepositService/pkg/psqlbuilder"
)

// Repository репозиторий котировок депозита (аудит)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория котировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет котировку. ID задаётся вызывающим кодом
func (r *Repository) Create(ctx context.Context, quote *domain.DepositQuote) (*domain.DepositQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("deposit_quotes").
		Columns(
			"id",
			"client_id",
			"appointment_date",
			"deposit_percentage",
			"deposit_amount_minor",
			"base_amount_minor",
			"detected_format",
			"policy_reason",
			"trace",
		).
		Values(
			quote.ID,
			quote.ClientID,
			quote.AppointmentDate,
			quote.DepositPercentage,
			quote.DepositAmountMinorUnits,
			quote.BaseAmountMinorUnits,
			string(quote.DetectedFormat),
			string(quote.PolicyReason),
			pq.Array(quote.Trace),
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	quote.CreatedAt = createdAt.Time

	return quote, nil
}

// GetByID получает котировку по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.DepositQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"client_id",
		"appointment_date",
		"deposit_percentage",
		"deposit_amount_minor",
		"base_amount_minor",
		"detected_format",
		"policy_reason",
		"trace",
		"created_at",
	).
		From("deposit_quotes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var quote domain.DepositQuote
	var detectedFormat, policyReason string
	var trace []string
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&quote.ID,
		&quote.ClientID,
		&quote.AppointmentDate,
		&quote.DepositPercentage,
		&quote.DepositAmountMinorUnits,
		&quote.BaseAmountMinorUnits,
		&detectedFormat,
		&policyReason,
		pq.Array(&trace),
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan quote: %v", ErrScanRow, err)
	}

	quote.DetectedFormat = domain.AmountFormat(detectedFormat)
	quote.PolicyReason = domain.PolicyReason(policyReason)
	quote.Trace = trace
	quote.CreatedAt = createdAt.Time

	return &quote, nil
}

// ListByClientID последние котировки клиента, новые первыми
func (r *Repository) ListByClientID(ctx context.Context, clientID string, limit uint64) ([]*domain.DepositQuote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"client_id",
		"appointment_date",
		"deposit_percentage",
		"deposit_amount_minor",
		"base_amount_minor",
		"detected_format",
		"policy_reason",
		"created_at",
	).
		From("deposit_quotes").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	quotes := make([]*domain.DepositQuote, 0)
	for rows.Next() {
		var quote domain.DepositQuote
		var detectedFormat, policyReason string
		var createdAt sql.NullTime

		err := rows.Scan(
			&quote.ID,
			&quote.ClientID,
			&quote.AppointmentDate,
			&quote.DepositPercentage,
			&quote.DepositAmountMinorUnits,
			&quote.BaseAmountMinorUnits,
			&detectedFormat,
			&policyReason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClientID - scan row: %v", ErrScanRow, err)
		}

		quote.DetectedFormat = domain.AmountFormat(detectedFormat)
		quote.PolicyReason = domain.PolicyReason(policyReason)
		quote.CreatedAt = createdAt.Time

		quotes = append(quotes, &quote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClientID - rows error: %v", ErrScanRow, err)
	}

	return quotes, nil
}
