package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	quoteRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/quote"
	"github.com/m04kA/SMC-DepositService/internal/service/quotes/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Service сервис чтения сохранённых котировок
type Service struct {
	quoteRepo QuoteRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса котировок
func NewService(quoteRepo QuoteRepository, logger Logger) *Service {
	return &Service{
		quoteRepo: quoteRepo,
		logger:    logger,
	}
}

// GetByID получает котировку по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.QuoteResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("GetByID: invalid quote id=%q", id)
		return nil, fmt.Errorf("%w: quote id must be a UUID", ErrInvalidInput)
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			s.logger.Warn("GetByID: quote id=%s not found", id)
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("GetByID: repository error for quote id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched quote id=%s", id)
	return models.FromDomainQuote(quote), nil
}

// GetClientQuotes последние котировки клиента
// limit <= 0 заменяется на DefaultHistoryLimit, больше MaxHistoryLimit обрезается
func (s *Service) GetClientQuotes(ctx context.Context, clientID string, limit int) (*models.QuoteListResponse, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	quotes, err := s.quoteRepo.ListByClientID(ctx, clientID, uint64(limit))
	if err != nil {
		s.logger.Error("GetClientQuotes: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientQuotes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientQuotes: fetched %d quotes for client=%s", len(quotes), clientID)
	return models.FromDomainQuoteList(quotes), nil
}
