package reliability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	reliabilityRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/reliability"
	"github.com/m04kA/SMC-DepositService/internal/service/reliability/models"
)

// Service сервис чтения записей надёжности клиентов
type Service struct {
	repo   RecordRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo RecordRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetRecord получает запись клиента
// Для клиента без истории возвращается начальная запись (скор 100), в БД она не создаётся
func (s *Service) GetRecord(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	record, err := s.repo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, reliabilityRepo.ErrRecordNotFound) {
			s.logger.Info("GetRecord: client=%s has no history, returning initial record", clientID)
			return domain.NewClientReliabilityRecord(clientID), nil
		}
		s.logger.Error("GetRecord: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetRecord - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRecord: client=%s score=%d", clientID, record.Score)
	return record, nil
}

// GetClientReliability запись клиента в формате ответа API
func (s *Service) GetClientReliability(ctx context.Context, clientID string) (*models.RecordResponse, error) {
	record, err := s.GetRecord(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRecord(record), nil
}
