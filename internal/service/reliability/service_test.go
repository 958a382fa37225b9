package reliability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	reliabilityRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/reliability"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetByClientID(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error) {
	args := m.Called(ctx, clientID)
	record, _ := args.Get(0).(*domain.ClientReliabilityRecord)
	return record, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_GetRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("existing record", func(t *testing.T) {
		repo := &mockRepository{}
		stored := domain.NewClientReliabilityRecord("client-1")
		stored.Score = 42
		repo.On("GetByClientID", ctx, "client-1").Return(stored, nil)

		record, err := NewService(repo, nopLogger{}).GetRecord(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, 42, record.Score)
		repo.AssertExpectations(t)
	})

	t.Run("unknown client gets initial record", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("GetByClientID", ctx, "client-2").Return(nil, reliabilityRepo.ErrRecordNotFound)

		record, err := NewService(repo, nopLogger{}).GetRecord(ctx, "client-2")
		require.NoError(t, err)
		assert.Equal(t, domain.InitialReliabilityScore, record.Score)
		assert.Equal(t, "client-2", record.ClientID)
		assert.True(t, record.IsNewClient())
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("GetByClientID", ctx, "client-3").Return(nil, errors.New("connection reset"))

		_, err := NewService(repo, nopLogger{}).GetRecord(ctx, "client-3")
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("empty client id", func(t *testing.T) {
		_, err := NewService(&mockRepository{}, nopLogger{}).GetRecord(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetClientReliability(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	stored := domain.NewClientReliabilityRecord("client-1")
	stored.Score = 54
	stored.TotalBookings = 2
	stored.AppliedEventIDs["evt-1"] = struct{}{}
	repo.On("GetByClientID", ctx, "client-1").Return(stored, nil)

	resp, err := NewService(repo, nopLogger{}).GetClientReliability(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, 54, resp.Score)
	assert.False(t, resp.IsNewClient)
}
