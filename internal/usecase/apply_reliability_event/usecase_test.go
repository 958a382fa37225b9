package apply_reliability_event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	reliabilityRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/reliability"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) EnsureExists(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

func (m *mockRepository) GetByClientID(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error) {
	args := m.Called(ctx, clientID)
	record, _ := args.Get(0).(*domain.ClientReliabilityRecord)
	return record, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, record *domain.ClientReliabilityRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRepository) AddEvent(ctx context.Context, event domain.ReliabilityEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ObserveReliabilityEvent(kind, result string) {
	m.Called(kind, result)
}

func (m *mockMetrics) ObserveReliabilityScore(score int) {
	m.Called(score)
}

// inlineTxManager выполняет fn без транзакции
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(repo *mockRepository, metrics *mockMetrics, tx TransactionManager) *UseCase {
	uc := NewUseCase(repo, tx, metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute_AppliesEvent(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	metrics := &mockMetrics{}
	tx := &inlineTxManager{}

	stored := domain.NewClientReliabilityRecord("client-1")
	stored.TotalBookings = 4

	repo.On("EnsureExists", ctx, "client-1").Return(nil)
	repo.On("GetByClientID", ctx, "client-1").Return(stored, nil)
	repo.On("AddEvent", ctx, mock.MatchedBy(func(e domain.ReliabilityEvent) bool {
		return e.EventID == "evt-1" && e.Kind == domain.EventCancellation
	})).Return(nil)
	repo.On("Update", ctx, mock.MatchedBy(func(r *domain.ClientReliabilityRecord) bool {
		return r.TotalCancellations == 1 && r.ConsecutiveCancellations == 1
	})).Return(nil)
	metrics.On("ObserveReliabilityEvent", "cancellation", resultApplied).Return()
	metrics.On("ObserveReliabilityScore", 65).Return()

	resp, err := newUseCase(repo, metrics, tx).Execute(ctx, &Request{
		ClientID: "client-1",
		EventID:  "evt-1",
		Kind:     "cancellation",
	})
	require.NoError(t, err)

	assert.True(t, resp.Applied)
	// 100 - 0.8*25 - 15 = 65
	assert.Equal(t, 65, resp.Record.Score)
	assert.Equal(t, 1, tx.calls)
	// исходная запись не изменилась
	assert.Equal(t, 0, stored.TotalCancellations)
	require.NotNil(t, resp.Record.LastEventAt)
	assert.Equal(t, time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC), *resp.Record.LastEventAt)

	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestUseCase_Execute_DuplicateEvent(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	metrics := &mockMetrics{}

	stored := domain.NewClientReliabilityRecord("client-1")
	stored.Score = 65
	stored.AppliedEventIDs["evt-1"] = struct{}{}

	repo.On("EnsureExists", ctx, "client-1").Return(nil)
	repo.On("GetByClientID", ctx, "client-1").Return(stored, nil)
	metrics.On("ObserveReliabilityEvent", "cancellation", resultDuplicate).Return()

	resp, err := newUseCase(repo, metrics, &inlineTxManager{}).Execute(ctx, &Request{
		ClientID: "client-1",
		EventID:  "evt-1",
		Kind:     "cancellation",
	})
	require.NoError(t, err)

	assert.False(t, resp.Applied)
	assert.Same(t, stored, resp.Record)
	repo.AssertNotCalled(t, "AddEvent", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestUseCase_Execute_ConcurrentDuplicateInJournal(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	metrics := &mockMetrics{}

	stored := domain.NewClientReliabilityRecord("client-1")

	repo.On("EnsureExists", ctx, "client-1").Return(nil)
	repo.On("GetByClientID", ctx, "client-1").Return(stored, nil)
	repo.On("AddEvent", ctx, mock.Anything).Return(reliabilityRepo.ErrDuplicateEvent)
	metrics.On("ObserveReliabilityEvent", "no_show", resultDuplicate).Return()

	resp, err := newUseCase(repo, metrics, &inlineTxManager{}).Execute(ctx, &Request{
		ClientID: "client-1",
		EventID:  "evt-2",
		Kind:     "no_show",
	})
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown kind",
			req:     &Request{ClientID: "client-1", EventID: "evt-1", Kind: "rescheduled"},
			wantErr: ErrInvalidEventKind,
		},
		{
			name:    "missing event id",
			req:     &Request{ClientID: "client-1", Kind: "completed"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing client id",
			req:     &Request{EventID: "evt-1", Kind: "completed"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			metrics := &mockMetrics{}
			tx := &inlineTxManager{}
			metrics.On("ObserveReliabilityEvent", tt.req.Kind, resultRejected).Return()

			_, err := newUseCase(repo, metrics, tx).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, tx.calls)
			metrics.AssertExpectations(t)
		})
	}
}

func TestUseCase_Execute_RepositoryErrorKeepsCause(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	metrics := &mockMetrics{}
	pgErr := &pq.Error{Code: "40001"}

	repo.On("EnsureExists", ctx, "client-1").Return(nil)
	repo.On("GetByClientID", ctx, "client-1").Return(nil, pgErr)
	metrics.On("ObserveReliabilityEvent", "completed", resultFailed).Return()

	_, err := newUseCase(repo, metrics, &inlineTxManager{}).Execute(ctx, &Request{
		ClientID: "client-1",
		EventID:  "evt-3",
		Kind:     "completed",
	})

	assert.ErrorIs(t, err, ErrInternal)
	var target *pq.Error
	assert.True(t, errors.As(err, &target))
}
