package contracts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lumenfolio/studio-portal/studio-portal-backend/pkg/pdf"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateContract(ctx context.Context, c *Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Contract), args.Error(1)
}

func (m *MockRepository) ListContracts(ctx context.Context, photographerID *uuid.UUID, status *ContractStatus) ([]Contract, error) {
	args := m.Called(ctx, photographerID, status)
	return args.Get(0).([]Contract), args.Error(1)
}

func (m *MockRepository) UpdateContractStatus(ctx context.Context, c *Contract, expected ContractStatus) error {
	args := m.Called(ctx, c, expected)
	return args.Error(0)
}

func (m *MockRepository) ListDeliveriesDue(ctx context.Context, cutoff time.Time, limit int) ([]Contract, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]Contract), args.Error(1)
}

// MockNotifier is a mock implementation of the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ContractEvent(ctx context.Context, c *Contract, event string) error {
	args := m.Called(ctx, c, event)
	return args.Error(0)
}

// MockRenderer is a mock implementation of the AgreementRenderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderAgreement(data pdf.AgreementData) ([]byte, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var serviceNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo Repository, notifier Notifier, renderer AgreementRenderer) Service {
	return NewService(repo, notifier, renderer, fixedClock{now: serviceNow}, zap.NewNop())
}

func TestCreateContractAppliesDefaults(t *testing.T) {
	mockRepo := new(MockRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockRepo, mockNotifier, new(MockRenderer))

	ctx := context.Background()
	mockRepo.On("CreateContract", ctx, mock.AnythingOfType("*contracts.Contract")).Return(nil)

	contract, err := service.CreateContract(ctx, CreateRequest{
		PhotographerID: uuid.New(),
		ClientName:     "  Ada Moreno ",
		ClientEmail:    "ada@example.com",
		Title:          "Moreno Wedding",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, contract.Status)
	assert.Equal(t, DefaultDeliveryWindowDays, contract.DeliveryWindowDays)
	assert.Equal(t, "Ada Moreno", contract.ClientName)
	assert.Equal(t, serviceNow, contract.CreatedAt)
	assert.Nil(t, contract.SignedAt)
	assert.Nil(t, contract.EventCompletedAt)

	mockRepo.AssertExpectations(t)
}

func TestTransitionContractPersistsWithPrecondition(t *testing.T) {
	mockRepo := new(MockRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockRepo, mockNotifier, new(MockRenderer))

	ctx := context.Background()
	contractID := uuid.New()
	stored := &Contract{
		ID:                 contractID,
		Status:             StatusSigned,
		DeliveryWindowDays: DefaultDeliveryWindowDays,
	}

	mockRepo.On("GetContractByID", ctx, contractID).Return(stored, nil)
	mockRepo.On("UpdateContractStatus", ctx, mock.AnythingOfType("*contracts.Contract"), StatusSigned).Return(nil)
	mockNotifier.On("ContractEvent", ctx, mock.AnythingOfType("*contracts.Contract"), "contract.in_progress").Return(nil)

	result, err := service.TransitionContract(ctx, contractID, StatusInProgress, TransitionOptions{DeliveryWindowDays: 30})

	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, result.Status)
	require.NotNil(t, result.EventCompletedAt)
	assert.Equal(t, serviceNow, *result.EventCompletedAt)
	assert.Equal(t, 30, result.DeliveryWindowDays)

	mockRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestTransitionContractRejectsIllegalTarget(t *testing.T) {
	mockRepo := new(MockRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockRepo, mockNotifier, new(MockRenderer))

	ctx := context.Background()
	contractID := uuid.New()
	stored := &Contract{ID: contractID, Status: StatusDraft, DeliveryWindowDays: DefaultDeliveryWindowDays}

	mockRepo.On("GetContractByID", ctx, contractID).Return(stored, nil)

	_, err := service.TransitionContract(ctx, contractID, StatusDelivered, TransitionOptions{})

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, StatusDraft, transitionErr.Current)
	assert.Equal(t, StatusDelivered, transitionErr.Attempted)

	// No write and no notification on a rejected transition.
	mockRepo.AssertNotCalled(t, "UpdateContractStatus", mock.Anything, mock.Anything, mock.Anything)
	mockNotifier.AssertNotCalled(t, "ContractEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionContractSurfacesStaleWrite(t *testing.T) {
	mockRepo := new(MockRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockRepo, mockNotifier, new(MockRenderer))

	ctx := context.Background()
	contractID := uuid.New()
	stored := &Contract{ID: contractID, Status: StatusSent, DeliveryWindowDays: DefaultDeliveryWindowDays}

	mockRepo.On("GetContractByID", ctx, contractID).Return(stored, nil)
	mockRepo.On("UpdateContractStatus", ctx, mock.AnythingOfType("*contracts.Contract"), StatusSent).Return(ErrStaleContract)

	_, err := service.TransitionContract(ctx, contractID, StatusViewed, TransitionOptions{})

	assert.ErrorIs(t, err, ErrStaleContract)
	mockNotifier.AssertNotCalled(t, "ContractEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionContractNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockNotifier), new(MockRenderer))

	ctx := context.Background()
	contractID := uuid.New()
	mockRepo.On("GetContractByID", ctx, contractID).Return(nil, nil)

	_, err := service.TransitionContract(ctx, contractID, StatusSent, TransitionOptions{})
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestTransitionContractToleratesNotifierFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockNotifier := new(MockNotifier)
	service := newTestService(mockRepo, mockNotifier, new(MockRenderer))

	ctx := context.Background()
	contractID := uuid.New()
	stored := &Contract{ID: contractID, Status: StatusDraft, DeliveryWindowDays: DefaultDeliveryWindowDays}

	mockRepo.On("GetContractByID", ctx, contractID).Return(stored, nil)
	mockRepo.On("UpdateContractStatus", ctx, mock.AnythingOfType("*contracts.Contract"), StatusDraft).Return(nil)
	mockNotifier.On("ContractEvent", ctx, mock.AnythingOfType("*contracts.Contract"), "contract.sent").Return(assert.AnError)

	result, err := service.TransitionContract(ctx, contractID, StatusSent, TransitionOptions{})

	require.NoError(t, err, "notification failure must not roll back the transition")
	assert.Equal(t, StatusSent, result.Status)
}

func TestGetProgressUsesInjectedClock(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockNotifier), new(MockRenderer))

	ctx := context.Background()
	contractID := uuid.New()
	completedAt := serviceNow.AddDate(0, 0, -15)
	stored := &Contract{
		ID:                 contractID,
		Status:             StatusEditing,
		EventCompletedAt:   &completedAt,
		DeliveryWindowDays: 30,
	}
	mockRepo.On("GetContractByID", ctx, contractID).Return(stored, nil)

	progress, err := service.GetProgress(ctx, contractID)

	require.NoError(t, err)
	assert.Equal(t, 15, *progress.DaysElapsed)
	assert.Equal(t, 15, *progress.DaysRemaining)
	assert.InDelta(t, 50.0, *progress.PercentComplete, 0.001)
}

func TestGenerateAgreementPDF(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, new(MockNotifier), mockRenderer)

	ctx := context.Background()
	contractID := uuid.New()
	stored := &Contract{
		ID:                 contractID,
		Status:             StatusSigned,
		Title:              "Moreno Wedding",
		ClientName:         "Ada Moreno",
		DeliveryWindowDays: DefaultDeliveryWindowDays,
	}
	mockRepo.On("GetContractByID", ctx, contractID).Return(stored, nil)
	mockRenderer.On("RenderAgreement", mock.MatchedBy(func(data pdf.AgreementData) bool {
		return data.ContractID == contractID.String() && data.StatusLabel == "Signed"
	})).Return([]byte("%PDF-1.4"), nil)

	data, err := service.GenerateAgreementPDF(ctx, contractID)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	mockRenderer.AssertExpectations(t)
}
