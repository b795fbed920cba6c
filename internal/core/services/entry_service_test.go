package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
)

// MockEntryRepository is a mock type for the EntryRepositoryFacade interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, userID, periodStart, periodEnd, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type EntryServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockEntryRepository
	mockCategory *MockCategoryReader
	service      portssvc.EntrySvcFacade

	userID string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockEntryRepository)
	suite.mockCategory = new(MockCategoryReader)
	suite.service = services.NewEntryService(suite.mockRepo, suite.mockCategory)
	suite.userID = uuid.NewString()
}

func (suite *EntryServiceTestSuite) manualEntry() *domain.LedgerEntry {
	return &domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		UserID:     suite.userID,
		Kind:       domain.Expense,
		Amount:     decimal.NewFromInt(1200),
		CategoryID: uuid.NewString(),
		EntryDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *EntryServiceTestSuite) recurringEntry() *domain.LedgerEntry {
	e := suite.manualEntry()
	templateID := uuid.NewString()
	occurrence := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	e.SourceTemplateID = &templateID
	e.OccurrenceDate = &occurrence
	return e
}

// --- Test Cases ---

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.CreateEntryRequest{
		Kind:       "EXPENSE",
		Amount:     decimal.NewFromInt(1200),
		CategoryID: categoryID,
		EntryDate:  time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC),
		Memo:       "groceries",
	}

	suite.mockCategory.On("FindCategoryByID", ctx, categoryID).
		Return(&domain.Category{CategoryID: categoryID, UserID: suite.userID, Kind: domain.Expense}, nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		// Manual entries carry no recurring provenance and land on a
		// normalized calendar date.
		return e.SourceTemplateID == nil && e.OccurrenceDate == nil &&
			e.EntryDate.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.EntryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_RecurringEntryRefused() {
	ctx := context.Background()
	entry := suite.recurringEntry()
	newAmount := decimal.NewFromInt(9999)

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.userID, entry.EntryID, dto.UpdateEntryRequest{Amount: &newAmount})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_RecurringEntryRefused() {
	ctx := context.Background()
	entry := suite.recurringEntry()

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_ManualEntryAllowed() {
	ctx := context.Background()
	entry := suite.manualEntry()

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, entry.EntryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestGetEntry_ForeignUserGetsNotFound() {
	ctx := context.Background()
	entry := suite.manualEntry()

	suite.mockRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, uuid.NewString(), entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
