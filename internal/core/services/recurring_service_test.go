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

// MockRecurringRepository is a mock type for the RecurringRepositoryFacade interface
type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.RecurringTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTemplate), args.Error(1)
}

func (m *MockRecurringRepository) ListTemplatesByUser(ctx context.Context, userID string) ([]domain.RecurringTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTemplate), args.Error(1)
}

func (m *MockRecurringRepository) SaveTemplate(ctx context.Context, template domain.RecurringTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

func (m *MockRecurringRepository) SetTemplateChecked(ctx context.Context, templateID string, checked bool, userID string, now time.Time) error {
	args := m.Called(ctx, templateID, checked, userID, now)
	return args.Error(0)
}

func (m *MockRecurringRepository) RecordOccurrence(ctx context.Context, template domain.RecurringTemplate, entryID, actionID string, now time.Time) (*domain.RecordedOccurrence, error) {
	args := m.Called(ctx, template, entryID, actionID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordedOccurrence), args.Error(1)
}

func (m *MockRecurringRepository) RevertOccurrence(ctx context.Context, action domain.CompensatingAction, now time.Time) error {
	args := m.Called(ctx, action, now)
	return args.Error(0)
}

func (m *MockRecurringRepository) AlreadyRecorded(ctx context.Context, templateID string, occurrenceDate time.Time) (bool, error) {
	args := m.Called(ctx, templateID, occurrenceDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecurringRepository) FindOpenAction(ctx context.Context, userID, templateID string, periodStart, periodEnd time.Time) (*domain.CompensatingAction, error) {
	args := m.Called(ctx, userID, templateID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompensatingAction), args.Error(1)
}

func (m *MockRecurringRepository) ListOpenActions(ctx context.Context, userID string, periodStart, periodEnd time.Time) ([]domain.CompensatingAction, error) {
	args := m.Called(ctx, userID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompensatingAction), args.Error(1)
}

// MockCategoryReader is a mock type for the CategoryReader interface
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategoriesByUser(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryReader) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockCategoryReader) ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

// --- Test Suite Setup ---

type RecurringServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockRecurringRepository
	mockCategory *MockCategoryReader
	service      portssvc.RecurringSvcFacade

	userID     string
	templateID string
	categoryID string
	template   domain.RecurringTemplate
	category   domain.Category
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRecurringRepository)
	suite.mockCategory = new(MockCategoryReader)
	suite.service = services.NewRecurringService(suite.mockRepo, suite.mockCategory)

	suite.userID = uuid.NewString()
	suite.templateID = uuid.NewString()
	suite.categoryID = uuid.NewString()

	suite.category = domain.Category{
		CategoryID: suite.categoryID,
		UserID:     suite.userID,
		Name:       "Rent",
		Kind:       domain.Expense,
	}
	suite.template = domain.RecurringTemplate{
		TemplateID:         suite.templateID,
		UserID:             suite.userID,
		Name:               "Rent",
		Amount:             decimal.NewFromInt(85000),
		Kind:               domain.Expense,
		CategoryID:         suite.categoryID,
		FrequencyUnit:      domain.Months,
		IntervalCount:      1,
		NextOccurrenceDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

// --- Template CRUD ---

func (suite *RecurringServiceTestSuite) TestCreateTemplate_Success() {
	ctx := context.Background()
	req := dto.CreateTemplateRequest{
		Name:               "Rent",
		Amount:             decimal.NewFromInt(85000),
		Kind:               "EXPENSE",
		CategoryID:         suite.categoryID,
		FrequencyUnit:      "MONTHS",
		IntervalCount:      1,
		NextOccurrenceDate: time.Date(2025, 3, 31, 15, 4, 5, 0, time.FixedZone("JST", 9*3600)),
	}

	suite.mockCategory.On("FindCategoryByID", ctx, suite.categoryID).Return(&suite.category, nil).Once()
	suite.mockRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.RecurringTemplate")).Return(nil).Once()

	created, err := suite.service.CreateTemplate(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TemplateID)
	suite.Equal(suite.userID, created.UserID)
	// Wall-clock components never leak into the schedule.
	suite.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), created.NextOccurrenceDate)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCategory.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateTemplate_RejectsInvalidInterval() {
	ctx := context.Background()
	req := dto.CreateTemplateRequest{
		Name:               "Rent",
		Amount:             decimal.NewFromInt(85000),
		Kind:               "EXPENSE",
		CategoryID:         suite.categoryID,
		FrequencyUnit:      "MONTHS",
		IntervalCount:      0,
		NextOccurrenceDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	created, err := suite.service.CreateTemplate(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidInterval)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateTemplate_RejectsCategoryKindMismatch() {
	ctx := context.Background()
	incomeCategory := suite.category
	incomeCategory.Kind = domain.Income
	req := dto.CreateTemplateRequest{
		Name:               "Rent",
		Amount:             decimal.NewFromInt(85000),
		Kind:               "EXPENSE",
		CategoryID:         suite.categoryID,
		FrequencyUnit:      "MONTHS",
		IntervalCount:      1,
		NextOccurrenceDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockCategory.On("FindCategoryByID", ctx, suite.categoryID).Return(&incomeCategory, nil).Once()

	_, err := suite.service.CreateTemplate(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCategoryKindMismatch)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateTemplate_RejectsLinkedAccountOnExpense() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTemplateRequest{
		Name:               "Rent",
		Amount:             decimal.NewFromInt(85000),
		Kind:               "EXPENSE",
		CategoryID:         suite.categoryID,
		FrequencyUnit:      "MONTHS",
		IntervalCount:      1,
		NextOccurrenceDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		LinkedAccountID:    &accountID,
	}

	_, err := suite.service.CreateTemplate(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrLinkedAccountExpense)
}

func (suite *RecurringServiceTestSuite) TestGetTemplateByID_ForeignUserGetsNotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindTemplateByID", ctx, suite.templateID).Return(&suite.template, nil).Once()

	template, err := suite.service.GetTemplateByID(ctx, uuid.NewString(), suite.templateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(template)
}

func (suite *RecurringServiceTestSuite) TestUpdateTemplate_DoesNotTouchSchedule() {
	ctx := context.Background()
	newName := "Rent (new lease)"
	suite.mockRepo.On("FindTemplateByID", ctx, suite.templateID).Return(&suite.template, nil).Once()
	suite.mockRepo.On("UpdateTemplate", ctx, mock.MatchedBy(func(t domain.RecurringTemplate) bool {
		return t.Name == newName && t.NextOccurrenceDate.Equal(suite.template.NextOccurrenceDate)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTemplate(ctx, suite.userID, suite.templateID, dto.UpdateTemplateRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Recording ---

func (suite *RecurringServiceTestSuite) TestRecordOccurrence_Success() {
	ctx := context.Background()
	occurrence := suite.template.NextOccurrenceDate
	advanced := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindTemplateByID", ctx, suite.templateID).Return(&suite.template, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, suite.template, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(&domain.RecordedOccurrence{
			Entry: domain.LedgerEntry{
				EntryID:          uuid.NewString(),
				UserID:           suite.userID,
				Kind:             domain.Expense,
				Amount:           suite.template.Amount,
				SourceTemplateID: &suite.templateID,
				OccurrenceDate:   &occurrence,
				EntryDate:        occurrence,
			},
			Action: domain.CompensatingAction{
				ActionID:                   uuid.NewString(),
				TemplateID:                 suite.templateID,
				PreviousNextOccurrenceDate: occurrence,
				Amount:                     suite.template.Amount,
			},
			NextOccurrenceDate:     advanced,
			PreviousOccurrenceDate: occurrence,
		}, nil).Once()

	recorded, err := suite.service.RecordOccurrence(ctx, suite.userID, suite.templateID)

	suite.Require().NoError(err)
	suite.Require().NotNil(recorded)
	// The entry is dated at the occurrence, not the wall clock, and the
	// compensating action remembers exactly the date the undo must restore.
	suite.Equal(occurrence, recorded.Entry.EntryDate)
	suite.Equal(occurrence, recorded.Action.PreviousNextOccurrenceDate)
	suite.Equal(advanced, recorded.NextOccurrenceDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestRecordOccurrence_DuplicatePassesThrough() {
	ctx := context.Background()
	suite.mockRepo.On("FindTemplateByID", ctx, suite.templateID).Return(&suite.template, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, suite.template, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrDuplicate).Once()

	recorded, err := suite.service.RecordOccurrence(ctx, suite.userID, suite.templateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(recorded)
}

func (suite *RecurringServiceTestSuite) TestRecordOccurrence_ForeignTemplateNeverHitsRecorder() {
	ctx := context.Background()
	suite.mockRepo.On("FindTemplateByID", ctx, suite.templateID).Return(&suite.template, nil).Once()

	_, err := suite.service.RecordOccurrence(ctx, uuid.NewString(), suite.templateID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordOccurrence", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Batch ---

func (suite *RecurringServiceTestSuite) TestRecordBatch_ContinuesPastFailures() {
	ctx := context.Background()
	t1 := suite.template
	t2 := suite.template
	t2.TemplateID = uuid.NewString()
	t3 := suite.template
	t3.TemplateID = uuid.NewString()

	recordedFor := func(t domain.RecurringTemplate) *domain.RecordedOccurrence {
		return &domain.RecordedOccurrence{
			Entry:                  domain.LedgerEntry{EntryID: uuid.NewString()},
			Action:                 domain.CompensatingAction{ActionID: uuid.NewString(), TemplateID: t.TemplateID},
			NextOccurrenceDate:     time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
			PreviousOccurrenceDate: t.NextOccurrenceDate,
		}
	}

	suite.mockRepo.On("FindTemplateByID", ctx, t1.TemplateID).Return(&t1, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, t1, mock.Anything, mock.Anything, mock.Anything).Return(recordedFor(t1), nil).Once()
	suite.mockRepo.On("FindTemplateByID", ctx, t2.TemplateID).Return(&t2, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, t2, mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindTemplateByID", ctx, t3.TemplateID).Return(&t3, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, t3, mock.Anything, mock.Anything, mock.Anything).Return(recordedFor(t3), nil).Once()

	result, err := suite.service.RecordBatch(ctx, suite.userID, []string{t1.TemplateID, t2.TemplateID, t3.TemplateID})

	suite.Require().NoError(err)
	suite.Equal([]string{t1.TemplateID, t3.TemplateID}, result.Succeeded)
	suite.Require().Len(result.Failed, 1)
	suite.Equal(t2.TemplateID, result.Failed[0].TemplateID)
	suite.Equal("already recorded", result.Failed[0].Reason)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestRecordBatch_StorageFailureDoesNotAbortBatch() {
	ctx := context.Background()
	t1 := suite.template
	t2 := suite.template
	t2.TemplateID = uuid.NewString()

	suite.mockRepo.On("FindTemplateByID", ctx, t1.TemplateID).Return(&t1, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, t1, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(500, "failed to insert ledger entry", context.DeadlineExceeded)).Once()
	suite.mockRepo.On("FindTemplateByID", ctx, t2.TemplateID).Return(&t2, nil).Once()
	suite.mockRepo.On("RecordOccurrence", ctx, t2, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.RecordedOccurrence{PreviousOccurrenceDate: t2.NextOccurrenceDate}, nil).Once()

	result, err := suite.service.RecordBatch(ctx, suite.userID, []string{t1.TemplateID, t2.TemplateID})

	suite.Require().NoError(err)
	suite.Equal([]string{t2.TemplateID}, result.Succeeded)
	suite.Require().Len(result.Failed, 1)
	suite.Equal("storage failure", result.Failed[0].Reason)
}

// --- Undo ---

func (suite *RecurringServiceTestSuite) TestUndoOccurrence_Success() {
	ctx := context.Background()
	periodStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	action := domain.CompensatingAction{
		ActionID:                   uuid.NewString(),
		UserID:                     suite.userID,
		TemplateID:                 suite.templateID,
		EntryID:                    uuid.NewString(),
		PreviousNextOccurrenceDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Amount:                     suite.template.Amount,
	}

	suite.mockRepo.On("FindOpenAction", ctx, suite.userID, suite.templateID, periodStart, periodEnd).Return(&action, nil).Once()
	suite.mockRepo.On("RevertOccurrence", ctx, action, mock.AnythingOfType("time.Time")).Return(nil).Once()

	undone, err := suite.service.UndoOccurrence(ctx, suite.userID, suite.templateID, periodStart, periodEnd)

	suite.Require().NoError(err)
	suite.Require().NotNil(undone)
	suite.True(undone.Undone)
	suite.Equal(action.PreviousNextOccurrenceDate, undone.PreviousNextOccurrenceDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestUndoOccurrence_NothingToUndo() {
	ctx := context.Background()
	periodStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindOpenAction", ctx, suite.userID, suite.templateID, periodStart, periodEnd).
		Return(nil, apperrors.ErrNoOpenAction).Once()

	_, err := suite.service.UndoOccurrence(ctx, suite.userID, suite.templateID, periodStart, periodEnd)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoOpenAction)
	suite.mockRepo.AssertNotCalled(suite.T(), "RevertOccurrence", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestUndoOccurrence_SecondUndoRejected() {
	ctx := context.Background()
	periodStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	action := domain.CompensatingAction{
		ActionID:   uuid.NewString(),
		UserID:     suite.userID,
		TemplateID: suite.templateID,
	}

	suite.mockRepo.On("FindOpenAction", ctx, suite.userID, suite.templateID, periodStart, periodEnd).Return(&action, nil).Once()
	suite.mockRepo.On("RevertOccurrence", ctx, action, mock.AnythingOfType("time.Time")).Return(apperrors.ErrAlreadyUndone).Once()

	_, err := suite.service.UndoOccurrence(ctx, suite.userID, suite.templateID, periodStart, periodEnd)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyUndone)
}

// --- Advisory recorded check ---

func (suite *RecurringServiceTestSuite) TestAlreadyRecorded_NormalizesDate() {
	ctx := context.Background()
	queried := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	normalized := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindTemplateByID", ctx, suite.templateID).Return(&suite.template, nil).Once()
	suite.mockRepo.On("AlreadyRecorded", ctx, suite.templateID, normalized).Return(true, nil).Once()

	recorded, err := suite.service.AlreadyRecorded(ctx, suite.userID, suite.templateID, queried)

	suite.Require().NoError(err)
	suite.True(recorded)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
