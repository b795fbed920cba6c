package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
	"github.com/kakeibo-app/kakeibo_backend/internal/handlers"
	"github.com/kakeibo-app/kakeibo_backend/internal/platform/config"
)

// --- Mock RecurringService ---
type MockRecurringService struct {
	mock.Mock
}

func (m *MockRecurringService) CreateTemplate(ctx context.Context, userID string, req dto.CreateTemplateRequest) (*domain.RecurringTemplate, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTemplate), args.Error(1)
}
func (m *MockRecurringService) GetTemplateByID(ctx context.Context, userID, templateID string) (*domain.RecurringTemplate, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTemplate), args.Error(1)
}
func (m *MockRecurringService) ListTemplates(ctx context.Context, userID string) ([]domain.RecurringTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTemplate), args.Error(1)
}
func (m *MockRecurringService) UpdateTemplate(ctx context.Context, userID, templateID string, req dto.UpdateTemplateRequest) (*domain.RecurringTemplate, error) {
	args := m.Called(ctx, userID, templateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTemplate), args.Error(1)
}
func (m *MockRecurringService) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	args := m.Called(ctx, userID, templateID)
	return args.Error(0)
}
func (m *MockRecurringService) RecordOccurrence(ctx context.Context, userID, templateID string) (*domain.RecordedOccurrence, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordedOccurrence), args.Error(1)
}
func (m *MockRecurringService) RecordBatch(ctx context.Context, userID string, templateIDs []string) (*dto.BatchRecordResult, error) {
	args := m.Called(ctx, userID, templateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchRecordResult), args.Error(1)
}
func (m *MockRecurringService) UndoOccurrence(ctx context.Context, userID, templateID string, periodStart, periodEnd time.Time) (*domain.CompensatingAction, error) {
	args := m.Called(ctx, userID, templateID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompensatingAction), args.Error(1)
}
func (m *MockRecurringService) OccurrencesDue(ctx context.Context, userID string, periodStart, periodEnd time.Time) (iter.Seq[domain.RecurringTemplate], error) {
	args := m.Called(ctx, userID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq[domain.RecurringTemplate]), args.Error(1)
}
func (m *MockRecurringService) ListUndoable(ctx context.Context, userID string, periodStart, periodEnd time.Time) ([]domain.CompensatingAction, error) {
	args := m.Called(ctx, userID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompensatingAction), args.Error(1)
}
func (m *MockRecurringService) SetTemplateChecked(ctx context.Context, userID, templateID string, checked bool) error {
	args := m.Called(ctx, userID, templateID, checked)
	return args.Error(0)
}
func (m *MockRecurringService) AlreadyRecorded(ctx context.Context, userID, templateID string, occurrenceDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, templateID, occurrenceDate)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.RecurringSvcFacade = (*MockRecurringService)(nil)

// --- Test Suite ---
type RecurringHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockRecurringService
	jwtSecret   string
	userID      string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *RecurringHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "kakeibo-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *RecurringHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockService = new(MockRecurringService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, JWTIssuer: "kakeibo-test"}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Recurring: suite.mockService,
	})
}

func (suite *RecurringHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RecurringHandlerTestSuite) TestRecordOccurrence_Success() {
	templateID := uuid.NewString()
	occurrence := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockService.On("RecordOccurrence", mock.Anything, suite.userID, templateID).
		Return(&domain.RecordedOccurrence{
			Entry:                  domain.LedgerEntry{EntryID: uuid.NewString(), Amount: decimal.NewFromInt(85000)},
			Action:                 domain.CompensatingAction{ActionID: uuid.NewString()},
			NextOccurrenceDate:     time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
			PreviousOccurrenceDate: occurrence,
		}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/recurring/"+templateID+"/record", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RecordedOccurrenceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.OccurrenceDate.Equal(occurrence))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *RecurringHandlerTestSuite) TestRecordOccurrence_DuplicateIsConflict() {
	templateID := uuid.NewString()
	suite.mockService.On("RecordOccurrence", mock.Anything, suite.userID, templateID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/recurring/"+templateID+"/record", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RecurringHandlerTestSuite) TestRecordOccurrence_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/recurring/"+uuid.NewString()+"/record", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RecordOccurrence", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringHandlerTestSuite) TestRecordOccurrence_WrongIssuerRejected() {
	claims := jwt.RegisteredClaims{
		Issuer:    "some-other-service",
		Subject:   suite.userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/recurring/"+uuid.NewString()+"/record", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RecordOccurrence", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringHandlerTestSuite) TestRecordBatch_PartialFailureIsMultiStatus() {
	t1 := uuid.NewString()
	t2 := uuid.NewString()

	suite.mockService.On("RecordBatch", mock.Anything, suite.userID, []string{t1, t2}).
		Return(&dto.BatchRecordResult{
			Succeeded: []string{t1},
			Failed:    []dto.BatchFailure{{TemplateID: t2, Reason: "already recorded"}},
		}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/recurring/record-batch", dto.RecordBatchRequest{TemplateIDs: []string{t1, t2}})

	suite.Equal(http.StatusMultiStatus, w.Code)
	var result dto.BatchRecordResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.Equal([]string{t1}, result.Succeeded)
	suite.Require().Len(result.Failed, 1)
	suite.Equal("already recorded", result.Failed[0].Reason)
}

func (suite *RecurringHandlerTestSuite) TestRecordBatch_EmptyListRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/recurring/record-batch", dto.RecordBatchRequest{TemplateIDs: []string{}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RecordBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringHandlerTestSuite) TestUndoOccurrence_NothingToUndo() {
	templateID := uuid.NewString()
	periodStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockService.On("UndoOccurrence", mock.Anything, suite.userID, templateID, periodStart, periodEnd).
		Return(nil, apperrors.ErrNoOpenAction).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/recurring/"+templateID+"/undo", dto.UndoRequest{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RecurringHandlerTestSuite) TestUndoOccurrence_AlreadyUndoneIsConflict() {
	templateID := uuid.NewString()
	periodStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockService.On("UndoOccurrence", mock.Anything, suite.userID, templateID, periodStart, periodEnd).
		Return(nil, apperrors.ErrAlreadyUndone).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/recurring/"+templateID+"/undo", dto.UndoRequest{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RecurringHandlerTestSuite) TestListDue_Success() {
	template := domain.RecurringTemplate{
		TemplateID:         uuid.NewString(),
		UserID:             suite.userID,
		Name:               "Rent",
		Amount:             decimal.NewFromInt(85000),
		Kind:               domain.Expense,
		FrequencyUnit:      domain.Months,
		IntervalCount:      1,
		NextOccurrenceDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	seq := func(yield func(domain.RecurringTemplate) bool) {
		yield(template)
	}

	suite.mockService.On("OccurrencesDue", mock.Anything, suite.userID,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	).Return(iter.Seq[domain.RecurringTemplate](seq), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/recurring/due?periodStart=2025-03-01&periodEnd=2025-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Due []dto.TemplateResponse `json:"due"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Due, 1)
	suite.Equal(template.TemplateID, resp.Due[0].TemplateID)
}

func (suite *RecurringHandlerTestSuite) TestListDue_InvalidPeriodRejected() {
	w := suite.doRequest(http.MethodGet, "/api/v1/recurring/due?periodStart=2025-03-31&periodEnd=2025-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "OccurrencesDue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringHandlerTestSuite) TestCreateTemplate_InvalidIntervalRejectedAtBinding() {
	body := map[string]any{
		"name":               "Rent",
		"amount":             "85000",
		"kind":               "EXPENSE",
		"categoryID":         uuid.NewString(),
		"frequencyUnit":      "MONTHS",
		"intervalCount":      0,
		"nextOccurrenceDate": "2025-03-31T00:00:00Z",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/recurring", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTemplate", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecurringHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringHandlerTestSuite))
}
