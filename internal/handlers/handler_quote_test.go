package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/maskhan/convert_backend/internal/apperrors"
	"github.com/maskhan/convert_backend/internal/core/domain"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
	"github.com/maskhan/convert_backend/internal/handlers"
	"github.com/maskhan/convert_backend/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock QuoteService ---
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Open(ctx context.Context, req dto.OpenQuoteRequest) (*domain.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) Confirm(ctx context.Context) (*domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockQuoteService) Cancel(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQuoteService) Current(ctx context.Context) (*domain.Quote, time.Duration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Quote), args.Get(1).(time.Duration), args.Error(2)
}

var _ portssvc.QuoteSvcFacade = (*MockQuoteService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) BuildHandoff(entry domain.LedgerEntry) dto.HandoffPayload {
	args := m.Called(entry)
	return args.Get(0).(dto.HandoffPayload)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Append(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerService) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Remove(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockLedgerService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) Sample(ctx context.Context, fromCode, toCode string) domain.RateSample {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(domain.RateSample)
}

var _ portssvc.RateProviderSvc = (*MockRateService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Login(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type QuoteHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockQuote        *MockQuoteService
	mockNotification *MockNotificationService
	mockLedger       *MockLedgerService
	mockRate         *MockRateService
	mockToken        *MockTokenService
	jwtSecret        string
}

func (suite *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockQuote = new(MockQuoteService)
	suite.mockNotification = new(MockNotificationService)
	suite.mockLedger = new(MockLedgerService)
	suite.mockRate = new(MockRateService)
	suite.mockToken = new(MockTokenService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		IsProduction:      true, // skip swagger wiring in tests
	}
	services := &portssvc.ServiceContainer{
		Rate:         suite.mockRate,
		Quote:        suite.mockQuote,
		Ledger:       suite.mockLedger,
		Notification: suite.mockNotification,
		Token:        suite.mockToken,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *QuoteHandlerTestSuite) generateTestToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    "convert-test",
		Subject:   "admin",
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

func (suite *QuoteHandlerTestSuite) serve(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleQuote() *domain.Quote {
	return &domain.Quote{
		InvoiceCandidateID: "candidate-1",
		Channel:            domain.ChannelCrypto,
		RequestedUnits:     decimal.NewFromInt(10),
		Rate: domain.RateSample{
			FromCurrencyCode: "USD",
			ToCurrencyCode:   "IDR",
			Value:            decimal.NewFromInt(16_000),
		},
		Gross:     decimal.NewFromInt(160_000),
		Fee:       decimal.NewFromInt(5_000),
		Net:       decimal.NewFromInt(155_000),
		Meta:      domain.ChannelMeta{Exchange: "binance"},
		CreatedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		TTL:       10 * time.Minute,
	}
}

// --- Quote endpoints ---

func (suite *QuoteHandlerTestSuite) TestOpenQuote_Success() {
	suite.mockQuote.On("Open", mock.Anything, mock.AnythingOfType("dto.OpenQuoteRequest")).Return(sampleQuote(), nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/quote", `{"channel":"crypto","units":10,"exchange":"binance"}`, nil)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("candidate-1", body.InvoiceCandidateID)
	suite.True(body.Net.Equal(decimal.NewFromInt(155_000)))
	suite.Equal(int64(600), body.RemainingSeconds)
	suite.mockQuote.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestOpenQuote_ValidationError() {
	suite.mockQuote.On("Open", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("choose a mobile operator")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/quote", `{"channel":"pulsa","units":20000}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "operator")
}

func (suite *QuoteHandlerTestSuite) TestOpenQuote_MalformedBody() {
	w := suite.serve(http.MethodPost, "/api/v1/quote", `{"channel":`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQuote.AssertNotCalled(suite.T(), "Open", mock.Anything, mock.Anything)
}

func (suite *QuoteHandlerTestSuite) TestOpenQuote_ZeroUnitsRejectedByBinding() {
	w := suite.serve(http.MethodPost, "/api/v1/quote", `{"channel":"crypto","units":0,"exchange":"binance"}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQuote.AssertNotCalled(suite.T(), "Open", mock.Anything, mock.Anything)
}

func (suite *QuoteHandlerTestSuite) TestOpenQuote_UnknownChannelRejectedByBinding() {
	w := suite.serve(http.MethodPost, "/api/v1/quote", `{"channel":"cash","units":10}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQuote.AssertNotCalled(suite.T(), "Open", mock.Anything, mock.Anything)
}

func (suite *QuoteHandlerTestSuite) TestGetQuote_Success() {
	suite.mockQuote.On("Current", mock.Anything).Return(sampleQuote(), 6*time.Minute, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/quote", "", nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(360), body.RemainingSeconds)
}

func (suite *QuoteHandlerTestSuite) TestGetQuote_NoActiveQuote() {
	suite.mockQuote.On("Current", mock.Anything).Return(nil, time.Duration(0), apperrors.ErrNoActiveQuote).Once()

	w := suite.serve(http.MethodGet, "/api/v1/quote", "", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestConfirmQuote_Success() {
	entry := &domain.LedgerEntry{
		InvoiceID: "INV-ABC",
		Mode:      domain.ChannelCrypto,
		Amounts: domain.Amounts{
			Gross: decimal.NewFromInt(160_000),
			Fee:   decimal.NewFromInt(5_000),
			Net:   decimal.NewFromInt(155_000),
		},
	}
	handoff := dto.HandoffPayload{InvoiceID: "INV-ABC", Message: "msg", WhatsAppURL: "https://wa.me/123?text=msg"}

	suite.mockQuote.On("Confirm", mock.Anything).Return(entry, nil).Once()
	suite.mockNotification.On("BuildHandoff", *entry).Return(handoff).Once()

	w := suite.serve(http.MethodPost, "/api/v1/quote/confirm", "", nil)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.ConfirmQuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("INV-ABC", body.Entry.InvoiceID)
	suite.Equal(handoff.WhatsAppURL, body.Handoff.WhatsAppURL)
	suite.mockNotification.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestConfirmQuote_NoActiveQuote() {
	suite.mockQuote.On("Confirm", mock.Anything).Return(nil, apperrors.ErrNoActiveQuote).Once()

	w := suite.serve(http.MethodPost, "/api/v1/quote/confirm", "", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockNotification.AssertNotCalled(suite.T(), "BuildHandoff", mock.Anything)
}

func (suite *QuoteHandlerTestSuite) TestConfirmQuote_Expired() {
	suite.mockQuote.On("Confirm", mock.Anything).Return(nil, apperrors.ErrQuoteExpired).Once()

	w := suite.serve(http.MethodPost, "/api/v1/quote/confirm", "", nil)

	suite.Equal(http.StatusGone, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestConfirmQuote_LedgerFailure() {
	suite.mockQuote.On("Confirm", mock.Anything).Return(nil, errors.New("disk full")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/quote/confirm", "", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestCancelQuote() {
	suite.mockQuote.On("Cancel", mock.Anything).Return(nil).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/quote", "", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

// --- Ledger endpoints ---

func (suite *QuoteHandlerTestSuite) TestListLedger_Public() {
	entries := []domain.LedgerEntry{{InvoiceID: "INV-1", Mode: domain.ChannelPulsa}}
	suite.mockLedger.On("List", mock.Anything).Return(entries, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/ledger", "", nil)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.LedgerEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("INV-1", body[0].InvoiceID)
}

func (suite *QuoteHandlerTestSuite) TestDeleteLedgerEntry_RequiresAuth() {
	w := suite.serve(http.MethodDelete, "/api/v1/ledger/INV-1", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Remove", mock.Anything, mock.Anything)
}

func (suite *QuoteHandlerTestSuite) TestDeleteLedgerEntry_WithToken() {
	suite.mockLedger.On("Remove", mock.Anything, "INV-1").Return(nil).Once()

	headers := map[string]string{"Authorization": "Bearer " + suite.generateTestToken()}
	w := suite.serve(http.MethodDelete, "/api/v1/ledger/INV-1", "", headers)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestClearLedger_WithToken() {
	suite.mockLedger.On("Clear", mock.Anything).Return(nil).Once()

	headers := map[string]string{"Authorization": "Bearer " + suite.generateTestToken()}
	w := suite.serve(http.MethodDelete, "/api/v1/ledger", "", headers)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestClearLedger_InvalidToken() {
	headers := map[string]string{"Authorization": "Bearer not-a-real-token"}
	w := suite.serve(http.MethodDelete, "/api/v1/ledger", "", headers)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Clear", mock.Anything)
}

// --- Rate endpoint ---

func (suite *QuoteHandlerTestSuite) TestGetRate_Success() {
	sample := domain.RateSample{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "IDR",
		Value:            decimal.NewFromInt(16_235),
	}
	suite.mockRate.On("Sample", mock.Anything, "USD", "IDR").Return(sample).Once()

	w := suite.serve(http.MethodGet, "/api/v1/rates/usd/idr", "", nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.RateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Rate.Equal(decimal.NewFromInt(16_235)))
}

func (suite *QuoteHandlerTestSuite) TestGetRate_BadCurrencyCode() {
	w := suite.serve(http.MethodGet, "/api/v1/rates/usd/rupiah", "", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRate.AssertNotCalled(suite.T(), "Sample", mock.Anything, mock.Anything, mock.Anything)
}

// --- Auth endpoint ---

func (suite *QuoteHandlerTestSuite) TestLogin_Success() {
	suite.mockToken.On("Login", mock.Anything, "hunter2").Return("signed.jwt.token", nil).Once()

	w := suite.serve(http.MethodPost, "/auth/login", `{"password":"hunter2"}`, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("signed.jwt.token", body.Token)
}

func (suite *QuoteHandlerTestSuite) TestLogin_WrongPassword() {
	suite.mockToken.On("Login", mock.Anything, "wrong").Return("", apperrors.NewValidationError("invalid credentials")).Once()

	w := suite.serve(http.MethodPost, "/auth/login", `{"password":"wrong"}`, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestLogin_MissingPassword() {
	w := suite.serve(http.MethodPost, "/auth/login", `{}`, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockToken.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

// --- Health ---

func (suite *QuoteHandlerTestSuite) TestHealth() {
	w := suite.serve(http.MethodGet, "/health", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestQuoteHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}
