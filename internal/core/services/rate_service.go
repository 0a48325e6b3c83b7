package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/maskhan/convert_backend/internal/core/domain"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/maskhan/convert_backend/pkg/config"
	"github.com/shopspring/decimal"
)

// rateService samples conversion rates from an HTTP endpoint, caching one
// sample per pair for a bounded age. Rate unavailability is never fatal for
// quoting: on fetch failure the previous cached sample, or the configured
// default, is returned instead.
type rateService struct {
	apiURL      string
	defaultRate decimal.Decimal
	cacheTTL    time.Duration
	client      *http.Client
	logger      *slog.Logger
	now         func() time.Time

	mu    sync.Mutex
	cache map[string]domain.RateSample
}

// RateServiceOption customises a rateService.
type RateServiceOption func(*rateService)

// WithRateClock overrides the clock, for tests.
func WithRateClock(now func() time.Time) RateServiceOption {
	return func(s *rateService) { s.now = now }
}

// WithRateHTTPClient overrides the HTTP client used for fetches.
func WithRateHTTPClient(c *http.Client) RateServiceOption {
	return func(s *rateService) { s.client = c }
}

// NewRateService creates a new rate provider from the application config.
func NewRateService(cfg *config.Config, logger *slog.Logger, opts ...RateServiceOption) portssvc.RateProviderSvc {
	s := &rateService{
		apiURL:      cfg.RateAPIURL,
		defaultRate: decimal.NewFromInt(cfg.RateDefault),
		cacheTTL:    cfg.RateCacheTTL,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		now:         time.Now,
		cache:       make(map[string]domain.RateSample),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns a rate sample for the pair. A fresh cache entry is returned
// without any external call; a stale or absent one triggers a fetch, falling
// back to the stale value or the default on failure.
func (s *rateService) Sample(ctx context.Context, fromCode, toCode string) domain.RateSample {
	if fromCode == toCode {
		return domain.RateSample{
			FromCurrencyCode: fromCode,
			ToCurrencyCode:   toCode,
			Value:            decimal.NewFromInt(1),
			SampledAt:        s.now(),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := fromCode + "/" + toCode
	cached, ok := s.cache[key]
	if ok && cached.Age(s.now()) < s.cacheTTL {
		return cached
	}

	value, err := s.fetchRate(ctx, toCode)
	if err != nil {
		s.logger.Warn("Rate fetch failed, degrading to last known value",
			slog.String("pair", key), slog.String("error", err.Error()))
		if ok {
			return cached
		}
		return domain.RateSample{
			FromCurrencyCode: fromCode,
			ToCurrencyCode:   toCode,
			Value:            s.defaultRate,
			SampledAt:        s.now(),
		}
	}

	sample := domain.RateSample{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Value:            value,
		SampledAt:        s.now(),
	}
	s.cache[key] = sample
	return sample
}

// rateResponse is the expected JSON shape of the rate endpoint.
type rateResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// fetchRate performs the HTTP GET and extracts the rate for the destination
// currency, rounded to whole destination units before it is cached.
func (s *rateService) fetchRate(ctx context.Context, toCode string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return decimal.Zero, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate endpoint returned status %d", res.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("malformed rate response: %w", err)
	}

	value, ok := body.Rates[toCode]
	if !ok {
		return decimal.Zero, errors.New("rate response missing pair value")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.New("rate response value not positive")
	}

	return utils.RoundToWholeUnit(value), nil
}
