package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maskhan/convert_backend/internal/apperrors"
	"github.com/maskhan/convert_backend/internal/core/domain"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
	"github.com/maskhan/convert_backend/internal/platform/merchant"
	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/maskhan/convert_backend/pkg/config"
	"github.com/shopspring/decimal"
)

const (
	sourceCurrency      = "USD"
	destinationCurrency = "IDR"
)

// Channel-specific minimum amounts, in the channel's source currency.
var (
	minPulsaAmount   = decimal.NewFromInt(1_000)
	minEwalletAmount = decimal.NewFromInt(2_000)
)

// quoteService owns the single open quote and arbitrates its lifecycle:
// Idle -> Locked -> Confirmed | Cancelled | Expired, returning to Idle after
// any terminal transition. The mutex serialises Open/Confirm/Cancel so an
// Open always fully completes before the next call is admitted; a second
// Open supersedes a still-locked quote deterministically.
type quoteService struct {
	rates    portssvc.RateProviderSvc
	fees     portssvc.FeeScheduleSvc
	ledger   portssvc.LedgerSvcFacade
	merchant merchant.Config
	logger   *slog.Logger

	ttl               time.Duration
	cryptoGranularity decimal.Decimal
	invoices          portssvc.InvoiceIDSource
	now               func() time.Time

	mu      sync.Mutex
	state   domain.QuoteState
	current *domain.Quote
	expiry  *time.Timer // advisory tick; confirm-time check is authoritative
	expired bool
}

// QuoteServiceOption customises a quoteService.
type QuoteServiceOption func(*quoteService)

// WithQuoteClock overrides the clock, for tests.
func WithQuoteClock(now func() time.Time) QuoteServiceOption {
	return func(s *quoteService) { s.now = now }
}

// WithInvoiceIDSource overrides the invoice id generator.
func WithInvoiceIDSource(src portssvc.InvoiceIDSource) QuoteServiceOption {
	return func(s *quoteService) { s.invoices = src }
}

// NewQuoteService creates the locked-quote state machine. Each instance owns
// its own lock context, so independent instances can coexist in tests.
func NewQuoteService(
	rates portssvc.RateProviderSvc,
	fees portssvc.FeeScheduleSvc,
	ledger portssvc.LedgerSvcFacade,
	m merchant.Config,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...QuoteServiceOption,
) portssvc.QuoteSvcFacade {
	s := &quoteService{
		rates:             rates,
		fees:              fees,
		ledger:            ledger,
		merchant:          m,
		logger:            logger,
		ttl:               cfg.QuoteTTL,
		cryptoGranularity: decimal.NewFromInt(cfg.SettlementGranularity),
		invoices:          utils.NewInvoiceIDGenerator(),
		now:               time.Now,
		state:             domain.QuoteIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open validates the request, fixes rate and fee, and locks the quote.
// A still-open quote is silently superseded without being recorded.
func (s *quoteService) Open(ctx context.Context, req dto.OpenQuoteRequest) (*domain.Quote, error) {
	channel := domain.ChannelKind(req.Channel)
	if err := s.validateRequest(channel, req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.QuoteLocked && s.current != nil {
		s.logger.Info("Superseding open quote",
			slog.String("invoice_candidate_id", s.current.InvoiceCandidateID))
		s.reset()
	}

	var rate domain.RateSample
	if channel == domain.ChannelCrypto {
		rate = s.rates.Sample(ctx, sourceCurrency, destinationCurrency)
	} else {
		// pulsa and e-wallet amounts are already in IDR
		rate = s.rates.Sample(ctx, destinationCurrency, destinationCurrency)
	}

	gross := utils.RoundToWholeUnit(req.Units.Mul(rate.Value))

	var fee, net decimal.Decimal
	switch channel {
	case domain.ChannelCrypto:
		fee = s.fees.CryptoFee(gross)
		net = utils.RoundToGranularity(gross.Sub(fee), s.cryptoGranularity)
	case domain.ChannelPulsa:
		percent := decimal.NewFromInt(s.merchant.OperatorPayoutPercents[req.Operator])
		net = s.fees.PulsaPayout(gross, percent)
		fee = gross.Sub(net)
	case domain.ChannelEwallet:
		fee = s.fees.EwalletFee(gross)
		net = utils.RoundToWholeUnit(gross.Sub(fee))
	}

	q := &domain.Quote{
		InvoiceCandidateID: uuid.NewString(),
		Channel:            channel,
		RequestedUnits:     req.Units,
		Rate:               rate,
		Gross:              gross,
		Fee:                fee,
		Net:                net,
		Meta: domain.ChannelMeta{
			Exchange: req.Exchange,
			Network:  req.Network,
			Operator: req.Operator,
		},
		Target:    req.Target,
		CreatedAt: s.now(),
		TTL:       s.ttl,
	}

	s.current = q
	s.state = domain.QuoteLocked
	s.expired = false
	s.expiry = time.AfterFunc(s.ttl, func() { s.onExpiryTick(q.InvoiceCandidateID) })

	s.logger.Info("Quote locked",
		slog.String("invoice_candidate_id", q.InvoiceCandidateID),
		slog.String("channel", string(channel)),
		slog.String("net", q.Net.String()),
		slog.Time("expires_at", q.ExpiresAt()),
	)

	out := *q
	return &out, nil
}

// validateRequest checks the request before any rate sampling happens, so a
// failed Open leaves no state behind. Messages name the corrective action.
func (s *quoteService) validateRequest(channel domain.ChannelKind, req dto.OpenQuoteRequest) error {
	if !channel.Valid() {
		return fmt.Errorf("%w: choose a channel (crypto, pulsa or ewallet)", apperrors.ErrValidation)
	}
	if req.Units.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: enter a valid amount greater than zero", apperrors.ErrValidation)
	}

	switch channel {
	case domain.ChannelCrypto:
		if req.Exchange == "" {
			return fmt.Errorf("%w: choose an exchange destination", apperrors.ErrValidation)
		}
		if req.Exchange == domain.ExchangeOnchain {
			if req.Network == "" {
				return fmt.Errorf("%w: choose a network for on-chain delivery", apperrors.ErrValidation)
			}
			if _, ok := s.merchant.OnchainAddresses[req.Network]; !ok {
				return fmt.Errorf("%w: choose a supported on-chain network", apperrors.ErrValidation)
			}
		}
	case domain.ChannelPulsa:
		if req.Operator == "" {
			return fmt.Errorf("%w: choose a mobile operator", apperrors.ErrValidation)
		}
		if _, ok := s.merchant.OperatorPayoutPercents[req.Operator]; !ok {
			return fmt.Errorf("%w: choose a supported mobile operator", apperrors.ErrValidation)
		}
		if req.Target == "" {
			return fmt.Errorf("%w: enter the destination phone number", apperrors.ErrValidation)
		}
		if req.Units.LessThan(minPulsaAmount) {
			return fmt.Errorf("%w: pulsa amount must be at least %s", apperrors.ErrValidation, utils.FormatRupiah(minPulsaAmount))
		}
	case domain.ChannelEwallet:
		if req.Target == "" {
			return fmt.Errorf("%w: enter the destination account or number", apperrors.ErrValidation)
		}
		if req.Units.LessThan(minEwalletAmount) {
			return fmt.Errorf("%w: e-wallet amount must be at least %s", apperrors.ErrValidation, utils.FormatRupiah(minEwalletAmount))
		}
	}
	return nil
}

// Confirm finalizes the locked quote. The elapsed-vs-TTL check here is the
// authoritative one; the expiry tick only surfaces an advisory notice.
func (s *quoteService) Confirm(ctx context.Context) (*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.QuoteLocked || s.current == nil {
		return nil, fmt.Errorf("%w: compute a quote before confirming", apperrors.ErrNoActiveQuote)
	}

	q := s.current
	if s.now().Sub(q.CreatedAt) > q.TTL {
		s.logger.Info("Confirm rejected, quote expired",
			slog.String("invoice_candidate_id", q.InvoiceCandidateID))
		s.reset()
		return nil, fmt.Errorf("%w: the locked rate is no longer valid, recompute the quote", apperrors.ErrQuoteExpired)
	}

	entry := domain.LedgerEntry{
		InvoiceID: s.invoices.Next(),
		Mode:      q.Channel,
		Meta:      q.Meta,
		Amounts: domain.Amounts{
			Gross: q.Gross,
			Fee:   q.Fee,
			Net:   q.Net,
		},
		Target:      q.Target,
		ConfirmedAt: s.now(),
	}

	if err := s.ledger.Append(ctx, entry); err != nil {
		// Integrity violations and storage failures alike leave the quote
		// locked; the caller may retry confirm within the TTL.
		s.logger.Error("Ledger append failed",
			slog.String("invoice_id", entry.InvoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("Quote confirmed",
		slog.String("invoice_id", entry.InvoiceID),
		slog.String("mode", string(entry.Mode)),
		slog.String("net", entry.Amounts.Net.String()),
	)
	s.reset()
	return &entry, nil
}

// Cancel discards the locked quote with no ledger effect. Calling it with
// nothing locked is a no-op.
func (s *quoteService) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.QuoteLocked {
		return nil
	}
	s.logger.Info("Quote cancelled",
		slog.String("invoice_candidate_id", s.current.InvoiceCandidateID))
	s.reset()
	return nil
}

// Current returns a copy of the locked quote and the remaining TTL derived
// from the clock, never from accumulated tick state.
func (s *quoteService) Current(ctx context.Context) (*domain.Quote, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.QuoteLocked || s.current == nil {
		return nil, 0, fmt.Errorf("%w: no quote is locked", apperrors.ErrNoActiveQuote)
	}

	out := *s.current
	remaining := out.Remaining(s.now())
	if s.expired {
		remaining = 0
	}
	return &out, remaining, nil
}

// onExpiryTick is the advisory countdown callback. It marks the quote expired
// for read-side purposes but does not force the terminal transition; Confirm
// re-performs the check to avoid racing a confirm call against the tick.
func (s *quoteService) onExpiryTick(invoiceCandidateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.QuoteLocked || s.current == nil || s.current.InvoiceCandidateID != invoiceCandidateID {
		return
	}
	s.expired = true
	s.logger.Warn("Quote TTL elapsed",
		slog.String("invoice_candidate_id", invoiceCandidateID))
}

// reset returns the state machine to Idle and releases the expiry timer.
// Callers must hold the mutex.
func (s *quoteService) reset() {
	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
	s.current = nil
	s.expired = false
	s.state = domain.QuoteIdle
}
