package services

import (
	"log/slog"

	portsrepo "github.com/maskhan/convert_backend/internal/core/ports/repositories"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/platform/merchant"
	"github.com/maskhan/convert_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(
	cfg *config.Config,
	m merchant.Config,
	repos portsrepo.RepositoryProvider,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = NewRateService(cfg, logger)
	container.Fee = NewFeeService(nil)
	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Notification = NewNotificationService(m)

	// The quote service sits on top of the rate, fee and ledger services.
	container.Quote = NewQuoteService(container.Rate, container.Fee, container.Ledger, m, cfg, logger)

	container.Token = NewTokenService(cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.RateProviderSvc       = (*rateService)(nil)
	_ portssvc.FeeScheduleSvc        = (*feeService)(nil)
	_ portssvc.QuoteSvcFacade        = (*quoteService)(nil)
	_ portssvc.LedgerSvcFacade       = (*ledgerService)(nil)
	_ portssvc.NotificationSvcFacade = (*notificationService)(nil)
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
)
