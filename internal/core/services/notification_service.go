package services

import (
	"net/url"
	"strings"

	"github.com/maskhan/convert_backend/internal/core/domain"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
	"github.com/maskhan/convert_backend/internal/platform/merchant"
	"github.com/maskhan/convert_backend/internal/utils"
)

// notificationService builds the WhatsApp handoff payload for confirmed
// transactions. It only constructs the message and URI; dispatching is left
// to the external fulfillment collaborator.
type notificationService struct {
	merchant merchant.Config
}

// NewNotificationService creates a new NotificationSvcFacade.
func NewNotificationService(m merchant.Config) portssvc.NotificationSvcFacade {
	return &notificationService{merchant: m}
}

// BuildHandoff renders the invoice summary and the wa.me notification URI.
func (s *notificationService) BuildHandoff(entry domain.LedgerEntry) dto.HandoffPayload {
	lines := []string{"INVOICE: " + entry.InvoiceID}

	switch entry.Mode {
	case domain.ChannelCrypto:
		lines = append(lines, "Mode: Crypto", "Exchange: "+entry.Meta.Exchange)
		if entry.Meta.Network != "" {
			lines = append(lines, "Network: "+entry.Meta.Network)
			if addr, ok := s.merchant.OnchainAddresses[entry.Meta.Network]; ok {
				lines = append(lines, "Address: "+addr)
			}
		} else if account, ok := s.merchant.ExchangeAccounts[entry.Meta.Exchange]; ok {
			lines = append(lines, "Account: "+account)
		}
	case domain.ChannelPulsa:
		lines = append(lines, "Mode: Pulsa", "Operator: "+entry.Meta.Operator)
	case domain.ChannelEwallet:
		lines = append(lines, "Mode: E-Wallet")
	}

	lines = append(lines,
		"Gross: "+utils.FormatRupiah(entry.Amounts.Gross),
		"Fee: "+utils.FormatRupiah(entry.Amounts.Fee),
		"Total: "+utils.FormatRupiah(entry.Amounts.Net),
	)
	if entry.Target != "" {
		lines = append(lines, "Tujuan: "+entry.Target)
	}
	lines = append(lines, "", "Mohon konfirmasi & proses. Terima kasih.")

	message := strings.Join(lines, "\n")
	return dto.HandoffPayload{
		InvoiceID:   entry.InvoiceID,
		Message:     message,
		WhatsAppURL: "https://wa.me/" + s.merchant.AdminContact + "?text=" + url.QueryEscape(message),
	}
}
