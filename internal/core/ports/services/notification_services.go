package services

import (
	"github.com/maskhan/convert_backend/internal/core/domain"
	"github.com/maskhan/convert_backend/internal/dto"
)

// NotificationSvcFacade builds the outbound handoff payload for a confirmed
// transaction. Dispatching the payload is an external collaborator's concern;
// the core only supplies a complete, correctly formatted message and URI.
type NotificationSvcFacade interface {
	BuildHandoff(entry domain.LedgerEntry) dto.HandoffPayload
}
