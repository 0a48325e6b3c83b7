package services

import (
	"context"

	"github.com/maskhan/convert_backend/internal/core/domain"
)

// RateProviderSvc supplies conversion rate samples.
type RateProviderSvc interface {
	// Sample returns a rate for the pair, served from a bounded-age cache.
	// Rate unavailability is absorbed: on fetch failure the previous cached
	// sample or the configured default is returned, never an error.
	Sample(ctx context.Context, fromCode, toCode string) domain.RateSample
}
