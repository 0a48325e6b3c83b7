package utils

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const invoicePrefix = "INV-"

// InvoiceIDGenerator produces short human-readable invoice tokens derived from
// the current timestamp: "INV-" followed by the uppercase base-36 encoding of
// unix milliseconds. Calls landing inside the same millisecond get a monotonic
// base-36 counter suffix, so ids stay unique under rapid repeated confirmations.
type InvoiceIDGenerator struct {
	now func() time.Time

	mu      sync.Mutex
	lastMs  int64
	counter int64
}

// NewInvoiceIDGenerator returns a generator using the wall clock.
func NewInvoiceIDGenerator() *InvoiceIDGenerator {
	return &InvoiceIDGenerator{now: time.Now}
}

// NewInvoiceIDGeneratorWithClock returns a generator using the given clock.
func NewInvoiceIDGeneratorWithClock(now func() time.Time) *InvoiceIDGenerator {
	return &InvoiceIDGenerator{now: now}
}

// Next returns a fresh invoice identifier.
func (g *InvoiceIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.lastMs {
		// same (or rewound) millisecond; disambiguate with the counter
		g.counter++
	} else {
		g.lastMs = ms
		g.counter = 0
	}

	token := strings.ToUpper(strconv.FormatInt(g.lastMs, 36))
	if g.counter > 0 {
		token += "-" + strings.ToUpper(strconv.FormatInt(g.counter, 36))
	}
	return invoicePrefix + token
}
