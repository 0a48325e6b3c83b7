package utils_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Format(t *testing.T) {
	ts := time.UnixMilli(1_700_000_000_000)
	gen := utils.NewInvoiceIDGeneratorWithClock(func() time.Time { return ts })

	id := gen.Next()

	expected := "INV-" + strings.ToUpper(strconv.FormatInt(ts.UnixMilli(), 36))
	assert.Equal(t, expected, id)
}

func TestNext_UniqueWithinSameMillisecond(t *testing.T) {
	ts := time.UnixMilli(1_700_000_000_000)
	gen := utils.NewInvoiceIDGeneratorWithClock(func() time.Time { return ts })

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := gen.Next()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNext_CounterResetsOnNewMillisecond(t *testing.T) {
	ts := time.UnixMilli(1_700_000_000_000)
	gen := utils.NewInvoiceIDGeneratorWithClock(func() time.Time { return ts })

	first := gen.Next()
	withSuffix := gen.Next()
	assert.NotEqual(t, first, withSuffix)
	assert.True(t, strings.HasPrefix(withSuffix, first+"-"))

	ts = ts.Add(time.Millisecond)
	next := gen.Next()
	assert.Equal(t, "INV-"+strings.ToUpper(strconv.FormatInt(ts.UnixMilli(), 36)), next)
}

func TestNext_ClockRewindStaysUnique(t *testing.T) {
	ts := time.UnixMilli(1_700_000_000_000)
	gen := utils.NewInvoiceIDGeneratorWithClock(func() time.Time { return ts })

	first := gen.Next()
	ts = ts.Add(-time.Second)
	second := gen.Next()

	assert.NotEqual(t, first, second)
}

func TestNext_UniqueUnderWallClock(t *testing.T) {
	gen := utils.NewInvoiceIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1_000; i++ {
		id := gen.Next()
		require.True(t, strings.HasPrefix(id, "INV-"))
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
