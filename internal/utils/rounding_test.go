package utils_test

import (
	"testing"

	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToWholeUnit(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"16234.56", "16235"},
		{"16234.49", "16234"},
		{"16234.5", "16235"}, // half rounds away from zero
		{"-10.5", "-11"},
		{"155000", "155000"},
	}
	for _, c := range cases {
		in := decimal.RequireFromString(c.in)
		got := utils.RoundToWholeUnit(in)
		assert.Equal(t, c.expected, got.String(), "input %s", c.in)
	}
}

func TestRoundToGranularity(t *testing.T) {
	g500 := decimal.NewFromInt(500)
	cases := []struct {
		in       int64
		expected int64
	}{
		{155_240, 155_000},
		{155_250, 155_500},
		{155_370, 155_500},
		{155_000, 155_000},
		{0, 0},
	}
	for _, c := range cases {
		got := utils.RoundToGranularity(decimal.NewFromInt(c.in), g500)
		assert.True(t, got.Equal(decimal.NewFromInt(c.expected)), "input %d: got %s", c.in, got)
	}
}

func TestRoundToGranularity_UnitGranularityRoundsToWholeUnit(t *testing.T) {
	got := utils.RoundToGranularity(decimal.RequireFromString("19600.4"), decimal.NewFromInt(1))
	assert.Equal(t, "19600", got.String())
}

func TestFormatIDR(t *testing.T) {
	cases := []struct {
		in       int64
		expected string
	}{
		{0, "0"},
		{500, "500"},
		{1_500, "1.500"},
		{155_000, "155.000"},
		{1_234_567, "1.234.567"},
		{-20_000, "-20.000"},
	}
	for _, c := range cases {
		got := utils.FormatIDR(decimal.NewFromInt(c.in))
		assert.Equal(t, c.expected, got, "input %d", c.in)
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 155.000", utils.FormatRupiah(decimal.NewFromInt(155_000)))
}
