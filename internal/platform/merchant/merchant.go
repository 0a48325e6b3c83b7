// Package merchant loads the optional merchant configuration document:
// contact and destination identifiers that override the built-in defaults.
package merchant

import (
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// Config holds the merchant's contact/address/account identifiers and
// channel parameters. Values not present in the override document keep
// their defaults; unknown keys in the document are ignored.
type Config struct {
	AdminContact           string            `mapstructure:"adminContact"`           // WhatsApp number for the fulfillment handoff
	OnchainAddresses       map[string]string `mapstructure:"onchainAddresses"`       // destination network -> on-chain address
	ExchangeAccounts       map[string]string `mapstructure:"exchangeAccounts"`       // exchange name -> account identifier
	OperatorPayoutPercents map[string]int64  `mapstructure:"operatorPayoutPercents"` // mobile operator -> payout percent
}

// Defaults returns the built-in merchant configuration.
func Defaults() Config {
	return Config{
		AdminContact: "6281234567890",
		OnchainAddresses: map[string]string{
			"bsc":   "0x290a91c48example000000000000",
			"eth":   "0x290a91c48example000000000000",
			"matic": "0x290a91c48example000000000000",
		},
		ExchangeAccounts: map[string]string{
			"binance": "BINANCE-EX-123",
		},
		OperatorPayoutPercents: map[string]int64{
			"telkomsel": 100,
			"xl":        100,
			"indosat":   100,
			"tri":       99,
			"smartfren": 98,
		},
	}
}

// Load reads the merchant override document at path and merges it over the
// defaults in a single deterministic step. A missing or unreadable document
// is not an error; the defaults apply.
func Load(path string, logger *slog.Logger) Config {
	defaults := Defaults()

	if path == "" {
		return defaults
	}
	if _, err := os.Stat(path); err != nil {
		logger.Info("Merchant config not found, using defaults", slog.String("path", path))
		return defaults
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("adminContact", defaults.AdminContact)
	v.SetDefault("onchainAddresses", defaults.OnchainAddresses)
	v.SetDefault("exchangeAccounts", defaults.ExchangeAccounts)
	v.SetDefault("operatorPayoutPercents", defaults.OperatorPayoutPercents)

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Failed to read merchant config, using defaults", slog.String("path", path), slog.String("error", err.Error()))
		return defaults
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Warn("Failed to parse merchant config, using defaults", slog.String("path", path), slog.String("error", err.Error()))
		return defaults
	}

	logger.Info("Loaded merchant config", slog.String("path", path))
	return cfg
}
