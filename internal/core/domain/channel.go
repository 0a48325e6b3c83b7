package domain

// ChannelKind identifies the fulfillment channel for a value transfer.
type ChannelKind string

const (
	ChannelCrypto  ChannelKind = "crypto"
	ChannelPulsa   ChannelKind = "pulsa"
	ChannelEwallet ChannelKind = "ewallet"
)

// Valid reports whether the channel kind is one of the supported channels.
func (k ChannelKind) Valid() bool {
	switch k {
	case ChannelCrypto, ChannelPulsa, ChannelEwallet:
		return true
	}
	return false
}

// ExchangeOnchain is the crypto exchange selection that requires a destination network.
const ExchangeOnchain = "onchain"

// ChannelMeta carries the channel-specific destination identifiers of a quote.
type ChannelMeta struct {
	Exchange string `json:"exchange,omitempty"` // Crypto: exchange name or "onchain"
	Network  string `json:"network,omitempty"`  // Crypto on-chain: destination network
	Operator string `json:"operator,omitempty"` // Pulsa: mobile operator
}
