package model

// Published per-call access prices, in USDC display units. The server is the
// billing authority; these are advisory for cost previews. The access price
// is charged through the x402 challenge and is independent of the mixer's
// percentage fee, which is deducted from the mix output on-chain.
const (
	PriceChat      = "0.05"
	PriceSwap      = "0.10"
	PriceMixerBase = "0.075"
)

// MixerFeePercent is the flat percentage deducted from a mix output.
const MixerFeePercent = 1
