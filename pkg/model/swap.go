package model

// SwapParams describes a requested swap. From and To accept a registry symbol
// ("SOL") or a raw mint address.
type SwapParams struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Amount in display form ("0.1").
	Amount string `json:"amount"`
	// SlippageBps is the tolerated degradation in basis points.
	// Zero means the default of 50 (0.5%).
	SlippageBps int `json:"slippage,omitempty"`
}

// SwapQuote is an immutable snapshot from the aggregator. It is valid only
// for a bounded slot window and is superseded, never mutated.
type SwapQuote struct {
	InAmount  string `json:"inAmount"`
	OutAmount string `json:"outAmount"`
	// OtherAmountThreshold is the minimum output after slippage; execution
	// must never deliver less.
	OtherAmountThreshold string         `json:"otherAmountThreshold"`
	PriceImpactPct       float64        `json:"priceImpactPct"`
	RoutePlan            []JupiterRoute `json:"routePlan"`
	ContextSlot          uint64         `json:"contextSlot"`
}

// SwapResult reports an executed swap.
type SwapResult struct {
	Signature        string `json:"signature"`
	InAmount         string `json:"inAmount"`
	OutAmount        string `json:"outAmount"`
	NLRewards        string `json:"nlRewards"`
	PaymentSignature string `json:"paymentSignature,omitempty"`
}

// JupiterRoute is one leg of the aggregator's route plan, kept verbatim.
type JupiterRoute struct {
	SwapInfo struct {
		AmmKey     string `json:"ammKey"`
		Label      string `json:"label"`
		InputMint  string `json:"inputMint"`
		OutputMint string `json:"outputMint"`
		InAmount   string `json:"inAmount"`
		OutAmount  string `json:"outAmount"`
		FeeAmount  string `json:"feeAmount"`
		FeeMint    string `json:"feeMint"`
	} `json:"swapInfo"`
	Percent int `json:"percent"`
}
