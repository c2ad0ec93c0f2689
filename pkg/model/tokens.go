package model

import "strings"

// TokenConfig describes a statically configured token. Decimals drive all
// amount conversions for that token.
type TokenConfig struct {
	Mint     string `json:"mint"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

// Well-known mainnet mints.
const (
	NativeSOL = "So11111111111111111111111111111111111111112"
	USDCMint  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDTMint  = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

// Tokens is the static registry of supported tokens, keyed by symbol.
var Tokens = map[string]TokenConfig{
	"SOL":  {Mint: NativeSOL, Decimals: 9, Symbol: "SOL", Name: "Solana"},
	"USDC": {Mint: USDCMint, Decimals: 6, Symbol: "USDC", Name: "USD Coin"},
	"USDT": {Mint: USDTMint, Decimals: 6, Symbol: "USDT", Name: "Tether USD"},
}

// ResolveToken looks up a token by symbol (case-insensitive) or by raw mint
// address. The second return value reports whether a config was found.
func ResolveToken(symbolOrMint string) (TokenConfig, bool) {
	if tok, ok := Tokens[strings.ToUpper(symbolOrMint)]; ok {
		return tok, true
	}
	for _, tok := range Tokens {
		if tok.Mint == symbolOrMint {
			return tok, true
		}
	}
	return TokenConfig{}, false
}
