package internal

import (
	"strings"
)

// SymbolKind classifies a raw token from the user
type SymbolKind int

const (
	SymbolUnknown SymbolKind = iota
	SymbolCrypto
	SymbolFiat
)

// Symbol is the result of classifying a raw token. Ticker is the
// normalized uppercase form; CoinID is set for crypto symbols only.
type Symbol struct {
	Kind   SymbolKind
	Ticker string
	CoinID string
}

// cryptoTickers maps short tickers to CoinGecko IDs. Keys are lowercase.
var cryptoTickers = map[string]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"usdt": "tether",
	"bnb":  "binancecoin",
	"xrp":  "ripple",
	"sol":  "solana",
	"doge": "dogecoin",
	"ton":  "the-open-network",
	"ltc":  "litecoin",
	"trx":  "tron",
}

// cryptoOrder fixes the menu and help ordering
var cryptoOrder = []string{"btc", "eth", "usdt", "bnb", "xrp", "sol", "doge", "ton", "ltc", "trx"}

var fiatOrder = []string{"USD", "EUR", "RUB", "UAH", "GBP", "CNY", "JPY", "KZT", "BYN", "PLN"}

var fiatCodes = func() map[string]struct{} {
	set := make(map[string]struct{}, len(fiatOrder))
	for _, code := range fiatOrder {
		set[code] = struct{}{}
	}
	return set
}()

// Resolve classifies a raw token as crypto, fiat or unknown. Crypto tickers
// match case-insensitively; fiat codes match after uppercasing.
func Resolve(raw string) Symbol {
	token := strings.TrimSpace(raw)
	if token == "" {
		return Symbol{Kind: SymbolUnknown}
	}

	if coinID, ok := cryptoTickers[strings.ToLower(token)]; ok {
		return Symbol{
			Kind:   SymbolCrypto,
			Ticker: strings.ToUpper(token),
			CoinID: coinID,
		}
	}

	upper := strings.ToUpper(token)
	if _, ok := fiatCodes[upper]; ok {
		return Symbol{Kind: SymbolFiat, Ticker: upper}
	}

	return Symbol{Kind: SymbolUnknown, Ticker: upper}
}

// CryptoTickers returns the supported crypto tickers in menu order
func CryptoTickers() []string {
	return cryptoOrder
}

// FiatCodes returns the supported fiat codes in menu order
func FiatCodes() []string {
	return fiatOrder
}
