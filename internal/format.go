package internal

import (
	"fmt"

	"github.com/leekchan/accounting"
)

// Money renderers for the three reference currencies. accounting adds the
// thousands separators the raw fmt verbs do not.
var (
	usd     = accounting.Accounting{Symbol: "$", Precision: 2}
	usdFine = accounting.Accounting{Symbol: "$", Precision: 4}
	rub     = accounting.Accounting{Symbol: "₽", Precision: 2}
	eur     = accounting.Accounting{Symbol: "€", Precision: 2}
	eurFine = accounting.Accounting{Symbol: "€", Precision: 4}
)

func notFound(token string) string {
	return fmt.Sprintf("❌ %s не найден", token)
}

// FormatCryptoPrice renders a crypto quote as an HTML message. A coin
// missing from the quotes map renders the not-found message; a provider
// failure is indistinguishable from an unknown coin here.
func FormatCryptoPrice(quotes map[string]CryptoQuote, sym Symbol) string {
	quote, ok := quotes[sym.CoinID]
	if !ok {
		return notFound(sym.Ticker)
	}

	emoji := "🟢"
	if quote.Change24 < 0 {
		emoji = "🔴"
	}

	return fmt.Sprintf(
		"💎 <b>%s</b>\n"+
			"├ USD: <code>%s</code>\n"+
			"├ RUB: <code>%s</code>\n"+
			"├ EUR: <code>%s</code>\n"+
			"└ 24h: %s <code>%+.2f%%</code>",
		sym.Ticker,
		usd.FormatMoney(quote.USD),
		rub.FormatMoney(quote.RUB),
		eur.FormatMoney(quote.EUR),
		emoji, quote.Change24,
	)
}

// FormatFiatRate renders a fiat cross-rate as an HTML message. Rates are
// relative to USD; the USD row itself shows the two reference currencies
// directly. A zero or missing rate renders the not-found message instead
// of dividing by it.
func FormatFiatRate(rates map[string]float64, code string) string {
	rate, ok := rates[code]
	if !ok || rate == 0 {
		return notFound(code)
	}

	rubRate := rates["RUB"]
	eurRate := rates["EUR"]

	if code == "USD" {
		return fmt.Sprintf(
			"💵 <b>USD (Доллар США)</b>\n"+
				"├ RUB: <code>%s</code>\n"+
				"└ EUR: <code>%s</code>",
			rub.FormatMoney(rubRate),
			eurFine.FormatMoney(eurRate),
		)
	}

	usdValue := 1 / rate
	rubValue := rubRate / rate

	return fmt.Sprintf(
		"💵 <b>%s</b>\n"+
			"├ USD: <code>%s</code>\n"+
			"└ RUB: <code>%s</code>",
		code,
		usdFine.FormatMoney(usdValue),
		rub.FormatMoney(rubValue),
	)
}
