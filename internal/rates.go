package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"currency-bot/config"

	"github.com/rs/zerolog/log"
)

// CryptoQuote holds one coin's prices in the three reference currencies
// plus the 24h change percentage.
type CryptoQuote struct {
	USD      float64 `json:"usd"`
	RUB      float64 `json:"rub"`
	EUR      float64 `json:"eur"`
	Change24 float64 `json:"usd_24h_change"`
}

// RatesClient performs one-shot lookups against the crypto and fiat rate
// providers. Each call is a single fresh HTTP request: no cache, no retry,
// no explicit timeout beyond the transport default.
type RatesClient struct {
	cryptoAPI string
	fiatAPI   string
	client    *http.Client
}

// NewRatesClient creates a rates client from the provider URLs in config
func NewRatesClient(cfg *config.Config) *RatesClient {
	return &RatesClient{
		cryptoAPI: cfg.CryptoAPI,
		fiatAPI:   cfg.FiatAPI,
		client:    http.DefaultClient,
	}
}

// CryptoPrices fetches current prices for the given CoinGecko IDs.
// Any transport or parse failure yields an empty map; callers treat a
// missing ID the same as "not found".
func (c *RatesClient) CryptoPrices(ids []string) map[string]CryptoQuote {
	url := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=usd,rub,eur&include_24hr_change=true",
		c.cryptoAPI, strings.Join(ids, ","),
	)

	resp, err := c.client.Get(url)
	if err != nil {
		log.Error().Err(err).Msg("crypto price request failed")
		return map[string]CryptoQuote{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("crypto price provider returned non-OK status")
		return map[string]CryptoQuote{}
	}

	var quotes map[string]CryptoQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		log.Error().Err(err).Msg("failed to decode crypto price response")
		return map[string]CryptoQuote{}
	}

	return quotes
}

// FiatRates fetches current fiat rates relative to the base currency (USD).
// Empty map on any failure.
func (c *RatesClient) FiatRates() map[string]float64 {
	resp, err := c.client.Get(c.fiatAPI)
	if err != nil {
		log.Error().Err(err).Msg("fiat rate request failed")
		return map[string]float64{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("fiat rate provider returned non-OK status")
		return map[string]float64{}
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error().Err(err).Msg("failed to decode fiat rate response")
		return map[string]float64{}
	}

	if payload.Rates == nil {
		return map[string]float64{}
	}
	return payload.Rates
}
