package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"currency-bot/config"

	"github.com/stretchr/testify/require"
)

func newTestClient(cryptoURL, fiatURL string) *RatesClient {
	return NewRatesClient(&config.Config{CryptoAPI: cryptoURL, FiatAPI: fiatURL})
}

func TestCryptoPrices_ParsesResponse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Write([]byte(`{"bitcoin":{"usd":100.5,"rub":9000,"eur":90,"usd_24h_change":-1.5}}`))
	}))
	defer srv.Close()

	quotes := newTestClient(srv.URL, srv.URL).CryptoPrices([]string{"bitcoin", "ethereum"})

	require.Contains(t, gotPath, "ids=bitcoin,ethereum")
	require.Contains(t, gotPath, "vs_currencies=usd,rub,eur")
	require.Contains(t, gotPath, "include_24hr_change=true")

	require.Len(t, quotes, 1)
	quote := quotes["bitcoin"]
	require.Equal(t, 100.5, quote.USD)
	require.Equal(t, 9000.0, quote.RUB)
	require.Equal(t, 90.0, quote.EUR)
	require.Equal(t, -1.5, quote.Change24)
}

func TestCryptoPrices_NonOKStatusIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	quotes := newTestClient(srv.URL, srv.URL).CryptoPrices([]string{"bitcoin"})
	require.Empty(t, quotes)
}

func TestCryptoPrices_BadJSONIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	quotes := newTestClient(srv.URL, srv.URL).CryptoPrices([]string{"bitcoin"})
	require.Empty(t, quotes)
}

func TestCryptoPrices_UnreachableProviderIsEmpty(t *testing.T) {
	quotes := newTestClient("http://127.0.0.1:1", "http://127.0.0.1:1").CryptoPrices([]string{"bitcoin"})
	require.Empty(t, quotes)
}

func TestFiatRates_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9,"RUB":90}}`))
	}))
	defer srv.Close()

	rates := newTestClient(srv.URL, srv.URL).FiatRates()
	require.Equal(t, map[string]float64{"EUR": 0.9, "RUB": 90}, rates)
}

func TestFiatRates_MissingRatesKeyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD"}`))
	}))
	defer srv.Close()

	rates := newTestClient(srv.URL, srv.URL).FiatRates()
	require.NotNil(t, rates)
	require.Empty(t, rates)
}

func TestFiatRates_NonOKStatusIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rates := newTestClient(srv.URL, srv.URL).FiatRates()
	require.Empty(t, rates)
}
