package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCryptoKeyboard_GridLayout(t *testing.T) {
	kb := cryptoKeyboard()

	// 10 tickers in rows of 5 plus the back row
	require.Len(t, kb.InlineKeyboard, 3)
	require.Len(t, kb.InlineKeyboard[0], 5)
	require.Len(t, kb.InlineKeyboard[1], 5)
	require.Len(t, kb.InlineKeyboard[2], 1)

	first := kb.InlineKeyboard[0][0]
	require.Equal(t, "BTC", first.Text)
	require.Equal(t, "crypto_btc", *first.CallbackData)

	back := kb.InlineKeyboard[2][0]
	require.Equal(t, "menu_main", *back.CallbackData)
}

func TestFiatKeyboard_GridLayout(t *testing.T) {
	kb := fiatKeyboard()

	require.Len(t, kb.InlineKeyboard, 3)
	require.Equal(t, "USD", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "fiat_USD", *kb.InlineKeyboard[0][0].CallbackData)
}

func TestQuoteKeyboard(t *testing.T) {
	kb := quoteKeyboard("crypto_btc", "menu_crypto")

	require.Len(t, kb.InlineKeyboard, 2)
	require.Equal(t, "crypto_btc", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "menu_crypto", *kb.InlineKeyboard[1][0].CallbackData)
}
