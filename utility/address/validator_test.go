package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		address  string
		currency string
		valid    bool
	}{
		{"btc legacy", "1F824Xzdnv3bu29npK7ZZaN9aPAnN31kaD", "BTC", true},
		{"btc genesis", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", "BTC", true},
		{"btc segwit", "bc1q2fv8dmp3hdeu49azalvwh9w7dd8wvw2jl62l6m", "BTC", true},
		{"btc bad checksum", "1F824Xzdnv3bu29npK7ZZaN9aPAnN31kaE", "BTC", false},
		{"btc bech32 bad charset", "bc1qIOb000000000000", "BTC", false},
		{"btc wrong prefix", "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C", "BTC", false},
		{"eth checksummed", "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C", "ETH", true},
		{"eth lowercase", "0xce4b800c0ab49dda535bce18f87f81d13f142a3c", "ETH", true},
		{"eth short", "0xce4B800c0aB49Dda535BCe18F87f81D13f142A", "ETH", false},
		{"eth no prefix", "ce4B800c0aB49Dda535BCe18F87f81D13f142A3C", "ETH", false},
		{"eth bad hex", "0xZZ4B800c0aB49Dda535BCe18F87f81D13f142A3C", "ETH", false},
		{"ltc bech32", "ltc1qw508d6qejxtdg4y5r3zarvary0c5xw7kgmn4n9", "LTC", true},
		{"ltc legacy btc style rejected", "bc1q2fv8dmp3hdeu49azalvwh9w7dd8wvw2jl62l6m", "LTC", false},
		{"empty address", "", "BTC", false},
		{"whitespace address", "   ", "ETH", false},
		{"unknown currency", "0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C", "XRP", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.address, tc.currency)
			require.Equal(t, tc.valid, result.Valid)
			if !tc.valid {
				require.NotEmpty(t, result.Err)
			}
		})
	}
}

// USDT rides the Ethereum address format, any valid ETH address is a valid
// USDT address and vice versa
func TestValidateUSDTMatchesETH(t *testing.T) {
	addresses := []string{
		"0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C",
		"0x0000000000000000000000000000000000000000",
		"0xce4B800c0aB49Dda535BCe18F87f81D13f142A",
		"not-an-address",
		"",
	}
	for _, addr := range addresses {
		eth := Validate(addr, "ETH")
		usdt := Validate(addr, "USDT")
		require.Equal(t, eth.Valid, usdt.Valid, "ETH/USDT diverged on %q", addr)
	}
}

func TestValidateCurrencyCaseInsensitive(t *testing.T) {
	require.True(t, Validate("0xce4B800c0aB49Dda535BCe18F87f81D13f142A3C", "eth").Valid)
	require.True(t, Validate("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", " btc ").Valid)
}

func TestValidateOversizedInputDoesNotPanic(t *testing.T) {
	huge := strings.Repeat("1", 10000)
	result := Validate(huge, "BTC")
	require.False(t, result.Valid)
}
