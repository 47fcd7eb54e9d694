package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
  "mainnet-beta": {
    "tokens": [
      {
        "name": "Wrapped SOL",
        "symbol": "SOL",
        "mint": "So11111111111111111111111111111111111111112",
        "logoUri": "https://example.com/sol.png"
      },
      {
        "name": "USD Coin",
        "symbol": "USDC",
        "mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
        "logoUri": "https://example.com/usdc.png"
      }
    ],
    "markets": [
      {
        "market": "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
        "baseMint": "So11111111111111111111111111111111111111112",
        "quoteMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
      }
    ]
  },
  "devnet": {
    "tokens": [],
    "markets": []
  }
}`

func writeSampleConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "master_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeSampleConfig(t, sampleConfig))
	require.NoError(t, err)

	mainnet, ok := cfg["mainnet-beta"]
	require.True(t, ok)
	assert.Len(t, mainnet.Tokens, 2)
	assert.Len(t, mainnet.Markets, 1)

	devnet, ok := cfg["devnet"]
	require.True(t, ok)
	assert.Empty(t, devnet.Markets)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeSampleConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestLoadAndValidate(t *testing.T) {
	_, err := LoadAndValidate(writeSampleConfig(t, sampleConfig))
	require.NoError(t, err)

	bad := `{"mainnet-beta": {"tokens": [{"symbol": "X", "mint": "not-a-pubkey"}], "markets": []}}`
	_, err = LoadAndValidate(writeSampleConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-pubkey")
}

func TestClusterLookups(t *testing.T) {
	cfg, err := Load(writeSampleConfig(t, sampleConfig))
	require.NoError(t, err)
	mainnet := cfg["mainnet-beta"]

	token, ok := mainnet.TokenBySymbol("USDC")
	require.True(t, ok)
	assert.Equal(t, "USD Coin", token.Name)

	token, ok = mainnet.TokenByMint("So11111111111111111111111111111111111111112")
	require.True(t, ok)
	assert.Equal(t, "SOL", token.Symbol)

	market, ok := mainnet.MarketByAddress("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	require.True(t, ok)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", market.QuoteMint)

	_, ok = mainnet.TokenBySymbol("BONK")
	assert.False(t, ok)
	_, ok = mainnet.MarketByAddress("missing")
	assert.False(t, ok)
}

func TestMarketAddresses(t *testing.T) {
	cfg, err := Load(writeSampleConfig(t, sampleConfig))
	require.NoError(t, err)

	keys, err := cfg["mainnet-beta"].MarketAddresses()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"), keys[0])

	broken := Cluster{Markets: []Market{{Market: "nope"}}}
	_, err = broken.MarketAddresses()
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleConfig))
	}))
	defer server.Close()

	cfg, err := Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, cfg["mainnet-beta"].Markets, 1)
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}
