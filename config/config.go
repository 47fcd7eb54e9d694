// Package config models the remote master configuration file: the token and
// market lists published per cluster. Fetching and parsing live here; the
// decoder core never performs I/O.
package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DefaultURL is the published master configuration document.
const DefaultURL = "https://raw.githubusercontent.com/Ellipsis-Labs/phoenix-sdk/master/master_config.json"

// Token describes one token in the master config.
type Token struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Mint    string `json:"mint"`
	LogoURI string `json:"logoUri"`
}

// Market describes one market in the master config.
type Market struct {
	Market    string `json:"market"`
	BaseMint  string `json:"baseMint"`
	QuoteMint string `json:"quoteMint"`
}

// Cluster is the configuration of one cluster.
type Cluster struct {
	Tokens  []Token  `json:"tokens"`
	Markets []Market `json:"markets"`
}

// MasterConfig maps cluster names (e.g. "mainnet-beta", "devnet") to their
// configuration.
type MasterConfig map[string]Cluster

// Validate checks that every mint and market address parses as a pubkey.
func (c MasterConfig) Validate() error {
	for clusterName, cluster := range c {
		for _, token := range cluster.Tokens {
			if _, err := solana.PublicKeyFromBase58(token.Mint); err != nil {
				return fmt.Errorf("cluster %s: token %s mint %q: %w", clusterName, token.Symbol, token.Mint, err)
			}
		}
		for _, market := range cluster.Markets {
			for _, address := range []string{market.Market, market.BaseMint, market.QuoteMint} {
				if _, err := solana.PublicKeyFromBase58(address); err != nil {
					return fmt.Errorf("cluster %s: market %s: address %q: %w", clusterName, market.Market, address, err)
				}
			}
		}
	}
	return nil
}

// MarketByAddress finds a market by its account address.
func (c Cluster) MarketByAddress(address string) (Market, bool) {
	for _, market := range c.Markets {
		if market.Market == address {
			return market, true
		}
	}
	return Market{}, false
}

// TokenByMint finds a token by its mint address.
func (c Cluster) TokenByMint(mint string) (Token, bool) {
	for _, token := range c.Tokens {
		if token.Mint == mint {
			return token, true
		}
	}
	return Token{}, false
}

// TokenBySymbol finds a token by its display symbol.
func (c Cluster) TokenBySymbol(symbol string) (Token, bool) {
	for _, token := range c.Tokens {
		if token.Symbol == symbol {
			return token, true
		}
	}
	return Token{}, false
}

// MarketAddresses returns the pubkeys of every market in the cluster.
func (c Cluster) MarketAddresses() ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, 0, len(c.Markets))
	for _, market := range c.Markets {
		key, err := solana.PublicKeyFromBase58(market.Market)
		if err != nil {
			return nil, fmt.Errorf("market address %q: %w", market.Market, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
