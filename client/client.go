// Package client fetches market account bytes over Solana RPC and keeps a
// cache of decoded snapshots. It owns all I/O, cancellation, and timeout
// concerns; decoding itself is delegated to the root package and stays pure.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/xid"

	phoenix "github.com/solbook/phoenix-go"
	"github.com/solbook/phoenix-go/protocol"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger allows setting a custom logger
func SetLogger(l *slog.Logger) {
	logger = l
}

// AccountFetcher returns the raw data of the requested accounts, one entry
// per requested key, nil for accounts the node does not hold.
type AccountFetcher interface {
	FetchAccounts(ctx context.Context, keys ...solana.PublicKey) ([][]byte, error)
}

type rpcFetcher struct {
	rpc *rpc.Client
}

func (f *rpcFetcher) FetchAccounts(ctx context.Context, keys ...solana.PublicKey) ([][]byte, error) {
	result, err := f.rpc.GetMultipleAccounts(ctx, keys...)
	if err != nil {
		return nil, err
	}

	out := make([][]byte, len(keys))
	for i, account := range result.Value {
		if i >= len(keys) {
			break
		}
		if account == nil || account.Data == nil {
			continue
		}
		out[i] = account.Data.GetBinary()
	}
	return out, nil
}

// Client keeps the latest decoded snapshot per market, refreshed on demand
// from an RPC node.
type Client struct {
	fetcher    AccountFetcher
	cache      *phoenix.Cache
	decodeOpts []phoenix.DecodeOption
}

// New creates a client against an RPC endpoint.
func New(endpoint string, opts ...phoenix.DecodeOption) *Client {
	return NewWithFetcher(&rpcFetcher{rpc: rpc.New(endpoint)}, opts...)
}

// NewWithFetcher creates a client with a custom account source.
func NewWithFetcher(fetcher AccountFetcher, opts ...phoenix.DecodeOption) *Client {
	return &Client{
		fetcher:    fetcher,
		cache:      phoenix.NewCache(),
		decodeOpts: opts,
	}
}

// Clock fetches and decodes the clock sysvar.
func (c *Client) Clock(ctx context.Context) (*protocol.Clock, error) {
	buffers, err := c.fetcher.FetchAccounts(ctx, solana.SysVarClockPubkey)
	if err != nil {
		return nil, fmt.Errorf("fetch clock sysvar: %w", err)
	}
	if len(buffers) == 0 || buffers[0] == nil {
		return nil, fmt.Errorf("%w: clock sysvar", phoenix.ErrDataUnavailable)
	}
	return protocol.DecodeClock(buffers[0])
}

// RefreshMarkets fetches the given market accounts, decodes each snapshot
// concurrently, and installs the results in the cache. Markets that decode
// cleanly are installed even when others fail; the returned error joins the
// per-market failures. Returns ErrDataUnavailable when the node holds fewer
// accounts than requested.
func (c *Client) RefreshMarkets(ctx context.Context, markets ...solana.PublicKey) error {
	if len(markets) == 0 {
		return nil
	}

	refreshID := xid.New().String()

	buffers, err := c.fetcher.FetchAccounts(ctx, markets...)
	if err != nil {
		return fmt.Errorf("fetch market accounts: %w", err)
	}
	if len(buffers) < len(markets) {
		return fmt.Errorf("%w: requested %d, received %d", phoenix.ErrDataUnavailable, len(markets), len(buffers))
	}

	decoded := make([]*phoenix.Market, len(markets))
	errs := make([]error, len(markets))

	var wg sync.WaitGroup
	for i := range markets {
		if buffers[i] == nil {
			errs[i] = fmt.Errorf("%w: market %s", phoenix.ErrDataUnavailable, markets[i])
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			market, err := phoenix.DecodeMarket(buffers[i], c.decodeOpts...)
			if err != nil {
				errs[i] = fmt.Errorf("market %s: %w", markets[i], err)
				return
			}
			decoded[i] = market
		}(i)
	}
	wg.Wait()

	installed := 0
	for i, market := range decoded {
		if errs[i] != nil || market == nil {
			continue
		}
		c.cache.Put(markets[i], market)
		installed++
	}

	logger.Info("markets refreshed",
		"refresh_id", refreshID,
		"requested", len(markets),
		"installed", installed)

	return errors.Join(errs...)
}

// Market returns the cached snapshot for a market.
func (c *Client) Market(market solana.PublicKey) (*phoenix.Market, bool) {
	return c.cache.Get(market)
}

// UiLadder returns the display-unit ladder of a cached market at the current
// on-chain clock, refreshing the market first if it has never been fetched.
func (c *Client) UiLadder(ctx context.Context, market solana.PublicKey, levels int) (*phoenix.UiLadder, error) {
	if levels < 0 {
		return nil, fmt.Errorf("%w: levels %d", phoenix.ErrInvalidParam, levels)
	}

	snapshot, ok := c.cache.Get(market)
	if !ok {
		if err := c.RefreshMarkets(ctx, market); err != nil {
			return nil, err
		}
		snapshot, ok = c.cache.Get(market)
		if !ok {
			return nil, fmt.Errorf("market %s: %w", market, phoenix.ErrNotFound)
		}
	}

	clock, err := c.Clock(ctx)
	if err != nil {
		return nil, err
	}

	return snapshot.UiLadder(clock.Slot, uint64(clock.UnixTimestamp), levels), nil
}
