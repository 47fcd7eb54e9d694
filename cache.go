package phoenix

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Cache holds the latest decoded snapshot per market. Replacement is atomic
// per key: readers observe either the previous snapshot or the new one,
// never partial state, because snapshots themselves are immutable.
type Cache struct {
	mu      sync.RWMutex
	markets map[solana.PublicKey]*Market
}

// NewCache creates an empty snapshot cache.
func NewCache() *Cache {
	return &Cache{
		markets: make(map[solana.PublicKey]*Market),
	}
}

// Get returns the latest snapshot for a market.
func (c *Cache) Get(market solana.PublicKey) (*Market, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.markets[market]
	return m, ok
}

// Put installs a new snapshot for a market, discarding the previous one.
func (c *Cache) Put(market solana.PublicKey, m *Market) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.markets[market] = m
}

// Delete removes a market's snapshot.
func (c *Cache) Delete(market solana.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.markets, market)
}

// Markets returns the pubkeys of all cached markets.
func (c *Cache) Markets() []solana.PublicKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]solana.PublicKey, 0, len(c.markets))
	for key := range c.markets {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of cached markets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.markets)
}
