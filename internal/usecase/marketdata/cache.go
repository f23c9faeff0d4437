package marketdata

import (
	"sync"
	"time"
)

// QuoteCache is a TTL cache for quotes. It is an explicit object with an
// injected clock rather than module-level state, so expiry is deterministic
// under test and ownership is visible in the wiring.
type QuoteCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedQuote
}

type cachedQuote struct {
	quote   Quote
	fetched time.Time
}

// NewQuoteCache creates a QuoteCache with the given TTL. A nil clock
// defaults to time.Now.
func NewQuoteCache(ttl time.Duration, now func() time.Time) *QuoteCache {
	if now == nil {
		now = time.Now
	}
	return &QuoteCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cachedQuote),
	}
}

// Get returns the cached quote for symbol if it is still fresh
func (c *QuoteCache) Get(symbol string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[symbol]
	if !ok || c.now().Sub(entry.fetched) >= c.ttl {
		return Quote{}, false
	}
	return entry.quote, true
}

// Set stores a quote, stamping it with the cache's clock
func (c *QuoteCache) Set(symbol string, quote Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = cachedQuote{quote: quote, fetched: c.now()}
}
