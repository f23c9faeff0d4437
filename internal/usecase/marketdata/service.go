package marketdata

import (
	"context"
	"time"

	"github.com/simulak/simulak-backend/internal/logger"
)

// DefaultQuoteTTL is how long a fetched quote serves the tickers before the
// provider is asked again
const DefaultQuoteTTL = 60 * time.Second

// Service serves ticker quotes to the dashboard: cache first, then the
// provider, then the static fallback. Provider failures never propagate to
// the caller; the ticker degrades to a default quote instead.
type Service struct {
	provider Provider
	fallback *StaticProvider
	cache    *QuoteCache
}

// NewService creates a new market data Service instance. A nil cache gets
// the default TTL on the wall clock.
func NewService(provider Provider, cache *QuoteCache) *Service {
	if cache == nil {
		cache = NewQuoteCache(DefaultQuoteTTL, nil)
	}
	return &Service{
		provider: provider,
		fallback: DefaultStaticProvider(),
		cache:    cache,
	}
}

// GetQuote returns the freshest quote available for symbol.
// Returns ErrQuoteNotFound only when even the fallback has nothing.
func (s *Service) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	if quote, ok := s.cache.Get(symbol); ok {
		return quote, nil
	}

	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		logger.FromContext(ctx).Warn("quote fetch failed, serving fallback", "symbol", symbol, "error", err)
		return s.fallback.GetQuote(ctx, symbol)
	}

	s.cache.Set(symbol, quote)
	return quote, nil
}

// GetQuotes resolves a batch of symbols, skipping the ones nobody can quote
func (s *Service) GetQuotes(ctx context.Context, symbols []string) []Quote {
	quotes := make([]Quote, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}
