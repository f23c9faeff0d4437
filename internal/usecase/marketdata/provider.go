package marketdata

import (
	"context"
	"errors"
	"time"
)

// ErrQuoteNotFound is returned when a provider has no quote for a symbol
var ErrQuoteNotFound = errors.New("quote not found")

// Quote is a single market quote as displayed by the dashboard tickers.
// Quotes never feed the simulation math; they are display-side only.
type Quote struct {
	Symbol   string    `json:"symbol"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	AsOf     time.Time `json:"asOf"`
}

// Provider fetches quotes from some upstream source
type Provider interface {
	GetQuote(ctx context.Context, symbol string) (Quote, error)
}

// StaticProvider serves a fixed quote table. It backs the ticker display
// when the upstream provider is unreachable, so a fetch failure degrades to
// defaults instead of propagating.
type StaticProvider struct {
	Quotes map[string]Quote
}

// DefaultStaticProvider returns a StaticProvider covering the symbols the
// dashboard shows out of the box
func DefaultStaticProvider() *StaticProvider {
	return &StaticProvider{Quotes: map[string]Quote{
		"BTC-USD": {Symbol: "BTC-USD", Price: 67000, Currency: "USD"},
		"ETH-USD": {Symbol: "ETH-USD", Price: 3500, Currency: "USD"},
		"EURUSD=X": {Symbol: "EURUSD=X", Price: 1.08, Currency: "USD"},
		"^GSPC":   {Symbol: "^GSPC", Price: 5600, Currency: "USD"},
	}}
}

// GetQuote returns the fixed quote for symbol, or ErrQuoteNotFound
func (p *StaticProvider) GetQuote(_ context.Context, symbol string) (Quote, error) {
	q, ok := p.Quotes[symbol]
	if !ok {
		return Quote{}, ErrQuoteNotFound
	}
	return q, nil
}
