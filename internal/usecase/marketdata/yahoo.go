package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const yahooChartURL = "https://query2.finance.yahoo.com/v8/finance/chart/%s?interval=1m&range=1d"

// YahooProvider fetches quotes from the Yahoo Finance v8 chart endpoint
type YahooProvider struct {
	client  *http.Client
	baseURL string
}

// NewYahooProvider creates a YahooProvider with a bounded request timeout
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 8 * time.Second},
		baseURL: yahooChartURL,
	}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches the latest regular-market price for symbol
func (p *YahooProvider) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, ErrQuoteNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(p.baseURL, symbol), nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("User-Agent", "simulak-backend/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	var raw yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Quote{}, err
	}
	if len(raw.Chart.Result) == 0 {
		return Quote{}, ErrQuoteNotFound
	}

	meta := raw.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return Quote{}, ErrQuoteNotFound
	}

	return Quote{
		Symbol:   meta.Symbol,
		Price:    meta.RegularMarketPrice,
		Currency: meta.Currency,
		AsOf:     time.Unix(meta.RegularMarketTime, 0).UTC(),
	}, nil
}
