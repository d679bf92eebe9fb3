package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lucklens/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider fetches global market statistics from the CoinGecko free API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a provider with a bounded 10s request timeout
// so a stalled API call can never hang a draw. Requests are throttled to stay
// inside the free-tier limit.
func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(10, time.Minute),
	}
}

// FetchGlobal fetches the /global endpoint and extracts the fields the market
// classifier consumes: btc/eth dominance, 24h market-cap change, total cap.
func (p *CoinGeckoProvider) FetchGlobal(ctx context.Context) (*domain.GlobalMarketStats, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-global")
	defer span.End()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := p.baseURL + "/global"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LuckLens-App/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch global stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	// Response shape: {"data": {"market_cap_percentage": {"btc": 52.1, "eth": 17.3, ...},
	//   "market_cap_change_percentage_24h_usd": 2.34, "total_market_cap": {"usd": 2.4e12, ...}}}
	var raw struct {
		Data struct {
			MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
			MarketCapChange24h  float64            `json:"market_cap_change_percentage_24h_usd"`
			TotalMarketCap      map[string]float64 `json:"total_market_cap"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse global stats: %w", err)
	}

	return &domain.GlobalMarketStats{
		BTCDominance:      raw.Data.MarketCapPercentage["btc"],
		ETHDominance:      raw.Data.MarketCapPercentage["eth"],
		MarketCapChange24: raw.Data.MarketCapChange24h,
		TotalMarketCapUSD: raw.Data.TotalMarketCap["usd"],
	}, nil
}
