package market

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"lucklens/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultCacheTTL = time.Hour

// GlobalStatsProvider abstracts the market aggregation API.
type GlobalStatsProvider interface {
	FetchGlobal(ctx context.Context) (*domain.GlobalMarketStats, error)
}

// Service computes and caches a coarse market classification. GetMarketData
// never fails: when the data source is down it returns an uncached simulated
// context instead of an error.
type Service struct {
	tracer   trace.Tracer
	provider GlobalStatsProvider
	ttl      time.Duration

	// mu guards cached, cachedAt, and rand. The fetch itself runs unlocked
	// so a slow upstream call cannot serialize unrelated requests.
	mu       sync.Mutex
	cached   *domain.MarketContext
	cachedAt time.Time
	rand     *rand.Rand

	now func() time.Time
}

func NewService(tracer trace.Tracer, provider GlobalStatsProvider, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		tracer:   tracer,
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetMarketData returns the cached context while it is fresh, otherwise
// fetches, classifies, and caches a new one. On fetch failure it falls back
// to a randomly simulated context, which is returned but never cached so a
// later call can still populate the cache with real data.
func (s *Service) GetMarketData(ctx context.Context) *domain.MarketContext {
	ctx, span := s.tracer.Start(ctx, "market.get-market-data")
	defer span.End()

	now := s.now()
	s.mu.Lock()
	if s.cached != nil && now.Sub(s.cachedAt) < s.ttl {
		cached := s.cached
		s.mu.Unlock()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached
	}
	s.mu.Unlock()

	stats, err := s.provider.FetchGlobal(ctx)
	if err != nil {
		log.Printf("market data unavailable, using simulated context: %v", err)
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("market.simulated", true))
		return s.simulated()
	}

	mc := Classify(stats)
	s.mu.Lock()
	s.cached = mc
	s.cachedAt = now
	s.mu.Unlock()
	span.SetAttributes(
		attribute.String("market.sentiment", string(mc.Sentiment)),
		attribute.Float64("market.change_24h", stats.MarketCapChange24),
	)
	return mc
}

// Clear drops the cached context. The next call re-fetches.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.cachedAt = time.Time{}
}

// Classify derives sentiment, volatility, and trend from measured stats and
// composes the human-readable description embedded into generation prompts.
func Classify(stats *domain.GlobalMarketStats) *domain.MarketContext {
	change := stats.MarketCapChange24
	sentiment := domain.ClassifySentiment(change)
	volatility := domain.ClassifyVolatility(change)
	trend := domain.ClassifyTrend(change)

	var desc string
	switch sentiment {
	case domain.SentimentExtremelyBullish:
		desc = fmt.Sprintf("Crypto markets are surging with %.2f%% growth in 24h", change)
	case domain.SentimentBullish:
		desc = fmt.Sprintf("Positive momentum building with %.2f%% market cap increase", change)
	case domain.SentimentNeutral:
		desc = fmt.Sprintf("Markets consolidating with %.2f%% change, mixed signals", change)
	case domain.SentimentBearish:
		desc = fmt.Sprintf("Selling pressure evident with %.2f%% market decline", change)
	case domain.SentimentExtremelyBearish:
		desc = fmt.Sprintf("Heavy selling across markets with %.2f%% drop in 24h", change)
	}
	desc += fmt.Sprintf(". BTC dominance at %.1f%%, ETH at %.1f%%. Total market cap: $%.2fT. Volatility is %s with %s trend.",
		stats.BTCDominance, stats.ETHDominance, stats.TotalMarketCapUSD/1e12, volatility, trend.Words())

	return &domain.MarketContext{
		Sentiment:   sentiment,
		Volatility:  volatility,
		Trend:       trend,
		Description: desc,
		MarketData:  stats,
	}
}

// simulated picks sentiment, volatility, and trend independently at random,
// without the cross-derivation the measured classifier applies.
func (s *Service) simulated() *domain.MarketContext {
	s.mu.Lock()
	sentiment := domain.Sentiments[s.rand.Intn(len(domain.Sentiments))]
	volatility := domain.Volatilities[s.rand.Intn(len(domain.Volatilities))]
	trend := domain.Trends[s.rand.Intn(len(domain.Trends))]
	s.mu.Unlock()

	var desc string
	switch sentiment {
	case domain.SentimentExtremelyBullish:
		desc = "Markets showing strong bullish signals (simulated data)"
	case domain.SentimentBullish:
		desc = "Positive momentum building across crypto markets (simulated data)"
	case domain.SentimentNeutral:
		desc = "Markets consolidating with mixed signals (simulated data)"
	case domain.SentimentBearish:
		desc = "Selling pressure mounting in crypto markets (simulated data)"
	case domain.SentimentExtremelyBearish:
		desc = "Heavy selling pressure across markets (simulated data)"
	}
	desc += fmt.Sprintf(". Volatility is %s with %s trend.", volatility, trend.Words())

	return &domain.MarketContext{
		Sentiment:   sentiment,
		Volatility:  volatility,
		Trend:       trend,
		Description: desc,
		Simulated:   true,
	}
}
