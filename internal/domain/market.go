package domain

import "fmt"

type Sentiment string

const (
	SentimentExtremelyBullish Sentiment = "extremely_bullish"
	SentimentBullish          Sentiment = "bullish"
	SentimentNeutral          Sentiment = "neutral"
	SentimentBearish          Sentiment = "bearish"
	SentimentExtremelyBearish Sentiment = "extremely_bearish"
)

type Volatility string

const (
	VolatilityLow     Volatility = "low"
	VolatilityMedium  Volatility = "medium"
	VolatilityHigh    Volatility = "high"
	VolatilityExtreme Volatility = "extreme"
)

type Trend string

const (
	TrendStrongUp   Trend = "strong_up"
	TrendUp         Trend = "up"
	TrendSideways   Trend = "sideways"
	TrendDown       Trend = "down"
	TrendStrongDown Trend = "strong_down"
)

var (
	Sentiments   = []Sentiment{SentimentExtremelyBullish, SentimentBullish, SentimentNeutral, SentimentBearish, SentimentExtremelyBearish}
	Volatilities = []Volatility{VolatilityLow, VolatilityMedium, VolatilityHigh, VolatilityExtreme}
	Trends       = []Trend{TrendStrongUp, TrendUp, TrendSideways, TrendDown, TrendStrongDown}
)

// GlobalMarketStats are the raw numbers extracted from the market aggregation API.
type GlobalMarketStats struct {
	BTCDominance      float64 `json:"btc_dominance"`
	ETHDominance      float64 `json:"eth_dominance"`
	MarketCapChange24 float64 `json:"market_cap_change_24h"`
	TotalMarketCapUSD float64 `json:"total_market_cap"`
}

// MarketContext is a coarse classification of the crypto market, either
// measured from live aggregate stats or simulated when the data source is down.
// Simulated contexts carry no raw stats and must never be cached.
type MarketContext struct {
	Sentiment   Sentiment          `json:"sentiment"`
	Volatility  Volatility         `json:"volatility"`
	Trend       Trend              `json:"trend"`
	Description string             `json:"description"`
	Simulated   bool               `json:"simulated"`
	MarketData  *GlobalMarketStats `json:"marketData,omitempty"`
}

// ClassifySentiment buckets a 24h market-cap change percentage.
// Thresholds are strict: exactly 5.0 is bullish, not extremely_bullish.
func ClassifySentiment(change24h float64) Sentiment {
	switch {
	case change24h > 5:
		return SentimentExtremelyBullish
	case change24h > 2:
		return SentimentBullish
	case change24h > -2:
		return SentimentNeutral
	case change24h > -5:
		return SentimentBearish
	default:
		return SentimentExtremelyBearish
	}
}

func ClassifyVolatility(change24h float64) Volatility {
	abs := change24h
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 8:
		return VolatilityExtreme
	case abs > 4:
		return VolatilityHigh
	case abs > 1:
		return VolatilityMedium
	default:
		return VolatilityLow
	}
}

func ClassifyTrend(change24h float64) Trend {
	switch {
	case change24h > 3:
		return TrendStrongUp
	case change24h > 0.5:
		return TrendUp
	case change24h > -0.5:
		return TrendSideways
	case change24h > -3:
		return TrendDown
	default:
		return TrendStrongDown
	}
}

func (s Sentiment) IsValid() bool {
	for _, v := range Sentiments {
		if s == v {
			return true
		}
	}
	return false
}

func (v Volatility) IsValid() bool {
	for _, x := range Volatilities {
		if v == x {
			return true
		}
	}
	return false
}

func (t Trend) IsValid() bool {
	for _, x := range Trends {
		if t == x {
			return true
		}
	}
	return false
}

// Words renders a trend constant for prose ("strong_up" -> "strong up").
func (t Trend) Words() string {
	out := make([]byte, len(t))
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c == '_' {
			c = ' '
		}
		out[i] = c
	}
	return string(out)
}

func (m *MarketContext) String() string {
	return fmt.Sprintf("%s/%s/%s simulated=%t", m.Sentiment, m.Volatility, m.Trend, m.Simulated)
}
