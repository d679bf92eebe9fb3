package config

import (
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	RedisURL         string
	TelegramBotToken string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	FortuneModel      string

	MarketCacheTTLSecs  int
	ContentCacheTTLSecs int

	WalletRPCURL string
	ChainID      int64
	MintContract string
	DrawPriceWei *big.Int
}

func Load() *Config {
	cfg := &Config{
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.OpenRouterAPIKey == "" {
		log.Println("Warning: OPENROUTER_API_KEY not set, fortunes will use fallback content")
	}

	cfg.OpenRouterBaseURL = strings.TrimSpace(os.Getenv("OPENROUTER_BASE_URL"))
	if cfg.OpenRouterBaseURL == "" {
		cfg.OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	}

	cfg.FortuneModel = strings.TrimSpace(os.Getenv("FORTUNE_MODEL"))
	if cfg.FortuneModel == "" {
		cfg.FortuneModel = "deepseek/deepseek-chat"
	}

	cfg.MarketCacheTTLSecs = 3600
	if v := strings.TrimSpace(os.Getenv("MARKET_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MarketCacheTTLSecs = n
		}
	}

	cfg.ContentCacheTTLSecs = 21600
	if v := strings.TrimSpace(os.Getenv("CONTENT_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ContentCacheTTLSecs = n
		}
	}

	cfg.WalletRPCURL = strings.TrimSpace(os.Getenv("WALLET_RPC_URL"))
	if cfg.WalletRPCURL == "" {
		log.Println("Warning: WALLET_RPC_URL not set, draws will fail pre-flight")
	}

	// Monad testnet
	cfg.ChainID = 10143
	if v := strings.TrimSpace(os.Getenv("CHAIN_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.ChainID = n
		}
	}

	cfg.MintContract = strings.TrimSpace(os.Getenv("MINT_CONTRACT"))
	if cfg.MintContract == "" {
		cfg.MintContract = "0x7f748f154B6D180D35fA12460C7E4C631e28A9d7"
	}

	cfg.DrawPriceWei = big.NewInt(1e18)
	if v := strings.TrimSpace(os.Getenv("DRAW_PRICE_WEI")); v != "" {
		if n, ok := new(big.Int).SetString(v, 10); ok && n.Sign() > 0 {
			cfg.DrawPriceWei = n
		}
	}

	return cfg
}
