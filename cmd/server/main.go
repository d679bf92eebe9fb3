package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lucklens/internal/bot"
	"lucklens/internal/cache"
	"lucklens/internal/config"
	"lucklens/internal/draw"
	"lucklens/internal/fortune"
	"lucklens/internal/handler"
	"lucklens/internal/market"
	"lucklens/internal/provider"
	"lucklens/internal/wallet"
	"lucklens/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc     = godotenv.Load
	loadConfigFunc  = config.Load
	initRedisFunc   = cache.InitRedis
	initTracerFunc  = tracing.InitTracer
	newProviderFunc = func(tracer trace.Tracer) market.GlobalStatsProvider {
		return provider.NewCoinGeckoProvider(tracer)
	}
	newMarketServiceFunc = market.NewService
	newLLMClientFunc     = fortune.NewOpenAIClient
	newGeneratorFunc     = fortune.NewGenerator
	newSenderFunc        = func(tracer trace.Tracer, cfg *config.Config) wallet.TransactionSender {
		return wallet.NewRPCSender(tracer, cfg.WalletRPCURL, cfg.MintContract, cfg.DrawPriceWei)
	}
	newStoreFunc           = draw.NewStore
	newOrchestratorFunc    = draw.NewOrchestrator
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	cgProvider := newProviderFunc(tracer)
	marketService := newMarketServiceFunc(tracer, cgProvider, time.Duration(cfg.MarketCacheTTLSecs)*time.Second)

	llm := newLLMClientFunc(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL)
	generator := newGeneratorFunc(tracer, llm, marketService, cfg.FortuneModel, time.Duration(cfg.ContentCacheTTLSecs)*time.Second)

	sender := newSenderFunc(tracer, cfg)
	store := newStoreFunc(rdb, tracer)
	orchestrator := newOrchestratorFunc(tracer, generator, sender, store, cfg.ChainID)

	startTelegramBotFunc(cfg.TelegramBotToken, marketService, generator, orchestrator)

	h := newHandlerFunc(tracer, marketService, generator, orchestrator, store)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("lucklens"))

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
