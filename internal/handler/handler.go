package handler

import (
	"context"

	"lucklens/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// MarketDataSource supplies the classified market context.
type MarketDataSource interface {
	GetMarketData(ctx context.Context) *domain.MarketContext
}

// ContentSource supplies fortune content.
type ContentSource interface {
	FortuneContent(ctx context.Context, useMarketContext bool) *domain.GeneratedContent
}

// Drawer runs a full draw for an address.
type Drawer interface {
	Draw(ctx context.Context, address string) (*domain.DrawResult, error)
}

// RecordReader reads back today's persisted draw state.
type RecordReader interface {
	DrawCount(ctx context.Context, address string) (int, error)
	Record(ctx context.Context, address string) (*domain.DrawRecord, bool, error)
}

type Handler struct {
	tracer  trace.Tracer
	market  MarketDataSource
	content ContentSource
	drawer  Drawer
	records RecordReader
}

func New(tracer trace.Tracer, market MarketDataSource, content ContentSource, drawer Drawer, records RecordReader) *Handler {
	return &Handler{
		tracer:  tracer,
		market:  market,
		content: content,
		drawer:  drawer,
		records: records,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/market-context", h.GetMarketContext)
	r.POST("/api/fortune", h.GenerateFortune)
	r.POST("/api/draw", h.Draw)
	r.GET("/api/draw/:address", h.GetDrawStatus)
	r.POST("/api/share", h.Share)
}
