package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetMarketContext godoc
// @Summary      Get the current market context
// @Description  Returns the cached or freshly classified market sentiment, volatility, and trend
// @Tags         market
// @Produce      json
// @Success      200  {object}  domain.MarketContext
// @Router       /api/market-context [get]
func (h *Handler) GetMarketContext(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-market-context")
	defer span.End()

	mc := h.market.GetMarketData(ctx)
	span.SetAttributes(attribute.Bool("market.simulated", mc.Simulated))

	c.JSON(http.StatusOK, mc)
}
