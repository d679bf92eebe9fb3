package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type generateRequest struct {
	UseMarketContext *bool `json:"use_market_context"`
}

// GenerateFortune godoc
// @Summary      Generate fortune content
// @Description  Returns cached, freshly generated, or fallback fortune content
// @Tags         fortune
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.GeneratedContent
// @Router       /api/fortune [post]
func (h *Handler) GenerateFortune(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.generate-fortune")
	defer span.End()

	useMarket := true
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.UseMarketContext != nil {
		useMarket = *req.UseMarketContext
	}
	span.SetAttributes(attribute.Bool("fortune.market_context", useMarket))

	c.JSON(http.StatusOK, h.content.FortuneContent(ctx, useMarket))
}
