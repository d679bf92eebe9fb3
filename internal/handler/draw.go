package handler

import (
	"errors"
	"net/http"

	"lucklens/internal/domain"
	"lucklens/internal/draw"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type drawRequest struct {
	Address string `json:"address" binding:"required"`
}

// Draw godoc
// @Summary      Perform a fortune draw
// @Description  Runs the draw animation and mint transaction, revealing a fortune once both complete
// @Tags         draw
// @Accept       json
// @Produce      json
// @Param        request  body  drawRequest  true  "Draw request"
// @Success      200  {object}  domain.DrawResult
// @Failure      400  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/draw [post]
func (h *Handler) Draw(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.draw")
	defer span.End()

	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	span.SetAttributes(attribute.String("draw.address", req.Address))

	result, err := h.drawer.Draw(ctx, req.Address)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, domain.ErrWalletNotConnected), errors.Is(err, domain.ErrWrongNetwork):
			c.JSON(http.StatusBadRequest, gin.H{"tip": err.Error()})
		case errors.Is(err, domain.ErrNoDrawsLeft):
			c.JSON(http.StatusTooManyRequests, gin.H{"tip": "no draws left today, come back tomorrow"})
		case errors.Is(err, domain.ErrDrawInProgress):
			c.JSON(http.StatusConflict, gin.H{"tip": "a draw is already in progress"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"tip": "transaction failed, your quota was not consumed", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDrawStatus godoc
// @Summary      Get today's draw status for an address
// @Description  Returns the draw count and, if present, today's revealed record
// @Tags         draw
// @Produce      json
// @Param        address  path  string  true  "Wallet address"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/draw/{address} [get]
func (h *Handler) GetDrawStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-draw-status")
	defer span.End()

	address := c.Param("address")
	count, err := h.records.DrawCount(ctx, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec, ok, err := h.records.Record(ctx, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"draws_used": count,
		"draws_left": domain.MaxDrawsPerDay - count,
	}
	if ok {
		resp["record"] = rec
	}
	c.JSON(http.StatusOK, resp)
}

// Share godoc
// @Summary      Compose a share post for today's draw
// @Description  Returns the social post text for the address's revealed fortune
// @Tags         draw
// @Accept       json
// @Produce      json
// @Param        request  body  drawRequest  true  "Share request"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/share [post]
func (h *Handler) Share(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.share")
	defer span.End()

	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	rec, ok, err := h.records.Record(ctx, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"tip": "draw a fortune first"})
		return
	}

	content := h.content.FortuneContent(ctx, false)
	fortuneIdx := rec.FortuneIdx
	if fortuneIdx < 0 || fortuneIdx >= len(content.Fortunes) {
		fortuneIdx = 0
	}
	proverbIdx := rec.ProverbIdx
	if proverbIdx < 0 || proverbIdx >= len(content.Proverbs) {
		proverbIdx = 0
	}

	text := draw.ComposeShareText(&domain.DrawResult{
		Fortune:    content.Fortunes[fortuneIdx],
		Proverb:    content.Proverbs[proverbIdx],
		FortuneIdx: fortuneIdx,
		ProverbIdx: proverbIdx,
		TxHash:     rec.TxHash,
		Date:       rec.Date,
	})

	c.JSON(http.StatusOK, gin.H{"text": text})
}
