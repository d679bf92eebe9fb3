package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"lucklens/internal/domain"
	"lucklens/internal/draw"

	tele "gopkg.in/telebot.v3"
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

// StartTelegramBot wires the chat commands. The bot doubles as the social
// composer: a completed draw's share text is posted straight into the chat.
func StartTelegramBot(token string, market MarketDataSource, content ContentSource, drawer Drawer) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/market", func(c tele.Context) error {
		mc := market.GetMarketData(context.Background())
		msg := fmt.Sprintf(
			"Sentiment: %s\nVolatility: %s\nTrend: %s\n\n%s",
			mc.Sentiment, mc.Volatility, mc.Trend.Words(), mc.Description,
		)
		return c.Send(msg)
	})

	b.Handle("/fortune", func(c tele.Context) error {
		gc := content.FortuneContent(context.Background(), true)
		f := gc.Fortunes[0]
		msg := fmt.Sprintf(
			"%s (%d pts)\nDO: %s\nDON'T: %s\nProverb: %s",
			f.Text, f.Score,
			strings.Join(f.Yi, ", "),
			strings.Join(f.Ji, ", "),
			gc.Proverbs[0],
		)
		return c.Send(msg)
	})

	b.Handle("/draw", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /draw 0xYourAddress")
		}
		result, err := drawer.Draw(context.Background(), args[0])
		if err != nil {
			return c.Send(fmt.Sprintf("Draw failed: %v", err))
		}
		return c.Send(draw.ComposeShareText(result))
	})

	log.Println("Telegram bot started")
	go b.Start()
}
