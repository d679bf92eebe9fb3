package fortune

import (
	"context"
	"fmt"
	"log"
	"time"

	"lucklens/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultContentTTL = 6 * time.Hour

	generateTemperature = 0.8
	retryTemperature    = 0.3
)

// LLMClient abstracts the chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// MarketDataSource supplies the market context embedded into prompts.
type MarketDataSource interface {
	GetMarketData(ctx context.Context) *domain.MarketContext
}

// Generator produces fortune content via the LLM, with a single-slot cache in
// front and the static fallback set behind. FortuneContent never fails.
type Generator struct {
	tracer trace.Tracer
	llm    LLMClient
	market MarketDataSource
	model  string
	cache  *ContentCache
}

func NewGenerator(tracer trace.Tracer, llm LLMClient, market MarketDataSource, model string, cacheTTL time.Duration) *Generator {
	if cacheTTL <= 0 {
		cacheTTL = defaultContentTTL
	}
	return &Generator{
		tracer: tracer,
		llm:    llm,
		market: market,
		model:  model,
		cache:  NewContentCache(cacheTTL),
	}
}

// Cache exposes the content cache for explicit clears.
func (g *Generator) Cache() *ContentCache { return g.cache }

// FortuneContent returns usable content under all circumstances: the cached
// slot if fresh, a fresh generation otherwise, and the bundled fallback set
// when generation fails twice.
func (g *Generator) FortuneContent(ctx context.Context, useMarketContext bool) *domain.GeneratedContent {
	ctx, span := g.tracer.Start(ctx, "fortune.content")
	defer span.End()

	if cached, ok := g.cache.Get(); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached
	}

	marketDescription := ""
	if useMarketContext && g.market != nil {
		marketDescription = g.market.GetMarketData(ctx).Description
	}

	content, err := g.generate(ctx, marketDescription)
	if err != nil {
		log.Printf("fortune generation failed, serving fallback content: %v", err)
		span.RecordError(err)
		return FallbackContent()
	}

	g.cache.Set(content)
	return content
}

// generate runs the free-text generation chain: full prompt at the creative
// temperature, then exactly one retry with the strict raw-JSON prompt at low
// temperature. A second parse failure propagates so the caller can observe it
// before the outer fallback substitution.
func (g *Generator) generate(ctx context.Context, marketDescription string) (*domain.GeneratedContent, error) {
	ctx, span := g.tracer.Start(ctx, "fortune.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", g.model),
		attribute.Bool("market.context", marketDescription != ""),
	)

	text, err := g.complete(ctx, BuildPrompt(marketDescription), generateTemperature)
	if err != nil {
		return nil, fmt.Errorf("generation call: %w", err)
	}

	content, parseErr := ParseContent(text)
	if parseErr == nil {
		return content, nil
	}
	log.Printf("fortune response unparseable, retrying with strict prompt: %v", parseErr)
	span.AddEvent("parse-retry")

	text, err = g.complete(ctx, BuildRetryPrompt(), retryTemperature)
	if err != nil {
		return nil, fmt.Errorf("retry generation call: %w", err)
	}
	content, err = ParseContent(text)
	if err != nil {
		return nil, fmt.Errorf("retry response unparseable: %w", err)
	}
	return content, nil
}

func (g *Generator) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	completion, err := g.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:       g.model,
		Temperature: openai.Float(temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}
	return completion.Choices[0].Message.Content, nil
}

// openaiClient wraps the official SDK's chat completions service. The base
// URL is configurable so any OpenAI-compatible gateway (OpenRouter) works.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey, baseURL string) LLMClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiClient{client: openai.NewClient(opts...)}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
