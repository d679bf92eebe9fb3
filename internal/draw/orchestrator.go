package draw

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"lucklens/internal/domain"
	"lucklens/internal/wallet"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultAnimationMin   = 2500 * time.Millisecond
	defaultTickInterval   = 300 * time.Millisecond
	defaultAnimationSlots = 3
)

// ContentSource provides fortune content for a draw. Its contract is
// never-fails: the value is always structurally valid.
type ContentSource interface {
	FortuneContent(ctx context.Context, useMarketContext bool) *domain.GeneratedContent
}

// DrawStore persists the quota counter and the revealed record.
type DrawStore interface {
	DrawCount(ctx context.Context, address string) (int, error)
	IncrementDrawCount(ctx context.Context, address string) (int, error)
	SaveRecord(ctx context.Context, rec *domain.DrawRecord) error
}

// Orchestrator runs one draw end to end: pre-flight guards, the timed stick
// animation, the mint transaction, and the joined reveal. The reveal fires
// exactly once, after BOTH the minimum animation duration has elapsed and the
// transaction has been acknowledged as submitted. A transaction failure
// cancels the animation and consumes no quota. At most one draw is in flight
// per address; draws for different addresses proceed independently.
type Orchestrator struct {
	tracer  trace.Tracer
	content ContentSource
	sender  wallet.TransactionSender
	store   DrawStore

	chainID      int64
	animationMin time.Duration
	tickInterval time.Duration
	slots        int

	// onHighlight, when set, observes each animation tick's highlighted slot.
	onHighlight func(slot int)

	mu       sync.Mutex
	inFlight map[string]bool

	now func() time.Time
}

func NewOrchestrator(
	tracer trace.Tracer,
	content ContentSource,
	sender wallet.TransactionSender,
	store DrawStore,
	chainID int64,
) *Orchestrator {
	return &Orchestrator{
		tracer:       tracer,
		content:      content,
		sender:       sender,
		store:        store,
		chainID:      chainID,
		animationMin: defaultAnimationMin,
		tickInterval: defaultTickInterval,
		slots:        defaultAnimationSlots,
		inFlight:     make(map[string]bool),
		now:          time.Now,
	}
}

// SetHighlightObserver registers a callback for animation slot highlights.
func (o *Orchestrator) SetHighlightObserver(fn func(slot int)) {
	o.onHighlight = fn
}

type txOutcome struct {
	hash string
	err  error
}

// Draw performs one draw for the connected address.
func (o *Orchestrator) Draw(ctx context.Context, address string) (*domain.DrawResult, error) {
	ctx, span := o.tracer.Start(ctx, "draw.draw")
	defer span.End()
	span.SetAttributes(attribute.String("draw.address", address))

	if address == "" {
		return nil, domain.ErrWalletNotConnected
	}
	chain, err := o.sender.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWrongNetwork, err)
	}
	if chain != o.chainID {
		return nil, fmt.Errorf("%w: on chain %d, want %d", domain.ErrWrongNetwork, chain, o.chainID)
	}
	count, err := o.store.DrawCount(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("read quota: %w", err)
	}
	if count >= domain.MaxDrawsPerDay {
		return nil, domain.ErrNoDrawsLeft
	}

	key := strings.ToLower(address)
	o.mu.Lock()
	if o.inFlight[key] {
		o.mu.Unlock()
		return nil, domain.ErrDrawInProgress
	}
	o.inFlight[key] = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		delete(o.inFlight, key)
		o.mu.Unlock()
	}()

	// Two independent completion signals: the animation deadline and the
	// transaction acknowledgment. The result is fixed at draw start, before
	// either signal fires, so their relative order cannot affect it.
	animCtx, cancelAnimation := context.WithCancel(ctx)
	defer cancelAnimation()
	animationDone := make(chan struct{})
	go o.animate(animCtx, animationDone)

	content := o.content.FortuneContent(ctx, true)
	fortuneIdx := rand.Intn(len(content.Fortunes))
	proverbIdx := rand.Intn(len(content.Proverbs))

	txCh := make(chan txOutcome, 1)
	go func() {
		hash, err := o.sender.SendMint(ctx, address)
		txCh <- txOutcome{hash: hash, err: err}
	}()

	var hash string
	animationPending, txPending := true, true
	for animationPending || txPending {
		select {
		case <-animationDone:
			animationPending = false
		case outcome := <-txCh:
			if outcome.err != nil {
				cancelAnimation()
				span.RecordError(outcome.err)
				return nil, fmt.Errorf("transaction failed: %w", outcome.err)
			}
			hash = outcome.hash
			txPending = false
		case <-ctx.Done():
			cancelAnimation()
			return nil, ctx.Err()
		}
	}

	return o.reveal(ctx, address, content, fortuneIdx, proverbIdx, hash)
}

// animate ticks every tickInterval, highlighting a pseudo-random slot, and
// closes done once the accumulated duration reaches the minimum.
func (o *Orchestrator) animate(ctx context.Context, done chan<- struct{}) {
	ticker := time.NewTicker(o.tickInterval)
	defer ticker.Stop()

	var elapsed time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed += o.tickInterval
			if o.onHighlight != nil {
				o.onHighlight(rand.Intn(o.slots))
			}
			if elapsed >= o.animationMin {
				close(done)
				return
			}
		}
	}
}

// reveal runs exactly once per successful draw: persist the record, consume
// one unit of quota, and hand back the result picked at draw start.
func (o *Orchestrator) reveal(
	ctx context.Context,
	address string,
	content *domain.GeneratedContent,
	fortuneIdx, proverbIdx int,
	hash string,
) (*domain.DrawResult, error) {
	used, err := o.store.IncrementDrawCount(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("consume quota: %w", err)
	}

	date := domain.DayString(o.now())
	rec := &domain.DrawRecord{
		Address:    address,
		FortuneIdx: fortuneIdx,
		ProverbIdx: proverbIdx,
		Date:       date,
		TxHash:     hash,
	}
	if err := o.store.SaveRecord(ctx, rec); err != nil {
		log.Printf("failed to save draw record: %v", err)
	}

	return &domain.DrawResult{
		Fortune:    content.Fortunes[fortuneIdx],
		Proverb:    content.Proverbs[proverbIdx],
		FortuneIdx: fortuneIdx,
		ProverbIdx: proverbIdx,
		TxHash:     hash,
		Date:       date,
		DrawsUsed:  used,
	}, nil
}
