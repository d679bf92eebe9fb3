package draw

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lucklens/internal/domain"
	"lucklens/internal/fortune"

	"go.opentelemetry.io/otel/trace"
)

type stubContent struct {
	content *domain.GeneratedContent
}

func (s *stubContent) FortuneContent(ctx context.Context, useMarketContext bool) *domain.GeneratedContent {
	if s.content != nil {
		return s.content
	}
	return fortune.FallbackContent()
}

type stubSender struct {
	chain     int64
	chainErr  error
	hash      string
	sendErr   error
	sendDelay time.Duration

	mu        sync.Mutex
	mintCalls int
}

func (s *stubSender) ChainID(ctx context.Context) (int64, error) {
	return s.chain, s.chainErr
}

func (s *stubSender) SendMint(ctx context.Context, from string) (string, error) {
	s.mu.Lock()
	s.mintCalls++
	s.mu.Unlock()
	if s.sendDelay > 0 {
		time.Sleep(s.sendDelay)
	}
	if s.sendErr != nil {
		return "", s.sendErr
	}
	return s.hash, nil
}

func (s *stubSender) mintCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mintCalls
}

type stubStore struct {
	mu      sync.Mutex
	counts  map[string]int
	records []*domain.DrawRecord
	incErr  error
}

func newStubStore() *stubStore {
	return &stubStore{counts: map[string]int{}}
}

func (s *stubStore) DrawCount(ctx context.Context, address string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[address], nil
}

func (s *stubStore) IncrementDrawCount(ctx context.Context, address string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incErr != nil {
		return 0, s.incErr
	}
	s.counts[address]++
	return s.counts[address], nil
}

func (s *stubStore) SaveRecord(ctx context.Context, rec *domain.DrawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

const testAddress = "0x7f748f154B6D180D35fA12460C7E4C631e28A9d7"

func newTestOrchestrator(sender *stubSender, store DrawStore) *Orchestrator {
	o := NewOrchestrator(
		trace.NewNoopTracerProvider().Tracer("test"),
		&stubContent{}, sender, store, 10143,
	)
	o.animationMin = 20 * time.Millisecond
	o.tickInterval = 5 * time.Millisecond
	return o
}

func TestDrawHappyPath(t *testing.T) {
	sender := &stubSender{chain: 10143, hash: "0xabc"}
	store := newStubStore()
	o := newTestOrchestrator(sender, store)

	start := time.Now()
	result, err := o.Draw(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < o.animationMin {
		t.Errorf("reveal before minimum animation duration: %v", elapsed)
	}
	if result.TxHash != "0xabc" {
		t.Errorf("expected tx hash 0xabc, got %s", result.TxHash)
	}
	if result.DrawsUsed != 1 {
		t.Errorf("expected draws used 1, got %d", result.DrawsUsed)
	}
	if err := result.Fortune.Validate(); err != nil {
		t.Errorf("revealed fortune violates contract: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(store.records))
	}
	if store.records[0].FortuneIdx != result.FortuneIdx || store.records[0].ProverbIdx != result.ProverbIdx {
		t.Error("persisted record does not match revealed result")
	}
}

func TestDrawWaitsForSlowTransaction(t *testing.T) {
	sender := &stubSender{chain: 10143, hash: "0xabc", sendDelay: 60 * time.Millisecond}
	o := newTestOrchestrator(sender, newStubStore())

	start := time.Now()
	if _, err := o.Draw(context.Background(), testAddress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("reveal before transaction acknowledgment: %v", elapsed)
	}
}

func TestDrawTransactionFailureAborts(t *testing.T) {
	sender := &stubSender{chain: 10143, sendErr: errors.New("user rejected")}
	store := newStubStore()
	o := newTestOrchestrator(sender, store)

	if _, err := o.Draw(context.Background(), testAddress); err == nil {
		t.Fatal("expected error on transaction failure")
	}
	if store.counts[testAddress] != 0 {
		t.Error("failed draw must not consume quota")
	}
	if len(store.records) != 0 {
		t.Error("failed draw must not persist a record")
	}
}

func TestDrawPreFlightGuards(t *testing.T) {
	store := newStubStore()

	t.Run("wallet not connected", func(t *testing.T) {
		o := newTestOrchestrator(&stubSender{chain: 10143}, store)
		if _, err := o.Draw(context.Background(), ""); !errors.Is(err, domain.ErrWalletNotConnected) {
			t.Fatalf("expected ErrWalletNotConnected, got %v", err)
		}
	})

	t.Run("wrong network", func(t *testing.T) {
		sender := &stubSender{chain: 1}
		o := newTestOrchestrator(sender, store)
		if _, err := o.Draw(context.Background(), testAddress); !errors.Is(err, domain.ErrWrongNetwork) {
			t.Fatalf("expected ErrWrongNetwork, got %v", err)
		}
		if sender.mintCount() != 0 {
			t.Error("pre-flight rejection must not submit a transaction")
		}
	})

	t.Run("quota exhausted", func(t *testing.T) {
		sender := &stubSender{chain: 10143, hash: "0xabc"}
		full := newStubStore()
		full.counts[testAddress] = domain.MaxDrawsPerDay
		o := newTestOrchestrator(sender, full)
		if _, err := o.Draw(context.Background(), testAddress); !errors.Is(err, domain.ErrNoDrawsLeft) {
			t.Fatalf("expected ErrNoDrawsLeft, got %v", err)
		}
		if sender.mintCount() != 0 {
			t.Error("quota rejection must not submit a transaction")
		}
	})
}

func TestDrawQuotaProgression(t *testing.T) {
	sender := &stubSender{chain: 10143, hash: "0xabc"}
	store := newStubStore()
	store.counts[testAddress] = 2
	o := newTestOrchestrator(sender, store)

	result, err := o.Draw(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DrawsUsed != 3 {
		t.Fatalf("expected draws used 3, got %d", result.DrawsUsed)
	}

	if _, err := o.Draw(context.Background(), testAddress); !errors.Is(err, domain.ErrNoDrawsLeft) {
		t.Fatalf("expected ErrNoDrawsLeft on fourth draw, got %v", err)
	}
}

func TestDrawConcurrentAddresses(t *testing.T) {
	sender := &stubSender{chain: 10143, hash: "0xabc"}
	store := newStubStore()
	o := newTestOrchestrator(sender, store)

	addresses := []string{testAddress, "0x1111111111111111111111111111111111111111"}
	errs := make([]error, len(addresses))

	var wg sync.WaitGroup
	for i, addr := range addresses {
		wg.Add(1)
		go func(i int, addr string) {
			defer wg.Done()
			_, errs[i] = o.Draw(context.Background(), addr)
		}(i, addr)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("draw for %s failed: %v", addresses[i], err)
		}
	}
	if sender.mintCount() != len(addresses) {
		t.Errorf("expected %d mint calls, got %d", len(addresses), sender.mintCount())
	}
}

func TestDrawSameAddressRejectedWhileInFlight(t *testing.T) {
	sender := &stubSender{chain: 10143, hash: "0xabc", sendDelay: 80 * time.Millisecond}
	o := newTestOrchestrator(sender, newStubStore())

	firstErr := make(chan error, 1)
	go func() {
		_, err := o.Draw(context.Background(), testAddress)
		firstErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if _, err := o.Draw(context.Background(), strings.ToUpper(testAddress)); !errors.Is(err, domain.ErrDrawInProgress) {
		t.Fatalf("expected ErrDrawInProgress for the in-flight address, got %v", err)
	}

	if err := <-firstErr; err != nil {
		t.Fatalf("first draw failed: %v", err)
	}
}

func TestDrawHighlightObserver(t *testing.T) {
	sender := &stubSender{chain: 10143, hash: "0xabc"}
	o := newTestOrchestrator(sender, newStubStore())

	var mu sync.Mutex
	var slots []int
	o.SetHighlightObserver(func(slot int) {
		mu.Lock()
		slots = append(slots, slot)
		mu.Unlock()
	})

	if _, err := o.Draw(context.Background(), testAddress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(slots) == 0 {
		t.Fatal("expected highlight ticks during the animation")
	}
	for _, s := range slots {
		if s < 0 || s >= defaultAnimationSlots {
			t.Fatalf("highlight slot %d out of range", s)
		}
	}
}

func TestComposeShareText(t *testing.T) {
	result := &domain.DrawResult{
		Fortune: domain.FortuneItem{
			Text:  "Moonshot 🚀",
			Color: "text-green-400",
			Yi:    []string{"Ape in", "Hold strong"},
			Ji:    []string{"Hesitate", "Exit too early"},
			Score: 95,
		},
		Proverb: "HODL till dawn, survive the night.",
		Date:    "2025-06-01",
	}

	text := ComposeShareText(result)
	want := "My 2025-06-01 fortune: Moonshot 🚀 (95 pts)\n" +
		"DO: Ape in, Hold strong\n" +
		"DON'T: Hesitate, Exit too early\n" +
		"Proverb: HODL till dawn, survive the night.\n" +
		"#CryptoFortune"
	if text != want {
		t.Fatalf("unexpected share text:\n%s", text)
	}
}
