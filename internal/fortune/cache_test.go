package fortune

import (
	"sync"
	"testing"
	"time"

	"lucklens/internal/domain"
)

func TestContentCacheLifecycle(t *testing.T) {
	c := NewContentCache(6 * time.Hour)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	if _, ok := c.Get(); ok {
		t.Fatal("empty cache must read as absent")
	}

	content := FallbackContent()
	c.Set(content)

	c.now = func() time.Time { return base.Add(6*time.Hour - time.Second) }
	got, ok := c.Get()
	if !ok || got != content {
		t.Fatal("expected cached content before expiry")
	}

	c.now = func() time.Time { return base.Add(6 * time.Hour) }
	if _, ok := c.Get(); ok {
		t.Fatal("cache must read as absent at expiry")
	}
}

func TestContentCacheClear(t *testing.T) {
	c := NewContentCache(time.Hour)
	c.Set(&domain.GeneratedContent{
		Fortunes: []domain.FortuneItem{{Text: "x"}},
		Proverbs: []string{"y"},
	})
	c.Clear()
	if _, ok := c.Get(); ok {
		t.Fatal("cache must be empty after Clear")
	}
}

func TestContentCacheOverwrite(t *testing.T) {
	c := NewContentCache(time.Hour)
	first := &domain.GeneratedContent{Proverbs: []string{"a"}}
	second := &domain.GeneratedContent{Proverbs: []string{"b"}}
	c.Set(first)
	c.Set(second)
	got, ok := c.Get()
	if !ok || got != second {
		t.Fatal("last write must win")
	}
}

func TestContentCacheConcurrent(t *testing.T) {
	c := NewContentCache(time.Hour)
	content := &domain.GeneratedContent{Proverbs: []string{"a"}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Set(content)
			if got, ok := c.Get(); ok && got != content {
				t.Error("unexpected content from concurrent read")
			}
		}()
	}
	wg.Wait()

	if got, ok := c.Get(); !ok || got != content {
		t.Fatal("cache must hold the written content after concurrent access")
	}
}
