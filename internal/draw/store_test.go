package draw

import (
	"context"
	"testing"
	"time"

	"lucklens/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, trace.NewNoopTracerProvider().Tracer("test")), mr
}

func TestDrawCountLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	n, err := s.DrawCount(ctx, testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 draws for fresh address, got %d", n)
	}

	for want := 1; want <= 3; want++ {
		got, err := s.IncrementDrawCount(ctx, testAddress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("expected count %d, got %d", want, got)
		}
	}

	// Counts are case-insensitive on the address.
	n, _ = s.DrawCount(ctx, "0X7F748F154B6D180D35FA12460C7E4C631E28A9D7")
	if n != 3 {
		t.Fatalf("expected 3 draws for same address in other case, got %d", n)
	}
}

func TestDrawCountDayRollover(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	day1 := time.Date(2025, 6, 1, 23, 0, 0, 0, time.Local)
	s.now = func() time.Time { return day1 }
	s.IncrementDrawCount(ctx, testAddress)
	s.IncrementDrawCount(ctx, testAddress)

	// On day D+1 the quota reads as fresh.
	s.now = func() time.Time { return day1.Add(2 * time.Hour) }
	n, err := s.DrawCount(ctx, testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected count reset on next day, got %d", n)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	s.now = func() time.Time { return day }

	rec := &domain.DrawRecord{
		Address:    testAddress,
		FortuneIdx: 2,
		ProverbIdx: 7,
		Date:       domain.DayString(day),
		TxHash:     "0xabc",
	}
	if err := s.SaveRecord(ctx, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := s.Record(ctx, testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected record to be present same day")
	}
	if got.FortuneIdx != 2 || got.ProverbIdx != 7 || got.TxHash != "0xabc" {
		t.Fatalf("record mismatch: %+v", got)
	}

	// Read back on day D+1: treated as absent.
	s.now = func() time.Time { return day.AddDate(0, 0, 1) }
	if _, ok, _ := s.Record(ctx, testAddress); ok {
		t.Fatal("record from day D must read as absent on day D+1")
	}
}

func TestRecordDateMismatchTreatedAbsent(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2025, 6, 2, 12, 0, 0, 0, time.Local)
	s.now = func() time.Time { return day }

	// A record stored under today's key but carrying yesterday's date is
	// still rejected by the date check.
	mr.Set(recordKey(testAddress, domain.DayString(day)),
		`{"address":"`+testAddress+`","fortune_idx":1,"proverb_idx":1,"date":"2025-06-01"}`)

	if _, ok, err := s.Record(ctx, testAddress); err != nil || ok {
		t.Fatalf("stale-dated record must read as absent, ok=%v err=%v", ok, err)
	}
}

func TestRecordAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	if _, ok, err := s.Record(context.Background(), testAddress); err != nil || ok {
		t.Fatalf("expected absent record, ok=%v err=%v", ok, err)
	}
}
