package draw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lucklens/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// Keys live for two days so stale entries clean themselves up; correctness
// does not depend on the TTL because the day is part of the key and the
// record's date is checked on read.
const storeKeyTTL = 48 * time.Hour

// Store persists the per-(address, day) draw count and last draw record in
// Redis. The calendar day uses the local clock, matching the draw flow.
type Store struct {
	rdb    *redis.Client
	tracer trace.Tracer

	now func() time.Time
}

func NewStore(rdb *redis.Client, tracer trace.Tracer) *Store {
	return &Store{rdb: rdb, tracer: tracer, now: time.Now}
}

func countKey(address, day string) string {
	return "lucklens:draws:" + strings.ToLower(address) + ":" + day
}

func recordKey(address, day string) string {
	return "lucklens:record:" + strings.ToLower(address) + ":" + day
}

// DrawCount returns today's draw count for the address. A missing key reads
// as zero: counts from previous days are invisible by key construction.
func (s *Store) DrawCount(ctx context.Context, address string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "draw-store.count")
	defer span.End()

	n, err := s.rdb.Get(ctx, countKey(address, domain.DayString(s.now()))).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read draw count: %w", err)
	}
	return n, nil
}

// IncrementDrawCount bumps today's count and returns the new value.
func (s *Store) IncrementDrawCount(ctx context.Context, address string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "draw-store.increment")
	defer span.End()

	key := countKey(address, domain.DayString(s.now()))
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment draw count: %w", err)
	}
	s.rdb.Expire(ctx, key, storeKeyTTL)
	return int(n), nil
}

// SaveRecord stores the revealed draw for today.
func (s *Store) SaveRecord(ctx context.Context, rec *domain.DrawRecord) error {
	ctx, span := s.tracer.Start(ctx, "draw-store.save-record")
	defer span.End()

	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := recordKey(rec.Address, rec.Date)
	if err := s.rdb.Set(ctx, key, payload, storeKeyTTL).Err(); err != nil {
		return fmt.Errorf("save draw record: %w", err)
	}
	return nil
}

// Record returns today's draw record, or ok=false when none exists. A stored
// record whose date does not match today is treated as absent.
func (s *Store) Record(ctx context.Context, address string) (*domain.DrawRecord, bool, error) {
	ctx, span := s.tracer.Start(ctx, "draw-store.record")
	defer span.End()

	today := domain.DayString(s.now())
	raw, err := s.rdb.Get(ctx, recordKey(address, today)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read draw record: %w", err)
	}

	var rec domain.DrawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("decode draw record: %w", err)
	}
	if rec.Date != today {
		return nil, false, nil
	}
	return &rec, true, nil
}
