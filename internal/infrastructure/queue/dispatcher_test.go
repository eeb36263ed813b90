package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

type recordingService struct {
	mu     sync.Mutex
	events []domain.RatingEvent
}

func (s *recordingService) Process(_ context.Context, event domain.RatingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingService) snapshot() []domain.RatingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RatingEvent, len(s.events))
	copy(out, s.events)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestDispatcher_ProcessesEvents(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(domain.RatingEvent{
			UserID:  "user_1",
			StoreID: "store_1",
			Action:  domain.RatingSubmitted,
			Value:   (i % 5) + 1,
		})
	}

	waitFor(t, 2*time.Second, func() bool {
		return len(svc.snapshot()) == 10
	})
}

func TestDispatcher_PerStoreOrdering(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All events for one store land on one worker, so their relative order
	// is preserved no matter how many workers run.
	for i := 1; i <= 5; i++ {
		d.Enqueue(domain.RatingEvent{
			UserID:  "user_1",
			StoreID: "store_ordered",
			Action:  domain.RatingSubmitted,
			Value:   i,
		})
	}

	waitFor(t, 2*time.Second, func() bool {
		return len(svc.snapshot()) == 5
	})

	events := svc.snapshot()
	for i, event := range events {
		if event.Value != i+1 {
			t.Fatalf("event %d out of order: got value %d", i, event.Value)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())

	first := d.shardIndex("store_abc")
	for i := 0; i < 100; i++ {
		if d.shardIndex("store_abc") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(domain.RatingEvent{StoreID: "store_1", Action: domain.RatingSubmitted, Value: 3})
	waitFor(t, 2*time.Second, func() bool {
		return len(svc.snapshot()) == 1
	})

	cancel()
	// Give the worker a moment to observe cancellation, then verify later
	// events are no longer drained.
	time.Sleep(20 * time.Millisecond)
	d.Enqueue(domain.RatingEvent{StoreID: "store_1", Action: domain.RatingDeleted})
	time.Sleep(50 * time.Millisecond)

	if len(svc.snapshot()) != 1 {
		t.Fatalf("worker processed events after cancellation")
	}
}
