package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratemystore/rating-system/internal/api/metrics"
	"github.com/ratemystore/rating-system/internal/core/domain"
	"github.com/ratemystore/rating-system/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the worker-side processor for queued rating
// events.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process appends one rating event to the audit feed. Failures here never
// reach the rating caller; the event is logged and dropped.
func (s *activityService) Process(ctx context.Context, event domain.RatingEvent) error {
	start := time.Now()

	if event.Timestamp.IsZero() {
		event.Timestamp = start.UTC()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record rating event: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(event.Action).Inc()
	metrics.ActivityProcessingDuration.WithLabelValues(event.Action).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("store_id", event.StoreID).
		Str("action", event.Action).
		Msg("rating event recorded")

	return nil
}
