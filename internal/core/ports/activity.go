package ports

import (
	"context"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// ActivityDispatcher enqueues rating events for asynchronous recording.
type ActivityDispatcher interface {
	Enqueue(event domain.RatingEvent)
}

// ActivityService processes queued rating events.
type ActivityService interface {
	Process(ctx context.Context, event domain.RatingEvent) error
}

// ActivityRepository persists the rating audit feed.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.RatingEvent) error
}
