package pipeline

import (
	"context"
	"errors"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler"
)

// ErrEmptyBatch is returned when the completion signal finds nothing pending.
var ErrEmptyBatch = errors.New("no pending items")

//go:generate go run go.uber.org/mock/mockgen -source=pipeline.go -destination=mocks/mock.go
type Client interface {
	// Submit appends item to the user's batch. The completion word is never
	// appended; it runs Complete instead.
	Submit(ctx context.Context, userID int64, item domain.Item) error
	// Complete takes the user's batch, composes it and schedules one publish job.
	Complete(ctx context.Context, userID int64) (scheduler.Job, error)
}
