package scheduler

import (
	"context"
	"time"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
)

// Job is a one-shot publish order. It lives only in memory.
type Job struct {
	ID     string
	UserID int64
	When   time.Time
	Post   domain.ComposedPost
}

//go:generate go run go.uber.org/mock/mockgen -source=scheduler.go -destination=mocks/mock.go
type Client interface {
	// Schedule registers job to fire once at job.When and returns it with ID set.
	// Scheduling the same post twice yields two independent jobs.
	Schedule(ctx context.Context, job Job) (Job, error)
	// Pending reports jobs registered but not yet fired.
	Pending() int
}
