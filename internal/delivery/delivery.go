package delivery

import (
	"context"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=delivery.go -destination=mocks/mock.go
type Client interface {
	// Deliver publishes post to the destination chat. It never panics and
	// reports transport problems through the returned Outcome.
	Deliver(ctx context.Context, post domain.ComposedPost) domain.Outcome
}
