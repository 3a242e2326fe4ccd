package post

import (
	"context"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create stores the record of a scheduled post
	Create(ctx context.Context, record domain.PostRecord) error

	// CountByUser counts the user's posts published within the current period
	CountByUser(ctx context.Context, userID int64, period domain.StatsPeriod) (int, error)
}
