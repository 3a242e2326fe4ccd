package command

import "context"

type Client interface {
	// HandleCommand consumes bot updates until ctx is done or the update stream closes.
	HandleCommand(ctx context.Context) error
}
