package commandimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/affiliate-post-bot/internal/command"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/internal/metrics"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline"
	"github.com/orgball2608/affiliate-post-bot/internal/ratelimit"
	"github.com/orgball2608/affiliate-post-bot/internal/repositories/post"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const poolReleaseTimeout = 5 * time.Second

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Telegram telegram.Client
	Pipeline pipeline.Client
	PostRepo post.Repository
	Limiter  ratelimit.Limiter
	Metrics  *metrics.Metrics
	Messages *locales.Messages
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Telegram telegram.Client
	Pipeline pipeline.Client
	PostRepo post.Repository
	Limiter  ratelimit.Limiter
	Metrics  *metrics.Metrics
	Messages *locales.Messages
	Logger   logger.Logger

	sourceChatID int64
	lanes        *lanes
}

func New(opts Opts) (*CommandImpl, error) {
	c, err := newCommand(opts)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c, nil
}

func newCommand(opts Opts) (*CommandImpl, error) {
	size := opts.Config.App.WorkerPool
	if size <= 0 {
		size = 1
	}

	pool, err := ants.NewPool(size, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	c := &CommandImpl{
		Telegram:     opts.Telegram,
		Pipeline:     opts.Pipeline,
		PostRepo:     opts.PostRepo,
		Limiter:      opts.Limiter,
		Metrics:      opts.Metrics,
		Messages:     opts.Messages,
		Logger:       opts.Logger.WithComponent("Command"),
		sourceChatID: opts.Config.Telegram.SourceChatID,
	}

	c.lanes, err = newLanes(pool, size, c.handleUpdate, c.recovered)
	if err != nil {
		pool.Release()
		return nil, err
	}
	return c, nil
}

func (c *CommandImpl) recovered(r any, stack []byte) {
	c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(stack))
}

// Close drains queued updates and releases the worker pool.
func (c *CommandImpl) Close() error {
	return c.lanes.close(poolReleaseTimeout)
}

var _ command.Client = (*CommandImpl)(nil)
