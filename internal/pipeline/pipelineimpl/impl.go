package pipelineimpl

import (
	"time"

	"github.com/orgball2608/affiliate-post-bot/internal/batch"
	"github.com/orgball2608/affiliate-post-bot/internal/composer"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/internal/metrics"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline"
	"github.com/orgball2608/affiliate-post-bot/internal/repositories"
	"github.com/orgball2608/affiliate-post-bot/internal/repositories/post"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram"
	"github.com/orgball2608/affiliate-post-bot/internal/window"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"github.com/orgball2608/affiliate-post-bot/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Store     *batch.Store
	Composer  *composer.Composer
	Window    *window.Policy
	Scheduler scheduler.Client
	PostRepo  post.Repository
	Telegram  telegram.Client
	Metrics   *metrics.Metrics
	Messages  *locales.Messages
	Config    *config.Config
	Logger    logger.Logger
}

type PipelineImpl struct {
	Store     *batch.Store
	Composer  *composer.Composer
	Window    *window.Policy
	Scheduler scheduler.Client
	PostRepo  post.Repository
	Telegram  telegram.Client
	Metrics   *metrics.Metrics
	Messages  *locales.Messages
	Logger    logger.Logger

	doneWord string
	loc      *time.Location
	retry    retry.Config
	now      func() time.Time
}

func New(opts Opts) *PipelineImpl {
	return &PipelineImpl{
		Store:     opts.Store,
		Composer:  opts.Composer,
		Window:    opts.Window,
		Scheduler: opts.Scheduler,
		PostRepo:  opts.PostRepo,
		Telegram:  opts.Telegram,
		Metrics:   opts.Metrics,
		Messages:  opts.Messages,
		Logger:    opts.Logger.WithComponent("Pipeline"),
		doneWord:  opts.Config.Publish.DoneWord,
		loc:       opts.Config.Location(),
		retry:     retry.DefaultConfig().WithPermanent(repositories.IsPermanent),
		now:       time.Now,
	}
}

var _ pipeline.Client = (*PipelineImpl)(nil)
