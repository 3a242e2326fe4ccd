package app

import (
	"context"
	"time"

	"github.com/orgball2608/affiliate-post-bot/internal/batch"
	"github.com/orgball2608/affiliate-post-bot/internal/command"
	"github.com/orgball2608/affiliate-post-bot/internal/command/commandimpl"
	"github.com/orgball2608/affiliate-post-bot/internal/composer"
	"github.com/orgball2608/affiliate-post-bot/internal/delivery"
	"github.com/orgball2608/affiliate-post-bot/internal/delivery/deliveryimpl"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/internal/metrics"
	"github.com/orgball2608/affiliate-post-bot/internal/migrations"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline/pipelineimpl"
	"github.com/orgball2608/affiliate-post-bot/internal/ratelimit"
	repositories "github.com/orgball2608/affiliate-post-bot/internal/repositories/fx"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler/schedulerimpl"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram/telegramimpl"
	"github.com/orgball2608/affiliate-post-bot/internal/window"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"github.com/orgball2608/affiliate-post-bot/pkg/pgx"
	"go.uber.org/fx"
)

const migrateTimeout = time.Minute

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		metrics.New,
		batch.NewStore,
		newComposer,
		newWindow,
		newMessages,
		fx.Annotate(
			newLimiter,
			fx.As(new(ratelimit.Limiter)),
		),
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		), fx.Annotate(
			deliveryimpl.New,
			fx.As(new(delivery.Client)),
		), fx.Annotate(
			schedulerimpl.New,
			fx.As(new(scheduler.Client)),
		), fx.Annotate(
			pipelineimpl.New,
			fx.As(new(pipeline.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func newComposer(cfg *config.Config) *composer.Composer {
	return composer.New(composer.Config{
		Keywords:  cfg.Publish.Keywords,
		MaxPhotos: cfg.Publish.MaxPhotos,
		ShareLink: cfg.Publish.ShareLink,
	})
}

func newWindow(cfg *config.Config) *window.Policy {
	return window.New(window.Config{
		Location: cfg.Location(),
		Start:    cfg.Publish.WindowStart.Offset(),
		End:      cfg.Publish.WindowEnd.Offset(),
		MinDelay: cfg.Publish.DelayMin,
		MaxDelay: cfg.Publish.DelayMax,
	})
}

func newMessages(cfg *config.Config) (*locales.Messages, error) {
	return locales.New(cfg.App.Language)
}

func newLimiter(cfg *config.Config) *ratelimit.InMemoryLimiter {
	return ratelimit.NewInMemoryLimiter(cfg.Commands.Requests, cfg.Commands.Per, cfg.Commands.Burst)
}

func migrate(cfg *config.Config, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := migrations.Up(ctx, cfg); err != nil {
		log.Error("Migrations failed", "error", err)
		return err
	}
	log.Info("Migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, m *metrics.Metrics, cmdClient command.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newHttpServer(log, cfg, m)
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, srv)

			go func() {
				defer close(done)
				if err := cmdClient.HandleCommand(ctx); err != nil && ctx.Err() == nil {
					log.Error("Command handler stopped", "Error", err)
				}
			}()

			log.Info("Bot started",
				"window", cfg.Publish.WindowStart.String()+"-"+cfg.Publish.WindowEnd.String(),
				"utcOffset", cfg.Publish.UTCOffsetHours)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return srv.Shutdown(stopCtx)
		},
	})
}
