package schedulerimpl

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/affiliate-post-bot/internal/delivery"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/internal/metrics"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"go.uber.org/fx"
)

const deliveryTimeout = 2 * time.Minute

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Config   *config.Config
	Logger   logger.Logger
	Delivery delivery.Client
	Telegram telegram.Client
	Metrics  *metrics.Metrics
	Messages *locales.Messages
}

type SchedulerImpl struct {
	Delivery delivery.Client
	Telegram telegram.Client
	Metrics  *metrics.Metrics
	Messages *locales.Messages
	Logger   logger.Logger

	cron    gocron.Scheduler
	pending atomic.Int64
}

func New(opts Opts) (*SchedulerImpl, error) {
	s, err := NewScheduler(opts.Config.Location(), opts.Delivery, opts.Telegram, opts.Metrics, opts.Messages, opts.Logger)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return s.Shutdown()
		},
	})
	return s, nil
}

func NewScheduler(loc *time.Location, d delivery.Client, tg telegram.Client, m *metrics.Metrics, msgs *locales.Messages, log logger.Logger) (*SchedulerImpl, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &SchedulerImpl{
		Delivery: d,
		Telegram: tg,
		Metrics:  m,
		Messages: msgs,
		Logger:   log.WithComponent("Scheduler"),
		cron:     cron,
	}, nil
}

var _ scheduler.Client = (*SchedulerImpl)(nil)

func (s *SchedulerImpl) Start() {
	s.cron.Start()
	s.Logger.Info("Publish scheduler started")
}

// Shutdown stops the scheduler. Jobs that have not fired yet are dropped.
func (s *SchedulerImpl) Shutdown() error {
	if n := s.Pending(); n > 0 {
		s.Logger.Warn("Dropping pending publish jobs", "count", n)
	}
	if err := s.cron.Shutdown(); err != nil {
		s.Logger.Error("Failed to shut down scheduler", "error", err)
		return err
	}
	return nil
}

func (s *SchedulerImpl) Schedule(ctx context.Context, job scheduler.Job) (scheduler.Job, error) {
	if err := ctx.Err(); err != nil {
		return job, err
	}

	start := gocron.OneTimeJobStartImmediately()
	if job.When.After(time.Now()) {
		start = gocron.OneTimeJobStartDateTime(job.When)
	}

	s.Metrics.JobsPending.Set(float64(s.pending.Add(1)))
	j, err := s.cron.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(s.fire, job),
		gocron.WithName("publish:"+job.Post.Title),
		gocron.WithTags(strconv.FormatInt(job.UserID, 10)),
	)
	if err != nil {
		s.Metrics.JobsPending.Set(float64(s.pending.Add(-1)))
		return job, fmt.Errorf("failed to schedule publish job: %w", err)
	}

	job.ID = j.ID().String()
	s.Metrics.JobsScheduled.Inc()
	s.Logger.Info("Publish job scheduled",
		"jobID", job.ID,
		"userID", job.UserID,
		"when", job.When.Format(time.RFC3339),
		"photos", len(job.Post.Photos))
	return job, nil
}

func (s *SchedulerImpl) Pending() int {
	return int(s.pending.Load())
}

func (s *SchedulerImpl) fire(job scheduler.Job) {
	defer func() {
		s.Metrics.JobsPending.Set(float64(s.pending.Add(-1)))
		if r := recover(); r != nil {
			s.Logger.Error("Panic recovered in publish job", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	outcome := s.Delivery.Deliver(ctx, job.Post)
	s.Metrics.Deliveries.WithLabelValues(outcome.Status.String()).Inc()

	if outcome.OK() {
		s.Logger.Info("Scheduled post published", "userID", job.UserID, "title", job.Post.Title)
		s.Telegram.NotifyOperator(s.Messages.Get(locales.NoticePublished, nil))
		return
	}

	s.Logger.Error("Scheduled post failed",
		"userID", job.UserID,
		"title", job.Post.Title,
		"reason", outcome.Reason)
	s.Telegram.NotifyOperator(s.Messages.Get(locales.NoticePublishFailed, map[string]any{"Reason": outcome.Reason}))
}
