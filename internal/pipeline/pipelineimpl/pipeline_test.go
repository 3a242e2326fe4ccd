package pipelineimpl

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orgball2608/affiliate-post-bot/internal/batch"
	"github.com/orgball2608/affiliate-post-bot/internal/composer"
	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/internal/metrics"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline"
	"github.com/orgball2608/affiliate-post-bot/internal/repositories"
	mock_post "github.com/orgball2608/affiliate-post-bot/internal/repositories/post/mocks"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler"
	mock_scheduler "github.com/orgball2608/affiliate-post-bot/internal/scheduler/mocks"
	mock_telegram "github.com/orgball2608/affiliate-post-bot/internal/telegram/mocks"
	"github.com/orgball2608/affiliate-post-bot/internal/window"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"github.com/orgball2608/affiliate-post-bot/pkg/retry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var loc = time.FixedZone("UTC+3", 3*3600)

type fixture struct {
	p         *PipelineImpl
	scheduler *mock_scheduler.MockClient
	repo      *mock_post.MockRepository
	metrics   *metrics.Metrics

	mu      sync.Mutex
	notices []string
}

func (f *fixture) Notices() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.notices...)
}

func newFixture(t *testing.T, now time.Time) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		scheduler: mock_scheduler.NewMockClient(ctrl),
		repo:      mock_post.NewMockRepository(ctrl),
		metrics:   metrics.New(),
	}

	tg := mock_telegram.NewMockClient(ctrl)
	tg.EXPECT().NotifyOperator(gomock.Any()).Do(func(text string) {
		f.mu.Lock()
		f.notices = append(f.notices, text)
		f.mu.Unlock()
	}).AnyTimes()

	cfg := &config.Config{}
	cfg.Publish.DoneWord = "סיימתי"
	cfg.Publish.UTCOffsetHours = 3

	f.p = New(Opts{
		Store: batch.NewStore(),
		Composer: composer.New(composer.Config{
			Keywords:  []string{"✅", "IP-", "mAh"},
			MaxPhotos: 4,
			ShareLink: "https://t.me/deals",
		}),
		Window: window.New(window.Config{
			Location: loc,
			Start:    9 * time.Hour,
			End:      23*time.Hour + 30*time.Minute,
			MinDelay: 20 * time.Minute,
			MaxDelay: 120 * time.Minute,
		}, window.WithRand(rand.New(rand.NewSource(1)))),
		Scheduler: f.scheduler,
		PostRepo:  f.repo,
		Telegram:  tg,
		Metrics:   f.metrics,
		Messages:  locales.MustNew("he"),
		Config:    cfg,
		Logger:    logger.NewNop(),
	})
	f.p.now = func() time.Time { return now }
	f.p.retry = retry.Config{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}.
		WithPermanent(repositories.IsPermanent)
	return f
}

func noon() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, loc)
}

func TestSubmitAppendsAndNotifiesPreview(t *testing.T) {
	f := newFixture(t, noon())
	ctx := context.Background()

	require.NoError(t, f.p.Submit(ctx, 1, domain.TextItem("line one\nline two")))
	require.NoError(t, f.p.Submit(ctx, 1, domain.PhotoItem("p1")))

	assert.Equal(t, 2, f.p.Store.Len(1))
	assert.Equal(t, []string{
		"🔹 DEBUG: קיבלתי: line one line two",
		"🔹 DEBUG: קיבלתי: צילום",
	}, f.Notices())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ItemsReceived.WithLabelValues("photo")))
}

func TestSubmitPreviewIsTruncated(t *testing.T) {
	f := newFixture(t, noon())

	require.NoError(t, f.p.Submit(context.Background(), 1, domain.TextItem(strings.Repeat("א", 100))))

	notices := f.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "🔹 DEBUG: קיבלתי: "+strings.Repeat("א", 40), notices[0])
}

func TestCompleteEmptyBatchSchedulesNothing(t *testing.T) {
	f := newFixture(t, noon())

	// No Schedule or Create expectations: any call fails the test.
	err := f.p.Submit(context.Background(), 1, domain.TextItem("סיימתי"))
	assert.ErrorIs(t, err, pipeline.ErrEmptyBatch)
	assert.Equal(t, []string{
		"🔹 DEBUG: קיבלתי: סיימתי",
		"🔹 DEBUG: אין הודעות ממתינות",
	}, f.Notices())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EmptyBatches))
}

func TestCompleteChargerScenario(t *testing.T) {
	now := noon()
	f := newFixture(t, now)
	ctx := context.Background()

	var scheduled scheduler.Job
	f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job scheduler.Job) (scheduler.Job, error) {
			job.ID = "job-1"
			scheduled = job
			return job, nil
		}).Times(1)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec domain.PostRecord) error {
			assert.Equal(t, int64(7), rec.UserID)
			assert.Equal(t, "https://s.example/p", rec.Link)
			assert.True(t, rec.PublishAt.Equal(scheduled.When))
			return nil
		}).Times(1)

	require.NoError(t, f.p.Submit(ctx, 7, domain.TextItem("Great Charger\nIP-67 rated\nfoo bar")))
	require.NoError(t, f.p.Submit(ctx, 7, domain.TextItem("✅ fast shipping https://s.example/p")))
	require.NoError(t, f.p.Submit(ctx, 7, domain.TextItem("סיימתי")))

	assert.Equal(t, 0, f.p.Store.Len(7))
	assert.Equal(t, int64(7), scheduled.UserID)
	assert.Equal(t, "Great Charger", scheduled.Post.Title)
	assert.ElementsMatch(t, []string{"IP-67 rated", "✅ fast shipping https://s.example/p"}, scheduled.Post.Body)
	assert.Equal(t, "https://s.example/p", scheduled.Post.Link)
	assert.Empty(t, scheduled.Post.Photos)

	assert.True(t, scheduled.When.After(now))
	assert.True(t, f.p.Window.InWindow(scheduled.When))

	notices := f.Notices()
	require.Len(t, notices, 4)
	assert.Equal(t, "🔹 DEBUG: קיבלתי: סיימתי", notices[2])
	assert.Equal(t, "📌 DEBUG: יתפרסם ב-"+scheduled.When.In(loc).Format("15:04"), notices[3])
}

func TestCompleteLateEveningMovesToMorning(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 25, 0, 0, loc)
	f := newFixture(t, now)

	f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job scheduler.Job) (scheduler.Job, error) { return job, nil })
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	f.p.Store.Append(3, domain.TextItem("Lamp"))
	job, err := f.p.Complete(context.Background(), 3)
	require.NoError(t, err)

	local := job.When.In(loc)
	assert.NotEqual(t, 1, local.Day())
	assert.GreaterOrEqual(t, local.Hour(), 9)
	assert.True(t, f.p.Window.InWindow(local))
}

func TestCompleteRecordFailureKeepsJob(t *testing.T) {
	f := newFixture(t, noon())

	f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job scheduler.Job) (scheduler.Job, error) {
			job.ID = "job-2"
			return job, nil
		})
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(3)

	f.p.Store.Append(4, domain.PhotoItem("p1"))
	job, err := f.p.Complete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "job-2", job.ID)

	notices := f.Notices()
	require.Len(t, notices, 2)
	assert.Contains(t, notices[1], "connection refused")
}

func TestCompleteRecordConstraintViolationNotRetried(t *testing.T) {
	f := newFixture(t, noon())

	f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job scheduler.Job) (scheduler.Job, error) { return job, nil })
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&pgconn.PgError{Code: "23502", Message: "null value in column \"link\""}).Times(1)

	f.p.Store.Append(4, domain.TextItem("Lamp"))
	_, err := f.p.Complete(context.Background(), 4)
	require.NoError(t, err)

	notices := f.Notices()
	require.Len(t, notices, 2)
	assert.Contains(t, notices[1], "null value")
}

func TestCompleteScheduleFailureSkipsRecord(t *testing.T) {
	f := newFixture(t, noon())

	f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any()).
		Return(scheduler.Job{}, errors.New("scheduler is shut down"))

	f.p.Store.Append(5, domain.TextItem("Lamp"))
	_, err := f.p.Complete(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, 0, f.p.Store.Len(5))
}

func TestSubmitDoneWordIsTrimmed(t *testing.T) {
	f := newFixture(t, noon())

	err := f.p.Submit(context.Background(), 8, domain.TextItem("  סיימתי \n"))
	assert.ErrorIs(t, err, pipeline.ErrEmptyBatch)
	assert.Len(t, f.Notices(), 2)
}

func TestSubmitTextContainingDoneWordIsAppended(t *testing.T) {
	f := newFixture(t, noon())

	require.NoError(t, f.p.Submit(context.Background(), 6, domain.TextItem("סיימתי עכשיו")))
	assert.Equal(t, 1, f.p.Store.Len(6))
}
