package pipelineimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline"
	"github.com/orgball2608/affiliate-post-bot/internal/scheduler"
	"github.com/orgball2608/affiliate-post-bot/pkg/formatter"
	"github.com/orgball2608/affiliate-post-bot/pkg/retry"
)

const previewLimit = 40

// Submit acknowledges every item to the operator, the completion word included,
// then either appends it or completes the batch.
func (p *PipelineImpl) Submit(ctx context.Context, userID int64, item domain.Item) error {
	p.acknowledge(item)

	if p.isDoneWord(item) {
		_, err := p.Complete(ctx, userID)
		return err
	}

	p.Store.Append(userID, item)
	p.Metrics.ItemsReceived.WithLabelValues(item.Kind.String()).Inc()
	p.Logger.Debug("Item appended", "userID", userID, "kind", item.Kind, "pending", p.Store.Len(userID))
	return nil
}

func (p *PipelineImpl) acknowledge(item domain.Item) {
	preview := formatter.Preview(item.Text, previewLimit)
	if preview == "" {
		preview = p.Messages.Get(locales.NoticePhoto, nil)
	}
	p.Telegram.NotifyOperator(p.Messages.Get(locales.NoticeReceived, map[string]any{"Preview": preview}))
}

func (p *PipelineImpl) Complete(ctx context.Context, userID int64) (scheduler.Job, error) {
	items := p.Store.TakeAndClear(userID)
	if len(items) == 0 {
		p.Metrics.EmptyBatches.Inc()
		p.Logger.Info("Completion signal without pending items", "userID", userID)
		p.Telegram.NotifyOperator(p.Messages.Get(locales.NoticeEmpty, nil))
		return scheduler.Job{}, pipeline.ErrEmptyBatch
	}

	post := p.Composer.Compose(items)
	p.Metrics.BatchesComposed.Inc()

	when := p.Window.NextSlot(p.now())
	job, err := p.Scheduler.Schedule(ctx, scheduler.Job{
		UserID: userID,
		When:   when,
		Post:   post,
	})
	if err != nil {
		p.Logger.Error("Failed to schedule post", "userID", userID, "error", err)
		p.Telegram.NotifyOperator(p.Messages.Get(locales.NoticeScheduleFailed, map[string]any{"Error": err}))
		return scheduler.Job{}, fmt.Errorf("failed to schedule post: %w", err)
	}

	p.Logger.Info("Post composed and scheduled",
		"userID", userID,
		"items", len(items),
		"title", post.Title,
		"when", job.When)
	p.Telegram.NotifyOperator(p.Messages.Get(locales.NoticeScheduled, map[string]any{"Time": job.When.In(p.loc).Format("15:04")}))

	p.record(ctx, job)
	return job, nil
}

// record stores the stats row. The job stays scheduled even if this fails.
func (p *PipelineImpl) record(ctx context.Context, job scheduler.Job) {
	rec := domain.PostRecord{
		UserID:    job.UserID,
		Link:      job.Post.Link,
		PublishAt: job.When,
	}

	err := retry.Do(ctx, p.Logger, "create post record", func() error {
		return p.PostRepo.Create(ctx, rec)
	}, p.retry)
	if err != nil {
		p.Logger.Error("Failed to store post record", "userID", job.UserID, "jobID", job.ID, "error", err)
		p.Telegram.NotifyOperator(p.Messages.Get(locales.NoticeRecordFailed, map[string]any{"Error": err}))
	}
}

func (p *PipelineImpl) isDoneWord(item domain.Item) bool {
	return item.Kind == domain.ItemText && strings.TrimSpace(item.Text) == p.doneWord
}
