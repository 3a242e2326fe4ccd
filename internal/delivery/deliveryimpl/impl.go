package deliveryimpl

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/orgball2608/affiliate-post-bot/internal/delivery"
	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/errors"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"go.uber.org/fx"
)

const CodeDeliveryFailed = "delivery_failed"

type Opts struct {
	fx.In

	Telegram telegram.Client
	Config   *config.Config
	Logger   logger.Logger
}

type DeliveryImpl struct {
	Telegram    telegram.Client
	Logger      logger.Logger
	destination int64
}

func New(opts Opts) *DeliveryImpl {
	return &DeliveryImpl{
		Telegram:    opts.Telegram,
		Logger:      opts.Logger.WithComponent("Delivery"),
		destination: opts.Config.Telegram.DestinationChatID,
	}
}

var _ delivery.Client = (*DeliveryImpl)(nil)

func (d *DeliveryImpl) Deliver(ctx context.Context, post domain.ComposedPost) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("Panic recovered while delivering a post", "panic", r, "stack", string(debug.Stack()))
			outcome = domain.FailedOutcome(fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return d.failed(post, errors.WrapWithCode(err, CodeDeliveryFailed, "delivery cancelled"))
	}

	if post.HasPhotos() {
		if err := d.Telegram.SendPhotoGroup(d.destination, post.Photos, post.Caption); err != nil {
			return d.failed(post, errors.WrapWithCode(err, CodeDeliveryFailed, "send photo group"))
		}
	} else {
		if _, err := d.Telegram.SendText(d.destination, post.Caption, true); err != nil {
			return d.failed(post, errors.WrapWithCode(err, CodeDeliveryFailed, "send text"))
		}
	}

	d.Logger.Info("Post delivered", "title", post.Title, "photos", len(post.Photos), "chatID", d.destination)
	return domain.DeliveredOutcome()
}

func (d *DeliveryImpl) failed(post domain.ComposedPost, err error) domain.Outcome {
	d.Logger.Error("Post delivery failed",
		"title", post.Title,
		"code", errors.GetCode(err),
		"error", err)
	return domain.FailedOutcome(err.Error())
}
