package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/affiliate-post-bot/internal/telegram"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/ratelimit"
)

// botAPI is the part of *tgbotapi.BotAPI the client relies on.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot          botAPI
	Logger         logger.Logger
	operatorChatID int64
	// pacer keeps outbound sends under the Bot API flood limits.
	pacer ratelimit.Limiter
}

func New(opts Opts) (*TelegramImpl, error) {
	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "Error", err)
		return nil, err
	}

	log := opts.Logger.WithComponent("Telegram")
	log.Info("Authorized on account", "username", tgBot.Self.UserName)

	pacer := ratelimit.NewUnlimited()
	if rate := opts.Config.Telegram.SendRate; rate > 0 {
		pacer = ratelimit.New(rate)
	}
	return newWithBot(tgBot, log, opts.Config.OperatorChatID(), pacer), nil
}

func newWithBot(bot botAPI, log logger.Logger, operatorChatID int64, pacer ratelimit.Limiter) *TelegramImpl {
	return &TelegramImpl{
		TgBot:          bot,
		Logger:         log,
		operatorChatID: operatorChatID,
		pacer:          pacer,
	}
}

var _ telegram.Client = (*TelegramImpl)(nil)
