package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	// SendText sends a single message and returns its id. html switches parse mode to HTML.
	SendText(chatID int64, text string, html bool) (int, error)
	// SendPhotoGroup sends photos as one album, caption (HTML) on the first photo only.
	SendPhotoGroup(chatID int64, photoIDs []string, caption string) error

	// NotifyOperator sends a plain notice to the operator chat. Failures are only logged.
	NotifyOperator(text string)
}
