package telegramimpl

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNoPhotos = errors.New("photo group is empty")

// SendText sends a text message to a specific chat ID
func (tg *TelegramImpl) SendText(chatID int64, text string, html bool) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if html {
		msg.ParseMode = tgbotapi.ModeHTML
	}

	tg.pacer.Take()
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Debug("Message sent",
		"chatID", chatID,
		"messageID", sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

// SendPhotoGroup sends photos by file id as a single album
func (tg *TelegramImpl) SendPhotoGroup(chatID int64, photoIDs []string, caption string) error {
	if len(photoIDs) == 0 {
		return ErrNoPhotos
	}

	group := photoGroup(chatID, photoIDs, caption)
	tg.pacer.Take()
	if _, err := tg.TgBot.SendMediaGroup(group); err != nil {
		tg.Logger.Error("Error sending media group",
			"chatID", chatID,
			"photos", len(photoIDs),
			"error", err)
		return fmt.Errorf("failed to send media group: %w", err)
	}

	tg.Logger.Debug("Media group sent", "chatID", chatID, "photos", len(photoIDs))
	return nil
}

// NotifyOperator sends a plain text notice to the operator chat
func (tg *TelegramImpl) NotifyOperator(text string) {
	if _, err := tg.SendText(tg.operatorChatID, text, false); err != nil {
		tg.Logger.Warn("Operator notice dropped", "error", err)
	}
}

// GetUpdatesChan wraps the bot's GetUpdatesChan method
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}

// photoGroup builds the album; only the first photo carries the caption.
func photoGroup(chatID int64, photoIDs []string, caption string) tgbotapi.MediaGroupConfig {
	media := make([]interface{}, 0, len(photoIDs))
	for i, id := range photoIDs {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(id))
		if i == 0 && caption != "" {
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeHTML
		}
		media = append(media, photo)
	}
	return tgbotapi.NewMediaGroup(chatID, media)
}
