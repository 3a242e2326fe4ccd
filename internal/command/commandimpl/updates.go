package commandimpl

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/pipeline"
)

var errUpdatesClosed = errors.New("telegram updates channel closed")

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errUpdatesClosed
			}

			msg := message(update)
			if msg == nil {
				continue
			}
			if err := c.lanes.dispatch(ctx, senderID(msg), update); err != nil {
				c.Logger.Warn("Update dropped", "updateID", update.UpdateID, "error", err)
				return err
			}
		}
	}
}

func (c *CommandImpl) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := message(update)
	if msg == nil {
		return
	}
	userID := senderID(msg)

	if name, ok := commandName(msg); ok && isKnownCommand(name) {
		if err := c.processCommand(ctx, msg, name); err != nil {
			c.Logger.Error("Error processing command",
				"command", name,
				"error", err)
		}
		return
	}

	if msg.Chat == nil || msg.Chat.ID != c.sourceChatID {
		c.Logger.Debug("Ignoring message outside the source chat", "chatID", chatID(msg), "userID", userID)
		return
	}

	for _, item := range itemsFrom(msg) {
		err := c.Pipeline.Submit(ctx, userID, item)
		switch {
		case errors.Is(err, pipeline.ErrEmptyBatch):
			c.Logger.Debug("Completion signal with nothing pending", "userID", userID)
		case err != nil:
			c.Logger.Error("Failed to submit item", "userID", userID, "kind", item.Kind, "error", err)
		}
	}
}

// message returns the message carried by a chat or channel update.
func message(update tgbotapi.Update) *tgbotapi.Message {
	if update.Message != nil {
		return update.Message
	}
	return update.ChannelPost
}

// senderID identifies the batch owner: the sending user, else the chat itself.
func senderID(msg *tgbotapi.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return chatID(msg)
}

func chatID(msg *tgbotapi.Message) int64 {
	if msg.Chat == nil {
		return 0
	}
	return msg.Chat.ID
}

// itemsFrom turns a message into batch items. A photo contributes its largest
// size, followed by its caption as a text item.
func itemsFrom(msg *tgbotapi.Message) []domain.Item {
	if len(msg.Photo) > 0 {
		largest := msg.Photo[len(msg.Photo)-1]
		items := []domain.Item{domain.PhotoItem(largest.FileID)}
		if strings.TrimSpace(msg.Caption) != "" {
			items = append(items, domain.TextItem(msg.Caption))
		}
		return items
	}
	if strings.TrimSpace(msg.Text) != "" {
		return []domain.Item{domain.TextItem(msg.Text)}
	}
	return nil
}

// commandName accepts entity-marked commands and non-Latin ones such as
// /פקודות, which Telegram does not mark as bot commands.
func commandName(msg *tgbotapi.Message) (string, bool) {
	if msg.IsCommand() {
		return msg.Command(), true
	}

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", false
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return name, name != ""
}
