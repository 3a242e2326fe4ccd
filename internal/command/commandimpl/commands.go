package commandimpl

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/pkg/formatter"
)

// isKnownCommand lists the commands the bot answers. Any other slash text in
// the source chat is treated as post content.
func isKnownCommand(name string) bool {
	switch name {
	case "ping", "help", "start", "פקודות", "stats":
		return true
	}
	return false
}

func (c *CommandImpl) processCommand(ctx context.Context, msg *tgbotapi.Message, name string) error {
	userID := senderID(msg)
	if !c.Limiter.Allow(userID) {
		c.Metrics.Commands.WithLabelValues("throttled").Inc()
		c.Logger.Warn("Command throttled", "command", name, "userID", userID)
		return nil
	}

	switch name {
	case "ping":
		c.Metrics.Commands.WithLabelValues(name).Inc()
		_, err := c.Telegram.SendText(chatID(msg), c.Messages.Get(locales.CmdPong, nil), false)
		return err
	case "help", "start", "פקודות":
		c.Metrics.Commands.WithLabelValues("help").Inc()
		_, err := c.Telegram.SendText(chatID(msg), c.Messages.Get(locales.CmdHelp, nil), false)
		return err
	case "stats":
		c.Metrics.Commands.WithLabelValues(name).Inc()
		return c.handleStats(ctx, chatID(msg), userID)
	}
	return nil
}

func (c *CommandImpl) handleStats(ctx context.Context, chatID, userID int64) error {
	periods := []domain.StatsPeriod{domain.PeriodDay, domain.PeriodMonth, domain.PeriodYear}
	counts := make([]int, len(periods))

	for i, period := range periods {
		n, err := c.PostRepo.CountByUser(ctx, userID, period)
		if err != nil {
			if _, sendErr := c.Telegram.SendText(chatID, c.Messages.Get(locales.CmdStatsFailed, nil), false); sendErr != nil {
				c.Logger.Warn("Failed to report stats error", "error", sendErr)
			}
			return fmt.Errorf("failed to count %s posts: %w", period, err)
		}
		counts[i] = n
	}

	_, err := c.Telegram.SendText(chatID, c.Messages.Get(locales.CmdStats, map[string]any{
		"Day":   formatter.FormatNumber(counts[0]),
		"Month": formatter.FormatNumber(counts[1]),
		"Year":  formatter.FormatNumber(counts[2]),
	}), false)
	return err
}
