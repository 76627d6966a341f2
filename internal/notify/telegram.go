// Package notify delivers best-effort Telegram notifications for ledger and
// friendship events. Delivery failures are logged and never propagate to the
// operation that triggered them.
package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"gitlab.com/aungkhant/divvy/internal/logger"
	"gitlab.com/aungkhant/divvy/internal/models"
	"gitlab.com/aungkhant/divvy/internal/repository"
)

// TelegramNotifier sends messages to users who enabled Telegram notifications
// in their profile.
type TelegramNotifier struct {
	bot      *bot.Bot
	profiles *repository.ProfileRepository
}

// NewTelegramNotifier creates a notifier backed by the Telegram Bot API.
func NewTelegramNotifier(token string, profiles *repository.ProfileRepository) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: b, profiles: profiles}, nil
}

// ExpenseAdded notifies every share holder except the payer about a new
// expense.
func (n *TelegramNotifier) ExpenseAdded(ctx context.Context, group *models.Group, expense *models.Expense) {
	for _, share := range expense.Shares {
		if share.UserID == expense.PaidBy {
			continue
		}
		text := fmt.Sprintf("New expense in %s: %s (%s). Your share is %s.",
			group.Name, expense.Title, expense.Amount.StringFixed(2), share.AmountOwed.StringFixed(2))
		n.send(ctx, share.UserID, text)
	}
}

// FriendRequested notifies the recipient of a new friend request.
func (n *TelegramNotifier) FriendRequested(ctx context.Context, from, to *models.User) {
	n.send(ctx, to.ID, fmt.Sprintf("%s sent you a friend request.", from.Username))
}

// send delivers one message if the user opted in and linked a chat.
func (n *TelegramNotifier) send(ctx context.Context, userID int64, text string) {
	profile, err := n.profiles.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Warn().
			Str("user", logger.HashUserID(userID)).
			Err(err).
			Msg("Notification skipped: profile lookup failed")
		return
	}
	if !profile.TelegramNotification || profile.TelegramChatID == 0 {
		return
	}

	_, err = n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: profile.TelegramChatID,
		Text:   text,
	})
	if err != nil {
		logger.Log.Warn().
			Str("chat", logger.HashChatID(profile.TelegramChatID)).
			Err(err).
			Msg("Failed to send telegram notification")
		return
	}

	logger.Log.Debug().
		Str("chat", logger.HashChatID(profile.TelegramChatID)).
		Msg("Telegram notification sent")
}
