package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
)

// Sender is the part of tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot    Sender
	chatID int64
}

func NewTelegram(cfg *config.TelegramConfig) (*TelegramNotifier, error) {
	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", cfg.ChatID, err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return NewTelegramWithSender(bot, chatID), nil
}

func NewTelegramWithSender(bot Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (t *TelegramNotifier) Notify(ctx context.Context, target domain.SiteTarget, item *domain.BackupItem) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(target, item))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}

func FormatMessage(target domain.SiteTarget, item *domain.BackupItem) string {
	slot := target.Slot
	if slot == "" {
		slot = "production"
	}

	var b strings.Builder
	b.WriteString("✅ Web App Backup Requested\n\n")
	fmt.Fprintf(&b, "🌐 App: %s (%s)\n", target.Name, slot)
	fmt.Fprintf(&b, "📂 Resource group: %s\n", target.ResourceGroup)
	fmt.Fprintf(&b, "🆔 Backup: %d\n", item.BackupID)
	if item.BackupName != "" {
		fmt.Fprintf(&b, "🏷 Name: %s\n", item.BackupName)
	}
	if item.BlobName != "" {
		fmt.Fprintf(&b, "📁 Blob: %s\n", item.BlobName)
	}
	fmt.Fprintf(&b, "📊 Status: %s", item.Status)
	if item.Created != nil {
		fmt.Fprintf(&b, "\n🕐 Created: %s", item.Created.Format("2006-01-02 15:04:05"))
	}

	return b.String()
}
