package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifier(t *testing.T) {
	Convey("Given a TelegramNotifier", t, func() {
		ctx := context.Background()
		sender := &fakeSender{}
		notifier := NewTelegramWithSender(sender, 42)

		created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		target := domain.SiteTarget{ResourceGroup: "rg1", Name: "app1", Slot: "staging"}
		item := &domain.BackupItem{BackupID: 9, BackupName: "nightly", BlobName: "app1.zip", Status: domain.BackupStatusCreated, Created: &created}

		Convey("When notifying a backup", func() {
			err := notifier.Notify(ctx, target, item)

			Convey("It should send one message to the chat", func() {
				So(err, ShouldBeNil)
				So(sender.sent, ShouldHaveLength, 1)

				msg := sender.sent[0].(tgbotapi.MessageConfig)
				So(msg.ChatID, ShouldEqual, 42)
				So(msg.Text, ShouldContainSubstring, "app1 (staging)")
				So(msg.Text, ShouldContainSubstring, "Backup: 9")
				So(msg.Text, ShouldContainSubstring, "Blob: app1.zip")
				So(msg.Text, ShouldContainSubstring, "2026-01-02 03:04:05")
			})
		})

		Convey("When the bot fails", func() {
			sender.err = errors.New("Too Many Requests")
			err := notifier.Notify(ctx, target, item)

			Convey("It should return the wrapped error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "Too Many Requests")
			})
		})

		Convey("FormatMessage without a slot", func() {
			text := FormatMessage(domain.SiteTarget{ResourceGroup: "rg1", Name: "app1"}, &domain.BackupItem{Status: domain.BackupStatusInProgress})

			Convey("It should name the production slot and skip empty fields", func() {
				So(text, ShouldContainSubstring, "app1 (production)")
				So(text, ShouldNotContainSubstring, "Blob:")
				So(text, ShouldNotContainSubstring, "Created:")
			})
		})

		Convey("NewTelegram with a bad chat id", func() {
			_, err := NewTelegram(&config.TelegramConfig{BotToken: "t", ChatID: "not-a-number"})

			Convey("It should fail before contacting Telegram", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "invalid telegram chat id")
			})
		})
	})
}

type funcNotifier func(ctx context.Context, target domain.SiteTarget, item *domain.BackupItem) error

func (f funcNotifier) Notify(ctx context.Context, target domain.SiteTarget, item *domain.BackupItem) error {
	return f(ctx, target, item)
}

func TestMulti(t *testing.T) {
	Convey("Given a Multi notifier", t, func() {
		calls := 0
		ok := funcNotifier(func(context.Context, domain.SiteTarget, *domain.BackupItem) error { calls++; return nil })
		failing := funcNotifier(func(context.Context, domain.SiteTarget, *domain.BackupItem) error { calls++; return errors.New("down") })

		err := Multi{failing, ok}.Notify(context.Background(), domain.SiteTarget{}, &domain.BackupItem{})

		Convey("It should call every notifier and report failures", func() {
			So(calls, ShouldEqual, 2)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "down")
		})
	})
}
