package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
	"github.com/semmidev/azwebapp/internal/infrastructure/logger"
	"github.com/semmidev/azwebapp/internal/usecase"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []*domain.BackupRequest
	slots []string
	item  *domain.BackupItem
	err   error
}

func (f *fakeClient) BackupSite(ctx context.Context, resourceGroup, name, slot string, req *domain.BackupRequest) (*domain.BackupItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	f.slots = append(f.slots, slot)
	return f.item, f.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) Notify(context.Context, domain.SiteTarget, *domain.BackupItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
	return nil
}

func baseConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "azwebapp", LogLevel: "info", Output: "json"},
		Azure: config.AzureConfig{Endpoint: "https://management.azure.com", APIVersion: "2016-08-01"},
	}
}

func TestApp(t *testing.T) {
	Convey("Given an App", t, func() {
		ctx := context.Background()
		client := &fakeClient{item: &domain.BackupItem{BackupID: 5}}
		notifier := &countingNotifier{}
		cfg := baseConfig()

		Convey("When Azure credentials are missing and no client is injected", func() {
			_, err := New(ctx, cfg, WithLogger(logger.Nop()))

			Convey("It should refuse to start", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "subscription_id")
			})
		})

		Convey("When a static token is configured", func() {
			cfg.Azure.SubscriptionID = "sub"
			cfg.Auth.AccessToken = "token"
			a, err := New(ctx, cfg, WithLogger(logger.Nop()))

			Convey("It should build the real client", func() {
				So(err, ShouldBeNil)
				So(a, ShouldNotBeNil)
			})
		})

		Convey("CreateBackup", func() {
			a, err := New(ctx, cfg, WithWebsitesClient(client), WithNotifier(notifier), WithLogger(logger.Nop()))
			So(err, ShouldBeNil)

			params := usecase.BackupParams{
				Target:            domain.SiteTarget{ResourceGroup: "rg1", Name: "app1"},
				StorageAccountURL: "https://example.blob/sas",
			}

			Convey("It should delegate to the client and notify", func() {
				item, err := a.CreateBackup(ctx, params)
				So(err, ShouldBeNil)
				So(item, ShouldPointTo, client.item)
				So(client.callCount(), ShouldEqual, 1)
				So(notifier.count, ShouldEqual, 1)
			})

			Convey("It should return the remote error unchanged", func() {
				client.err = errors.New("Forbidden")
				_, err := a.CreateBackup(ctx, params)
				So(err, ShouldEqual, client.err)
			})
		})

		Convey("Run", func() {
			Convey("Without schedules it should fail", func() {
				a, err := New(ctx, cfg, WithWebsitesClient(client), WithLogger(logger.Nop()))
				So(err, ShouldBeNil)
				So(a.Run(ctx).Error(), ShouldContainSubstring, "no enabled schedules")
			})

			Convey("With a schedule missing its storage URL it should fail", func() {
				cfg.Schedules = []config.ScheduleConfig{{Name: "broken", Enabled: true, Schedule: "* * * * * *", ResourceGroup: "rg1", App: "app1"}}
				a, err := New(ctx, cfg, WithWebsitesClient(client), WithLogger(logger.Nop()))
				So(err, ShouldBeNil)

				err = a.Run(ctx)
				So(errors.Is(err, domain.ErrMissingParameter), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "broken")
			})

			Convey("With a bad cron spec it should fail", func() {
				cfg.Schedules = []config.ScheduleConfig{{
					Name: "bad", Enabled: true, Schedule: "daily",
					ResourceGroup: "rg1", App: "app1", StorageAccountURL: "https://example.blob/sas",
				}}
				a, err := New(ctx, cfg, WithWebsitesClient(client), WithLogger(logger.Nop()))
				So(err, ShouldBeNil)
				So(a.Run(ctx).Error(), ShouldContainSubstring, "failed to schedule backup")
			})

			Convey("With a valid schedule it should trigger backups until cancelled", func() {
				cfg.Schedules = []config.ScheduleConfig{{
					Name: "every-second", Enabled: true, Schedule: "* * * * * *",
					ResourceGroup: "rg1", App: "app1/staging", StorageAccountURL: "https://example.blob/sas",
					BackupNamePrefix: "tick",
				}}
				a, err := New(ctx, cfg, WithWebsitesClient(client), WithLogger(logger.Nop()))
				So(err, ShouldBeNil)

				runCtx, cancel := context.WithTimeout(ctx, 2500*time.Millisecond)
				defer cancel()

				So(a.Run(runCtx), ShouldBeNil)
				So(client.callCount(), ShouldBeGreaterThanOrEqualTo, 1)

				client.mu.Lock()
				defer client.mu.Unlock()
				So(client.slots[0], ShouldEqual, "staging")
				So(*client.calls[0].BackupRequestName, ShouldStartWith, "tick_")
			})
		})
	})
}
