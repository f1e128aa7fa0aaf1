package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/semmidev/azwebapp/internal/adapter/database"
	"github.com/semmidev/azwebapp/internal/adapter/notify"
	"github.com/semmidev/azwebapp/internal/adapter/websites"
	"github.com/semmidev/azwebapp/internal/config"
	"github.com/semmidev/azwebapp/internal/domain"
	"github.com/semmidev/azwebapp/internal/infrastructure/logger"
	"github.com/semmidev/azwebapp/internal/infrastructure/scheduler"
	"github.com/semmidev/azwebapp/internal/session"
	"github.com/semmidev/azwebapp/internal/usecase"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	backupUC *usecase.Backup
}

type Option func(*options)

type options struct {
	client   domain.WebsitesClient
	notifier domain.Notifier
	logger   *logger.Logger
	console  io.Writer
}

// WithWebsitesClient replaces the Resource Manager client, typically with a fake.
func WithWebsitesClient(c domain.WebsitesClient) Option {
	return func(o *options) { o.client = c }
}

func WithNotifier(n domain.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConsole sets where log lines go when the logger is built from config.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		var err error
		log, err = logger.New(logger.Options{Level: cfg.App.LogLevel, File: cfg.App.LogFile, Console: o.console})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	client := o.client
	if client == nil {
		var err error
		client, err = newWebsitesClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	notifiers := initializeNotifiers(cfg, log)
	if o.notifier != nil {
		notifiers = append(notifiers, o.notifier)
	}

	var notifier domain.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	return &App{
		config:   cfg,
		logger:   log,
		backupUC: usecase.NewBackup(client, notifier, log.Named("backup")),
	}, nil
}

func newWebsitesClient(ctx context.Context, cfg *config.Config) (*websites.Client, error) {
	if err := cfg.ValidateAuth(); err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	httpClient, err := websites.NewHTTPClient(ctx, websites.Credentials{
		Authority:    cfg.Auth.Authority,
		TenantID:     cfg.Auth.TenantID,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		AccessToken:  cfg.Auth.AccessToken,
		Resource:     cfg.Azure.Endpoint,
		Timeout:      cfg.Azure.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize azure authentication: %w", err)
	}

	return websites.NewClient(httpClient, websites.Options{
		Endpoint:       cfg.Azure.Endpoint,
		SubscriptionID: cfg.Azure.SubscriptionID,
		APIVersion:     cfg.Azure.APIVersion,
	}), nil
}

func initializeNotifiers(cfg *config.Config, log *logger.Logger) notify.Multi {
	var notifiers notify.Multi

	if cfg.Notify.Telegram.Enabled {
		tg, err := notify.NewTelegram(&cfg.Notify.Telegram)
		if err != nil {
			log.Errorf("Failed to initialize Telegram: %v", err)
		} else {
			notifiers = append(notifiers, tg)
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	return notifiers
}

// CreateBackup triggers one backup. Validation and remote errors are returned unchanged.
func (a *App) CreateBackup(ctx context.Context, params usecase.BackupParams) (*domain.BackupItem, error) {
	return a.backupUC.Execute(ctx, params)
}

// Run schedules every enabled backup job and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	jobs, err := a.backupJobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return errors.New("no enabled schedules found")
	}

	sched := scheduler.New(a.logger.Named("scheduler"))
	for _, job := range jobs {
		if err := sched.AddJob(job.Name, job.Schedule, job.Executor.Execute); err != nil {
			return fmt.Errorf("failed to schedule backup for %s: %w", job.Target, err)
		}
		a.logger.Infof("✓ Scheduled backup %s for %s: %s", job.Name, job.Target, job.Schedule)
	}

	sched.Start()
	a.logger.Infof("Scheduler started with %d backup job(s)", len(jobs))

	<-ctx.Done()

	a.logger.Infof("Stopping scheduler...")
	sched.Stop()
	return nil
}

func (a *App) backupJobs() ([]domain.BackupJob, error) {
	var jobs []domain.BackupJob

	for _, s := range a.config.GetEnabledSchedules() {
		target, err := session.Resolve(domain.SiteTarget{ResourceGroup: s.ResourceGroup, Name: s.App, Slot: s.Slot}, a.config.Defaults)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", s.Name, err)
		}

		params := usecase.BackupParams{
			Target:            target,
			StorageAccountURL: s.StorageAccountURL,
			Databases:         database.Settings(s.Databases),
		}
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", s.Name, err)
		}

		jobs = append(jobs, domain.BackupJob{
			Name:     s.Name,
			Schedule: s.Schedule,
			Target:   target,
			Executor: usecase.NewScheduledBackup(a.backupUC, params, s.BackupNamePrefix, a.logger.Named("schedule")),
		})
	}

	return jobs, nil
}

func (a *App) Shutdown() {
	a.logger.Close()
}
