package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/semmidev/azwebapp/internal/domain"
)

// backupLocation fills BackupRequest.Location, which the remote resource
// schema requires but ignores.
const backupLocation = ""

type Backup struct {
	client   domain.WebsitesClient
	notifier domain.Notifier
	logger   Logger
}

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

type BackupParams struct {
	Target            domain.SiteTarget
	StorageAccountURL string
	BackupName        *string
	Databases         []domain.DatabaseBackupSetting
}

// NewBackup returns the use case that triggers a site backup. notifier may be nil.
func NewBackup(
	client domain.WebsitesClient,
	notifier domain.Notifier,
	logger Logger,
) *Backup {
	return &Backup{
		client:   client,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute validates params, sends exactly one backup request and returns the
// service's answer as is. Errors from the client are not wrapped.
func (uc *Backup) Execute(ctx context.Context, params BackupParams) (*domain.BackupItem, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	req := &domain.BackupRequest{
		Location:          backupLocation,
		StorageAccountURL: params.StorageAccountURL,
		BackupRequestName: params.BackupName,
		Databases:         params.Databases,
	}

	start := time.Now()
	target := params.Target
	uc.logger.Infof("[%s] Requesting backup (%d database(s))...", target, len(req.Databases))

	item, err := uc.client.BackupSite(ctx, target.ResourceGroup, target.Name, target.Slot, req)
	if err != nil {
		uc.logger.Errorf("[%s] Backup request failed: %v", target, err)
		return nil, err
	}

	if item != nil {
		uc.logger.Infof("[%s] Backup %d accepted in %s, status: %s",
			target, item.BackupID, time.Since(start).Round(time.Millisecond), item.Status)
	}

	uc.notify(ctx, target, item)

	return item, nil
}

func (uc *Backup) notify(ctx context.Context, target domain.SiteTarget, item *domain.BackupItem) {
	if uc.notifier == nil || item == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, target, item); err != nil {
		uc.logger.Warnf("[%s] Failed to send notification: %v", target, err)
	}
}

// Validate reports the first required parameter that is missing or blank.
func (p BackupParams) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"ResourceGroupName", p.Target.ResourceGroup},
		{"Name", p.Target.Name},
		{"StorageAccountUrl", p.StorageAccountURL},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &domain.MissingParameterError{Parameter: r.name}
		}
	}

	return nil
}
