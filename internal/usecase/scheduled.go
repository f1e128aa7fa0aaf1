package usecase

import (
	"context"
	"fmt"
	"time"
)

const backupNameLayout = "20060102_150405"

// ScheduledBackup runs a fixed backup request on every tick of a schedule.
type ScheduledBackup struct {
	backup     *Backup
	params     BackupParams
	namePrefix string
	logger     Logger
	now        func() time.Time
}

func NewScheduledBackup(backup *Backup, params BackupParams, namePrefix string, logger Logger) *ScheduledBackup {
	return &ScheduledBackup{
		backup:     backup,
		params:     params,
		namePrefix: namePrefix,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *ScheduledBackup) Execute(ctx context.Context) error {
	params := uc.params
	if uc.namePrefix != "" {
		name := uc.generateName()
		params.BackupName = &name
	}

	item, err := uc.backup.Execute(ctx, params)
	if err != nil {
		return fmt.Errorf("scheduled backup for %s: %w", params.Target, err)
	}

	if item != nil {
		uc.logger.Infof("[%s] Scheduled backup triggered: id=%d blob=%s", params.Target, item.BackupID, item.BlobName)
	}
	return nil
}

func (uc *ScheduledBackup) generateName() string {
	return fmt.Sprintf("%s_%s", uc.namePrefix, uc.now().UTC().Format(backupNameLayout))
}
