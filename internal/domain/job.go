package domain

import "context"

type BackupJob struct {
	Name     string
	Schedule string
	Target   SiteTarget
	Executor BackupExecutor
}

type BackupExecutor interface {
	Execute(ctx context.Context) error
}
