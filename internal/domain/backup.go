package domain

import (
	"context"
	"time"
)

type BackupStatus string

const (
	BackupStatusInProgress         BackupStatus = "InProgress"
	BackupStatusFailed             BackupStatus = "Failed"
	BackupStatusSucceeded          BackupStatus = "Succeeded"
	BackupStatusTimedOut           BackupStatus = "TimedOut"
	BackupStatusCreated            BackupStatus = "Created"
	BackupStatusSkipped            BackupStatus = "Skipped"
	BackupStatusPartiallySucceeded BackupStatus = "PartiallySucceeded"
	BackupStatusDeleteInProgress   BackupStatus = "DeleteInProgress"
	BackupStatusDeleteFailed       BackupStatus = "DeleteFailed"
	BackupStatusDeleted            BackupStatus = "Deleted"
)

// Database types accepted by the App Service backup API. They are listed for
// reference only; settings are forwarded without checking them.
const (
	DatabaseTypeSQLAzure   = "SqlAzure"
	DatabaseTypeMySQL      = "MySql"
	DatabaseTypeLocalMySQL = "LocalMySql"
	DatabaseTypePostgreSQL = "PostgreSql"
)

// BackupRequest is the body of a "backup site" call.
type BackupRequest struct {
	// Location is required to be non-null by the remote resource schema but
	// carries no meaning for a backup request. It is always "".
	Location          string
	StorageAccountURL string
	BackupRequestName *string
	Databases         []DatabaseBackupSetting
}

type DatabaseBackupSetting struct {
	DatabaseType         string `json:"databaseType" yaml:"databaseType"`
	Name                 string `json:"name,omitempty" yaml:"name,omitempty"`
	ConnectionStringName string `json:"connectionStringName,omitempty" yaml:"connectionStringName,omitempty"`
	ConnectionString     string `json:"connectionString,omitempty" yaml:"connectionString,omitempty"`
}

// BackupItem describes a backup job as reported by the service.
type BackupItem struct {
	ID                   string                  `json:"id,omitempty" yaml:"id,omitempty"`
	Name                 string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Type                 string                  `json:"type,omitempty" yaml:"type,omitempty"`
	Location             string                  `json:"location,omitempty" yaml:"location,omitempty"`
	BackupID             int                     `json:"backupId" yaml:"backupId"`
	StorageAccountURL    string                  `json:"storageAccountUrl,omitempty" yaml:"storageAccountUrl,omitempty"`
	BlobName             string                  `json:"blobName,omitempty" yaml:"blobName,omitempty"`
	BackupName           string                  `json:"backupName,omitempty" yaml:"backupName,omitempty"`
	Status               BackupStatus            `json:"status,omitempty" yaml:"status,omitempty"`
	SizeInBytes          int64                   `json:"sizeInBytes" yaml:"sizeInBytes"`
	Created              *time.Time              `json:"created,omitempty" yaml:"created,omitempty"`
	Log                  string                  `json:"log,omitempty" yaml:"log,omitempty"`
	Databases            []DatabaseBackupSetting `json:"databases,omitempty" yaml:"databases,omitempty"`
	Scheduled            bool                    `json:"scheduled" yaml:"scheduled"`
	LastRestoreTimeStamp *time.Time              `json:"lastRestoreTimeStamp,omitempty" yaml:"lastRestoreTimeStamp,omitempty"`
	FinishedTimeStamp    *time.Time              `json:"finishedTimeStamp,omitempty" yaml:"finishedTimeStamp,omitempty"`
	CorrelationID        string                  `json:"correlationId,omitempty" yaml:"correlationId,omitempty"`
	WebsiteSizeInBytes   int64                   `json:"websiteSizeInBytes" yaml:"websiteSizeInBytes"`
}

// WebsitesClient is the remote management capability a backup is delegated to.
type WebsitesClient interface {
	BackupSite(ctx context.Context, resourceGroup, name, slot string, req *BackupRequest) (*BackupItem, error)
}

type Notifier interface {
	Notify(ctx context.Context, target SiteTarget, item *BackupItem) error
}
