package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/semmidev/azwebapp/internal/adapter/output"
	"github.com/semmidev/azwebapp/internal/domain"
	"github.com/semmidev/azwebapp/internal/session"
	"github.com/semmidev/azwebapp/internal/usecase"
)

type backupCreateOptions struct {
	target            domain.SiteTarget
	storageAccountURL string
	backupName        string
	databases         []string
	databasesFile     string
}

func newBackupCreateCommand(root *rootOptions) *cobra.Command {
	opts := &backupCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a backup of a web app",
		Long: `Create a backup of an Azure Web App, or one of its deployment slots.

The backup is written by App Service to the storage container behind
--storage-account-url, which must be a SAS URL with write access.`,
		Example: `  azwebapp backup create -g rg1 -n app1 --storage-account-url "https://acct.blob.core.windows.net/backups?sv=..."
  azwebapp backup create -g rg1 -n app1/staging --storage-account-url "$SAS" --backup-name nightly \
    --database "SqlAzure:orders:Server=tcp:db.database.windows.net;Database=orders;..."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackupCreate(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.target.ResourceGroup, "resource-group", "g", "", "resource group of the web app")
	flags.StringVarP(&opts.target.Name, "name", "n", "", "web app name, optionally as app/slot or app(slot)")
	flags.StringVarP(&opts.target.Slot, "slot", "s", "", "deployment slot (default production)")
	flags.StringVar(&opts.storageAccountURL, "storage-account-url", "", "SAS URL of the storage container that receives the backup")
	flags.StringVar(&opts.backupName, "backup-name", "", "name of the backup (the service picks one when omitted)")
	flags.StringArrayVar(&opts.databases, "database", nil, "database to include, as TYPE:NAME[:CONNECTION_STRING] (repeatable)")
	flags.StringVar(&opts.databasesFile, "databases-file", "", "YAML or JSON file with a list of database settings")

	return cmd
}

func runBackupCreate(cmd *cobra.Command, root *rootOptions, opts *backupCreateOptions) error {
	format, err := output.ParseFormat(root.cfg.App.Output)
	if err != nil {
		return err
	}

	target, err := session.Resolve(opts.target, root.cfg.Defaults)
	if err != nil {
		return err
	}

	databases, err := opts.databaseSettings()
	if err != nil {
		return err
	}

	params := usecase.BackupParams{
		Target:            target,
		StorageAccountURL: opts.storageAccountURL,
		Databases:         databases,
	}
	if cmd.Flags().Changed("backup-name") {
		name := opts.backupName
		params.BackupName = &name
	}

	// Report missing parameters before credentials are looked at.
	if err := params.Validate(); err != nil {
		return err
	}

	a, err := root.newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	item, err := a.CreateBackup(cmd.Context(), params)
	if err != nil {
		return err
	}

	return output.NewPrinter(cmd.OutOrStdout(), format).Print(item)
}

// databaseSettings returns nil when no database was requested.
func (o *backupCreateOptions) databaseSettings() ([]domain.DatabaseBackupSetting, error) {
	var settings []domain.DatabaseBackupSetting

	if o.databasesFile != "" {
		fromFile, err := readDatabasesFile(o.databasesFile)
		if err != nil {
			return nil, err
		}
		settings = append(settings, fromFile...)
	}

	for _, spec := range o.databases {
		setting, err := parseDatabaseSpec(spec)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, nil
}

// parseDatabaseSpec splits TYPE:NAME[:CONNECTION_STRING] on the first two
// colons only, so the connection string may contain colons.
func parseDatabaseSpec(spec string) (domain.DatabaseBackupSetting, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.DatabaseBackupSetting{}, fmt.Errorf("invalid --database %q: want TYPE:NAME[:CONNECTION_STRING]", spec)
	}

	setting := domain.DatabaseBackupSetting{
		DatabaseType: parts[0],
		Name:         parts[1],
	}
	if len(parts) == 3 {
		setting.ConnectionString = parts[2]
	}

	return setting, nil
}

func readDatabasesFile(path string) ([]domain.DatabaseBackupSetting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read databases file: %w", err)
	}

	var settings []domain.DatabaseBackupSetting
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse databases file %s: %w", path, err)
	}

	return settings, nil
}
