package cli

import (
	"github.com/spf13/cobra"
)

func newBackupScheduleCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Trigger the backups listed under schedules in the config file",
		Long: `Run in the foreground and trigger every enabled entry of the config
file's schedules list on its cron spec (six fields, seconds first).
Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			return a.Run(cmd.Context())
		},
	}
}
