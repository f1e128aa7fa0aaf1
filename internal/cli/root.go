// Package cli wires the azwebapp command tree.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semmidev/azwebapp/internal/app"
	"github.com/semmidev/azwebapp/internal/config"
)

type rootOptions struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	appOptions []app.Option
}

// NewRootCommand builds the command tree. appOptions are passed to every
// app.New call, which lets tests swap in fakes.
func NewRootCommand(appOptions ...app.Option) *cobra.Command {
	opts := &rootOptions{
		v:          config.New(),
		appOptions: appOptions,
	}

	root := &cobra.Command{
		Use:           "azwebapp",
		Short:         "Manage Azure Web App backups",
		Long:          "azwebapp triggers App Service backups through Azure Resource Manager, once or on a schedule.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.v, opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write JSON logs to this file")
	flags.StringP("output", "o", "json", "output format (json, yaml, table)")

	_ = opts.v.BindPFlag("app.log_level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("app.log_file", flags.Lookup("log-file"))
	_ = opts.v.BindPFlag("app.output", flags.Lookup("output"))

	root.AddCommand(newBackupCommand(opts))

	return root
}

func newBackupCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Web app backup operations",
	}

	cmd.AddCommand(newBackupCreateCommand(opts))
	cmd.AddCommand(newBackupScheduleCommand(opts))

	return cmd
}

func (o *rootOptions) newApp(cmd *cobra.Command) (*app.App, error) {
	appOptions := append([]app.Option{app.WithConsole(cmd.ErrOrStderr())}, o.appOptions...)
	return app.New(cmd.Context(), o.cfg, appOptions...)
}
