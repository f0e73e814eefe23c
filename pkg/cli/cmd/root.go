package cmd

import (
	"fmt"

	"github.com/devantler-tech/mssql-init/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/mssql-init/pkg/config"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/spf13/cobra"
)

// Persistent flag names that are not configuration keys.
const (
	ConfigFlagName   = "config"
	LogLevelFlagName = "log-level"
	TimingFlagName   = "timing"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime builds the command tree on top of runtimeContainer.
// Running the root command without a subcommand provisions the database.
func NewRootCmdWithRuntime(runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mssql-init",
		Short: "Prepare a SQL Server test database",
		Long: "Wait for a SQL Server instance to accept connections, then create a test database, " +
			"a login, a database user and grant it a role. Every step is safe to repeat.",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, di.WithTimer(handleProvisionRunE)),
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	flags := cmd.PersistentFlags()
	config.AddFlags(flags)
	flags.String(ConfigFlagName, "", "path to a YAML config file (default ./"+config.FileName+".yaml when present)")
	flags.String(LogLevelFlagName, "warn", "diagnostic log level written to stderr")
	flags.Bool(TimingFlagName, false, "show timing on the final success message")

	cmd.AddCommand(NewProvisionCmd(runtimeContainer))
	cmd.AddCommand(NewWaitCmd(runtimeContainer))
	cmd.AddCommand(NewPlanCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
