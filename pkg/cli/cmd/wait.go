package cmd

import (
	"errors"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/devantler-tech/mssql-init/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewWaitCmd creates the wait command.
func NewWaitCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "wait",
		Short:        "Wait until SQL Server accepts the administrative login",
		Long:         "Apply the warm-up delay and the bounded connection retries without changing anything.",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, di.WithTimer(handleWaitRunE)),
		SilenceUsage: true,
	}
}

func handleWaitRunE(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
	sess, err := newSession(cmd, injector, tmr)
	if err != nil {
		return err
	}
	defer sess.close()

	if !sess.driverAvailable() {
		reportDriverUnavailable(sess)

		return nil
	}

	err = sess.provisioner.Wait(cmd.Context())
	if errors.Is(err, mssql.ErrDriverUnavailable) {
		reportDriverUnavailable(sess)

		return nil
	}

	return err
}
