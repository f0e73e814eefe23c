package cmd

import (
	"errors"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/devantler-tech/mssql-init/pkg/utils/notify"
	"github.com/devantler-tech/mssql-init/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewProvisionCmd creates the provision command.
func NewProvisionCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Wait for SQL Server and create the test database, login, user and role grant",
		Long: "Wait for SQL Server to accept the administrative login, then create the test database, " +
			"the login, the database user and grant the role. Objects that already exist are kept.",
		Args:         cobra.NoArgs,
		RunE:         di.RunEWithRuntime(runtimeContainer, di.WithTimer(handleProvisionRunE)),
		SilenceUsage: true,
	}
}

func handleProvisionRunE(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
	sess, err := newSession(cmd, injector, tmr)
	if err != nil {
		return err
	}
	defer sess.close()

	if !sess.driverAvailable() {
		reportDriverUnavailable(sess)

		return nil
	}

	err = sess.provisioner.Run(cmd.Context())

	var stepErr *provisioner.StepError

	switch {
	case err == nil:
		return nil
	case errors.Is(err, mssql.ErrDriverUnavailable):
		reportDriverUnavailable(sess)

		return nil
	case errors.Is(err, provisioner.ErrConnectionExhausted):
		notify.Errorf(sess.out, "failed to connect to SQL Server")
		sess.provisioner.ReportFallback()
	case errors.As(err, &stepErr):
		notify.Errorf(sess.out, "initialization failed at %s step", stepErr.Step)
		sess.provisioner.ReportFallback()
	}

	return err
}
