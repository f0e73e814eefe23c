package di

import (
	"fmt"

	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/devantler-tech/mssql-init/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveConnectorFactory retrieves the database connector factory.
func ResolveConnectorFactory(injector Injector) (ConnectorFactory, error) {
	factory, err := do.Invoke[ConnectorFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve connector factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveSleeper retrieves the warm-up sleeper.
func ResolveSleeper(injector Injector) (provisioner.Sleeper, error) {
	sleep, err := do.Invoke[provisioner.Sleeper](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve sleeper dependency: %w", err)
	}

	return sleep, nil
}

// ResolveDockerClientFactory retrieves the Docker client factory.
func ResolveDockerClientFactory(injector Injector) (DockerClientFactory, error) {
	factory, err := do.Invoke[DockerClientFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve docker client factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveLogger retrieves the diagnostic logger.
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// Handler decorators.

// WithTimer decorates a handler to automatically resolve the timer dependency.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
