package di

import (
	"github.com/devantler-tech/mssql-init/pkg/client/docker"
	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/devantler-tech/mssql-init/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// ConnectorFactory builds the database connector for a driver name.
type ConnectorFactory func(driver string, logger logrus.FieldLogger) provisioner.Connector

// DockerClient is the Docker API surface used to resolve container endpoints.
type DockerClient interface {
	docker.ContainerInspector
	Close() error
}

// DockerClientFactory opens a Docker client on demand, so runs without a container never dial the daemon.
type DockerClientFactory func() (DockerClient, error)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideConnectorFactory,
		provideSleeper,
		provideDockerClientFactory,
		ProvideLogger(logrus.StandardLogger()),
	)
}

// ProvideLogger registers logger as the diagnostic logger.
func ProvideLogger(logger logrus.FieldLogger) Module {
	return func(i Injector) error {
		do.OverrideValue(i, logger)

		return nil
	}
}

// ProvideConnectorFactory registers factory, replacing the default.
func ProvideConnectorFactory(factory ConnectorFactory) Module {
	return func(i Injector) error {
		do.OverrideValue(i, factory)

		return nil
	}
}

// ProvideSleeper registers sleep as the warm-up sleeper, replacing the default.
func ProvideSleeper(sleep provisioner.Sleeper) Module {
	return func(i Injector) error {
		do.OverrideValue(i, sleep)

		return nil
	}
}

// ProvideDockerClientFactory registers factory, replacing the default.
func ProvideDockerClientFactory(factory DockerClientFactory) Module {
	return func(i Injector) error {
		do.OverrideValue(i, factory)

		return nil
	}
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideConnectorFactory registers the go-mssqldb backed connector factory.
func provideConnectorFactory(i Injector) error {
	return ProvideConnectorFactory(func(driver string, logger logrus.FieldLogger) provisioner.Connector {
		return mssql.NewConnector(driver, logger)
	})(i)
}

// provideSleeper registers the wall-clock sleeper.
func provideSleeper(i Injector) error {
	return ProvideSleeper(provisioner.SleepContext)(i)
}

// provideDockerClientFactory registers a factory for the environment configured Docker client.
func provideDockerClientFactory(i Injector) error {
	return ProvideDockerClientFactory(func() (DockerClient, error) {
		client, err := docker.NewClient()
		if err != nil {
			return nil, err
		}

		return client, nil
	})(i)
}
