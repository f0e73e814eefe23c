package di_test

import (
	"context"
	"testing"
	"time"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime_ProvidesDefaults(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		tmr, err := di.ResolveTimer(injector)
		require.NoError(t, err)
		assert.NotNil(t, tmr)

		factory, err := di.ResolveConnectorFactory(injector)
		require.NoError(t, err)

		connector := factory("", nil)
		require.IsType(t, &mssql.DriverConnector{}, connector)

		sleep, err := di.ResolveSleeper(injector)
		require.NoError(t, err)
		require.NoError(t, sleep(context.Background(), 0))

		dockerFactory, err := di.ResolveDockerClientFactory(injector)
		require.NoError(t, err)
		assert.NotNil(t, dockerFactory)

		logger, err := di.ResolveLogger(injector)
		require.NoError(t, err)
		assert.Same(t, logrus.StandardLogger(), logger)

		return nil
	})

	require.NoError(t, err)
}

func TestProvideModules_OverrideDefaults(t *testing.T) {
	t.Parallel()

	logger, _ := logtest.NewNullLogger()

	var slept time.Duration

	sleeper := func(_ context.Context, d time.Duration) error {
		slept = d

		return nil
	}

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		resolvedLogger, err := di.ResolveLogger(injector)
		require.NoError(t, err)
		assert.Same(t, logger, resolvedLogger)

		sleep, err := di.ResolveSleeper(injector)
		require.NoError(t, err)
		require.NoError(t, sleep(context.Background(), time.Minute))

		return nil
	}, di.ProvideLogger(logger), di.ProvideSleeper(provisioner.Sleeper(sleeper)))

	require.NoError(t, err)
	assert.Equal(t, time.Minute, slept)
}
