package cmd_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/devantler-tech/mssql-init/pkg/cli/cmd"
	"github.com/devantler-tech/mssql-init/pkg/client/docker"
	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// fastArgs keep command tests from sleeping.
var fastArgs = []string{"--warmup", "0", "--retry-delay", "0"}

type connectResult struct {
	conn mssql.Conn
	err  error
}

type fakeConnector struct {
	mu       sync.Mutex
	results  []connectResult
	fallback error
	targets  []mssql.Target
}

func (c *fakeConnector) Connect(_ context.Context, target mssql.Target) (mssql.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.targets = append(c.targets, target)

	if len(c.results) == 0 {
		return nil, c.fallback
	}

	next := c.results[0]
	c.results = c.results[1:]

	return next.conn, next.err
}

func (c *fakeConnector) connected() []mssql.Target {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]mssql.Target(nil), c.targets...)
}

// provisionedSessions returns a connector whose two sessions accept the default script.
func provisionedSessions(t *testing.T) (*fakeConnector, []sqlmock.Sqlmock) {
	t.Helper()

	steps := provisioner.Script(provisioner.DefaultOptions())
	connector := &fakeConnector{}

	var mocks []sqlmock.Sqlmock

	for _, phase := range []provisioner.Phase{provisioner.PhaseServer, provisioner.PhaseDatabase} {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)

		for _, step := range provisioner.StepsFor(steps, phase) {
			mock.ExpectExec(step.SQL).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		mock.ExpectClose()

		connector.results = append(connector.results, connectResult{conn: mssql.NewConn(db)})
		mocks = append(mocks, mock)
	}

	return connector, mocks
}

type fakeDockerClient struct {
	*docker.MockContainerInspector

	closed bool
}

func (c *fakeDockerClient) Close() error {
	c.closed = true

	return nil
}

// newTestRoot builds the command tree with test doubles for every external dependency.
// A nil connector keeps the go-mssqldb connector factory.
func newTestRoot(
	t *testing.T,
	connector provisioner.Connector,
	modules ...di.Module,
) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	logger, _ := logtest.NewNullLogger()

	overrides := []di.Module{
		di.ProvideLogger(logger),
		di.ProvideSleeper(func(context.Context, time.Duration) error { return nil }),
	}

	if connector != nil {
		overrides = append(overrides, di.ProvideConnectorFactory(
			func(string, logrus.FieldLogger) provisioner.Connector { return connector },
		))
	}

	rt := di.NewRuntime().With(append(overrides, modules...)...)

	var out bytes.Buffer

	root := cmd.NewRootCmdWithRuntime(rt, "test", "test", "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetContext(context.Background())

	return root, &out
}

func run(root *cobra.Command, args ...string) error {
	root.SetArgs(args)

	return root.Execute()
}

func newFailingSession(t *testing.T, err error) (mssql.Conn, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, mockErr := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, mockErr)

	steps := provisioner.Script(provisioner.DefaultOptions())
	mock.ExpectExec(steps[0].SQL).WillReturnError(err)
	mock.ExpectClose()

	return mssql.NewConn(db), mock
}
