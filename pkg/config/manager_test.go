package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/mssql-init/pkg/config"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *config.Manager {
	t.Helper()

	logger, _ := logtest.NewNullLogger()
	manager := config.NewManager(logger)
	manager.SearchPaths = []string{t.TempDir()}

	return manager
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mssql-init.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.PasswordEnv, "")
	require.NoError(t, os.Unsetenv(config.PasswordEnv))

	cfg, err := newManager(t).Load("")

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "TestPass123!", cfg.AdminPassword)
	assert.Equal(t, 20*time.Second, cfg.Warmup)
	assert.Equal(t, 30, cfg.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.RetryDelay)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
}

func TestLoad_PasswordFromContainerVariable(t *testing.T) {
	t.Setenv(config.PasswordEnv, "FromContainer1!")

	cfg, err := newManager(t).Load("")

	require.NoError(t, err)
	assert.Equal(t, "FromContainer1!", cfg.AdminPassword)
}

func TestLoad_PrefixedPasswordWins(t *testing.T) {
	t.Setenv(config.PasswordEnv, "FromContainer1!")
	t.Setenv("MSSQL_INIT_ADMIN_PASSWORD", "Prefixed1!")

	cfg, err := newManager(t).Load("")

	require.NoError(t, err)
	assert.Equal(t, "Prefixed1!", cfg.AdminPassword)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("ORDERS_PASSWORD", "Orders#42")

	path := writeConfig(t, `
host: db.internal
port: 14330
database: orders
login: orders_app
login-password: ${ORDERS_PASSWORD}
role: ${ORDERS_ROLE:-db_datareader}
warmup: 0
max-attempts: 10
retry-delay: 1.5
connect-timeout: 2s
verify: true
`)

	manager := newManager(t)
	cfg, err := manager.Load(path)

	require.NoError(t, err)
	assert.Equal(t, path, manager.ConfigFileUsed())
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 14330, cfg.Port)
	assert.Equal(t, "orders", cfg.Database)
	assert.Equal(t, "orders_app", cfg.Login)
	assert.Equal(t, "Orders#42", cfg.LoginPassword)
	assert.Equal(t, "db_datareader", cfg.Role)
	assert.Equal(t, time.Duration(0), cfg.Warmup)
	assert.Equal(t, 10, cfg.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
	assert.True(t, cfg.Verify)
	assert.Equal(t, "SA", cfg.AdminUser)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("MSSQL_INIT_DATABASE", "from_env")
	t.Setenv("MSSQL_INIT_LOGIN", "env_login")
	t.Setenv("MSSQL_INIT_WARMUP", "7")

	path := writeConfig(t, "database: from_file\nlogin: file_login\nrole: file_role\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.AddFlags(flags)
	require.NoError(t, flags.Parse([]string{"--database", "from_flag"}))

	manager := newManager(t)
	require.NoError(t, manager.BindFlags(flags))

	cfg, err := manager.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.Database, "flag beats env and file")
	assert.Equal(t, "env_login", cfg.Login, "env beats file")
	assert.Equal(t, "file_role", cfg.Role, "file beats default")
	assert.Equal(t, 7*time.Second, cfg.Warmup, "plain seconds from env")
	assert.Equal(t, 30, cfg.MaxAttempts, "unchanged flag keeps default")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := newManager(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "port: 70000\nmax-attempts: 0\nretry-delay: -1s\nlogin: \"\"\n")

	_, err := newManager(t).Load(path)

	require.ErrorIs(t, err, config.ErrInvalidPort)
	require.ErrorIs(t, err, config.ErrInvalidMaxAttempts)
	require.ErrorIs(t, err, config.ErrNegativeDuration)
	require.ErrorIs(t, err, config.ErrEmptyValue)
	assert.Contains(t, err.Error(), "login")
	assert.Contains(t, err.Error(), "retry-delay")
}

func TestLoad_CopiesIntoOptions(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "database: orders\nmax-attempts: 4\nadmin-user: provisioner\n")

	cfg, err := newManager(t).Load(path)
	require.NoError(t, err)

	opts, err := provisioner.NewOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, "orders", opts.Database)
	assert.Equal(t, 4, opts.MaxAttempts)
	assert.Equal(t, "provisioner", opts.AdminUser)
	assert.Equal(t, 20*time.Second, opts.Warmup)
	assert.True(t, opts.TrustServerCertificate)
}
