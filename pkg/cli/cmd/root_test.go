package cmd_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/devantler-tech/mssql-init/pkg/cli/cmd"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", root.Version)
}

func TestExecuteShowsHelpFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())

	snaps.MatchSnapshot(t, out.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")

	for _, name := range []string{"provision", "wait", "plan"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")
	flags := root.PersistentFlags()

	for _, name := range []string{
		"host", "port", "admin-user", "admin-password", "database", "login", "login-password", "role",
		"warmup", "max-attempts", "retry-delay", "connect-timeout", "driver", "container", "verify",
		cmd.ConfigFlagName, cmd.LogLevelFlagName, cmd.TimingFlagName,
	} {
		assert.NotNil(t, flags.Lookup(name), name)
	}

	timing, err := flags.GetBool(cmd.TimingFlagName)
	require.NoError(t, err)
	assert.False(t, timing)
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	root, _ := newTestRoot(t, nil)

	err := run(root, "plan", "--log-level", "loud")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-level")
}

func TestExecute_WrapsErrors(t *testing.T) {
	t.Parallel()

	root, _ := newTestRoot(t, nil)
	root.SetArgs([]string{"unknown-subcommand"})

	err := cmd.Execute(root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "command execution failed")
}
