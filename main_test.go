package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafely_ReturnsRunnerExitCode(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely([]string{"wait"}, func(args []string) int {
		assert.Equal(t, []string{"wait"}, args)

		return 1
	}, &errOut)

	assert.Equal(t, 1, code)
	assert.Empty(t, errOut.String())
}

func TestRunSafely_RecoversPanics(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely(nil, func([]string) int { panic("boom") }, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "✗ panic recovered: boom")
}

func TestRunWithArgs_Plan(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, runWithArgs([]string{"plan", "--output", "yaml"}))
}

func TestRunWithArgs_InvalidFlag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, runWithArgs([]string{"plan", "--max-attempts", "0"}))
}
