package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "KSM_REGULATOR_SLEEP_MILLISECS_FILE", envName("sleep-millisecs-file"))
	assert.Equal(t, "KSM_REGULATOR_LINEAR", envName("linear"))
}

func TestApplyEnv_FillsUnsetFlagsOnly(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--run-file", "/from/cli"}))

	// GIVEN environment values for a set and an unset flag
	t.Setenv("KSM_REGULATOR_RUN_FILE", "/from/env")
	t.Setenv("KSM_REGULATOR_INTERVAL", "30s")
	t.Setenv("KSM_REGULATOR_VERBOSE", "2")

	require.NoError(t, applyEnv(cmd.Flags(), ""))

	// THEN the command line wins and the rest comes from the environment
	runFile, _ := cmd.Flags().GetString("run-file")
	interval, _ := cmd.Flags().GetDuration("interval")
	verbose, _ := cmd.Flags().GetCount("verbose")
	assert.Equal(t, "/from/cli", runFile)
	assert.Equal(t, 30*time.Second, interval)
	assert.Equal(t, 2, verbose)
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	cmd := newRootCmd()
	t.Setenv("KSM_REGULATOR_INTERVAL", "soon")

	err := applyEnv(cmd.Flags(), "")

	require.Error(t, err)
	assert.True(t, regulator.IsConfigError(err))
	assert.Contains(t, err.Error(), "KSM_REGULATOR_INTERVAL")
}

func TestApplyEnv_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ksm-regulator.env")
	require.NoError(t, os.WriteFile(path, []byte("KSM_REGULATOR_MEMORY_SOURCE=gopsutil\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("KSM_REGULATOR_MEMORY_SOURCE") })

	cmd := newRootCmd()
	require.NoError(t, applyEnv(cmd.Flags(), path))

	source, _ := cmd.Flags().GetString("memory-source")
	assert.Equal(t, "gopsutil", source)
}

func TestApplyEnv_MissingEnvFile(t *testing.T) {
	cmd := newRootCmd()

	err := applyEnv(cmd.Flags(), filepath.Join(t.TempDir(), "absent.env"))

	require.Error(t, err)
	assert.True(t, regulator.IsConfigError(err))
}

func TestRootCmd_LinearFromEnvironment(t *testing.T) {
	// GIVEN KSM_REGULATOR_LINEAR=true and 35% usage
	h := newHost(t, "650")
	t.Setenv("KSM_REGULATOR_LINEAR", "true")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := start(ctx, h.args("--interval", "1h"))

	// THEN the linear midpoint is written
	require.Eventually(t, func() bool { return contents(h.sleep) == "600" }, 5*time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, wait(t, done))
}
