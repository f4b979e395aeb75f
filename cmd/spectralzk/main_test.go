package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Danielskry/SpectralZK/shared"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append(args, "--homedir", t.TempDir(), "--log-level", "error"))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// probe returns the config a command would run with.
func probe(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	var cfg *Config
	root := newRootCmd()
	root.AddCommand(&cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			return err
		},
	})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(append([]string{"probe"}, args...))

	err := root.Execute()
	return cfg, err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), defaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "verify")
	require.NoError(t, err)
	require.Contains(t, out, "All checks passed")
}

func TestDemoCommand(t *testing.T) {
	r := require.New(t)

	out, err := execute(t, "demo", "--seed", "42", "--size", "8", "--path-length", "12",
		"--max-period", "3", "--start-x", "1", "--start-y", "1")
	r.NoError(err)
	r.Contains(out, "Protocol initialized with seed: 42")
	r.Contains(out, "Created 8x8 tiling with 64 tiles")
	r.Contains(out, "Step 0: (1, 1)")
	r.Contains(out, "Path length: 12 steps")
	r.Contains(out, "Verification: PASSED")
}

func TestDemoCommand_EmptyPath(t *testing.T) {
	r := require.New(t)

	out, err := execute(t, "demo", "--seed", "1", "--start-x=-5", "--start-y=-5")
	r.NoError(err)
	r.Contains(out, "Generated path of 0 steps")
	r.Contains(out, "Verification: PASSED")
}

func TestTrialsCommand(t *testing.T) {
	r := require.New(t)

	out, err := execute(t, "trials", "--trials", "5", "--parallelism", "2", "--seed", "10")
	r.NoError(err)
	r.Contains(out, "Running 5 trials")
	r.Contains(out, "Success rate: 100.0% (5/5)")
}

func TestPeriodicityCommand(t *testing.T) {
	r := require.New(t)

	out, err := execute(t, "periodicity", "--seed", "123", "--size", "10", "--max-period", "5")
	r.NoError(err)
	r.Contains(out, "Tiling 10x10, seed 123")
	r.Contains(out, "Distinct labels:")
}

func TestPrintConfig(t *testing.T) {
	out, err := execute(t, "periodicity", "--size", "3", "--print-config")
	require.NoError(t, err)
	require.Contains(t, out, "ProtocolCfg")
}

func TestLoadConfig_Defaults(t *testing.T) {
	r := require.New(t)

	cfg, err := probe(t, "--homedir", t.TempDir())
	r.NoError(err)
	r.Nil(cfg.ProtocolCfg.Seed)
	r.Equal(defaultLogLevel, cfg.CLICfg.LogLevel)
	r.Equal(5, cfg.ProtocolCfg.Size)
}

func TestLoadConfig_FileAndFlags(t *testing.T) {
	r := require.New(t)

	path := writeConfig(t, `
[cli]
log-level = "debug"

[protocol]
seed = 9
size = 7
path-length = 12
`)

	cfg, err := probe(t, "--config", path, "--path-length", "3")
	r.NoError(err)
	r.Equal(path, cfg.CLICfg.ConfigFile)
	r.Equal("debug", cfg.CLICfg.LogLevel)
	r.NotNil(cfg.ProtocolCfg.Seed)
	r.EqualValues(9, *cfg.ProtocolCfg.Seed)
	r.Equal(7, cfg.ProtocolCfg.Size)
	r.Equal(3, cfg.ProtocolCfg.PathLength)

	cfg, err = probe(t, "--config", path, "--seed", "11")
	r.NoError(err)
	r.EqualValues(11, *cfg.ProtocolCfg.Seed)
	r.Equal(12, cfg.ProtocolCfg.PathLength)
}

func TestLoadConfig_HomeDir(t *testing.T) {
	r := require.New(t)

	path := writeConfig(t, "[protocol]\nsize = 6\n")
	cfg, err := probe(t, "--homedir", filepath.Dir(path))
	r.NoError(err)
	r.Equal(6, cfg.ProtocolCfg.Size)
}

func TestLoadConfig_Errors(t *testing.T) {
	r := require.New(t)

	_, err := probe(t, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	r.Error(err)

	_, err = probe(t, "--homedir", t.TempDir(), "--size", "-1")
	var paramErr shared.InvalidParamError
	r.True(errors.As(err, &paramErr))
	r.Equal("Size", paramErr.Param)
}

func TestNewLogger(t *testing.T) {
	r := require.New(t)

	logger, err := newLogger("debug")
	r.NoError(err)
	r.NotNil(logger)

	_, err = newLogger("loud")
	r.Error(err)
}

func TestRunTrials_Report(t *testing.T) {
	r := require.New(t)

	cfg, err := probe(t, "--homedir", t.TempDir(), "--trials", "3", "--seed", "0")
	r.NoError(err)

	out := new(bytes.Buffer)
	res, err := runTrials(context.Background(), out, cfg.ProtocolCfg, zaptest.NewLogger(t))
	r.NoError(err)
	r.Len(res.Results, 3)
	r.Contains(out.String(), "(3/3)")
}

func TestSelfChecks(t *testing.T) {
	logger := zaptest.NewLogger(t)
	for _, c := range selfChecks() {
		c := c
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, c.run(context.Background(), logger))
		})
	}
}

func TestDemoRecordAndReplay(t *testing.T) {
	r := require.New(t)

	record := filepath.Join(t.TempDir(), "session.json")
	out, err := execute(t, "demo", "--seed", "5", "--num-challenges", "25", "--record", record)
	r.NoError(err)
	r.Contains(out, "Session record written to "+record)

	out, err = execute(t, "replay", record)
	r.NoError(err)
	r.Contains(out, "Seed: 5, tiling: 5x5")
	r.Contains(out, "Replayed verdict: PASSED")

	_, err = execute(t, "replay", filepath.Join(t.TempDir(), "missing.json"))
	r.Error(err)
}
