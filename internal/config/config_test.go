package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/internal/config"
	"github.com/askiada/go-almanac/internal/logging"
	"github.com/askiada/go-almanac/pkg/solver"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join("testdata", "run.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		Input:           "../loader/testdata/example.txt",
		Mode:            "ranges",
		Concurrency:     4,
		Graph:           "almanac.gv",
		TolerateOverlap: true,
		Log:             config.Log{Level: "debug", Format: "json"},
	}, cfg)

	var buf bytes.Buffer
	cfg.Logger(&buf).Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLoadKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: almanac.txt\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "almanac.txt", cfg.Input)
	assert.Equal(t, string(solver.ModeBoth), cfg.Mode)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
		err     error
	}{
		"unknown key":       {content: "inputs: a\n"},
		"zero concurrency":  {content: "concurrency: 0\n", err: config.ErrInvalidConcurrency},
		"unknown mode":      {content: "mode: all\n", err: solver.ErrUnknownMode},
		"unknown log level": {content: "log:\n  level: trace\n", err: logging.ErrUnknownLevel},
		"unknown format":    {content: "log:\n  format: xml\n", err: logging.ErrUnknownFormat},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "run.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := config.Load(path)
			require.Error(t, err)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}

	_, err := config.Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}
