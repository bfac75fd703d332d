package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrocketry/sdlog/pkg/config"
)

func parseLoggerFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var lf loggerFlags
	lf.register(fs)
	require.NoError(t, fs.Parse(args))
	return lf.load(fs)
}

func TestLoggerFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: FLT\nbuffer_capacity: 32\nchip_select: 4\n"), 0644))

	cfg, err := parseLoggerFlags(t, "-config", path, "-prefix", "CLI", "-backend", "memory")
	require.NoError(t, err)

	assert.Equal(t, "CLI", cfg.Prefix)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.Equal(t, 32, cfg.BufferCapacity)
	assert.Equal(t, 4, cfg.ChipSelect)
}

func TestLoggerFlagsUnsetKeepDefaults(t *testing.T) {
	cfg, err := parseLoggerFlags(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoggerFlagsValidate(t *testing.T) {
	_, err := parseLoggerFlags(t, "-buffer", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
