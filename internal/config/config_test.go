package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "stratum.yaml")
	require.NoError(t, os.WriteFile(p, []byte("server:\n  listen: 127.0.0.1:9090\ndata:\n  path: fleet.yaml\n  watch: true\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Listen)
	assert.Equal(t, 10, cfg.Server.ReadTimeoutSeconds, "unset fields keep defaults")
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadJSONC(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "stratum.jsonc")
	require.NoError(t, os.WriteFile(p, []byte(`{
  // local dev
  "log": {"format": "json",},
}`), 0o644))
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "stratum.yaml")
	require.NoError(t, os.WriteFile(p, []byte("server:\n  port: 80\n"), 0o644))
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.server.port")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad listen", func(c *Config) { c.Server.Listen = "8080" }, "server.listen"},
		{"zero timeout", func(c *Config) { c.Server.WriteTimeoutSeconds = 0 }, "write_timeout_seconds"},
		{"watch without path", func(c *Config) { c.Data.Watch = true }, "data.watch requires data.path"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"empty out dir", func(c *Config) { c.Render.OutDir = " " }, "render.out_dir"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
	_, err = ParseLevel("trace")
	assert.Error(t, err)
}
