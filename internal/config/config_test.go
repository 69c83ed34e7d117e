package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/waypoint/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_OverridesDefaults(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(`
log_level: debug
store:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 720h
callout:
  margin: 12
  scroll_settle: 500ms
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "waypoint:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 720*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, 12.0, cfg.Callout.Margin)
	assert.Equal(t, 8.0, cfg.Callout.Offset)
	assert.Equal(t, 500*time.Millisecond, cfg.Callout.ScrollSettle)
	assert.Equal(t, 200*time.Millisecond, cfg.Callout.FadeOut)
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown backend":   "store:\n  backend: etcd\n",
		"file without path": "store:\n  backend: file\n  path: \"\"\n",
		"negative margin":   "callout:\n  margin: -1\n",
		"bad yaml":          "store: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: :9090\n"), 0o644))
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}
