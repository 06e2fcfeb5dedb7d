package main

import (
	"os"
	"path"
	"testing"

	c "github.com/d0ngw/hitcounter/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	defer c.SetLogLevel(c.Info)
	t.Setenv(envPort, "")
	t.Setenv(envLogLevel, "")

	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", conf.HTTP.Addr())
	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, []string{"*"}, conf.HTTP.CORSOrigins)
	assert.True(t, *conf.HTTP.AccessLog)
	assert.True(t, *conf.HTTP.Metrics)
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	defer c.SetLogLevel(c.Info)
	confPath := path.Join(t.TempDir(), "hitcounter.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte(`
log:
  level: error
  no_caller: true
http:
  host: 127.0.0.1
  port: 9000
  metrics: false
  cors_origins: ["http://example.com"]
`), 0644))

	t.Setenv(envPort, "")
	t.Setenv(envLogLevel, "")
	conf, err := LoadConfig(confPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", conf.HTTP.Addr())
	assert.Equal(t, "error", conf.Log.Level)
	assert.False(t, *conf.HTTP.Metrics)
	assert.Equal(t, []string{"http://example.com"}, conf.HTTP.CORSOrigins)
	assert.False(t, c.InfoEnabled())

	t.Setenv(envPort, "8123")
	t.Setenv(envLogLevel, "debug")
	conf, err = LoadConfig(confPath)
	require.NoError(t, err)
	assert.Equal(t, 8123, conf.HTTP.Port)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.True(t, c.DebugEnabled())
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv(envPort, "70000")
	_, err := LoadConfig("")
	assert.Error(t, err)

	t.Setenv(envPort, "")
	_, err = LoadConfig(path.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBannerLine(t *testing.T) {
	line := bannerLine("  S E R V I C E   R U N N I N G  ", 70)
	assert.Len(t, line, 70)
	assert.Equal(t, "**  S E R V I C E   R U N N I N G  ", line[:35])
	assert.Equal(t, 35, len(line)-len(line[:35]))
}
