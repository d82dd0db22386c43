package xdg_test

import (
	"path/filepath"
	"testing"

	"github.com/programme-lv/pal/internal/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirsFromEnv(t *testing.T) {
	data := t.TempDir()
	conf := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", conf)

	d := xdg.NewDirs()
	assert.Equal(t, filepath.Join(data, "pal"), d.AppDataDir("pal"))
	assert.Equal(t, filepath.Join(conf, "pal"), d.AppConfigDir("pal"))

	require.NoError(t, d.EnsureDir(d.AppDataDir("pal")))
	assert.DirExists(t, filepath.Join(data, "pal"))
}

func TestRelativeEnvIgnored(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "relative/data")
	t.Setenv("XDG_CONFIG_HOME", "")

	d := xdg.NewDirs()
	assert.Equal(t, filepath.Join(home, ".local", "share"), d.DataHome())
	assert.Equal(t, filepath.Join(home, ".config"), d.ConfigHome())
}
