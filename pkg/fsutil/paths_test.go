package fsutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNetrcPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(NetrcEnv, "/custom/netrc")
		p, err := DefaultNetrcPath()
		require.NoError(t, err)
		assert.Equal(t, "/custom/netrc", p)
	})

	t.Run("home directory", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("HOME is not consulted on Windows")
		}
		home := t.TempDir()
		t.Setenv(NetrcEnv, "")
		t.Setenv("HOME", home)
		p, err := DefaultNetrcPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".netrc"), p)
	})
}

func TestConfigDir(t *testing.T) {
	dir, err := ConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, AppName, filepath.Base(dir))
}
