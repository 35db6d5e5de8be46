package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/glorpus-work/podaac-subset/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Settings.DownloadTimeout)
	assert.Equal(t, ".nc4", cfg.Settings.Extension)
	assert.Equal(t, "urs.earthdata.nasa.gov", cfg.Settings.EDLHost)
	assert.Equal(t, "https://cmr.earthdata.nasa.gov/legacy-services/rest/tokens", cfg.GetTokenURL())
	assert.Equal(t, "https://cmr.earthdata.nasa.gov/search/granules.umm_json", cfg.GetSearchURL())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `settings:
  cmr_url: https://cmr.uat.earthdata.nasa.gov/
  log_level: debug
  http_timeout: 10s
  netrc_path: /etc/podaac/netrc`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, DefaultDownloadTimeout, cfg.Settings.DownloadTimeout)
	assert.Equal(t, DefaultEDLHost, cfg.Settings.EDLHost)
	assert.Equal(t, "https://cmr.uat.earthdata.nasa.gov/search/granules.umm_json", cfg.GetSearchURL())

	netrcPath, err := cfg.GetNetrcPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/podaac/netrc", netrcPath)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_Invalid(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: ["))
	assert.ErrorIs(t, err, errors.ErrConfigParse)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  log_level: loud\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.TokenURL = "https://example.com/tokens/"
	cfg.Settings.DownloadTimeout = 5 * time.Minute

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", loaded.Settings.LogLevel)
	assert.Equal(t, 5*time.Minute, loaded.Settings.DownloadTimeout)
	assert.Equal(t, "https://example.com/tokens", loaded.GetTokenURL())
	assert.NoFileExists(t, configPath+".tmp")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*Settings) {},
		},
		{
			name:    "negative http timeout",
			mutate:  func(s *Settings) { s.HTTPTimeout = -time.Second },
			wantErr: errors.ErrHTTPTimeoutNegative,
		},
		{
			name:    "negative download timeout",
			mutate:  func(s *Settings) { s.DownloadTimeout = -time.Second },
			wantErr: errors.ErrDownloadTimeoutNegative,
		},
		{
			name:    "cmr url without host",
			mutate:  func(s *Settings) { s.CMRURL = "not a url" },
			wantErr: errors.ErrEmptyHost,
		},
		{
			name:    "empty edl host",
			mutate:  func(s *Settings) { s.EDLHost = "" },
			wantErr: errors.ErrEmptyHost,
		},
		{
			name:    "bad output format",
			mutate:  func(s *Settings) { s.OutputFormat = "yaml" },
			wantErr: errors.ErrInvalidOutputFormat,
		},
		{
			name:    "bad log level",
			mutate:  func(s *Settings) { s.LogLevel = "trace" },
			wantErr: errors.ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg.Settings)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetGetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("download_timeout", "1h"))
	assert.Equal(t, time.Hour, cfg.Settings.DownloadTimeout)

	v, err := cfg.GetValue("download_timeout")
	require.NoError(t, err)
	assert.Equal(t, "1h0m0s", v)

	require.NoError(t, cfg.SetValue("extension", ".nc"))
	v, err = cfg.GetValue("extension")
	require.NoError(t, err)
	assert.Equal(t, ".nc", v)

	assert.Error(t, cfg.SetValue("http_timeout", "soon"))
	assert.Error(t, cfg.SetValue("log_level", "loud"))
	assert.Error(t, cfg.SetValue("cache_dir", "/tmp"))

	_, err = cfg.GetValue("cache_dir")
	assert.Error(t, err)
}

func TestToMap(t *testing.T) {
	m := DefaultConfig().ToMap()
	assert.Equal(t, "30s", m["http_timeout"])
	assert.Equal(t, "urs.earthdata.nasa.gov", m["edl_host"])
	assert.Contains(t, m, "token_url")
}
