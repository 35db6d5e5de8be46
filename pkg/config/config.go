// Package config handles loading, validating and saving the podaac-subset settings file.
// A missing file is not an error: the defaults point at the production Earthdata endpoints.
package config

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/glorpus-work/podaac-subset/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Catalog endpoints
	CMRURL   string `yaml:"cmr_url"`
	EDLHost  string `yaml:"edl_host"`
	TokenURL string `yaml:"token_url,omitempty"` // defaults to {cmr_url}/legacy-services/rest/tokens

	// Credentials
	NetrcPath string `yaml:"netrc_path,omitempty"` // defaults to $NETRC or ~/.netrc

	// Network settings
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	UserAgent       string        `yaml:"user_agent"`

	// Download defaults
	Extension string `yaml:"extension"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // debug, info, warn, error
}

// Default configuration values.
const (
	DefaultCMRURL          = "https://cmr.earthdata.nasa.gov"
	DefaultEDLHost         = "urs.earthdata.nasa.gov"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultDownloadTimeout = 30 * time.Minute
	DefaultUserAgent       = "podaac-subset/1.0"
	DefaultExtension       = ".nc4"

	tokenPath  = "/legacy-services/rest/tokens"
	searchPath = "/search/granules.umm_json"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			CMRURL:          DefaultCMRURL,
			EDLHost:         DefaultEDLHost,
			HTTPTimeout:     DefaultHTTPTimeout,
			DownloadTimeout: DefaultDownloadTimeout,
			UserAgent:       DefaultUserAgent,
			Extension:       DefaultExtension,
			OutputFormat:    "text",
			LogLevel:        "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig writes the configuration to path atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModePrivate); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.CMRURL == "" {
		return errors.ErrEmptyHostWithKey("cmr_url")
	}
	if u, err := url.Parse(s.CMRURL); err != nil || u.Host == "" {
		return errors.ErrEmptyHostWithKey("cmr_url")
	}
	if s.EDLHost == "" {
		return errors.ErrEmptyHostWithKey("edl_host")
	}
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if s.DownloadTimeout < 0 {
		return errors.ErrDownloadTimeoutNegative
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := DefaultConfig().Settings
	s := &c.Settings
	if s.CMRURL == "" {
		s.CMRURL = d.CMRURL
	}
	if s.EDLHost == "" {
		s.EDLHost = d.EDLHost
	}
	if s.HTTPTimeout == 0 {
		s.HTTPTimeout = d.HTTPTimeout
	}
	if s.DownloadTimeout == 0 {
		s.DownloadTimeout = d.DownloadTimeout
	}
	if s.UserAgent == "" {
		s.UserAgent = d.UserAgent
	}
	if s.Extension == "" {
		s.Extension = d.Extension
	}
	if s.OutputFormat == "" {
		s.OutputFormat = d.OutputFormat
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	dir, err := fsutil.ConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetTokenURL returns the token collection endpoint.
func (c *Config) GetTokenURL() string {
	if c.Settings.TokenURL != "" {
		return strings.TrimRight(c.Settings.TokenURL, "/")
	}
	return strings.TrimRight(c.Settings.CMRURL, "/") + tokenPath
}

// GetSearchURL returns the UMM-JSON granule search endpoint.
func (c *Config) GetSearchURL() string {
	return strings.TrimRight(c.Settings.CMRURL, "/") + searchPath
}

// GetNetrcPath returns the configured netrc path or the per-user default.
func (c *Config) GetNetrcPath() (string, error) {
	if c.Settings.NetrcPath != "" {
		return c.Settings.NetrcPath, nil
	}
	return fsutil.DefaultNetrcPath()
}
