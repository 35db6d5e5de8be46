package cli

import (
	"errors"
	"fmt"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/glorpus-work/podaac-subset/pkg/auth"
	"github.com/glorpus-work/podaac-subset/pkg/cmr"
	"github.com/glorpus-work/podaac-subset/pkg/config"
	pkgerrors "github.com/glorpus-work/podaac-subset/pkg/errors"
	pkghttp "github.com/glorpus-work/podaac-subset/pkg/http"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
	NetrcPath    *string
)

func stringFlag(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if f := stringFlag(OutputFormat); f != "" {
		cfg.Settings.OutputFormat = f
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if p := stringFlag(NetrcPath); p != "" {
		cfg.Settings.NetrcPath = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogging initializes the logger from flags and, when readable, the config file.
// Config errors are left for the command itself to report.
func SetupLogging() {
	level, format := "info", logger.FormatText
	if cfg, err := loadConfig(); err == nil {
		level = cfg.Settings.LogLevel
		format = logger.OutputFormat(cfg.Settings.OutputFormat)
	} else {
		if Verbose != nil && *Verbose {
			level = "debug"
		}
		if f := stringFlag(OutputFormat); f != "" {
			format = logger.OutputFormat(f)
		}
	}
	logger.InitLogger(level, format)
}

// loadCredential reads the Earthdata login from netrc. A missing file or entry is
// logged and yields an empty credential; the run continues unauthenticated.
func loadCredential(cfg *config.Config) auth.Credential {
	path, err := cfg.GetNetrcPath()
	if err != nil {
		logger.Warn("There's no .netrc file or the endpoint isn't in the netrc file", logger.Fields{"error": err.Error()})
		return auth.Credential{Host: cfg.Settings.EDLHost}
	}

	cred, info, err := auth.LoadNetrcCredential(path, cfg.Settings.EDLHost)
	if info.TooPermissive {
		logger.Warn("netrc access too permissive; run chmod 0600 on it", logger.Fields{"path": info.Path})
	}
	if err != nil {
		fields := logger.Fields{"error": err.Error(), "host": cfg.Settings.EDLHost}
		if errors.Is(err, pkgerrors.ErrNetrcNotFound) || errors.Is(err, pkgerrors.ErrNoNetrcEntry) {
			logger.Warn("There's no .netrc file or the endpoint isn't in the netrc file", fields)
		} else {
			logger.Warn("Unable to read netrc file", fields)
		}
	}
	return cred
}

// newSession builds the authenticated clients for one run.
func newSession(cfg *config.Config, cred auth.Credential) (*pkghttp.Session, error) {
	opts := pkghttp.Options{
		APITimeout:      cfg.Settings.HTTPTimeout,
		DownloadTimeout: cfg.Settings.DownloadTimeout,
		UserAgent:       cfg.Settings.UserAgent,
	}
	if !cred.Empty() {
		opts.Auth = cred.Basic()
	}
	sess, err := pkghttp.NewSession(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP session: %w", err)
	}
	return sess, nil
}

// loadTokenManager wires credentials and session into a token manager.
func loadTokenManager(cfg *config.Config) (*cmr.TokenManager, error) {
	cred := loadCredential(cfg)
	sess, err := newSession(cfg, cred)
	if err != nil {
		return nil, err
	}
	return cmr.NewTokenManager(sess.API, cfg.GetTokenURL(), cred), nil
}

func getConfigPath() string {
	if p := stringFlag(ConfigPath); p != "" {
		return p
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// If we can't get the default path, use an empty string which will cause a more descriptive error later
		// when the config file is actually being read/written
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}
