package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config to YAML")

	// Settings validation errors.
	ErrHTTPTimeoutNegative     = fmt.Errorf("http_timeout cannot be negative")
	ErrDownloadTimeoutNegative = fmt.Errorf("download_timeout cannot be negative")
	ErrEmptyHost               = fmt.Errorf("host cannot be empty")
	ErrInvalidOutputFormat     = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel         = fmt.Errorf("invalid log level")

	// Credential errors.
	ErrNetrcNotFound = fmt.Errorf("netrc file not found")
	ErrNoNetrcEntry  = fmt.Errorf("no netrc entry for host")

	// Token errors.
	ErrTokenRequest    = fmt.Errorf("token request failed")
	ErrTokenMissing    = fmt.Errorf("token response has no access_token")
	ErrMaxTokenLimit   = fmt.Errorf("maximum number of tokens reached")
	ErrNoReusableToken = fmt.Errorf("no existing token available for reuse")
	ErrTokenDelete     = fmt.Errorf("token deletion failed")

	// Search errors.
	ErrInvalidDate    = fmt.Errorf("invalid date")
	ErrEmptyShortName = fmt.Errorf("short name cannot be empty")
	ErrSearchFailed   = fmt.Errorf("granule search failed")

	// Download errors.
	ErrDownloadFailed = fmt.Errorf("download failed")
	ErrNoFileName     = fmt.Errorf("cannot derive file name from URL")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidDateWithValue reports which argument failed to parse and the expected layout.
func ErrInvalidDateWithValue(name, value, layout string) error {
	return fmt.Errorf("%w: %s (%q) does not match format %s", ErrInvalidDate, name, value, layout)
}

// ErrInvalidOutputFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}

// ErrEmptyHostWithKey names the setting that is missing its host.
func ErrEmptyHostWithKey(key string) error {
	return fmt.Errorf("%s: %w", key, ErrEmptyHost)
}
