package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// SetValue sets a configuration value by its YAML key.
func (c *Config) SetValue(key, value string) error {
	s := &c.Settings
	switch key {
	case "cmr_url":
		s.CMRURL = value
	case "edl_host":
		s.EDLHost = value
	case "token_url":
		s.TokenURL = value
	case "netrc_path":
		s.NetrcPath = value
	case "http_timeout", "download_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		if key == "http_timeout" {
			s.HTTPTimeout = d
		} else {
			s.DownloadTimeout = d
		}
	case "user_agent":
		s.UserAgent = value
	case "extension":
		s.Extension = value
	case "output_format":
		s.OutputFormat = value
	case "log_level":
		s.LogLevel = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return c.Validate()
}

// GetValue returns the string form of the setting stored under key.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return value, nil
}

// ToMap flattens Settings into YAML key/value strings for display.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		if d, ok := fieldValue.Interface().(time.Duration); ok {
			result[yamlKey] = d.String()
			continue
		}
		result[yamlKey] = fmt.Sprintf("%v", fieldValue.Interface())
	}

	return result
}
