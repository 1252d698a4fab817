package migration

import (
	"strings"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	configurationKeySeparatorConstant          = "."
	sourceAPIKeySourceConfigurationKeyConstant = "source_api_key_source"
	destinationAPIKeyConfigurationKeyConstant  = "destination_api_key_source"
	sourceBaseURLConfigurationKeyConstant      = "source_base_url"
	destinationBaseURLConfigurationKeyCons     = "destination_base_url"
	environmentFileConfigurationKeyConstant    = "env_file"
	defaultSourceAPIKeySourceConstant          = "env:TRACEMIG_SOURCE_API_KEY"
	defaultDestinationAPIKeySourceConstant     = "env:TRACEMIG_DESTINATION_API_KEY"
)

// CommandConfiguration stores persisted settings shared by the migration commands.
type CommandConfiguration struct {
	SourceAPIKeySource      string `mapstructure:"source_api_key_source"`
	DestinationAPIKeySource string `mapstructure:"destination_api_key_source"`
	SourceBaseURL           string `mapstructure:"source_base_url"`
	DestinationBaseURL      string `mapstructure:"destination_base_url"`
	EnvironmentFile         string `mapstructure:"env_file"`
}

// DefaultCommandConfiguration supplies baseline values for migration commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SourceAPIKeySource:      defaultSourceAPIKeySourceConstant,
		DestinationAPIKeySource: defaultDestinationAPIKeySourceConstant,
		SourceBaseURL:           platform.DefaultBaseURL,
		DestinationBaseURL:      platform.DefaultBaseURL,
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed beneath the prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := strings.TrimSpace(configurationKeyPrefix)
	if len(prefix) > 0 {
		prefix = prefix + configurationKeySeparatorConstant
	}

	return map[string]any{
		prefix + sourceAPIKeySourceConfigurationKeyConstant: defaults.SourceAPIKeySource,
		prefix + destinationAPIKeyConfigurationKeyConstant:  defaults.DestinationAPIKeySource,
		prefix + sourceBaseURLConfigurationKeyConstant:      defaults.SourceBaseURL,
		prefix + destinationBaseURLConfigurationKeyCons:     defaults.DestinationBaseURL,
		prefix + environmentFileConfigurationKeyConstant:    "",
	}
}

// Sanitize trims configured values and restores defaults for empty entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.SourceAPIKeySource = fallbackValue(configuration.SourceAPIKeySource, defaults.SourceAPIKeySource)
	sanitized.DestinationAPIKeySource = fallbackValue(configuration.DestinationAPIKeySource, defaults.DestinationAPIKeySource)
	sanitized.SourceBaseURL = fallbackValue(configuration.SourceBaseURL, defaults.SourceBaseURL)
	sanitized.DestinationBaseURL = fallbackValue(configuration.DestinationBaseURL, defaults.DestinationBaseURL)
	sanitized.EnvironmentFile = strings.TrimSpace(configuration.EnvironmentFile)

	return sanitized
}

func fallbackValue(configuredValue string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(configuredValue)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
