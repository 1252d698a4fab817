package cli

import (
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tracemig/tracemig/internal/platform"
)

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	testInstance.Parallel()

	embeddedContent, embeddedType := EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", embeddedType)

	var rawConfiguration map[string]any
	require.NoError(testInstance, yaml.Unmarshal(embeddedContent, &rawConfiguration))

	var decodedConfiguration ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(rawConfiguration, &decodedConfiguration))

	require.Equal(testInstance, "info", decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", decodedConfiguration.Common.LogFormat)
	require.Equal(testInstance, "env:TRACEMIG_SOURCE_API_KEY", decodedConfiguration.Tools.Migration.SourceAPIKeySource)
	require.Equal(testInstance, "env:TRACEMIG_DESTINATION_API_KEY", decodedConfiguration.Tools.Migration.DestinationAPIKeySource)
	require.Equal(testInstance, platform.DefaultBaseURL, decodedConfiguration.Tools.Migration.SourceBaseURL)
	require.Equal(testInstance, platform.DefaultBaseURL, decodedConfiguration.Tools.Migration.DestinationBaseURL)
	require.Empty(testInstance, decodedConfiguration.Tools.Migration.EnvironmentFile)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	testInstance.Parallel()

	firstCopy, _ := EmbeddedDefaultConfiguration()
	firstCopy[0] = '#'

	secondCopy, _ := EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, byte('#'), secondCopy[0])
}

func TestNewApplicationRegistersMigrationCommands(testInstance *testing.T) {
	testInstance.Parallel()

	application := NewApplication()
	require.NotNil(testInstance, application.rootCommand)

	registeredCommandNames := make(map[string]struct{})
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = struct{}{}
	}

	require.Contains(testInstance, registeredCommandNames, "dataset")
	require.Contains(testInstance, registeredCommandNames, "annotation-queue")
	require.Contains(testInstance, registeredCommandNames, "rules")
	require.Contains(testInstance, registeredCommandNames, "prompt")
}

func TestInitializeConfigurationAppliesDefaults(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, platform.DefaultBaseURL, application.configuration.Tools.Migration.SourceBaseURL)
	require.NotNil(testInstance, application.logger)
}

func TestInitializeConfigurationHonorsLogLevelFlag(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set("log-level", "debug"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
}
