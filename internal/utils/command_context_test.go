package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandContextAccessorRoundTripsValues(testInstance *testing.T) {
	testInstance.Parallel()

	accessor := NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/tracemig/config.yaml")
	updatedContext = accessor.WithLogLevel(updatedContext, "debug")

	configurationFilePath, filePathAvailable := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, filePathAvailable)
	require.Equal(testInstance, "/etc/tracemig/config.yaml", configurationFilePath)

	logLevel, logLevelAvailable := accessor.LogLevel(updatedContext)
	require.True(testInstance, logLevelAvailable)
	require.Equal(testInstance, "debug", logLevel)
}

func TestCommandContextAccessorHandlesMissingValues(testInstance *testing.T) {
	testInstance.Parallel()

	accessor := NewCommandContextAccessor()

	_, filePathAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, filePathAvailable)

	_, logLevelAvailable := accessor.LogLevel(nil)
	require.False(testInstance, logLevelAvailable)

	updatedContext := accessor.WithLogLevel(nil, "info")
	logLevel, logLevelPresent := accessor.LogLevel(updatedContext)
	require.True(testInstance, logLevelPresent)
	require.Equal(testInstance, "info", logLevel)
}
