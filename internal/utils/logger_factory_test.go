package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateLoggerSupportedCombinations(testInstance *testing.T) {
	testInstance.Parallel()

	factory := NewLoggerFactory()

	for _, logLevel := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		for _, logFormat := range []LogFormat{LogFormatStructured, LogFormatConsole} {
			logger, creationError := factory.CreateLogger(logLevel, logFormat)
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		}
	}
}

func TestCreateLoggerRejectsUnsupportedValues(testInstance *testing.T) {
	testInstance.Parallel()

	factory := NewLoggerFactory()

	_, levelError := factory.CreateLogger(LogLevel("verbose"), LogFormatStructured)
	require.Error(testInstance, levelError)

	_, formatError := factory.CreateLogger(LogLevelInfo, LogFormat("plain"))
	require.Error(testInstance, formatError)
}
