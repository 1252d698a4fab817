package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	keySourceSeparatorConstant                 = ":"
	environmentKeySourceTypeValueConstant      = "env"
	fileKeySourceTypeValueConstant             = "file"
	literalKeySourceTypeValueConstant          = "literal"
	keySourceMissingErrorMessageConstant       = "API key source must be provided"
	environmentNameMissingErrorMessageConstant = "environment variable name must be provided"
	filePathMissingErrorMessageConstant        = "key file path must be provided"
	literalValueMissingErrorMessageConstant    = "literal key value must be provided"
	environmentKeyMissingTemplateConstant      = "environment variable %s is not set"
	fileReadErrorTemplateConstant              = "unable to read key file %s: %w"
	fileKeyEmptyErrorTemplateConstant          = "key file %s is empty"
	unsupportedKeySourceTemplateConstant       = "unsupported API key source type %q"
	environmentFileLoadErrorTemplateConstant   = "unable to load environment file %s: %w"
)

// KeySourceType enumerates the supported API key retrieval mechanisms.
type KeySourceType string

// Key source type enumerations.
const (
	KeySourceTypeEnvironment KeySourceType = KeySourceType(environmentKeySourceTypeValueConstant)
	KeySourceTypeFile        KeySourceType = KeySourceType(fileKeySourceTypeValueConstant)
	KeySourceTypeLiteral     KeySourceType = KeySourceType(literalKeySourceTypeValueConstant)
)

// KeySourceConfiguration specifies how to locate an API key.
type KeySourceConfiguration struct {
	Type      KeySourceType
	Reference string
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// KeyResolver retrieves API keys from configured sources.
type KeyResolver interface {
	ResolveKey(source KeySourceConfiguration) (string, error)
}

// NewKeyResolver creates a key resolver with optional dependency overrides.
func NewKeyResolver(environmentLookup EnvironmentLookup, fileReader FileReader) KeyResolver {
	resolvedEnvironmentLookup := environmentLookup
	if resolvedEnvironmentLookup == nil {
		resolvedEnvironmentLookup = os.LookupEnv
	}

	resolvedFileReader := fileReader
	if resolvedFileReader == nil {
		resolvedFileReader = os.ReadFile
	}

	return &keyResolver{
		environmentLookup: resolvedEnvironmentLookup,
		fileReader:        resolvedFileReader,
	}
}

// ParseKeySource interprets textual API key source declarations. A value
// without a recognized type prefix is treated as an environment variable
// name.
func ParseKeySource(sourceValue string) (KeySourceConfiguration, error) {
	trimmedValue := strings.TrimSpace(sourceValue)
	if len(trimmedValue) == 0 {
		return KeySourceConfiguration{}, errors.New(keySourceMissingErrorMessageConstant)
	}

	components := strings.SplitN(trimmedValue, keySourceSeparatorConstant, 2)
	if len(components) == 1 {
		return KeySourceConfiguration{Type: KeySourceTypeEnvironment, Reference: trimmedValue}, nil
	}

	sourceType := strings.ToLower(strings.TrimSpace(components[0]))
	reference := strings.TrimSpace(components[1])

	switch sourceType {
	case environmentKeySourceTypeValueConstant:
		if len(reference) == 0 {
			return KeySourceConfiguration{}, errors.New(environmentNameMissingErrorMessageConstant)
		}
		return KeySourceConfiguration{Type: KeySourceTypeEnvironment, Reference: reference}, nil
	case fileKeySourceTypeValueConstant:
		if len(reference) == 0 {
			return KeySourceConfiguration{}, errors.New(filePathMissingErrorMessageConstant)
		}
		return KeySourceConfiguration{Type: KeySourceTypeFile, Reference: reference}, nil
	case literalKeySourceTypeValueConstant:
		if len(reference) == 0 {
			return KeySourceConfiguration{}, errors.New(literalValueMissingErrorMessageConstant)
		}
		return KeySourceConfiguration{Type: KeySourceTypeLiteral, Reference: reference}, nil
	default:
		return KeySourceConfiguration{}, fmt.Errorf(unsupportedKeySourceTemplateConstant, sourceType)
	}
}

// LoadEnvironmentFile merges a dotenv file into the process environment.
// A missing file path is a no-op.
func LoadEnvironmentFile(environmentFilePath string) error {
	trimmedPath := strings.TrimSpace(environmentFilePath)
	if len(trimmedPath) == 0 {
		return nil
	}

	if loadError := godotenv.Load(trimmedPath); loadError != nil {
		return fmt.Errorf(environmentFileLoadErrorTemplateConstant, trimmedPath, loadError)
	}

	return nil
}

type keyResolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
}

func (resolver *keyResolver) ResolveKey(source KeySourceConfiguration) (string, error) {
	switch source.Type {
	case KeySourceTypeEnvironment:
		value, found := resolver.environmentLookup(source.Reference)
		trimmedValue := strings.TrimSpace(value)
		if !found || len(trimmedValue) == 0 {
			return "", fmt.Errorf(environmentKeyMissingTemplateConstant, source.Reference)
		}
		return trimmedValue, nil
	case KeySourceTypeFile:
		contents, readError := resolver.fileReader(source.Reference)
		if readError != nil {
			return "", fmt.Errorf(fileReadErrorTemplateConstant, source.Reference, readError)
		}
		trimmedValue := strings.TrimSpace(string(contents))
		if len(trimmedValue) == 0 {
			return "", fmt.Errorf(fileKeyEmptyErrorTemplateConstant, source.Reference)
		}
		return trimmedValue, nil
	case KeySourceTypeLiteral:
		return source.Reference, nil
	default:
		return "", fmt.Errorf(unsupportedKeySourceTemplateConstant, source.Type)
	}
}
