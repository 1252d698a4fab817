package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/credentials"
	"github.com/tracemig/tracemig/internal/platform"
)

const (
	datasetCommandUseConstant               = "dataset"
	datasetCommandShortDescriptionConstant  = "Migrate a dataset between instances"
	datasetCommandLongDescriptionConstant   = "dataset copies one dataset, and optionally its examples and experiments, from the source instance to the destination instance."
	queueCommandUseConstant                 = "annotation-queue"
	queueCommandShortDescriptionConstant    = "Migrate an annotation queue between instances"
	queueCommandLongDescriptionConstant     = "annotation-queue copies one human-review queue, and optionally its default dataset, from the source instance to the destination instance."
	rulesCommandUseConstant                 = "rules"
	rulesCommandShortDescriptionConstant    = "Migrate project automation rules between instances"
	rulesCommandLongDescriptionConstant     = "rules copies every automation rule of a tracing project, cascading referenced datasets and annotation queues, from the source instance to the destination instance."
	promptCommandUseConstant                = "prompt"
	promptCommandShortDescriptionConstant   = "Migrate a prompt between instances"
	promptCommandLongDescriptionConstant    = "prompt copies one versioned prompt manifest with its model configuration from the source instance to the destination instance."
	identifierFlagNameConstant              = "id"
	datasetIdentifierFlagUsageConstant      = "Source dataset identifier"
	queueIdentifierFlagUsageConstant        = "Source annotation queue identifier"
	promptIdentifierFlagUsageConstant       = "Prompt identifier (owner/name or owner/name:commit)"
	modeFlagNameConstant                    = "mode"
	datasetModeFlagUsageConstant            = "Migration mode: examples, examples-and-experiments, or dataset-only"
	queueModeFlagUsageConstant              = "Migration mode: queue-and-dataset or queue-only"
	skipExistingCheckFlagNameConstant       = "skip-existing-check"
	skipExistingCheckFlagUsageConstant      = "Create the entity even when the destination already has one with the same name"
	fromProjectFlagNameConstant             = "from-project"
	fromProjectFlagUsageConstant            = "Source tracing project identifier"
	toProjectFlagNameConstant               = "to-project"
	toProjectFlagUsageConstant              = "Destination tracing project identifier"
	unexpectedArgumentsErrorMessageConstant = "migration commands do not accept positional arguments"
	datasetExecutionErrorTemplateConstant   = "dataset migration failed: %w"
	queueExecutionErrorTemplateConstant     = "annotation queue migration failed: %w"
	rulesExecutionErrorTemplateConstant     = "rule migration failed: %w"
	promptExecutionErrorTemplateConstant    = "prompt migration failed: %w"
	sourceKeyFieldNameConstant              = "source_api_key"
	destinationKeyFieldNameConstant         = "destination_api_key"
	datasetMigratedMessageConstant          = "Dataset migration completed"
	queueMigratedMessageConstant            = "Annotation queue migration completed"
	rulesMigratedSummaryMessageConstant     = "Rule migration completed"
	promptMigratedSummaryMessageConstant    = "Prompt migration completed"
	logFieldNewDatasetIDConstant            = "new_dataset_id"
	logFieldNewQueueIDConstant              = "new_queue_id"
	logFieldNewRuleIDsConstant              = "new_rule_ids"
	logFieldPromptConstant                  = "prompt"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current migration configuration.
type ConfigurationProvider func() CommandConfiguration

// MigrationExecutor abstracts the migrator operations for command wiring.
type MigrationExecutor interface {
	MigrateDataset(executionContext context.Context, options DatasetOptions) (string, error)
	MigrateAnnotationQueue(executionContext context.Context, options QueueOptions) (string, error)
	MigrateProjectRules(executionContext context.Context, oldProjectID string, newProjectID string) ([]string, error)
	MigratePrompt(executionContext context.Context, promptIdentifier string) error
}

// MigratorProvider constructs a migration executor from dependencies.
type MigratorProvider func(dependencies Dependencies) (MigrationExecutor, error)

// CommandBuilder assembles the migration Cobra commands.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	HTTPClient            platform.HTTPClient
	EnvironmentLookup     credentials.EnvironmentLookup
	FileReader            credentials.FileReader
	MigratorProvider      MigratorProvider
}

// BuildDatasetCommand constructs the dataset migration command.
func (builder *CommandBuilder) BuildDatasetCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           datasetCommandUseConstant,
		Short:         datasetCommandShortDescriptionConstant,
		Long:          datasetCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runDataset,
	}

	command.Flags().String(identifierFlagNameConstant, "", datasetIdentifierFlagUsageConstant)
	command.Flags().String(modeFlagNameConstant, string(DatasetModeExamples), datasetModeFlagUsageConstant)
	command.Flags().Bool(skipExistingCheckFlagNameConstant, false, skipExistingCheckFlagUsageConstant)

	return command, nil
}

// BuildAnnotationQueueCommand constructs the annotation queue migration command.
func (builder *CommandBuilder) BuildAnnotationQueueCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           queueCommandUseConstant,
		Short:         queueCommandShortDescriptionConstant,
		Long:          queueCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runAnnotationQueue,
	}

	command.Flags().String(identifierFlagNameConstant, "", queueIdentifierFlagUsageConstant)
	command.Flags().String(modeFlagNameConstant, string(QueueModeQueueAndDataset), queueModeFlagUsageConstant)
	command.Flags().Bool(skipExistingCheckFlagNameConstant, false, skipExistingCheckFlagUsageConstant)

	return command, nil
}

// BuildRulesCommand constructs the project rule migration command.
func (builder *CommandBuilder) BuildRulesCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           rulesCommandUseConstant,
		Short:         rulesCommandShortDescriptionConstant,
		Long:          rulesCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runRules,
	}

	command.Flags().String(fromProjectFlagNameConstant, "", fromProjectFlagUsageConstant)
	command.Flags().String(toProjectFlagNameConstant, "", toProjectFlagUsageConstant)

	return command, nil
}

// BuildPromptCommand constructs the prompt migration command.
func (builder *CommandBuilder) BuildPromptCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           promptCommandUseConstant,
		Short:         promptCommandShortDescriptionConstant,
		Long:          promptCommandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runPrompt,
	}

	command.Flags().String(identifierFlagNameConstant, "", promptIdentifierFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runDataset(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	datasetID, identifierError := command.Flags().GetString(identifierFlagNameConstant)
	if identifierError != nil {
		return identifierError
	}
	modeValue, modeFlagError := command.Flags().GetString(modeFlagNameConstant)
	if modeFlagError != nil {
		return modeFlagError
	}
	skipExistingCheck, skipFlagError := command.Flags().GetBool(skipExistingCheckFlagNameConstant)
	if skipFlagError != nil {
		return skipFlagError
	}

	migrationMode, modeError := ParseDatasetMigrationMode(modeValue)
	if modeError != nil {
		return InvalidInputError{FieldName: datasetModeFieldNameConstant, Message: modeError.Error()}
	}

	logger := builder.resolveLogger()
	migrator, migratorError := builder.resolveMigrator(logger)
	if migratorError != nil {
		return migratorError
	}

	newDatasetID, executionError := migrator.MigrateDataset(command.Context(), DatasetOptions{
		OriginalDatasetID:    strings.TrimSpace(datasetID),
		CheckIfAlreadyExists: !skipExistingCheck,
		Mode:                 migrationMode,
	})
	if executionError != nil {
		return fmt.Errorf(datasetExecutionErrorTemplateConstant, executionError)
	}

	logger.Info(datasetMigratedMessageConstant, zap.String(logFieldNewDatasetIDConstant, newDatasetID))
	return nil
}

func (builder *CommandBuilder) runAnnotationQueue(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	queueID, identifierError := command.Flags().GetString(identifierFlagNameConstant)
	if identifierError != nil {
		return identifierError
	}
	modeValue, modeFlagError := command.Flags().GetString(modeFlagNameConstant)
	if modeFlagError != nil {
		return modeFlagError
	}
	skipExistingCheck, skipFlagError := command.Flags().GetBool(skipExistingCheckFlagNameConstant)
	if skipFlagError != nil {
		return skipFlagError
	}

	migrationMode, modeError := ParseQueueMigrationMode(modeValue)
	if modeError != nil {
		return InvalidInputError{FieldName: queueModeFieldNameConstant, Message: modeError.Error()}
	}

	logger := builder.resolveLogger()
	migrator, migratorError := builder.resolveMigrator(logger)
	if migratorError != nil {
		return migratorError
	}

	newQueueID, executionError := migrator.MigrateAnnotationQueue(command.Context(), QueueOptions{
		OriginalQueueID:      strings.TrimSpace(queueID),
		CheckIfAlreadyExists: !skipExistingCheck,
		Mode:                 migrationMode,
	})
	if executionError != nil {
		return fmt.Errorf(queueExecutionErrorTemplateConstant, executionError)
	}

	logger.Info(queueMigratedMessageConstant, zap.String(logFieldNewQueueIDConstant, newQueueID))
	return nil
}

func (builder *CommandBuilder) runRules(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	fromProjectID, fromFlagError := command.Flags().GetString(fromProjectFlagNameConstant)
	if fromFlagError != nil {
		return fromFlagError
	}
	toProjectID, toFlagError := command.Flags().GetString(toProjectFlagNameConstant)
	if toFlagError != nil {
		return toFlagError
	}

	logger := builder.resolveLogger()
	migrator, migratorError := builder.resolveMigrator(logger)
	if migratorError != nil {
		return migratorError
	}

	newRuleIDs, executionError := migrator.MigrateProjectRules(command.Context(), strings.TrimSpace(fromProjectID), strings.TrimSpace(toProjectID))
	if executionError != nil {
		return fmt.Errorf(rulesExecutionErrorTemplateConstant, executionError)
	}

	logger.Info(rulesMigratedSummaryMessageConstant, zap.Strings(logFieldNewRuleIDsConstant, newRuleIDs))
	return nil
}

func (builder *CommandBuilder) runPrompt(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	promptIdentifier, identifierError := command.Flags().GetString(identifierFlagNameConstant)
	if identifierError != nil {
		return identifierError
	}

	logger := builder.resolveLogger()
	migrator, migratorError := builder.resolveMigrator(logger)
	if migratorError != nil {
		return migratorError
	}

	if executionError := migrator.MigratePrompt(command.Context(), strings.TrimSpace(promptIdentifier)); executionError != nil {
		return fmt.Errorf(promptExecutionErrorTemplateConstant, executionError)
	}

	logger.Info(promptMigratedSummaryMessageConstant, zap.String(logFieldPromptConstant, strings.TrimSpace(promptIdentifier)))
	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}

func (builder *CommandBuilder) resolveMigrator(logger *zap.Logger) (MigrationExecutor, error) {
	configuration := builder.resolveConfiguration()

	if environmentFileError := credentials.LoadEnvironmentFile(configuration.EnvironmentFile); environmentFileError != nil {
		return nil, environmentFileError
	}

	keyResolver := credentials.NewKeyResolver(builder.EnvironmentLookup, builder.FileReader)

	sourceAPIKey, sourceKeyError := resolveAPIKey(keyResolver, configuration.SourceAPIKeySource)
	if sourceKeyError != nil {
		return nil, InvalidInputError{FieldName: sourceKeyFieldNameConstant, Message: sourceKeyError.Error()}
	}

	destinationAPIKey, destinationKeyError := resolveAPIKey(keyResolver, configuration.DestinationAPIKeySource)
	if destinationKeyError != nil {
		return nil, InvalidInputError{FieldName: destinationKeyFieldNameConstant, Message: destinationKeyError.Error()}
	}

	sourceClient, sourceClientError := platform.NewClient(logger, builder.HTTPClient, platform.ClientConfiguration{
		BaseURL: configuration.SourceBaseURL,
		APIKey:  sourceAPIKey,
	})
	if sourceClientError != nil {
		return nil, sourceClientError
	}

	destinationClient, destinationClientError := platform.NewClient(logger, builder.HTTPClient, platform.ClientConfiguration{
		BaseURL: configuration.DestinationBaseURL,
		APIKey:  destinationAPIKey,
	})
	if destinationClientError != nil {
		return nil, destinationClientError
	}

	dependencies := Dependencies{
		Logger:      logger,
		Source:      sourceClient,
		Destination: destinationClient,
	}

	if builder.MigratorProvider != nil {
		return builder.MigratorProvider(dependencies)
	}

	return NewMigrator(dependencies)
}

func resolveAPIKey(keyResolver credentials.KeyResolver, keySourceValue string) (string, error) {
	keySource, parseError := credentials.ParseKeySource(keySourceValue)
	if parseError != nil {
		return "", parseError
	}
	return keyResolver.ResolveKey(keySource)
}
