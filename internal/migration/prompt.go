package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	promptIdentifierFieldNameConstant = "prompt_identifier"
	promptPullErrorTemplateConstant   = "unable to pull prompt commit %s: %w"
	promptPushErrorTemplateConstant   = "unable to push prompt %s: %w"
	promptMigratedMessageConstant     = "Prompt migrated"
	logFieldPromptIdentifierConstant  = "prompt_identifier"
	logFieldPromptCommitHashConstant  = "commit_hash"
)

// MigratePrompt copies one versioned prompt manifest, including its model
// configuration, from the source instance to the destination instance under
// the identical identifier. There is no existence check and no identifier
// remapping.
func (migrator *Migrator) MigratePrompt(executionContext context.Context, promptIdentifier string) error {
	parsedIdentifier, parseError := platform.ParsePromptIdentifier(promptIdentifier)
	if parseError != nil {
		return InvalidInputError{FieldName: promptIdentifierFieldNameConstant, Message: parseError.Error()}
	}

	promptCommit, pullError := migrator.source.PullPromptCommit(executionContext, parsedIdentifier)
	if pullError != nil {
		return fmt.Errorf(promptPullErrorTemplateConstant, promptIdentifier, pullError)
	}

	if pushError := migrator.destination.PushPrompt(executionContext, parsedIdentifier, promptCommit.Manifest); pushError != nil {
		return fmt.Errorf(promptPushErrorTemplateConstant, promptIdentifier, pushError)
	}

	migrator.logger.Info(
		promptMigratedMessageConstant,
		zap.String(logFieldPromptIdentifierConstant, promptIdentifier),
		zap.String(logFieldPromptCommitHashConstant, promptCommit.CommitHash),
	)

	return nil
}
