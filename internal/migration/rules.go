package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	oldProjectIDFieldNameConstant       = "old_project_id"
	newProjectIDFieldNameConstant       = "new_project_id"
	ruleListErrorTemplateConstant       = "unable to list rules of project %s: %w"
	ruleDatasetErrorTemplateConstant    = "unable to migrate target dataset of rule %q: %w"
	ruleQueueErrorTemplateConstant      = "unable to migrate target annotation queue of rule %q: %w"
	ruleCreateErrorTemplateConstant     = "unable to create destination rule %q: %w"
	ruleSkippedMessageConstant          = "Rule skipped: unexpected dataset binding"
	rulesMigratedMessageConstant        = "Project rules migrated"
	logFieldRuleNameConstant            = "rule_name"
	logFieldRuleDatasetIDConstant       = "rule_dataset_id"
	logFieldSourceProjectIDConstant     = "source_project_id"
	logFieldDestinationProjectConstant  = "destination_project_id"
	logFieldMigratedRuleCountConstant   = "migrated_rule_count"
)

// MigrateProjectRules copies every automation rule of the source project to
// the destination project and returns the created destination rule
// identifiers.
//
// Rules carrying a non-null dataset binding are skipped: the upstream
// schema never sets dataset_id on a project rule, so a populated value
// signals data this tool does not understand. Target datasets and
// annotation queues referenced by a rule are migrated first (with existing
// destination copies reused by name), and the created rule always binds to
// the destination project with a null dataset_id.
func (migrator *Migrator) MigrateProjectRules(executionContext context.Context, oldProjectID string, newProjectID string) ([]string, error) {
	if len(oldProjectID) == 0 {
		return nil, InvalidInputError{FieldName: oldProjectIDFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(newProjectID) == 0 {
		return nil, InvalidInputError{FieldName: newProjectIDFieldNameConstant, Message: requiredValueMessageConstant}
	}

	originalRules, listError := migrator.source.ListRules(executionContext, oldProjectID)
	if listError != nil {
		return nil, fmt.Errorf(ruleListErrorTemplateConstant, oldProjectID, listError)
	}

	createdRuleIdentifiers := make([]string, 0, len(originalRules))
	for _, originalRule := range originalRules {
		if originalRule.DatasetID != nil {
			migrator.logger.Warn(
				ruleSkippedMessageConstant,
				zap.String(logFieldRuleNameConstant, originalRule.DisplayName),
				zap.String(logFieldRuleDatasetIDConstant, *originalRule.DatasetID),
			)
			continue
		}

		var destinationDatasetID *string
		if originalRule.AddToDatasetID != nil {
			migratedDatasetID, datasetError := migrator.MigrateDataset(executionContext, DatasetOptions{
				OriginalDatasetID:    *originalRule.AddToDatasetID,
				CheckIfAlreadyExists: true,
				Mode:                 DatasetModeExamples,
			})
			if datasetError != nil {
				return nil, fmt.Errorf(ruleDatasetErrorTemplateConstant, originalRule.DisplayName, datasetError)
			}
			destinationDatasetID = &migratedDatasetID
		}

		var destinationQueueID *string
		if originalRule.AddToAnnotationQueueID != nil {
			migratedQueueID, queueError := migrator.MigrateAnnotationQueue(executionContext, QueueOptions{
				OriginalQueueID:      *originalRule.AddToAnnotationQueueID,
				CheckIfAlreadyExists: true,
				Mode:                 QueueModeQueueAndDataset,
			})
			if queueError != nil {
				return nil, fmt.Errorf(ruleQueueErrorTemplateConstant, originalRule.DisplayName, queueError)
			}
			destinationQueueID = &migratedQueueID
		}

		createdRule, createError := migrator.destination.CreateRule(executionContext, platform.RuleCreateRequest{
			DisplayName:                  originalRule.DisplayName,
			SessionID:                    newProjectID,
			IsEnabled:                    originalRule.IsEnabled,
			DatasetID:                    nil,
			SamplingRate:                 originalRule.SamplingRate,
			Filter:                       originalRule.Filter,
			TraceFilter:                  originalRule.TraceFilter,
			TreeFilter:                   originalRule.TreeFilter,
			AddToAnnotationQueueID:       destinationQueueID,
			AddToDatasetID:               destinationDatasetID,
			AddToDatasetPreferCorrection: originalRule.AddToDatasetPreferCorrection,
			UseCorrectionsDataset:        originalRule.UseCorrectionsDataset,
			NumFewShotExamples:           originalRule.NumFewShotExamples,
			ExtendOnly:                   originalRule.ExtendOnly,
			Transient:                    originalRule.Transient,
			BackfillFrom:                 originalRule.BackfillFrom,
			Evaluators:                   originalRule.Evaluators,
			CodeEvaluators:               originalRule.CodeEvaluators,
			Alerts:                       originalRule.Alerts,
			Webhooks:                     originalRule.Webhooks,
		})
		if createError != nil {
			return nil, fmt.Errorf(ruleCreateErrorTemplateConstant, originalRule.DisplayName, createError)
		}

		createdRuleIdentifiers = append(createdRuleIdentifiers, createdRule.ID)
	}

	migrator.logger.Info(
		rulesMigratedMessageConstant,
		zap.String(logFieldSourceProjectIDConstant, oldProjectID),
		zap.String(logFieldDestinationProjectConstant, newProjectID),
		zap.Int(logFieldMigratedRuleCountConstant, len(createdRuleIdentifiers)),
	)

	return createdRuleIdentifiers, nil
}
