package migration

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	datasetEntityKindConstant                = "dataset"
	originalDatasetIDFieldNameConstant       = "original_dataset_id"
	datasetModeFieldNameConstant             = "migration_mode"
	requiredValueMessageConstant             = "a value is required"
	datasetFetchErrorTemplateConstant        = "unable to fetch source dataset %s: %w"
	datasetLookupErrorTemplateConstant       = "unable to look up destination datasets named %q: %w"
	datasetCreateErrorTemplateConstant       = "unable to create destination dataset %q: %w"
	exampleListErrorTemplateConstant         = "unable to list examples of dataset %s: %w"
	exampleBulkCreateErrorTemplateConstant   = "unable to bulk-create %d examples in dataset %s: %w"
	exampleCountMismatchTemplateConstant     = "bulk create returned %d examples for %d submitted"
	datasetAlreadyPresentMessageConstant     = "Dataset already present on destination"
	datasetCreatedMessageConstant            = "Dataset created on destination"
	examplesMigratedMessageConstant          = "Dataset examples migrated"
	logFieldDatasetNameConstant              = "dataset_name"
	logFieldSourceDatasetIDConstant          = "source_dataset_id"
	logFieldDestinationDatasetIDConstant     = "destination_dataset_id"
	logFieldExampleCountConstant             = "example_count"
	datasetSplitMetadataKeyConstant          = "dataset_split"
	defaultExampleSplitConstant              = "base"
)

// DatasetOptions configures one dataset migration.
type DatasetOptions struct {
	OriginalDatasetID    string
	CheckIfAlreadyExists bool
	Mode                 DatasetMigrationMode
}

// MigrateDataset copies one dataset from the source instance to the
// destination instance and returns the destination dataset identifier.
//
// With CheckIfAlreadyExists set, a destination dataset with the same name
// short-circuits the migration and its identifier is returned unchanged;
// more than one destination dataset with that name fails with
// AmbiguousNameError. The Mode selects whether examples, examples plus
// experiments, or nothing accompanies the dataset.
func (migrator *Migrator) MigrateDataset(executionContext context.Context, options DatasetOptions) (string, error) {
	if len(options.OriginalDatasetID) == 0 {
		return "", InvalidInputError{FieldName: originalDatasetIDFieldNameConstant, Message: requiredValueMessageConstant}
	}

	migrationMode, modeError := ParseDatasetMigrationMode(string(options.Mode))
	if modeError != nil {
		return "", InvalidInputError{FieldName: datasetModeFieldNameConstant, Message: modeError.Error()}
	}

	originalDataset, fetchError := migrator.source.GetDataset(executionContext, options.OriginalDatasetID)
	if fetchError != nil {
		return "", fmt.Errorf(datasetFetchErrorTemplateConstant, options.OriginalDatasetID, fetchError)
	}

	if options.CheckIfAlreadyExists {
		existingDatasets, lookupError := migrator.destination.ListDatasetsByName(executionContext, originalDataset.Name)
		if lookupError != nil && !platform.IsNotFound(lookupError) {
			return "", fmt.Errorf(datasetLookupErrorTemplateConstant, originalDataset.Name, lookupError)
		}
		if len(existingDatasets) > 1 {
			return "", AmbiguousNameError{EntityKind: datasetEntityKindConstant, EntityName: originalDataset.Name}
		}
		if len(existingDatasets) == 1 {
			migrator.logger.Info(
				datasetAlreadyPresentMessageConstant,
				zap.String(logFieldDatasetNameConstant, originalDataset.Name),
				zap.String(logFieldDestinationDatasetIDConstant, existingDatasets[0].ID),
			)
			return existingDatasets[0].ID, nil
		}
	}

	transformations := originalDataset.Transformations
	if transformations == nil {
		transformations = []json.RawMessage{}
	}

	createdDataset, createError := migrator.destination.CreateDataset(executionContext, platform.DatasetCreateRequest{
		Name:                    originalDataset.Name,
		Description:             originalDataset.Description,
		CreatedAt:               originalDataset.CreatedAt,
		InputsSchemaDefinition:  originalDataset.InputsSchemaDefinition,
		OutputsSchemaDefinition: originalDataset.OutputsSchemaDefinition,
		ExternallyManaged:       originalDataset.ExternallyManaged,
		Transformations:         transformations,
		DataType:                originalDataset.DataType,
	})
	if createError != nil {
		return "", fmt.Errorf(datasetCreateErrorTemplateConstant, originalDataset.Name, createError)
	}

	migrator.logger.Info(
		datasetCreatedMessageConstant,
		zap.String(logFieldDatasetNameConstant, originalDataset.Name),
		zap.String(logFieldSourceDatasetIDConstant, options.OriginalDatasetID),
		zap.String(logFieldDestinationDatasetIDConstant, createdDataset.ID),
	)

	switch migrationMode {
	case DatasetModeExamples:
		if _, examplesError := migrator.MigrateDatasetExamples(executionContext, options.OriginalDatasetID, createdDataset.ID); examplesError != nil {
			return "", examplesError
		}
	case DatasetModeExamplesAndExperiments:
		exampleIdentifierMapping, examplesError := migrator.MigrateDatasetExamples(executionContext, options.OriginalDatasetID, createdDataset.ID)
		if examplesError != nil {
			return "", examplesError
		}
		if experimentsError := migrator.MigrateDatasetExperiments(executionContext, options.OriginalDatasetID, createdDataset.ID, exampleIdentifierMapping); experimentsError != nil {
			return "", experimentsError
		}
	case DatasetModeDatasetOnly:
	}

	return createdDataset.ID, nil
}

// MigrateDatasetExamples copies every example of the source dataset into the
// destination dataset in one bulk request and returns the mapping from
// source example identifiers to destination example identifiers.
//
// The mapping is built by positional correspondence between the submitted
// batch and the returned records; the destination bulk endpoint preserves
// submission order.
func (migrator *Migrator) MigrateDatasetExamples(executionContext context.Context, originalDatasetID string, newDatasetID string) (map[string]string, error) {
	originalExamples, collectError := platform.CollectAllPages(executionContext, platform.DefaultPageSize, func(pageContext context.Context, offset int) ([]platform.Example, error) {
		return migrator.source.ListExamples(pageContext, originalDatasetID, offset)
	})
	if collectError != nil {
		return nil, fmt.Errorf(exampleListErrorTemplateConstant, originalDatasetID, collectError)
	}

	creationRequests := make([]platform.ExampleCreateRequest, 0, len(originalExamples))
	for _, originalExample := range originalExamples {
		creationRequests = append(creationRequests, platform.ExampleCreateRequest{
			DatasetID: newDatasetID,
			Inputs:    originalExample.Inputs,
			Outputs:   originalExample.Outputs,
			Metadata:  originalExample.Metadata,
			CreatedAt: originalExample.CreatedAt,
			Split:     deriveExampleSplit(originalExample.Metadata),
		})
	}

	createdExamples, bulkCreateError := migrator.destination.BulkCreateExamples(executionContext, creationRequests)
	if bulkCreateError != nil {
		return nil, fmt.Errorf(exampleBulkCreateErrorTemplateConstant, len(creationRequests), newDatasetID, bulkCreateError)
	}
	if len(createdExamples) != len(originalExamples) {
		return nil, fmt.Errorf(exampleCountMismatchTemplateConstant, len(createdExamples), len(originalExamples))
	}

	exampleIdentifierMapping := make(map[string]string, len(originalExamples))
	for exampleIndex := range createdExamples {
		exampleIdentifierMapping[originalExamples[exampleIndex].ID] = createdExamples[exampleIndex].ID
	}

	migrator.logger.Info(
		examplesMigratedMessageConstant,
		zap.String(logFieldSourceDatasetIDConstant, originalDatasetID),
		zap.String(logFieldDestinationDatasetIDConstant, newDatasetID),
		zap.Int(logFieldExampleCountConstant, len(exampleIdentifierMapping)),
	)

	return exampleIdentifierMapping, nil
}

func deriveExampleSplit(exampleMetadata map[string]any) string {
	if exampleMetadata == nil {
		return defaultExampleSplitConstant
	}
	if splitValue, splitPresent := exampleMetadata[datasetSplitMetadataKeyConstant]; splitPresent {
		if splitText, isText := splitValue.(string); isText {
			return splitText
		}
	}
	return defaultExampleSplitConstant
}
