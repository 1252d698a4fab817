package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	experimentListErrorTemplateConstant     = "unable to list experiments of dataset %s: %w"
	experimentCreateErrorTemplateConstant   = "unable to create destination experiment %q: %w"
	runQueryErrorTemplateConstant           = "unable to query runs of %d source experiments: %w"
	runBatchCreateErrorTemplateConstant     = "unable to batch-create %d runs: %w"
	unknownRunSessionTemplateConstant       = "run %s references unknown source experiment %s"
	experimentsMigratedMessageConstant      = "Dataset experiments migrated"
	runsPageMigratedMessageConstant         = "Run page migrated"
	defaultDatasetCarriedMessageConstant    = "Experiment default dataset carried over without remapping"
	logFieldExperimentCountConstant         = "experiment_count"
	logFieldRunCountConstant                = "run_count"
	logFieldSourceExperimentIDConstant      = "source_experiment_id"
	logFieldDestinationExperimentIDConstant = "destination_experiment_id"
	logFieldDefaultDatasetIDConstant        = "default_dataset_id"
)

// MigrateDatasetExperiments copies every experiment session referencing the
// source dataset, then streams each session's runs into the destination
// instance page by page.
//
// Every created experiment points its reference dataset at newDatasetID.
// The default dataset identifier is copied from the source unchanged; it
// may therefore still reference a source-instance dataset. Run identity
// fields (id, trace_id, dotted_order, parent_run_id) are preserved verbatim
// so the trace tree topology is intact on the destination; session and
// reference-example identifiers are rewritten through the freshly built
// mappings. A failed page write aborts without retrying or rolling back
// previously written pages.
func (migrator *Migrator) MigrateDatasetExperiments(executionContext context.Context, originalDatasetID string, newDatasetID string, exampleIdentifierMapping map[string]string) error {
	originalExperiments, collectError := platform.CollectAllPages(executionContext, platform.DefaultPageSize, func(pageContext context.Context, offset int) ([]platform.Experiment, error) {
		return migrator.source.ListExperiments(pageContext, originalDatasetID, offset)
	})
	if collectError != nil {
		return fmt.Errorf(experimentListErrorTemplateConstant, originalDatasetID, collectError)
	}

	experimentIdentifierMapping := make(map[string]string, len(originalExperiments))
	sourceExperimentIdentifiers := make([]string, 0, len(originalExperiments))
	for _, originalExperiment := range originalExperiments {
		if originalExperiment.DefaultDatasetID != nil {
			migrator.logger.Debug(
				defaultDatasetCarriedMessageConstant,
				zap.String(logFieldSourceExperimentIDConstant, originalExperiment.ID),
				zap.String(logFieldDefaultDatasetIDConstant, *originalExperiment.DefaultDatasetID),
			)
		}

		createdExperiment, createError := migrator.destination.CreateExperiment(executionContext, platform.ExperimentCreateRequest{
			Name:               originalExperiment.Name,
			Description:        originalExperiment.Description,
			ReferenceDatasetID: newDatasetID,
			DefaultDatasetID:   originalExperiment.DefaultDatasetID,
			StartTime:          originalExperiment.StartTime,
			EndTime:            originalExperiment.EndTime,
			Extra:              originalExperiment.Extra,
			TraceTier:          originalExperiment.TraceTier,
		})
		if createError != nil {
			return fmt.Errorf(experimentCreateErrorTemplateConstant, originalExperiment.Name, createError)
		}

		experimentIdentifierMapping[originalExperiment.ID] = createdExperiment.ID
		sourceExperimentIdentifiers = append(sourceExperimentIdentifiers, originalExperiment.ID)
	}

	if len(sourceExperimentIdentifiers) == 0 {
		migrator.logger.Info(
			experimentsMigratedMessageConstant,
			zap.String(logFieldSourceDatasetIDConstant, originalDatasetID),
			zap.Int(logFieldExperimentCountConstant, 0),
		)
		return nil
	}

	queryRequest := platform.RunQueryRequest{
		SessionIDs:     sourceExperimentIdentifiers,
		SkipPagination: false,
	}
	migratedRunCount := 0
	for {
		queryResponse, queryError := migrator.source.QueryRuns(executionContext, queryRequest)
		if queryError != nil {
			return fmt.Errorf(runQueryErrorTemplateConstant, len(sourceExperimentIdentifiers), queryError)
		}

		rewrittenRuns, rewriteError := rewriteRunBatch(queryResponse.Runs, experimentIdentifierMapping, exampleIdentifierMapping)
		if rewriteError != nil {
			return rewriteError
		}

		if batchError := migrator.destination.BatchCreateRuns(executionContext, platform.RunBatchRequest{Post: rewrittenRuns}); batchError != nil {
			return fmt.Errorf(runBatchCreateErrorTemplateConstant, len(rewrittenRuns), batchError)
		}

		migratedRunCount += len(rewrittenRuns)
		migrator.logger.Debug(
			runsPageMigratedMessageConstant,
			zap.Int(logFieldRunCountConstant, len(rewrittenRuns)),
		)

		if queryResponse.Cursors.Next == nil {
			break
		}
		queryRequest.Cursor = *queryResponse.Cursors.Next
	}

	migrator.logger.Info(
		experimentsMigratedMessageConstant,
		zap.String(logFieldSourceDatasetIDConstant, originalDatasetID),
		zap.Int(logFieldExperimentCountConstant, len(experimentIdentifierMapping)),
		zap.Int(logFieldRunCountConstant, migratedRunCount),
	)

	return nil
}

// rewriteRunBatch remaps session and reference-example identifiers to their
// destination counterparts. A missing reference example maps to null; a
// missing session is an error because every queried run belongs to one of
// the experiments migrated above.
func rewriteRunBatch(originalRuns []platform.Run, experimentIdentifierMapping map[string]string, exampleIdentifierMapping map[string]string) ([]platform.RunCreateRequest, error) {
	rewrittenRuns := make([]platform.RunCreateRequest, 0, len(originalRuns))
	for _, originalRun := range originalRuns {
		destinationSessionID, sessionKnown := experimentIdentifierMapping[originalRun.SessionID]
		if !sessionKnown {
			return nil, fmt.Errorf(unknownRunSessionTemplateConstant, originalRun.ID, originalRun.SessionID)
		}

		var destinationExampleID *string
		if originalRun.ReferenceExampleID != nil {
			if mappedExampleID, exampleKnown := exampleIdentifierMapping[*originalRun.ReferenceExampleID]; exampleKnown {
				destinationExampleID = &mappedExampleID
			}
		}

		rewrittenRuns = append(rewrittenRuns, platform.RunCreateRequest{
			ID:                 originalRun.ID,
			Name:               originalRun.Name,
			RunType:            originalRun.RunType,
			StartTime:          originalRun.StartTime,
			EndTime:            originalRun.EndTime,
			Inputs:             originalRun.Inputs,
			Outputs:            originalRun.Outputs,
			Extra:              originalRun.Extra,
			Error:              originalRun.Error,
			Serialized:         normalizeRawObject(originalRun.Serialized),
			ParentRunID:        originalRun.ParentRunID,
			Events:             normalizeRawList(originalRun.Events),
			Tags:               normalizeTagList(originalRun.Tags),
			TraceID:            originalRun.TraceID,
			DottedOrder:        originalRun.DottedOrder,
			SessionID:          destinationSessionID,
			SessionName:        originalRun.SessionName,
			ReferenceExampleID: destinationExampleID,
			InputAttachments:   normalizeRawObject(originalRun.InputAttachments),
			OutputAttachments:  normalizeRawObject(originalRun.OutputAttachments),
		})
	}

	return rewrittenRuns, nil
}
