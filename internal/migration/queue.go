package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	annotationQueueEntityKindConstant  = "annotation queue"
	originalQueueIDFieldNameConstant   = "original_queue_id"
	queueModeFieldNameConstant         = "migration_mode"
	queueFetchErrorTemplateConstant    = "unable to fetch source annotation queue %s: %w"
	queueLookupErrorTemplateConstant   = "unable to look up destination annotation queues named %q: %w"
	queueCreateErrorTemplateConstant   = "unable to create destination annotation queue %q: %w"
	queueDatasetErrorTemplateConstant  = "unable to migrate default dataset of annotation queue %s: %w"
	queueAlreadyPresentMessageConstant = "Annotation queue already present on destination"
	queueCreatedMessageConstant        = "Annotation queue created on destination"
	logFieldQueueNameConstant          = "queue_name"
	logFieldSourceQueueIDConstant      = "source_queue_id"
	logFieldDestinationQueueIDConstant = "destination_queue_id"
)

// QueueOptions configures one annotation queue migration.
type QueueOptions struct {
	OriginalQueueID      string
	CheckIfAlreadyExists bool
	Mode                 QueueMigrationMode
}

// MigrateAnnotationQueue copies one annotation queue from the source
// instance to the destination instance and returns the destination queue
// identifier.
//
// The existence check and ambiguity contract match MigrateDataset, keyed by
// queue name. In QueueModeQueueAndDataset a non-null source default dataset
// is migrated first (examples included, experiments excluded) and the new
// queue points at the migrated copy; in QueueModeQueueOnly the destination
// queue keeps no default dataset. Session associations are always created
// empty because rule migration rebuilds them from the rule side.
func (migrator *Migrator) MigrateAnnotationQueue(executionContext context.Context, options QueueOptions) (string, error) {
	if len(options.OriginalQueueID) == 0 {
		return "", InvalidInputError{FieldName: originalQueueIDFieldNameConstant, Message: requiredValueMessageConstant}
	}

	migrationMode, modeError := ParseQueueMigrationMode(string(options.Mode))
	if modeError != nil {
		return "", InvalidInputError{FieldName: queueModeFieldNameConstant, Message: modeError.Error()}
	}

	originalQueue, fetchError := migrator.source.GetAnnotationQueue(executionContext, options.OriginalQueueID)
	if fetchError != nil {
		return "", fmt.Errorf(queueFetchErrorTemplateConstant, options.OriginalQueueID, fetchError)
	}

	if options.CheckIfAlreadyExists {
		existingQueues, lookupError := migrator.destination.ListAnnotationQueuesByName(executionContext, originalQueue.Name)
		if lookupError != nil && !platform.IsNotFound(lookupError) {
			return "", fmt.Errorf(queueLookupErrorTemplateConstant, originalQueue.Name, lookupError)
		}
		if len(existingQueues) > 1 {
			return "", AmbiguousNameError{EntityKind: annotationQueueEntityKindConstant, EntityName: originalQueue.Name}
		}
		if len(existingQueues) == 1 {
			migrator.logger.Info(
				queueAlreadyPresentMessageConstant,
				zap.String(logFieldQueueNameConstant, originalQueue.Name),
				zap.String(logFieldDestinationQueueIDConstant, existingQueues[0].ID),
			)
			return existingQueues[0].ID, nil
		}
	}

	var destinationDefaultDataset *string
	if migrationMode == QueueModeQueueAndDataset && originalQueue.DefaultDataset != nil {
		migratedDatasetID, datasetError := migrator.MigrateDataset(executionContext, DatasetOptions{
			OriginalDatasetID:    *originalQueue.DefaultDataset,
			CheckIfAlreadyExists: true,
			Mode:                 DatasetModeExamples,
		})
		if datasetError != nil {
			return "", fmt.Errorf(queueDatasetErrorTemplateConstant, options.OriginalQueueID, datasetError)
		}
		destinationDefaultDataset = &migratedDatasetID
	}

	createdQueue, createError := migrator.destination.CreateAnnotationQueue(executionContext, platform.AnnotationQueueCreateRequest{
		Name:                originalQueue.Name,
		Description:         originalQueue.Description,
		CreatedAt:           originalQueue.CreatedAt,
		UpdatedAt:           originalQueue.UpdatedAt,
		DefaultDataset:      destinationDefaultDataset,
		NumReviewersPerItem: originalQueue.NumReviewersPerItem,
		EnableReservations:  originalQueue.EnableReservations,
		ReservationMinutes:  originalQueue.ReservationMinutes,
		RubricItems:         originalQueue.RubricItems,
		RubricInstructions:  originalQueue.RubricInstructions,
		SessionIDs:          []string{},
	})
	if createError != nil {
		return "", fmt.Errorf(queueCreateErrorTemplateConstant, originalQueue.Name, createError)
	}

	migrator.logger.Info(
		queueCreatedMessageConstant,
		zap.String(logFieldQueueNameConstant, originalQueue.Name),
		zap.String(logFieldSourceQueueIDConstant, options.OriginalQueueID),
		zap.String(logFieldDestinationQueueIDConstant, createdQueue.ID),
	)

	return createdQueue.ID, nil
}
