package migration

import (
	"fmt"
	"strings"
)

const (
	datasetModeExamplesValueConstant               = "examples"
	datasetModeExamplesAndExperimentsValueConstant = "examples-and-experiments"
	datasetModeDatasetOnlyValueConstant            = "dataset-only"
	queueModeQueueAndDatasetValueConstant          = "queue-and-dataset"
	queueModeQueueOnlyValueConstant                = "queue-only"
	datasetModeInvalidTemplateConstant             = "dataset migration mode %q is not supported"
	queueModeInvalidTemplateConstant               = "queue migration mode %q is not supported"
)

// DatasetMigrationMode selects which dependent entities accompany a dataset.
type DatasetMigrationMode string

// Dataset migration mode enumerations.
const (
	DatasetModeExamples               DatasetMigrationMode = DatasetMigrationMode(datasetModeExamplesValueConstant)
	DatasetModeExamplesAndExperiments DatasetMigrationMode = DatasetMigrationMode(datasetModeExamplesAndExperimentsValueConstant)
	DatasetModeDatasetOnly            DatasetMigrationMode = DatasetMigrationMode(datasetModeDatasetOnlyValueConstant)
)

// ParseDatasetMigrationMode normalizes textual dataset mode values. An empty
// value resolves to DatasetModeExamples.
func ParseDatasetMigrationMode(modeValue string) (DatasetMigrationMode, error) {
	trimmedValue := strings.ToLower(strings.TrimSpace(modeValue))
	if len(trimmedValue) == 0 {
		return DatasetModeExamples, nil
	}

	switch DatasetMigrationMode(trimmedValue) {
	case DatasetModeExamples:
		return DatasetModeExamples, nil
	case DatasetModeExamplesAndExperiments:
		return DatasetModeExamplesAndExperiments, nil
	case DatasetModeDatasetOnly:
		return DatasetModeDatasetOnly, nil
	default:
		return "", fmt.Errorf(datasetModeInvalidTemplateConstant, modeValue)
	}
}

// QueueMigrationMode selects whether a queue's default dataset migrates with it.
type QueueMigrationMode string

// Queue migration mode enumerations.
const (
	QueueModeQueueAndDataset QueueMigrationMode = QueueMigrationMode(queueModeQueueAndDatasetValueConstant)
	QueueModeQueueOnly       QueueMigrationMode = QueueMigrationMode(queueModeQueueOnlyValueConstant)
)

// ParseQueueMigrationMode normalizes textual queue mode values. An empty
// value resolves to QueueModeQueueAndDataset.
func ParseQueueMigrationMode(modeValue string) (QueueMigrationMode, error) {
	trimmedValue := strings.ToLower(strings.TrimSpace(modeValue))
	if len(trimmedValue) == 0 {
		return QueueModeQueueAndDataset, nil
	}

	switch QueueMigrationMode(trimmedValue) {
	case QueueModeQueueAndDataset:
		return QueueModeQueueAndDataset, nil
	case QueueModeQueueOnly:
		return QueueModeQueueOnly, nil
	default:
		return "", fmt.Errorf(queueModeInvalidTemplateConstant, modeValue)
	}
}
