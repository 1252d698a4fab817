package migration

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/tracemig/tracemig/internal/platform"
)

const (
	sourceClientMissingMessageConstant      = "source platform client not configured"
	destinationClientMissingMessageConstant = "destination platform client not configured"
)

// PlatformAPI describes the platform operations the migrator consumes. It
// is implemented by platform.Client and by test doubles.
type PlatformAPI interface {
	GetDataset(requestContext context.Context, datasetID string) (platform.Dataset, error)
	ListDatasetsByName(requestContext context.Context, datasetName string) ([]platform.Dataset, error)
	CreateDataset(requestContext context.Context, creationRequest platform.DatasetCreateRequest) (platform.Dataset, error)
	ListExamples(requestContext context.Context, datasetID string, offset int) ([]platform.Example, error)
	BulkCreateExamples(requestContext context.Context, creationRequests []platform.ExampleCreateRequest) ([]platform.Example, error)
	ListExperiments(requestContext context.Context, referenceDatasetID string, offset int) ([]platform.Experiment, error)
	CreateExperiment(requestContext context.Context, creationRequest platform.ExperimentCreateRequest) (platform.Experiment, error)
	QueryRuns(requestContext context.Context, queryRequest platform.RunQueryRequest) (platform.RunQueryResponse, error)
	BatchCreateRuns(requestContext context.Context, batchRequest platform.RunBatchRequest) error
	GetAnnotationQueue(requestContext context.Context, queueID string) (platform.AnnotationQueue, error)
	ListAnnotationQueuesByName(requestContext context.Context, queueName string) ([]platform.AnnotationQueue, error)
	CreateAnnotationQueue(requestContext context.Context, creationRequest platform.AnnotationQueueCreateRequest) (platform.AnnotationQueue, error)
	ListRules(requestContext context.Context, sessionID string) ([]platform.Rule, error)
	CreateRule(requestContext context.Context, creationRequest platform.RuleCreateRequest) (platform.Rule, error)
	PullPromptCommit(requestContext context.Context, identifier platform.PromptIdentifier) (platform.PromptCommit, error)
	PushPrompt(requestContext context.Context, identifier platform.PromptIdentifier, manifest json.RawMessage) error
}

// Dependencies describes required collaborators for the migrator.
type Dependencies struct {
	Logger      *zap.Logger
	Source      PlatformAPI
	Destination PlatformAPI
}

// Migrator sequences cross-instance migrations. It only ever reads from the
// source instance and only ever writes to the destination instance.
type Migrator struct {
	logger      *zap.Logger
	source      PlatformAPI
	destination PlatformAPI
}

var (
	errSourceClientMissing      = errors.New(sourceClientMissingMessageConstant)
	errDestinationClientMissing = errors.New(destinationClientMissingMessageConstant)
)

// NewMigrator constructs a Migrator with the provided dependencies.
func NewMigrator(dependencies Dependencies) (*Migrator, error) {
	if dependencies.Source == nil {
		return nil, errSourceClientMissing
	}
	if dependencies.Destination == nil {
		return nil, errDestinationClientMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	migrator := &Migrator{
		logger:      logger,
		source:      dependencies.Source,
		destination: dependencies.Destination,
	}

	return migrator, nil
}
