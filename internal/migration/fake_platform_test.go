package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tracemig/tracemig/internal/platform"
)

// fakePlatform is an in-memory PlatformAPI double. One instance plays the
// source role, another the destination role; creations are recorded and
// immediately visible to subsequent lookups so cascading migrations can be
// asserted end to end.
type fakePlatform struct {
	datasetsByID         map[string]platform.Dataset
	datasetsByName       map[string][]platform.Dataset
	examplesByDataset    map[string][]platform.Example
	experimentsByDataset map[string][]platform.Experiment
	queuesByID           map[string]platform.AnnotationQueue
	queuesByName         map[string][]platform.AnnotationQueue
	rulesBySession       map[string][]platform.Rule
	runPages             []platform.RunQueryResponse
	promptCommitsByName  map[string]platform.PromptCommit

	exampleListCallCount    int
	observedRunQueryCursors []string
	createdDatasets         []platform.DatasetCreateRequest
	createdExamples         []platform.ExampleCreateRequest
	createdExperiments      []platform.ExperimentCreateRequest
	createdRunBatches       []platform.RunBatchRequest
	createdQueues           []platform.AnnotationQueueCreateRequest
	createdRules            []platform.RuleCreateRequest
	pushedManifests         map[string]json.RawMessage
	identifierSequence      int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		datasetsByID:         map[string]platform.Dataset{},
		datasetsByName:       map[string][]platform.Dataset{},
		examplesByDataset:    map[string][]platform.Example{},
		experimentsByDataset: map[string][]platform.Experiment{},
		queuesByID:           map[string]platform.AnnotationQueue{},
		queuesByName:         map[string][]platform.AnnotationQueue{},
		rulesBySession:       map[string][]platform.Rule{},
		promptCommitsByName:  map[string]platform.PromptCommit{},
		pushedManifests:      map[string]json.RawMessage{},
	}
}

func (fake *fakePlatform) nextIdentifier(identifierPrefix string) string {
	fake.identifierSequence++
	return fmt.Sprintf("%s-%d", identifierPrefix, fake.identifierSequence)
}

func (fake *fakePlatform) addDataset(dataset platform.Dataset) {
	fake.datasetsByID[dataset.ID] = dataset
	fake.datasetsByName[dataset.Name] = append(fake.datasetsByName[dataset.Name], dataset)
}

func (fake *fakePlatform) addQueue(queue platform.AnnotationQueue) {
	fake.queuesByID[queue.ID] = queue
	fake.queuesByName[queue.Name] = append(fake.queuesByName[queue.Name], queue)
}

func (fake *fakePlatform) GetDataset(requestContext context.Context, datasetID string) (platform.Dataset, error) {
	storedDataset, datasetPresent := fake.datasetsByID[datasetID]
	if !datasetPresent {
		return platform.Dataset{}, platform.StatusError{StatusCode: http.StatusNotFound, Detail: "Dataset not found"}
	}
	return storedDataset, nil
}

func (fake *fakePlatform) ListDatasetsByName(requestContext context.Context, datasetName string) ([]platform.Dataset, error) {
	return fake.datasetsByName[datasetName], nil
}

func (fake *fakePlatform) CreateDataset(requestContext context.Context, creationRequest platform.DatasetCreateRequest) (platform.Dataset, error) {
	fake.createdDatasets = append(fake.createdDatasets, creationRequest)
	createdDataset := platform.Dataset{
		ID:          fake.nextIdentifier("created-dataset"),
		Name:        creationRequest.Name,
		Description: creationRequest.Description,
		CreatedAt:   creationRequest.CreatedAt,
		DataType:    creationRequest.DataType,
	}
	fake.addDataset(createdDataset)
	return createdDataset, nil
}

func (fake *fakePlatform) ListExamples(requestContext context.Context, datasetID string, offset int) ([]platform.Example, error) {
	fake.exampleListCallCount++
	storedExamples := fake.examplesByDataset[datasetID]
	if offset >= len(storedExamples) {
		return nil, nil
	}

	pageEnd := offset + platform.DefaultPageSize
	if pageEnd > len(storedExamples) {
		pageEnd = len(storedExamples)
	}
	return storedExamples[offset:pageEnd], nil
}

func (fake *fakePlatform) BulkCreateExamples(requestContext context.Context, creationRequests []platform.ExampleCreateRequest) ([]platform.Example, error) {
	fake.createdExamples = append(fake.createdExamples, creationRequests...)
	createdExamples := make([]platform.Example, 0, len(creationRequests))
	for _, creationRequest := range creationRequests {
		createdExamples = append(createdExamples, platform.Example{
			ID:       fake.nextIdentifier("created-example"),
			Inputs:   creationRequest.Inputs,
			Outputs:  creationRequest.Outputs,
			Metadata: creationRequest.Metadata,
		})
	}
	return createdExamples, nil
}

func (fake *fakePlatform) ListExperiments(requestContext context.Context, referenceDatasetID string, offset int) ([]platform.Experiment, error) {
	storedExperiments := fake.experimentsByDataset[referenceDatasetID]
	if offset >= len(storedExperiments) {
		return nil, nil
	}

	pageEnd := offset + platform.DefaultPageSize
	if pageEnd > len(storedExperiments) {
		pageEnd = len(storedExperiments)
	}
	return storedExperiments[offset:pageEnd], nil
}

func (fake *fakePlatform) CreateExperiment(requestContext context.Context, creationRequest platform.ExperimentCreateRequest) (platform.Experiment, error) {
	fake.createdExperiments = append(fake.createdExperiments, creationRequest)
	return platform.Experiment{
		ID:                 fake.nextIdentifier("created-experiment"),
		Name:               creationRequest.Name,
		ReferenceDatasetID: creationRequest.ReferenceDatasetID,
	}, nil
}

func (fake *fakePlatform) QueryRuns(requestContext context.Context, queryRequest platform.RunQueryRequest) (platform.RunQueryResponse, error) {
	fake.observedRunQueryCursors = append(fake.observedRunQueryCursors, queryRequest.Cursor)
	if len(fake.runPages) == 0 {
		return platform.RunQueryResponse{}, nil
	}

	nextPage := fake.runPages[0]
	fake.runPages = fake.runPages[1:]
	return nextPage, nil
}

func (fake *fakePlatform) BatchCreateRuns(requestContext context.Context, batchRequest platform.RunBatchRequest) error {
	fake.createdRunBatches = append(fake.createdRunBatches, batchRequest)
	return nil
}

func (fake *fakePlatform) GetAnnotationQueue(requestContext context.Context, queueID string) (platform.AnnotationQueue, error) {
	storedQueue, queuePresent := fake.queuesByID[queueID]
	if !queuePresent {
		return platform.AnnotationQueue{}, platform.StatusError{StatusCode: http.StatusNotFound, Detail: "Annotation queue not found"}
	}
	return storedQueue, nil
}

func (fake *fakePlatform) ListAnnotationQueuesByName(requestContext context.Context, queueName string) ([]platform.AnnotationQueue, error) {
	return fake.queuesByName[queueName], nil
}

func (fake *fakePlatform) CreateAnnotationQueue(requestContext context.Context, creationRequest platform.AnnotationQueueCreateRequest) (platform.AnnotationQueue, error) {
	fake.createdQueues = append(fake.createdQueues, creationRequest)
	createdQueue := platform.AnnotationQueue{
		ID:             fake.nextIdentifier("created-queue"),
		Name:           creationRequest.Name,
		DefaultDataset: creationRequest.DefaultDataset,
	}
	fake.addQueue(createdQueue)
	return createdQueue, nil
}

func (fake *fakePlatform) ListRules(requestContext context.Context, sessionID string) ([]platform.Rule, error) {
	return fake.rulesBySession[sessionID], nil
}

func (fake *fakePlatform) CreateRule(requestContext context.Context, creationRequest platform.RuleCreateRequest) (platform.Rule, error) {
	fake.createdRules = append(fake.createdRules, creationRequest)
	return platform.Rule{
		ID:          fake.nextIdentifier("created-rule"),
		DisplayName: creationRequest.DisplayName,
		SessionID:   creationRequest.SessionID,
	}, nil
}

func (fake *fakePlatform) PullPromptCommit(requestContext context.Context, identifier platform.PromptIdentifier) (platform.PromptCommit, error) {
	promptKey := identifier.Owner + "/" + identifier.Name
	storedCommit, commitPresent := fake.promptCommitsByName[promptKey]
	if !commitPresent {
		return platform.PromptCommit{}, platform.StatusError{StatusCode: http.StatusNotFound, Detail: "Prompt not found"}
	}
	return storedCommit, nil
}

func (fake *fakePlatform) PushPrompt(requestContext context.Context, identifier platform.PromptIdentifier, manifest json.RawMessage) error {
	fake.pushedManifests[identifier.Owner+"/"+identifier.Name] = manifest
	return nil
}
