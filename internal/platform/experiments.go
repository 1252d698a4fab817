package platform

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	sessionsPathConstant                  = "/sessions"
	runsQueryPathConstant                 = "/runs/query"
	runsBatchPathConstant                 = "/runs/batch"
	referenceDatasetQueryParameterCons = "reference_dataset"
)

// ListExperiments returns one page of experiment sessions referencing the
// dataset, starting at the supplied offset. Page size is fixed at
// DefaultPageSize.
func (client *Client) ListExperiments(requestContext context.Context, referenceDatasetID string, offset int) ([]Experiment, error) {
	queryValues := url.Values{}
	queryValues.Set(referenceDatasetQueryParameterCons, referenceDatasetID)
	queryValues.Set(offsetQueryParameterConstant, strconv.Itoa(offset))
	queryValues.Set(limitQueryParameterConstant, strconv.Itoa(DefaultPageSize))

	var experiments []Experiment
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, sessionsPathConstant, queryValues, nil, &experiments)
	return experiments, requestError
}

// CreateExperiment creates an experiment session and returns the stored resource.
func (client *Client) CreateExperiment(requestContext context.Context, creationRequest ExperimentCreateRequest) (Experiment, error) {
	var experiment Experiment
	requestError := client.sendJSONRequest(requestContext, http.MethodPost, sessionsPathConstant, nil, creationRequest, &experiment)
	return experiment, requestError
}

// QueryRuns returns one cursor page of runs matching the query filter.
func (client *Client) QueryRuns(requestContext context.Context, queryRequest RunQueryRequest) (RunQueryResponse, error) {
	var queryResponse RunQueryResponse
	requestError := client.sendJSONRequest(requestContext, http.MethodPost, runsQueryPathConstant, nil, queryRequest, &queryResponse)
	return queryResponse, requestError
}

// BatchCreateRuns submits one batch of runs to the ingestion endpoint.
func (client *Client) BatchCreateRuns(requestContext context.Context, batchRequest RunBatchRequest) error {
	return client.sendJSONRequest(requestContext, http.MethodPost, runsBatchPathConstant, nil, batchRequest, nil)
}
