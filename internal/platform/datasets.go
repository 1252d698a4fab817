package platform

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	datasetsPathConstant         = "/datasets"
	datasetPathTemplateConstant  = "/datasets/%s"
	examplesPathConstant         = "/examples"
	examplesBulkPathConstant     = "/examples/bulk"
	nameQueryParameterConstant   = "name"
	datasetQueryParameterCons    = "dataset"
	offsetQueryParameterConstant = "offset"
	limitQueryParameterConstant  = "limit"
)

// GetDataset fetches one dataset by identifier.
func (client *Client) GetDataset(requestContext context.Context, datasetID string) (Dataset, error) {
	var dataset Dataset
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, joinPath(datasetPathTemplateConstant, datasetID), nil, nil, &dataset)
	return dataset, requestError
}

// ListDatasetsByName returns datasets whose name exactly matches the argument.
func (client *Client) ListDatasetsByName(requestContext context.Context, datasetName string) ([]Dataset, error) {
	queryValues := url.Values{}
	queryValues.Set(nameQueryParameterConstant, datasetName)

	var datasets []Dataset
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, datasetsPathConstant, queryValues, nil, &datasets)
	return datasets, requestError
}

// CreateDataset creates a dataset and returns the stored resource.
func (client *Client) CreateDataset(requestContext context.Context, creationRequest DatasetCreateRequest) (Dataset, error) {
	var dataset Dataset
	requestError := client.sendJSONRequest(requestContext, http.MethodPost, datasetsPathConstant, nil, creationRequest, &dataset)
	return dataset, requestError
}

// ListExamples returns one page of examples for the dataset starting at the
// supplied offset. Page size is fixed at DefaultPageSize.
func (client *Client) ListExamples(requestContext context.Context, datasetID string, offset int) ([]Example, error) {
	queryValues := url.Values{}
	queryValues.Set(datasetQueryParameterCons, datasetID)
	queryValues.Set(offsetQueryParameterConstant, strconv.Itoa(offset))
	queryValues.Set(limitQueryParameterConstant, strconv.Itoa(DefaultPageSize))

	var examples []Example
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, examplesPathConstant, queryValues, nil, &examples)
	return examples, requestError
}

// BulkCreateExamples submits examples in one request. The platform returns
// created records in the same order as submitted; callers relying on
// positional correspondence must preserve submission order.
func (client *Client) BulkCreateExamples(requestContext context.Context, creationRequests []ExampleCreateRequest) ([]Example, error) {
	var examples []Example
	requestError := client.sendJSONRequest(requestContext, http.MethodPost, examplesBulkPathConstant, nil, creationRequests, &examples)
	return examples, requestError
}
