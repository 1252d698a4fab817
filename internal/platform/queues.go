package platform

import (
	"context"
	"net/http"
	"net/url"
)

const (
	annotationQueuesPathConstant        = "/annotation-queues"
	annotationQueuePathTemplateConstant = "/annotation-queues/%s"
)

// GetAnnotationQueue fetches one annotation queue by identifier.
func (client *Client) GetAnnotationQueue(requestContext context.Context, queueID string) (AnnotationQueue, error) {
	var annotationQueue AnnotationQueue
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, joinPath(annotationQueuePathTemplateConstant, queueID), nil, nil, &annotationQueue)
	return annotationQueue, requestError
}

// ListAnnotationQueuesByName returns queues whose name exactly matches the argument.
func (client *Client) ListAnnotationQueuesByName(requestContext context.Context, queueName string) ([]AnnotationQueue, error) {
	queryValues := url.Values{}
	queryValues.Set(nameQueryParameterConstant, queueName)

	var annotationQueues []AnnotationQueue
	requestError := client.sendJSONRequest(requestContext, http.MethodGet, annotationQueuesPathConstant, queryValues, nil, &annotationQueues)
	return annotationQueues, requestError
}

// CreateAnnotationQueue creates an annotation queue and returns the stored resource.
func (client *Client) CreateAnnotationQueue(requestContext context.Context, creationRequest AnnotationQueueCreateRequest) (AnnotationQueue, error) {
	var annotationQueue AnnotationQueue
	requestError := client.sendJSONRequest(requestContext, http.MethodPost, annotationQueuesPathConstant, nil, creationRequest, &annotationQueue)
	return annotationQueue, requestError
}
